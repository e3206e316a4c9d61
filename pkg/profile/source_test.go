package profile

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instagrowth/pkg/config"
	"instagrowth/pkg/errors"
	"instagrowth/pkg/logger"
	"instagrowth/pkg/models"
)

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Options{Level: "disabled"})
	require.NoError(t, err)
	return log
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Instagram.PublicEndpoint = ""
	cfg.Instagram.ProfileHosts = nil
	cfg.Cache.Enabled = false
	return cfg
}

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"@someuser", "someuser"},
		{"  someuser  ", "someuser"},
		{" @some.user_1 ", "some.user_1"},
		{"someuser", "someuser"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeUsername(tt.in))
	}
}

func TestValidateUsername(t *testing.T) {
	valid := []string{"a", "some.user", "under_score", "digits123", "x.y_z.9"}
	for _, u := range valid {
		assert.NoError(t, ValidateUsername(u), u)
	}

	invalid := []string{"", "has space", "way-too-dashy", "emoji😀", "this_username_is_far_too_long_to_pass"}
	for _, u := range invalid {
		err := ValidateUsername(u)
		require.Error(t, err, u)
		assert.True(t, errors.IsValidation(err), u)
	}
}

func TestSyntheticProfilesAreDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	a := Synthesize("someuser", now)
	b := Synthesize("someuser", now)
	assert.Equal(t, a.FollowerCount, b.FollowerCount, "same username must get the same numbers")
	assert.Equal(t, a.Biography, b.Biography)

	other := Synthesize("otheruser", now)
	assert.NotEqual(t, a.FollowerCount, other.FollowerCount)
}

func TestSyntheticProfileShape(t *testing.T) {
	snapshot := Synthesize("someuser", time.Now())

	assert.Equal(t, models.ProfileSourceSynthetic, snapshot.Source)
	assert.GreaterOrEqual(t, snapshot.FollowerCount, 500)
	assert.LessOrEqual(t, snapshot.FollowerCount, 2500)
	assert.GreaterOrEqual(t, snapshot.MediaCount, 50)
	assert.LessOrEqual(t, snapshot.MediaCount, 350)
	assert.GreaterOrEqual(t, snapshot.EngagementRate, 2.0)
	assert.LessOrEqual(t, snapshot.EngagementRate, 5.0)
	assert.Len(t, snapshot.RecentPosts, 9)
	assert.Equal(t, "Someuser", snapshot.FullName)
}

func TestGetProfileFallsBackToSynthetic(t *testing.T) {
	src := NewSource(testConfig(), testLogger(t))

	snapshot, err := src.GetProfile(context.Background(), "@someuser")
	require.NoError(t, err)
	assert.Equal(t, models.ProfileSourceSynthetic, snapshot.Source)
	assert.Equal(t, "someuser", snapshot.Username)
}

func TestGetProfileRejectsInvalidUsername(t *testing.T) {
	src := NewSource(testConfig(), testLogger(t))

	_, err := src.GetProfile(context.Background(), "not a handle")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestGetProfileFromPublicEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username := r.URL.Query().Get("username")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data":{"user":{
			"username":%q,"full_name":"Some User","biography":"hi",
			"edge_followed_by":{"count":4321},
			"edge_follow":{"count":321},
			"edge_owner_to_timeline_media":{"count":99,"edges":[]}
		}}}`, username)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Instagram.PublicEndpoint = server.URL + "/?username="
	src := NewSource(cfg, testLogger(t))

	snapshot, err := src.GetProfile(context.Background(), "someuser")
	require.NoError(t, err)
	assert.Equal(t, models.ProfileSourceLive, snapshot.Source)
	assert.Equal(t, 4321, snapshot.FollowerCount)
	assert.Equal(t, 321, snapshot.FollowingCount)
	assert.Equal(t, 99, snapshot.MediaCount)
}

func TestGetProfileCachesSnapshots(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, `{"data":{"user":{"username":"someuser","edge_followed_by":{"count":1000},
			"edge_follow":{"count":10},"edge_owner_to_timeline_media":{"count":5,"edges":[]}}}}`)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Instagram.PublicEndpoint = server.URL + "/?username="
	cfg.Cache.Enabled = true
	cfg.Cache.SizeMB = 1
	cfg.Cache.TTL = 5 * time.Minute
	src := NewSource(cfg, testLogger(t))

	first, err := src.GetProfile(context.Background(), "someuser")
	require.NoError(t, err)
	assert.Equal(t, models.ProfileSourceLive, first.Source)

	second, err := src.GetProfile(context.Background(), "someuser")
	require.NoError(t, err)
	assert.Equal(t, models.ProfileSourceCache, second.Source)
	assert.Equal(t, first.FollowerCount, second.FollowerCount)
	assert.Equal(t, 1, hits, "second lookup must come from cache")
}

func TestGetProfileNotFoundFallsBackToSynthetic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Instagram.PublicEndpoint = server.URL + "/?username="
	src := NewSource(cfg, testLogger(t))

	snapshot, err := src.GetProfile(context.Background(), "ghostuser")
	require.NoError(t, err, "not-found must degrade to synthetic data, not fail")
	assert.Equal(t, models.ProfileSourceSynthetic, snapshot.Source)
	assert.Equal(t, "ghostuser", snapshot.Username)
}

func TestRateGateDegradesToSynthetic(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, `{"data":{"user":{"username":"someuser","edge_followed_by":{"count":1000},
			"edge_follow":{"count":10},"edge_owner_to_timeline_media":{"count":5,"edges":[]}}}}`)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Instagram.PublicEndpoint = server.URL + "/?username="
	cfg.RateLimit.RequestsPerHour = 1
	src := NewSource(cfg, testLogger(t))

	first, err := src.GetProfile(context.Background(), "someuser")
	require.NoError(t, err)
	assert.Equal(t, models.ProfileSourceLive, first.Source)

	// Budget exhausted: no more live requests, synthetic data instead.
	second, err := src.GetProfile(context.Background(), "otheruser")
	require.NoError(t, err)
	assert.Equal(t, models.ProfileSourceSynthetic, second.Source)
	assert.Equal(t, 1, hits)
}

func TestAccountExists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("username") == "realuser" {
			fmt.Fprint(w, `{"data":{"user":{"username":"realuser","edge_followed_by":{"count":10},
				"edge_follow":{"count":1},"edge_owner_to_timeline_media":{"count":1,"edges":[]}}}}`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Instagram.PublicEndpoint = server.URL + "/?username="
	src := NewSource(cfg, testLogger(t))

	exists, err := src.AccountExists(context.Background(), "realuser")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = src.AccountExists(context.Background(), "ghostuser")
	require.NoError(t, err)
	assert.False(t, exists)
}
