package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instagrowth/pkg/config"
	"instagrowth/pkg/errors"
	"instagrowth/pkg/logger"
	"instagrowth/pkg/models"
	"instagrowth/pkg/profile"
	"instagrowth/pkg/store"
)

func newTestManager(t *testing.T, endpoint string) (*Manager, *store.Store) {
	t.Helper()
	log, err := logger.New(logger.Options{Level: "disabled"})
	require.NoError(t, err)
	st, err := store.New(t.TempDir(), log, store.WithoutObfuscation())
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.Instagram.PublicEndpoint = endpoint
	cfg.Instagram.ProfileHosts = nil
	cfg.Cache.Enabled = false
	return NewManager(st, profile.NewSource(cfg, log), log), st
}

func TestDemoLogin(t *testing.T) {
	// No endpoints configured: a demo login must not need the network.
	mgr, st := newTestManager(t, "")

	session, err := mgr.Login(context.Background(), "@Some.User", models.ProviderDemo)
	require.NoError(t, err)
	assert.Equal(t, "Some.User", session.Username)
	assert.Equal(t, models.ProviderDemo, session.Provider)
	assert.False(t, session.LoginTime.IsZero())

	// Session persists and the growth target follows the login.
	assert.NotNil(t, st.Session())
	assert.Equal(t, "Some.User", st.Settings().TargetUsername)
}

func TestLoginRejectsInvalidUsername(t *testing.T) {
	mgr, _ := newTestManager(t, "")

	_, err := mgr.Login(context.Background(), "not a handle", models.ProviderDemo)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestLoginVerifiesAccountExists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	mgr, st := newTestManager(t, server.URL+"/?username=")

	_, err := mgr.Login(context.Background(), "ghostuser", models.ProviderManual)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Nil(t, st.Session(), "failed login must not create a session")
}

func TestCurrentAndLogout(t *testing.T) {
	mgr, _ := newTestManager(t, "")

	_, err := mgr.Login(context.Background(), "someuser", models.ProviderDemo)
	require.NoError(t, err)

	session := mgr.Current()
	require.NotNil(t, session)
	assert.Equal(t, "someuser", session.Username)

	require.NoError(t, mgr.Logout())
	assert.Nil(t, mgr.Current())

	// Logging out twice is fine.
	require.NoError(t, mgr.Logout())
}
