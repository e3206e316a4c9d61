package backup

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instagrowth/pkg/config"
	"instagrowth/pkg/errors"
	"instagrowth/pkg/logger"
	"instagrowth/pkg/models"
	"instagrowth/pkg/store"
)

func newTestManager(t *testing.T, cfg config.BackupConfig) (*Manager, *store.Store) {
	t.Helper()
	log, err := logger.New(logger.Options{Level: "disabled"})
	require.NoError(t, err)
	st, err := store.New(t.TempDir(), log, store.WithoutObfuscation())
	require.NoError(t, err)
	return NewManager(st, cfg, log), st
}

func seedState(t *testing.T, st *store.Store) {
	t.Helper()
	settings := st.Settings()
	settings.TargetUsername = "someuser"
	settings.FollowersPerDay = 250
	require.NoError(t, st.SaveSettings(settings))

	record := &models.GrowthRecord{
		Active: true,
		Initial: models.InitialCounts{
			Counts: models.Counts{Followers: 1000},
			Date:   time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		Current: models.Counts{Followers: 1250},
		History: []models.GrowthPoint{
			{Timestamp: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC), Amount: 5, Total: 1250, Speed: models.SpeedMedium, Hour: 9},
		},
	}
	require.NoError(t, st.SaveGrowthData(record))
}

func TestExportImportRoundtrip(t *testing.T) {
	mgr, st := newTestManager(t, config.BackupConfig{})
	seedState(t, st)

	payload := mgr.Export()
	assert.Equal(t, payloadVersion, payload.Version)
	assert.Equal(t, "someuser", payload.Settings.TargetUsername)
	require.NotNil(t, payload.Growth)
	assert.Equal(t, 1250, payload.Growth.Current.Followers)

	// Import into a fresh store.
	other, otherStore := newTestManager(t, config.BackupConfig{})
	require.NoError(t, other.Import(payload))

	restored := otherStore.GrowthData()
	require.NotNil(t, restored)
	assert.Equal(t, 1250, restored.Current.Followers)
	assert.True(t, restored.Active)
	assert.Equal(t, "someuser", otherStore.Settings().TargetUsername)
}

func TestImportRejectsBadPayloads(t *testing.T) {
	mgr, _ := newTestManager(t, config.BackupConfig{})

	err := mgr.Import(&Payload{Version: payloadVersion + 1, Growth: &models.GrowthRecord{}})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err), "newer version must be rejected")

	err = mgr.Import(&Payload{Version: payloadVersion})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err), "missing growth data must be rejected")
}

func TestImportNormalizesSettings(t *testing.T) {
	mgr, st := newTestManager(t, config.BackupConfig{})

	payload := &Payload{
		Version: payloadVersion,
		Settings: models.GrowthSettings{
			TargetUsername:  "someuser",
			FollowersPerDay: -3,
			Speed:           "warp",
		},
		Growth: &models.GrowthRecord{},
	}
	require.NoError(t, mgr.Import(payload))

	settings := st.Settings()
	assert.Greater(t, settings.FollowersPerDay, 0)
	assert.True(t, settings.Speed.Valid())
}

func TestWriteAndReadFile(t *testing.T) {
	mgr, st := newTestManager(t, config.BackupConfig{})
	seedState(t, st)

	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, mgr.WriteFile(path))

	other, otherStore := newTestManager(t, config.BackupConfig{})
	require.NoError(t, other.ReadFile(path))
	restored := otherStore.GrowthData()
	require.NotNil(t, restored)
	assert.Equal(t, 1250, restored.Current.Followers)
}

func TestUpload(t *testing.T) {
	var gotAuth string
	var gotBody gistRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"abc123","html_url":"https://gist.example/abc123"}`)
	}))
	defer server.Close()

	mgr, st := newTestManager(t, config.BackupConfig{Token: "test-token", Endpoint: server.URL})
	seedState(t, st)

	id, err := mgr.Upload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.False(t, gotBody.Public, "backups must be private gists")
	assert.Contains(t, gotBody.Files, gistFilename)
}

func TestUploadRequiresToken(t *testing.T) {
	mgr, _ := newTestManager(t, config.BackupConfig{})
	_, err := mgr.Upload(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestUploadRetriesServerErrors(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"id":"retry-ok"}`)
	}))
	defer server.Close()

	mgr, _ := newTestManager(t, config.BackupConfig{Token: "test-token", Endpoint: server.URL})
	id, err := mgr.Upload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "retry-ok", id)
	assert.Equal(t, 3, attempts)
}

func TestDownload(t *testing.T) {
	source, sourceStore := newTestManager(t, config.BackupConfig{})
	seedState(t, sourceStore)
	content, err := json.Marshal(source.Export())
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/abc123", r.URL.Path)
		resp := gistResponse{
			ID:    "abc123",
			Files: map[string]gistFile{gistFilename: {Content: string(content)}},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	mgr, st := newTestManager(t, config.BackupConfig{Endpoint: server.URL})
	require.NoError(t, mgr.Download(context.Background(), "abc123"))

	restored := st.GrowthData()
	require.NotNil(t, restored)
	assert.Equal(t, 1250, restored.Current.Followers)
}

func TestDownloadMissingBackupFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"abc123","files":{}}`)
	}))
	defer server.Close()

	mgr, _ := newTestManager(t, config.BackupConfig{Endpoint: server.URL})
	err := mgr.Download(context.Background(), "abc123")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}
