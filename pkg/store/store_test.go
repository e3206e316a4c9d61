package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"instagrowth/pkg/logger"
	"instagrowth/pkg/models"
)

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Options{Level: "disabled"})
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	return log
}

func newPlainStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), testLogger(t), WithoutObfuscation())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return s
}

func TestSaveLoadRoundtrip(t *testing.T) {
	s := newPlainStore(t)

	record := models.NewGrowthRecord()
	record.Current = models.Counts{Followers: 1500, Following: 300, Posts: 42}
	record.History = append(record.History, models.GrowthPoint{
		Timestamp: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		Amount:    7,
		Total:     1500,
		Speed:     models.SpeedFast,
		Hour:      10,
	})

	if err := s.SaveGrowthData(record); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded := s.GrowthData()
	if loaded.Current.Followers != 1500 {
		t.Errorf("followers = %d, want 1500", loaded.Current.Followers)
	}
	if len(loaded.History) != 1 || loaded.History[0].Amount != 7 {
		t.Errorf("history did not round-trip: %+v", loaded.History)
	}
}

func TestLoadAbsentRecord(t *testing.T) {
	s := newPlainStore(t)

	var record models.GrowthRecord
	ok, err := s.Load(KeyGrowthData, &record)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("absent record reported as present")
	}
}

func TestUndecodableRecordTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, testLogger(t), WithoutObfuscation())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, KeySettings+".json"), []byte("{{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	var settings models.GrowthSettings
	ok, err := s.Load(KeySettings, &settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("corrupt record reported as present")
	}

	// Typed accessor degrades to defaults.
	got := s.Settings()
	if got.FollowersPerDay != 100 || got.Speed != models.SpeedFast {
		t.Errorf("expected defaults, got %+v", got)
	}
}

func TestRemoveAbsentIsNotAnError(t *testing.T) {
	s := newPlainStore(t)
	if err := s.Remove(KeyAccountData); err != nil {
		t.Errorf("removing absent record errored: %v", err)
	}
}

func TestObfuscationRoundtrip(t *testing.T) {
	t.Setenv("INSTAGROWTH_PASSPHRASE", "test-passphrase")

	dir := t.TempDir()
	s, err := New(dir, testLogger(t))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	session := &models.Session{Username: "verysecret", Provider: models.ProviderManual}
	if err := s.SaveSession(session); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// On disk the username must not appear in the clear.
	raw, err := os.ReadFile(filepath.Join(dir, KeyUserSession+".json"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "verysecret") {
		t.Error("obfuscated record contains plaintext")
	}

	loaded := s.Session()
	if loaded == nil || loaded.Username != "verysecret" {
		t.Errorf("session did not round-trip: %+v", loaded)
	}
}

func TestObfuscatedStoreReadsPlainRecords(t *testing.T) {
	t.Setenv("INSTAGROWTH_PASSPHRASE", "test-passphrase")

	dir := t.TempDir()
	s, err := New(dir, testLogger(t))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	// A record written before obfuscation was enabled.
	plain := `{"followers_per_day":250,"speed":"slow","growth_mode":"aggressive","target_goal":5000}`
	if err := os.WriteFile(filepath.Join(dir, KeySettings+".json"), []byte(plain), 0600); err != nil {
		t.Fatal(err)
	}

	settings := s.Settings()
	if settings.FollowersPerDay != 250 || settings.Speed != models.SpeedSlow {
		t.Errorf("plain record not readable through obfuscated store: %+v", settings)
	}
}

func TestSessionExpiryRemovesRecord(t *testing.T) {
	current := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	dir := t.TempDir()
	s, err := New(dir, testLogger(t), WithoutObfuscation(), WithClock(func() time.Time { return current }))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if err := s.SaveSession(&models.Session{Username: "someone", Provider: models.ProviderManual}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	t.Run("live before the ceiling", func(t *testing.T) {
		current = current.Add(23 * time.Hour)
		if s.Session() == nil {
			t.Fatal("session expired early")
		}
	})

	t.Run("gone after the ceiling", func(t *testing.T) {
		current = current.Add(2 * time.Hour) // 25h after login
		if s.Session() != nil {
			t.Fatal("session survived past the ceiling")
		}
		if _, err := os.Stat(filepath.Join(dir, KeyUserSession+".json")); !os.IsNotExist(err) {
			t.Error("expired session record not removed")
		}
	})
}

func TestSettingsNormalizedOnLoad(t *testing.T) {
	s := newPlainStore(t)

	if err := s.SaveSettings(models.GrowthSettings{
		FollowersPerDay: -5,
		Speed:           "warp",
		GrowthMode:      "ludicrous",
		TargetGoal:      0,
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	settings := s.Settings()
	if settings.Speed != models.SpeedFast || settings.GrowthMode != models.ModeNormal {
		t.Errorf("enum tags not normalized: %+v", settings)
	}
	if settings.FollowersPerDay != 100 {
		t.Errorf("non-positive rate not defaulted: %d", settings.FollowersPerDay)
	}
	if settings.TargetGoal != 0 {
		t.Errorf("goal 0 (disabled) was rewritten to %d", settings.TargetGoal)
	}
}

func TestClearAll(t *testing.T) {
	s := newPlainStore(t)

	if err := s.SaveSettings(models.DefaultGrowthSettings()); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveGrowthData(models.NewGrowthRecord()); err != nil {
		t.Fatal(err)
	}

	if err := s.ClearAll(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	var settings models.GrowthSettings
	if ok, _ := s.Load(KeySettings, &settings); ok {
		t.Error("settings survived ClearAll")
	}
	var record models.GrowthRecord
	if ok, _ := s.Load(KeyGrowthData, &record); ok {
		t.Error("growth data survived ClearAll")
	}
}
