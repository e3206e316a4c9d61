package models

import (
	"testing"
	"time"
)

func TestSpeedInterval(t *testing.T) {
	tests := []struct {
		speed    Speed
		interval time.Duration
		perDay   int
	}{
		{SpeedSlow, 30 * time.Minute, 48},
		{SpeedMedium, 15 * time.Minute, 96},
		{SpeedFast, 5 * time.Minute, 288},
		{SpeedTurbo, 2 * time.Minute, 720},
	}

	for _, tt := range tests {
		t.Run(string(tt.speed), func(t *testing.T) {
			if got := tt.speed.Interval(); got != tt.interval {
				t.Errorf("Interval() = %v, want %v", got, tt.interval)
			}
			if got := tt.speed.TicksPerDay(); got != tt.perDay {
				t.Errorf("TicksPerDay() = %d, want %d", got, tt.perDay)
			}
		})
	}
}

func TestUnknownTagsFallBackToDefaults(t *testing.T) {
	if got := Speed("warp").Interval(); got != SpeedFast.Interval() {
		t.Errorf("unknown speed interval = %v, want the fast default %v", got, SpeedFast.Interval())
	}
	if got := Mode("ludicrous").Multiplier(); got != 1.0 {
		t.Errorf("unknown mode multiplier = %v, want 1.0", got)
	}

	s := GrowthSettings{FollowersPerDay: 50, Speed: "warp", GrowthMode: "ludicrous"}
	s.Normalize()
	if s.Speed != SpeedFast || s.GrowthMode != ModeNormal {
		t.Errorf("Normalize() = %s/%s, want fast/normal", s.Speed, s.GrowthMode)
	}
}

func TestModeMultipliers(t *testing.T) {
	want := map[Mode]float64{
		ModeConservative: 0.7,
		ModeNormal:       1.0,
		ModeAggressive:   1.8,
		ModeTurbo:        2.5,
	}
	for mode, multiplier := range want {
		if got := mode.Multiplier(); got != multiplier {
			t.Errorf("%s multiplier = %v, want %v", mode, got, multiplier)
		}
	}
}

func TestGrowthRecordPrune(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	record := NewGrowthRecord()
	record.History = []GrowthPoint{
		{Timestamp: now.Add(-91 * 24 * time.Hour), Amount: 1},
		{Timestamp: now.Add(-90*24*time.Hour - time.Minute), Amount: 2},
		{Timestamp: now.Add(-89 * 24 * time.Hour), Amount: 3},
		{Timestamp: now.Add(-time.Hour), Amount: 4},
	}

	record.Prune(now)

	if len(record.History) != 2 {
		t.Fatalf("expected 2 points after prune, got %d", len(record.History))
	}
	if record.History[0].Amount != 3 || record.History[1].Amount != 4 {
		t.Errorf("prune kept the wrong points: %+v", record.History)
	}

	// Order must survive pruning.
	for i := 1; i < len(record.History); i++ {
		if record.History[i].Timestamp.Before(record.History[i-1].Timestamp) {
			t.Errorf("history out of order at index %d", i)
		}
	}
}

func TestTodayGrowth(t *testing.T) {
	now := time.Date(2026, 8, 1, 14, 0, 0, 0, time.UTC)
	record := NewGrowthRecord()
	record.History = []GrowthPoint{
		{Timestamp: now.Add(-20 * time.Hour), Amount: 10}, // yesterday
		{Timestamp: now.Add(-13 * time.Hour), Amount: 5},  // 01:00 today
		{Timestamp: now.Add(-time.Hour), Amount: 7},
	}

	if got := record.TodayGrowth(now); got != 12 {
		t.Errorf("TodayGrowth() = %d, want 12", got)
	}
}

func TestSeeded(t *testing.T) {
	record := NewGrowthRecord()
	if record.Seeded() {
		t.Error("empty record reported as seeded")
	}

	record.Initial = InitialCounts{
		Counts: Counts{Followers: 1200},
		Date:   time.Now(),
	}
	if !record.Seeded() {
		t.Error("record with baseline reported as not seeded")
	}
}

func TestSessionExpired(t *testing.T) {
	login := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	session := &Session{Username: "someone", LoginTime: login}

	t.Run("fresh", func(t *testing.T) {
		if session.Expired(login.Add(23 * time.Hour)) {
			t.Error("session expired before 24h")
		}
	})

	t.Run("stale", func(t *testing.T) {
		if !session.Expired(login.Add(25 * time.Hour)) {
			t.Error("session still live after 25h")
		}
	})
}
