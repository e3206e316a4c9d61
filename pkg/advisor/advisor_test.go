package advisor

import (
	"sort"
	"strings"
	"testing"
	"time"

	"instagrowth/pkg/analytics"
	"instagrowth/pkg/models"
)

func titles(suggestions []Suggestion) map[string]Priority {
	out := make(map[string]Priority, len(suggestions))
	for _, s := range suggestions {
		out[s.Title] = s.Priority
	}
	return out
}

func TestSuggestEmptyInputsFallsBack(t *testing.T) {
	suggestions := Suggest(nil, analytics.Report{})
	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1 fallback", len(suggestions))
	}
	if suggestions[0].Title != "Keep posting consistently" {
		t.Errorf("fallback title = %q", suggestions[0].Title)
	}
}

func TestProfileTips(t *testing.T) {
	snapshot := &models.ProfileSnapshot{
		Username:       "someuser",
		IsPrivate:      true,
		FollowerCount:  100,
		FollowingCount: 500,
		MediaCount:     3,
		EngagementRate: 0.8,
	}

	got := titles(Suggest(snapshot, analytics.Report{}))

	expect := map[string]Priority{
		"Write a bio":                    PriorityHigh,
		"Add a link to your bio":         PriorityLow,
		"Consider going public":          PriorityHigh,
		"Boost engagement":               PriorityMedium,
		"Rebalance your following ratio": PriorityMedium,
		"Fill out your grid":             PriorityMedium,
	}
	for title, priority := range expect {
		gotPriority, ok := got[title]
		if !ok {
			t.Errorf("missing suggestion %q", title)
			continue
		}
		if gotPriority != priority {
			t.Errorf("%q priority = %q, want %q", title, gotPriority, priority)
		}
	}
}

func TestHealthyProfileGetsNoProfileTips(t *testing.T) {
	snapshot := &models.ProfileSnapshot{
		Username:       "someuser",
		Biography:      "hello",
		ExternalURL:    "https://example.com",
		FollowerCount:  5000,
		FollowingCount: 300,
		MediaCount:     120,
		EngagementRate: 3.2,
	}

	suggestions := Suggest(snapshot, analytics.Report{})
	if len(suggestions) != 1 || suggestions[0].Title != "Keep posting consistently" {
		t.Errorf("healthy profile should only get the fallback, got %+v", suggestions)
	}
}

func TestTimingTips(t *testing.T) {
	report := analytics.Report{
		Ticks:       10,
		TotalGrowth: 50,
		BestHour:    20,
		BestDay: analytics.DailyPoint{
			// A Saturday.
			Date:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			Amount: 40,
		},
	}

	got := titles(Suggest(nil, report))
	if _, ok := got["Post around 20:00"]; !ok {
		t.Errorf("missing best-hour tip, got %v", got)
	}
	if _, ok := got["Saturdays work well for you"]; !ok {
		t.Errorf("missing best-day tip, got %v", got)
	}
}

func TestDailyTipRotates(t *testing.T) {
	day := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	morning := DailyTip(day)
	evening := DailyTip(day.Add(12 * time.Hour))
	if morning != evening {
		t.Errorf("tip changed within a day: %q vs %q", morning, evening)
	}

	nextDay := DailyTip(day.AddDate(0, 0, 1))
	if morning == nextDay {
		t.Errorf("tip did not rotate across days")
	}
}

func TestHashtags(t *testing.T) {
	fitness := Hashtags("Fitness")
	if len(fitness) == 0 {
		t.Fatal("no fitness hashtags")
	}
	for _, tag := range fitness {
		if !strings.HasPrefix(tag, "#") {
			t.Errorf("hashtag %q missing # prefix", tag)
		}
	}

	unknown := Hashtags("underwater basket weaving")
	general := Hashtags("general")
	if len(unknown) != len(general) || unknown[0] != general[0] {
		t.Errorf("unknown niche should fall back to general set")
	}
}

func TestNichesSorted(t *testing.T) {
	niches := Niches()
	if len(niches) < 2 {
		t.Fatalf("got %d niches", len(niches))
	}
	if !sort.StringsAreSorted(niches) {
		t.Errorf("niches not sorted: %v", niches)
	}
}
