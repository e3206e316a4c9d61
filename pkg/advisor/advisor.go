// Package advisor turns a profile snapshot and growth report into concrete
// suggestions for growing an account organically.
package advisor

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"instagrowth/pkg/analytics"
	"instagrowth/pkg/models"
)

// Priority orders suggestions in displays.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Suggestion is one actionable tip.
type Suggestion struct {
	Priority Priority
	Title    string
	Detail   string
}

// Suggest builds a prioritized list of tips. Either argument may be
// zero-valued; rules that lack their inputs are skipped.
func Suggest(snapshot *models.ProfileSnapshot, report analytics.Report) []Suggestion {
	var suggestions []Suggestion

	if snapshot != nil {
		suggestions = append(suggestions, profileTips(snapshot)...)
	}
	if report.Ticks > 0 {
		suggestions = append(suggestions, timingTips(report)...)
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, Suggestion{
			Priority: PriorityLow,
			Title:    "Keep posting consistently",
			Detail:   "Accounts that post 3-5 times a week grow steadily. Consistency beats volume.",
		})
	}
	return suggestions
}

func profileTips(snapshot *models.ProfileSnapshot) []Suggestion {
	var tips []Suggestion

	if snapshot.Biography == "" {
		tips = append(tips, Suggestion{
			Priority: PriorityHigh,
			Title:    "Write a bio",
			Detail:   "Profiles with a bio convert visitors to followers far more often. Say who you are and what you post.",
		})
	}
	if snapshot.ExternalURL == "" {
		tips = append(tips, Suggestion{
			Priority: PriorityLow,
			Title:    "Add a link to your bio",
			Detail:   "A link gives visitors somewhere to go and signals an established account.",
		})
	}
	if snapshot.IsPrivate {
		tips = append(tips, Suggestion{
			Priority: PriorityHigh,
			Title:    "Consider going public",
			Detail:   "Private accounts cannot be discovered through hashtags or the explore page.",
		})
	}
	if snapshot.EngagementRate > 0 && snapshot.EngagementRate < 1.5 {
		tips = append(tips, Suggestion{
			Priority: PriorityMedium,
			Title:    "Boost engagement",
			Detail: fmt.Sprintf("Your engagement rate is %.1f%%, below the 1.5-3%% typical range. "+
				"Reply to comments within the first hour and ask questions in captions.", snapshot.EngagementRate),
		})
	}
	if snapshot.FollowingCount > snapshot.FollowerCount*2 && snapshot.FollowerCount > 0 {
		tips = append(tips, Suggestion{
			Priority: PriorityMedium,
			Title:    "Rebalance your following ratio",
			Detail:   "Following far more accounts than follow you back reads as spammy. Unfollow inactive accounts.",
		})
	}
	if snapshot.MediaCount < 9 {
		tips = append(tips, Suggestion{
			Priority: PriorityMedium,
			Title:    "Fill out your grid",
			Detail:   "Visitors judge an account by its first nine posts. Aim for a complete grid before promoting.",
		})
	}
	return tips
}

func timingTips(report analytics.Report) []Suggestion {
	var tips []Suggestion

	if report.TotalGrowth > 0 {
		tips = append(tips, Suggestion{
			Priority: PriorityMedium,
			Title:    fmt.Sprintf("Post around %02d:00", report.BestHour),
			Detail: fmt.Sprintf("Your followers are most active around %02d:00. "+
				"Posting just before your peak hour maximizes early engagement.", report.BestHour),
		})
	}
	if !report.BestDay.Date.IsZero() {
		tips = append(tips, Suggestion{
			Priority: PriorityLow,
			Title:    fmt.Sprintf("%ss work well for you", report.BestDay.Date.Weekday()),
			Detail:   fmt.Sprintf("Your best day so far added %d followers. Schedule important posts on that weekday.", report.BestDay.Amount),
		})
	}
	return tips
}

var dailyTips = []string{
	"Post a story today, even a small one. Stories keep you in the feed between posts.",
	"Reply to every comment on your latest post. The algorithm rewards fast conversations.",
	"Go through your tagged photos and engage with the accounts that tagged you.",
	"Comment something substantial on three accounts in your niche, not just an emoji.",
	"Check your insights for your top post this month and make more like it.",
	"Update your bio. Visitors decide in seconds; make the first line count.",
	"Try a carousel post. They get a second chance in feeds when people skip the first image.",
	"Pin your best-performing comment on your latest post.",
	"Answer a question in your niche's hashtag feed as a comment, not a post.",
	"Archive your three weakest posts. A tight grid converts better than a long one.",
	"Share someone else's post to your story with a genuine take on it.",
	"Write tomorrow's caption today. Captions rushed at posting time read that way.",
	"Look at which hour your last five posts went out and vary it deliberately.",
	"Ask a question in your next caption. Comments count double for reach.",
}

// DailyTip returns the tip of the day. The rotation is keyed to the
// calendar day so every caller sees the same tip until midnight.
func DailyTip(now time.Time) string {
	return dailyTips[now.YearDay()%len(dailyTips)]
}

// nicheHashtags maps a content niche to mid-size hashtags that still have
// discoverable reach, unlike the saturated top-level tags.
var nicheHashtags = map[string][]string{
	"fitness":     {"#fitnessmotivation", "#workoutroutine", "#gymlife", "#fitfam", "#trainhard", "#homeworkout"},
	"food":        {"#foodstagram", "#homecooking", "#foodphotography", "#easyrecipes", "#foodlover", "#instafood"},
	"travel":      {"#travelgram", "#wanderlust", "#travelphotography", "#exploremore", "#hidden_gems", "#passportready"},
	"fashion":     {"#ootd", "#styleinspo", "#fashiondaily", "#outfitinspiration", "#streetstyle", "#wardrobeessentials"},
	"photography": {"#photooftheday", "#shotoniphone", "#naturephotography", "#portraitmood", "#streetphotography", "#goldenhour"},
	"tech":        {"#techtok", "#gadgetreview", "#codinglife", "#developerlife", "#techsetup", "#programming"},
	"art":         {"#artistsoninstagram", "#worksinprogress", "#dailyart", "#sketchbook", "#artprocess", "#creativecommunity"},
	"general":     {"#instagood", "#photooftheday", "#explorepage", "#contentcreator", "#dailypost", "#community"},
}

// Hashtags returns suggested hashtags for a niche, falling back to the
// general set for unknown niches.
func Hashtags(niche string) []string {
	if tags, ok := nicheHashtags[strings.ToLower(strings.TrimSpace(niche))]; ok {
		return tags
	}
	return nicheHashtags["general"]
}

// Niches lists the niches Hashtags knows about, sorted.
func Niches() []string {
	niches := make([]string, 0, len(nicheHashtags))
	for niche := range nicheHashtags {
		niches = append(niches, niche)
	}
	sort.Strings(niches)
	return niches
}

// Strategies returns the evergreen growth playbook, independent of the
// account's current numbers.
func Strategies() []string {
	return []string{
		"Post consistently: 3-5 feed posts a week beats daily posting followed by silence.",
		"Engage in the first hour: reply to comments fast, the algorithm measures early velocity.",
		"Use 5-10 niche hashtags per post; skip tags with millions of posts.",
		"Stories daily, feed posts weekly: stories maintain reach between posts.",
		"Collaborate: shoutouts and joint lives expose you to an adjacent audience.",
		"Study your insights monthly and double down on the formats that worked.",
	}
}
