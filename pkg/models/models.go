package models

import "time"

// Speed controls how often the growth engine ticks.
type Speed string

const (
	SpeedSlow   Speed = "slow"
	SpeedMedium Speed = "medium"
	SpeedFast   Speed = "fast"
	SpeedTurbo  Speed = "turbo"
)

// DefaultSpeed is used whenever an unknown speed tag is encountered.
const DefaultSpeed = SpeedFast

// tickIntervals maps each speed to its fixed cadence.
var tickIntervals = map[Speed]time.Duration{
	SpeedSlow:   30 * time.Minute,
	SpeedMedium: 15 * time.Minute,
	SpeedFast:   5 * time.Minute,
	SpeedTurbo:  2 * time.Minute,
}

// ticksPerDay maps each speed to the number of ticks in 24 hours.
var ticksPerDay = map[Speed]int{
	SpeedSlow:   48,
	SpeedMedium: 96,
	SpeedFast:   288,
	SpeedTurbo:  720,
}

// Interval returns the tick cadence for the speed, falling back to the
// default for unknown tags.
func (s Speed) Interval() time.Duration {
	if d, ok := tickIntervals[s]; ok {
		return d
	}
	return tickIntervals[DefaultSpeed]
}

// TicksPerDay returns how many ticks the speed produces per day.
func (s Speed) TicksPerDay() int {
	if n, ok := ticksPerDay[s]; ok {
		return n
	}
	return ticksPerDay[DefaultSpeed]
}

// Valid reports whether the speed is one of the enumerated tags.
func (s Speed) Valid() bool {
	_, ok := tickIntervals[s]
	return ok
}

// Mode scales the per-tick growth amount.
type Mode string

const (
	ModeConservative Mode = "conservative"
	ModeNormal       Mode = "normal"
	ModeAggressive   Mode = "aggressive"
	ModeTurbo        Mode = "turbo"
)

// DefaultMode is used whenever an unknown mode tag is encountered.
const DefaultMode = ModeNormal

var modeMultipliers = map[Mode]float64{
	ModeConservative: 0.7,
	ModeNormal:       1.0,
	ModeAggressive:   1.8,
	ModeTurbo:        2.5,
}

// Multiplier returns the growth multiplier for the mode, falling back to
// the default for unknown tags.
func (m Mode) Multiplier() float64 {
	if f, ok := modeMultipliers[m]; ok {
		return f
	}
	return modeMultipliers[DefaultMode]
}

// Valid reports whether the mode is one of the enumerated tags.
func (m Mode) Valid() bool {
	_, ok := modeMultipliers[m]
	return ok
}

// GrowthSettings is the persisted engine configuration.
type GrowthSettings struct {
	FollowersPerDay int    `json:"followers_per_day"`
	Speed           Speed  `json:"speed"`
	GrowthMode      Mode   `json:"growth_mode"`
	TargetGoal      int    `json:"target_goal"`
	TargetUsername  string `json:"target_username,omitempty"`
}

// DefaultGrowthSettings returns the settings used before the user has
// configured anything.
func DefaultGrowthSettings() GrowthSettings {
	return GrowthSettings{
		FollowersPerDay: 100,
		Speed:           SpeedFast,
		GrowthMode:      ModeNormal,
		TargetGoal:      10000,
	}
}

// Normalize replaces unknown enum tags with their defaults.
func (s *GrowthSettings) Normalize() {
	if !s.Speed.Valid() {
		s.Speed = DefaultSpeed
	}
	if !s.GrowthMode.Valid() {
		s.GrowthMode = DefaultMode
	}
}

// Counts is a follower/following/post snapshot.
type Counts struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
	Posts     int `json:"posts"`
}

// InitialCounts is the immutable baseline captured on first engine start.
type InitialCounts struct {
	Counts
	Date time.Time `json:"date"`
}

// GrowthPoint is one history entry, created once per successful tick and
// never mutated.
type GrowthPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Amount    int       `json:"amount"`
	Total     int       `json:"total"`
	Speed     Speed     `json:"speed"`
	Hour      int       `json:"hour"`
}

// GrowthRecord is the persisted growth state, a singleton per installation.
// Active survives restarts so a running simulation resumes on launch.
type GrowthRecord struct {
	Active  bool          `json:"is_active"`
	History []GrowthPoint `json:"history"`
	Current Counts        `json:"current"`
	Initial InitialCounts `json:"initial"`
}

// NewGrowthRecord returns a zeroed record for first access.
func NewGrowthRecord() *GrowthRecord {
	return &GrowthRecord{History: []GrowthPoint{}}
}

// Seeded reports whether the initial baseline has been captured.
func (r *GrowthRecord) Seeded() bool {
	return r.Initial.Followers > 0 && !r.Initial.Date.IsZero()
}

// HistoryWindow is how long growth points are retained.
const HistoryWindow = 90 * 24 * time.Hour

// Prune drops history points older than the retention window relative to now.
func (r *GrowthRecord) Prune(now time.Time) {
	cutoff := now.Add(-HistoryWindow)
	i := 0
	for i < len(r.History) && !r.History[i].Timestamp.After(cutoff) {
		i++
	}
	if i > 0 {
		r.History = append(r.History[:0], r.History[i:]...)
	}
}

// TodayGrowth sums the amounts of points recorded since local midnight.
func (r *GrowthRecord) TodayGrowth(now time.Time) int {
	year, month, day := now.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	total := 0
	for _, p := range r.History {
		if !p.Timestamp.Before(midnight) {
			total += p.Amount
		}
	}
	return total
}

// Post is a single entry in a profile's recent-posts list.
type Post struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	ThumbnailURL string    `json:"thumbnail_url"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	Timestamp    time.Time `json:"timestamp"`
	Caption      string    `json:"caption"`
	Hashtags     string    `json:"hashtags,omitempty"`
	IsVideo      bool      `json:"is_video"`
	VideoViews   int       `json:"video_view_count,omitempty"`
}

// Origins for a profile snapshot. The dashboard surfaces this so a user can
// tell real numbers from generated ones.
const (
	ProfileSourceLive      = "live"
	ProfileSourceSynthetic = "synthetic"
	ProfileSourceCache     = "cache"
)

// ProfileSnapshot is a point-in-time view of an Instagram profile. It may
// originate from a live fetch or from the synthetic generator; the shape is
// identical either way.
type ProfileSnapshot struct {
	Source         string    `json:"source,omitempty"`
	Username       string    `json:"username"`
	FullName       string    `json:"full_name"`
	Biography      string    `json:"biography"`
	ExternalURL    string    `json:"external_url,omitempty"`
	AvatarURL      string    `json:"profile_pic_url"`
	IsVerified     bool      `json:"is_verified"`
	IsPrivate      bool      `json:"is_private"`
	FollowerCount  int       `json:"follower_count"`
	FollowingCount int       `json:"following_count"`
	MediaCount     int       `json:"media_count"`
	EngagementRate float64   `json:"engagement_rate"`
	AvgLikes       int       `json:"avg_likes"`
	AvgComments    int       `json:"avg_comments"`
	RecentPosts    []Post    `json:"recent_posts"`
	FetchedAt      time.Time `json:"fetched_at"`
}

// Provider identifies how a session was established.
type Provider string

const (
	ProviderManual Provider = "manual"
	ProviderOAuth  Provider = "oauth"
	ProviderDemo   Provider = "demo"
)

// SessionMaxAge is the hard ceiling on session lifetime, measured from
// login time regardless of activity.
const SessionMaxAge = 24 * time.Hour

// Session is the persisted user session.
type Session struct {
	Username     string    `json:"username"`
	Provider     Provider  `json:"provider"`
	LoginTime    time.Time `json:"login_time"`
	LastActivity time.Time `json:"last_activity"`
}

// Expired reports whether the session has outlived its age ceiling.
func (s *Session) Expired(now time.Time) bool {
	return now.Sub(s.LoginTime) > SessionMaxAge
}
