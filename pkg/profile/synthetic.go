package profile

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"instagrowth/pkg/models"
)

const recentPostCount = 9

var bioTemplates = []string{
	"Living my best life ✨",
	"Creator | Dreamer | Doer",
	"📍 Somewhere sunny",
	"Sharing moments that matter",
	"DM for collabs 📩",
}

// Synthesize builds a plausible profile snapshot for a username without any
// network access. The generator is seeded from the username so the same
// account always gets the same numbers across restarts; the engine depends on
// that to keep the seeded baseline stable.
func Synthesize(username string, now time.Time) *models.ProfileSnapshot {
	rng := rand.New(rand.NewSource(usernameSeed(username)))

	followers := 500 + rng.Intn(2001)
	following := followers/10 + rng.Intn(followers*2/5+1)
	posts := 50 + rng.Intn(301)
	engagement := 2.0 + rng.Float64()*3.0

	snapshot := &models.ProfileSnapshot{
		Source:         models.ProfileSourceSynthetic,
		Username:       username,
		FullName:       displayName(username),
		Biography:      bioTemplates[rng.Intn(len(bioTemplates))],
		AvatarURL:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
		IsVerified:     rng.Float64() < 0.1,
		FollowerCount:  followers,
		FollowingCount: following,
		MediaCount:     posts,
		EngagementRate: engagement,
		FetchedAt:      now,
	}

	for i := 0; i < recentPostCount; i++ {
		likes := int(float64(followers) * (engagement / 100) * (0.7 + rng.Float64()*0.6))
		comments := likes/20 + rng.Intn(likes/10+1)
		snapshot.RecentPosts = append(snapshot.RecentPosts, models.Post{
			ID:           fmt.Sprintf("%s-%d", username, i),
			Type:         "image",
			ThumbnailURL: fmt.Sprintf("https://picsum.photos/seed/%s%d/300", username, i),
			LikeCount:    likes,
			CommentCount: comments,
			Timestamp:    now.Add(-time.Duration(i*2+rng.Intn(24)) * time.Hour),
		})
		snapshot.AvgLikes += likes
		snapshot.AvgComments += comments
	}
	snapshot.AvgLikes /= recentPostCount
	snapshot.AvgComments /= recentPostCount

	return snapshot
}

func usernameSeed(username string) int64 {
	h := fnv.New64a()
	h.Write([]byte(username))
	return int64(h.Sum64())
}

// displayName turns "some.user_name" into "Some User Name".
func displayName(username string) string {
	out := make([]rune, 0, len(username))
	upper := true
	for _, r := range username {
		switch {
		case r == '.' || r == '_':
			out = append(out, ' ')
			upper = true
		case upper && r >= 'a' && r <= 'z':
			out = append(out, r-'a'+'A')
			upper = false
		default:
			out = append(out, r)
			upper = false
		}
	}
	return string(out)
}
