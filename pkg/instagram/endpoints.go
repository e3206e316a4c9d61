package instagram

import (
	"context"
	"net/url"
	"time"

	"instagrowth/pkg/errors"
	"instagrowth/pkg/models"
)

// webProfileResponse mirrors the public web_profile_info payload. Only the
// fields the dashboard needs are decoded.
type webProfileResponse struct {
	Data struct {
		User struct {
			Username      string `json:"username"`
			FullName      string `json:"full_name"`
			Biography     string `json:"biography"`
			IsVerified    bool   `json:"is_verified"`
			IsPrivate     bool   `json:"is_private"`
			ProfilePicURL string `json:"profile_pic_url_hd"`
			EdgeFollowedBy struct {
				Count int `json:"count"`
			} `json:"edge_followed_by"`
			EdgeFollow struct {
				Count int `json:"count"`
			} `json:"edge_follow"`
			EdgeOwnerToTimelineMedia struct {
				Count int `json:"count"`
				Edges []struct {
					Node struct {
						ID         string `json:"id"`
						Shortcode  string `json:"shortcode"`
						DisplayURL string `json:"display_url"`
						EdgeLikedBy struct {
							Count int `json:"count"`
						} `json:"edge_liked_by"`
						EdgeMediaToComment struct {
							Count int `json:"count"`
						} `json:"edge_media_to_comment"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"edge_owner_to_timeline_media"`
		} `json:"user"`
	} `json:"data"`
}

// hostProfileResponse covers the third-party scraper hosts, which return a
// flatter shape than the public endpoint.
type hostProfileResponse struct {
	Username      string `json:"username"`
	FullName      string `json:"full_name"`
	Biography     string `json:"biography"`
	FollowerCount int    `json:"follower_count"`
	FollowingCount int   `json:"following_count"`
	MediaCount    int    `json:"media_count"`
	IsVerified    bool   `json:"is_verified"`
	IsPrivate     bool   `json:"is_private"`
	ProfilePicURL string `json:"profile_pic_url"`
}

// FetchPublicProfile queries the public web profile endpoint for a username.
func (c *Client) FetchPublicProfile(ctx context.Context, endpoint, username string, timeout time.Duration) (*models.ProfileSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var result webProfileResponse
	requestURL := endpoint + url.QueryEscape(username)
	headers := map[string]string{
		"X-IG-App-ID": "936619743392459",
	}

	if err := c.GetJSON(ctx, requestURL, headers, &result); err != nil {
		return nil, err
	}

	user := result.Data.User
	if user.Username == "" {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeNotFound,
			Message: "profile not found: " + username,
		}
	}

	snapshot := &models.ProfileSnapshot{
		Source:         models.ProfileSourceLive,
		Username:       user.Username,
		FullName:       user.FullName,
		Biography:      user.Biography,
		AvatarURL:      user.ProfilePicURL,
		IsVerified:     user.IsVerified,
		IsPrivate:      user.IsPrivate,
		FollowerCount:  user.EdgeFollowedBy.Count,
		FollowingCount: user.EdgeFollow.Count,
		MediaCount:     user.EdgeOwnerToTimelineMedia.Count,
		FetchedAt:      time.Now(),
	}

	var totalLikes, totalComments int
	for _, edge := range user.EdgeOwnerToTimelineMedia.Edges {
		snapshot.RecentPosts = append(snapshot.RecentPosts, models.Post{
			ID:           edge.Node.ID,
			Type:         "image",
			ThumbnailURL: edge.Node.DisplayURL,
			LikeCount:    edge.Node.EdgeLikedBy.Count,
			CommentCount: edge.Node.EdgeMediaToComment.Count,
		})
		totalLikes += edge.Node.EdgeLikedBy.Count
		totalComments += edge.Node.EdgeMediaToComment.Count
	}
	if n := len(snapshot.RecentPosts); n > 0 {
		snapshot.AvgLikes = totalLikes / n
		snapshot.AvgComments = totalComments / n
		if snapshot.FollowerCount > 0 {
			snapshot.EngagementRate = float64(totalLikes+totalComments) / float64(n) / float64(snapshot.FollowerCount) * 100
		}
	}

	return snapshot, nil
}

// FetchHostProfile queries one of the configured third-party scraper hosts.
func (c *Client) FetchHostProfile(ctx context.Context, hostURL, apiKey, apiHost, username string, timeout time.Duration) (*models.ProfileSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var result hostProfileResponse
	requestURL := hostURL + url.QueryEscape(username)
	headers := map[string]string{
		"X-RapidAPI-Key":  apiKey,
		"X-RapidAPI-Host": apiHost,
	}

	if err := c.GetJSON(ctx, requestURL, headers, &result); err != nil {
		return nil, err
	}

	if result.Username == "" {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeNotFound,
			Message: "profile not found: " + username,
		}
	}

	return &models.ProfileSnapshot{
		Source:         models.ProfileSourceLive,
		Username:       result.Username,
		FullName:       result.FullName,
		Biography:      result.Biography,
		AvatarURL:      result.ProfilePicURL,
		IsVerified:     result.IsVerified,
		IsPrivate:      result.IsPrivate,
		FollowerCount:  result.FollowerCount,
		FollowingCount: result.FollowingCount,
		MediaCount:     result.MediaCount,
		FetchedAt:      time.Now(),
	}, nil
}
