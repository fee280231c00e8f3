package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/ismaeljda/big-brain/metrics"
	"github.com/ismaeljda/big-brain/model"
	"golang.org/x/exp/slog"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const descriptionLimit = 500

// PlatformError wraps a failed YouTube API call.
type PlatformError struct {
	Op  string
	Err error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("youtube %s: %v", e.Op, e.Err)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// TokenSourcer hands out the user's OAuth2 token source.
type TokenSourcer interface {
	TokenSource(ctx context.Context) (oauth2.TokenSource, error)
}

type Youtube struct {
	tokens TokenSourcer
	opts   []option.ClientOption
	logger *slog.Logger
}

func NewYoutube(tokens TokenSourcer, logger *slog.Logger, opts ...option.ClientOption) *Youtube {
	return &Youtube{
		tokens: tokens,
		opts:   opts,
		logger: logger.With(slog.String("component", "youtube")),
	}
}

func (y *Youtube) service(ctx context.Context) (*youtube.Service, error) {
	ts, err := y.tokens.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	opts := append([]option.ClientOption{option.WithTokenSource(ts)}, y.opts...)

	return youtube.NewService(ctx, opts...)
}

// ListLiked returns the most recent videos the user rated "like".
func (y *Youtube) ListLiked(ctx context.Context, maxResults int64) (videos []model.LikedVideo, err error) {
	defer func() { metrics.ObservePlatformRequest("list_liked", err) }()

	client, err := y.service(ctx)
	if err != nil {
		return nil, &PlatformError{Op: "list liked", Err: err}
	}

	response, err := client.Videos.
		List([]string{"id", "snippet", "contentDetails"}).
		MyRating("like").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &PlatformError{Op: "list liked", Err: err}
	}

	now := time.Now()
	videos = make([]model.LikedVideo, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Snippet == nil {
			continue
		}
		video := model.LikedVideo{
			ID:          model.YoutubeVideoID(item.Id),
			Title:       item.Snippet.Title,
			Description: truncate(item.Snippet.Description, descriptionLimit),
			Channel:     item.Snippet.ChannelTitle,
			PublishedAt: item.Snippet.PublishedAt,
			URL:         model.WatchURL(model.YoutubeVideoID(item.Id)),
			DetectedAt:  now,
		}
		if item.ContentDetails != nil {
			video.Duration = item.ContentDetails.Duration
		}
		if t := item.Snippet.Thumbnails; t != nil && t.Medium != nil {
			video.Thumbnail = t.Medium.Url
		}
		videos = append(videos, video)
	}
	y.logger.Info("liked videos listed", slog.Int("count", len(videos)))

	return videos, nil
}

// RemoveLike clears the user's rating on a video. Failures are logged and
// reported as false.
func (y *Youtube) RemoveLike(ctx context.Context, id model.YoutubeVideoID) bool {
	err := y.rate(ctx, id, "none")
	metrics.ObservePlatformRequest("remove_like", err)
	if err != nil {
		y.logger.Warn("failed to remove like", slog.String("video", string(id)), slog.String("error", err.Error()))
		return false
	}

	return true
}

func (y *Youtube) rate(ctx context.Context, id model.YoutubeVideoID, rating string) error {
	client, err := y.service(ctx)
	if err != nil {
		return &PlatformError{Op: "rate", Err: err}
	}
	if err := client.Videos.Rate(string(id), rating).Context(ctx).Do(); err != nil {
		return &PlatformError{Op: "rate", Err: err}
	}

	return nil
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
