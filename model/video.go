package model

import "time"

type YoutubeVideoID string

// LikedVideo is a liked video as fetched from YouTube. It stays in staging
// until it is processed or skipped.
type LikedVideo struct {
	ID          YoutubeVideoID `json:"video_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Channel     string         `json:"channel"`
	PublishedAt string         `json:"published_at"`
	Duration    string         `json:"duration"`
	URL         string         `json:"url"`
	Thumbnail   string         `json:"thumbnail"`
	DetectedAt  time.Time      `json:"detected_at"`
}

func WatchURL(id YoutubeVideoID) string {
	return "https://www.youtube.com/watch?v=" + string(id)
}
