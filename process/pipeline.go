package process

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ismaeljda/big-brain/auth"
	"github.com/ismaeljda/big-brain/metrics"
	"github.com/ismaeljda/big-brain/model"
	"github.com/ismaeljda/big-brain/note"
	"github.com/ismaeljda/big-brain/storage"
	"golang.org/x/exp/slog"
)

var (
	ErrNotStaged    = errors.New("video is not in staging")
	ErrNotProcessed = errors.New("video has no processing result")
)

// Pipeline moves liked videos from YouTube through staging into the
// knowledge base.
type Pipeline struct {
	platform   Platform
	summarizer Summarizer
	notes      NoteWriter
	staging    storage.StagingRepository
	processed  storage.ProcessedRepository
	categories model.Categories
	maxResults int64
	logger     *slog.Logger
	now        func() time.Time
}

func NewPipeline(platform Platform, summarizer Summarizer, notes NoteWriter, staging storage.StagingRepository, processed storage.ProcessedRepository, categories model.Categories, maxResults int64, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		platform:   platform,
		summarizer: summarizer,
		notes:      notes,
		staging:    staging,
		processed:  processed,
		categories: categories,
		maxResults: maxResults,
		logger:     logger.With(slog.String("component", "pipeline")),
		now:        time.Now,
	}
}

func (p *Pipeline) Categories() model.Categories {
	return p.categories
}

// Sync fetches the liked videos and adds the ones not seen before to
// staging. It returns the newly staged videos. Platform failures other than
// authentication count as an empty result.
func (p *Pipeline) Sync(ctx context.Context) ([]model.LikedVideo, error) {
	liked, err := p.platform.ListLiked(ctx, p.maxResults)
	if err != nil {
		if errors.Is(err, auth.ErrAuth) {
			return nil, err
		}
		p.logger.Error("failed to list liked videos", slog.String("error", err.Error()))
		liked = nil
	}

	processed := p.processed.IDs()
	current := p.staging.List()

	staged := make(map[model.YoutubeVideoID]struct{}, len(current))
	merged := make([]model.LikedVideo, 0, len(current)+len(liked))
	for _, video := range current {
		if _, done := processed[video.ID]; done {
			continue
		}
		staged[video.ID] = struct{}{}
		merged = append(merged, video)
	}

	fresh := []model.LikedVideo{}
	for _, video := range liked {
		if _, done := processed[video.ID]; done {
			continue
		}
		if _, ok := staged[video.ID]; ok {
			continue
		}
		staged[video.ID] = struct{}{}
		fresh = append(fresh, video)
	}
	merged = append(merged, fresh...)

	if err := p.staging.Replace(merged); err != nil {
		return nil, fmt.Errorf("save staging: %w", err)
	}
	metrics.VideosStaged.Add(float64(len(fresh)))
	p.logger.Info("sync done",
		slog.Int("liked", len(liked)),
		slog.Int("new", len(fresh)),
		slog.Int("staged", len(merged)),
	)

	return fresh, nil
}

func (p *Pipeline) Staged() []model.LikedVideo {
	return p.staging.List()
}

// Outcome describes a processed video. Result and NotePath are empty for
// skipped videos.
type Outcome struct {
	VideoID  model.YoutubeVideoID
	Category string
	Result   *model.ProcessingResult
	NotePath string
	Unliked  bool
}

// Process summarizes a staged video, writes its note, records it, removes the
// like and drops it from staging. The pseudo category skip records the video
// without any of the other steps. Staging is only changed once the note and
// the record are written.
func (p *Pipeline) Process(ctx context.Context, id model.YoutubeVideoID, categoryKey string) (Outcome, error) {
	logger := p.logger.With(slog.String("video", string(id)), slog.String("category", categoryKey))

	var cat model.Category
	if categoryKey != model.CategorySkip {
		var err error
		if cat, err = p.categories.Lookup(categoryKey); err != nil {
			return Outcome{}, err
		}
	}

	staged := p.staging.List()
	video, ok := find(staged, id)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s", ErrNotStaged, id)
	}

	if categoryKey == model.CategorySkip {
		if err := p.record(id, model.CategorySkipped, nil); err != nil {
			return Outcome{}, err
		}
		if err := p.unstage(staged, id); err != nil {
			return Outcome{}, err
		}
		logger.Info("video skipped")
		return Outcome{VideoID: id, Category: model.CategorySkipped}, nil
	}

	logger.Info("processing video")
	result := p.summarizer.Summarize(ctx, video, cat)

	path, err := p.notes.Save(result)
	if err != nil {
		return Outcome{}, fmt.Errorf("save note: %w", err)
	}
	if err := p.record(id, cat.Key, &result); err != nil {
		return Outcome{}, err
	}
	unliked := p.platform.RemoveLike(ctx, id)
	if err := p.unstage(staged, id); err != nil {
		return Outcome{}, err
	}
	logger.Info("video processed", slog.String("note", path), slog.Bool("unliked", unliked), slog.Bool("fallback", result.Fallback))

	return Outcome{
		VideoID:  id,
		Category: cat.Key,
		Result:   &result,
		NotePath: path,
		Unliked:  unliked,
	}, nil
}

func (p *Pipeline) record(id model.YoutubeVideoID, category string, result *model.ProcessingResult) error {
	entry := model.ProcessedEntry{
		VideoID:     id,
		Category:    category,
		Result:      result,
		ProcessedAt: p.now(),
	}
	if err := p.processed.Append(entry); err != nil {
		return fmt.Errorf("record processed video: %w", err)
	}
	metrics.VideosProcessed.WithLabelValues(category).Inc()

	return nil
}

func (p *Pipeline) unstage(staged []model.LikedVideo, id model.YoutubeVideoID) error {
	rest := make([]model.LikedVideo, 0, len(staged))
	for _, video := range staged {
		if video.ID != id {
			rest = append(rest, video)
		}
	}
	if err := p.staging.Replace(rest); err != nil {
		return fmt.Errorf("update staging: %w", err)
	}

	return nil
}

func (p *Pipeline) ClearStaging() error {
	if err := p.staging.Clear(); err != nil {
		return fmt.Errorf("clear staging: %w", err)
	}
	p.logger.Info("staging cleared")

	return nil
}

type Stats struct {
	ProcessedVideos   int            `json:"processed_videos"`
	StagingVideos     int            `json:"staging_videos"`
	Categories        []string       `json:"categories"`
	CategoryBreakdown map[string]int `json:"category_breakdown"`
}

func (p *Pipeline) Stats() Stats {
	breakdown := map[string]int{}
	for _, entry := range p.processed.All() {
		breakdown[entry.Category]++
	}

	return Stats{
		ProcessedVideos:   len(p.processed.IDs()),
		StagingVideos:     len(p.staging.List()),
		Categories:        p.categories.Keys(),
		CategoryBreakdown: breakdown,
	}
}

func (p *Pipeline) NoteStats() (note.Stats, error) {
	return p.notes.Stats()
}

type Export struct {
	Content  string `json:"content"`
	Filename string `json:"filename"`
	Category string `json:"category"`
}

// Export renders the note of a processed video without writing it.
func (p *Pipeline) Export(id model.YoutubeVideoID) (Export, error) {
	entry, ok := p.processed.Find(id)
	if !ok || entry.Result == nil {
		return Export{}, fmt.Errorf("%w: %s", ErrNotProcessed, id)
	}

	content, err := p.notes.Render(*entry.Result)
	if err != nil {
		return Export{}, err
	}

	return Export{
		Content:  content,
		Filename: p.notes.Filename(*entry.Result),
		Category: entry.Category,
	}, nil
}

// RegenerateNotes rewrites the note of every processed, non skipped video.
// It returns how many notes were written; failures are collected.
func (p *Pipeline) RegenerateNotes() (int, error) {
	var (
		count int
		errs  []error
	)
	for _, entry := range p.processed.All() {
		if entry.Result == nil || entry.Category == model.CategorySkipped {
			continue
		}
		if _, err := p.notes.Save(*entry.Result); err != nil {
			p.logger.Error("failed to regenerate note", slog.String("video", string(entry.VideoID)), slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("%s: %w", entry.VideoID, err))
			continue
		}
		count++
	}
	p.logger.Info("notes regenerated", slog.Int("count", count), slog.Int("failed", len(errs)))

	return count, errors.Join(errs...)
}

func find(videos []model.LikedVideo, id model.YoutubeVideoID) (model.LikedVideo, bool) {
	for _, video := range videos {
		if video.ID == id {
			return video, true
		}
	}
	return model.LikedVideo{}, false
}
