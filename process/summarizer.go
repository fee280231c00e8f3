package process

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ismaeljda/big-brain/metrics"
	"github.com/ismaeljda/big-brain/model"
	"golang.org/x/exp/slog"
)

var ErrEmptyResponse = errors.New("empty response from generator")

const (
	fallbackSummaryPrefix = "Video about: "
	fallbackManual        = "to be analyzed manually"
)

// AISummarizer asks a Generator for a structured summary of a video. It never
// fails: any generation or parsing problem yields a placeholder result.
type AISummarizer struct {
	generator Generator
	logger    *slog.Logger
	now       func() time.Time
}

func NewSummarizer(generator Generator, logger *slog.Logger) *AISummarizer {
	return &AISummarizer{
		generator: generator,
		logger:    logger.With(slog.String("component", "summarizer")),
		now:       time.Now,
	}
}

func (s *AISummarizer) Summarize(ctx context.Context, video model.LikedVideo, category model.Category) model.ProcessingResult {
	res, err := s.summarize(ctx, video, category.Mode)
	if err != nil {
		s.logger.Warn("summary failed, using fallback",
			slog.String("video", string(video.ID)),
			slog.String("error", err.Error()),
		)
		metrics.SummaryFallbacks.WithLabelValues(string(category.Mode)).Inc()
		res = fallbackResult(video, category.Mode)
	}
	if len(res.MissingSections) > 0 {
		s.logger.Info("response lacks sections",
			slog.String("video", string(video.ID)),
			slog.String("missing", strings.Join(res.MissingSections, ", ")),
		)
	}

	res.VideoID = video.ID
	res.Title = video.Title
	res.URL = video.URL
	res.Channel = video.Channel
	res.Category = category.Key
	res.Mode = category.Mode
	res.ProcessedAt = s.now()

	return res
}

func (s *AISummarizer) summarize(ctx context.Context, video model.LikedVideo, mode model.Mode) (model.ProcessingResult, error) {
	text, err := s.generator.Generate(ctx, buildPrompt(video, mode))
	if err != nil {
		return model.ProcessingResult{}, err
	}
	if strings.TrimSpace(text) == "" {
		return model.ProcessingResult{}, ErrEmptyResponse
	}

	return parseResponse(text, mode)
}

func fallbackResult(video model.LikedVideo, mode model.Mode) model.ProcessingResult {
	res := model.ProcessingResult{
		Summary:  fallbackSummaryPrefix + video.Title,
		Keywords: []string{},
		Fallback: true,
	}
	if mode == model.ModeLearning {
		res.LearningNotes = &model.LearningNotes{Concepts: []model.Concept{}, Applications: fallbackManual}
	} else {
		res.KnowledgeNotes = &model.KnowledgeNotes{KeyPoints: []string{}, KeyTakeaway: fallbackManual}
	}

	return res
}
