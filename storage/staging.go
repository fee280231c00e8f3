package storage

import (
	"time"

	"github.com/ismaeljda/big-brain/model"
	"golang.org/x/exp/slog"
)

type stagingDoc struct {
	Videos    []model.LikedVideo `json:"videos"`
	CreatedAt time.Time          `json:"created_at"`
}

// Staging keeps the videos waiting for a category in one JSON file.
type Staging struct {
	file   JSONFile
	logger *slog.Logger
}

func NewStaging(path string, logger *slog.Logger) *Staging {
	return &Staging{
		file:   NewJSONFile(path),
		logger: logger.With(slog.String("store", "staging")),
	}
}

func (s *Staging) List() []model.LikedVideo {
	var doc stagingDoc
	if _, err := s.file.Read(&doc); err != nil {
		s.logger.Warn("unreadable staging file, treating as empty", slog.String("error", err.Error()))
		return []model.LikedVideo{}
	}
	if doc.Videos == nil {
		return []model.LikedVideo{}
	}

	return doc.Videos
}

func (s *Staging) Replace(videos []model.LikedVideo) error {
	if videos == nil {
		videos = []model.LikedVideo{}
	}
	if err := s.file.Write(stagingDoc{Videos: videos, CreatedAt: time.Now()}); err != nil {
		return err
	}
	s.logger.Info("staging saved", slog.Int("count", len(videos)))

	return nil
}

func (s *Staging) Clear() error {
	if err := s.file.Remove(); err != nil {
		return err
	}
	s.logger.Info("staging cleared")

	return nil
}
