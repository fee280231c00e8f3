package storage

import (
	"github.com/ismaeljda/big-brain/model"
	"golang.org/x/exp/slog"
)

type processedDoc struct {
	ProcessedVideos []model.ProcessedEntry `json:"processed_videos"`
}

// Processed is the append-only history of videos that left staging.
type Processed struct {
	file   JSONFile
	logger *slog.Logger
}

func NewProcessed(path string, logger *slog.Logger) *Processed {
	return &Processed{
		file:   NewJSONFile(path),
		logger: logger.With(slog.String("store", "processed")),
	}
}

func (p *Processed) All() []model.ProcessedEntry {
	var doc processedDoc
	if _, err := p.file.Read(&doc); err != nil {
		p.logger.Warn("unreadable processed file, treating as empty", slog.String("error", err.Error()))
		return []model.ProcessedEntry{}
	}
	if doc.ProcessedVideos == nil {
		return []model.ProcessedEntry{}
	}

	return doc.ProcessedVideos
}

func (p *Processed) IDs() map[model.YoutubeVideoID]struct{} {
	entries := p.All()
	ids := make(map[model.YoutubeVideoID]struct{}, len(entries))
	for _, entry := range entries {
		ids[entry.VideoID] = struct{}{}
	}

	return ids
}

// Find returns the most recent entry for id.
func (p *Processed) Find(id model.YoutubeVideoID) (model.ProcessedEntry, bool) {
	entries := p.All()
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].VideoID == id {
			return entries[i], true
		}
	}

	return model.ProcessedEntry{}, false
}

func (p *Processed) Append(entry model.ProcessedEntry) error {
	entries := append(p.All(), entry)
	if err := p.file.Write(processedDoc{ProcessedVideos: entries}); err != nil {
		return err
	}
	p.logger.Info("video recorded as processed", slog.String("video", string(entry.VideoID)), slog.String("category", entry.Category))

	return nil
}
