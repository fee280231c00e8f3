package process

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/ismaeljda/big-brain/model"
	"github.com/ismaeljda/big-brain/note"
)

type Platform interface {
	ListLiked(ctx context.Context, maxResults int64) ([]model.LikedVideo, error)
	RemoveLike(ctx context.Context, id model.YoutubeVideoID) bool
}

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, video model.LikedVideo, category model.Category) model.ProcessingResult
}

type NoteWriter interface {
	Render(result model.ProcessingResult) (string, error)
	Save(result model.ProcessingResult) (string, error)
	Filename(result model.ProcessingResult) string
	Stats() (note.Stats, error)
}
