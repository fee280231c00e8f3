package storage

import (
	"github.com/ismaeljda/big-brain/model"
)

type StagingRepository interface {
	List() []model.LikedVideo
	Replace(videos []model.LikedVideo) error
	Clear() error
}

type ProcessedRepository interface {
	All() []model.ProcessedEntry
	IDs() map[model.YoutubeVideoID]struct{}
	Find(id model.YoutubeVideoID) (model.ProcessedEntry, bool)
	Append(entry model.ProcessedEntry) error
}
