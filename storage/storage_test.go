package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ismaeljda/big-brain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStagingRoundTripKeepsOrder(t *testing.T) {
	staging := NewStaging(filepath.Join(t.TempDir(), "data", "staging_videos.json"), discardLogger())

	detected := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	videos := []model.LikedVideo{
		{ID: "c", Title: "Third é", DetectedAt: detected},
		{ID: "a", Title: "First", DetectedAt: detected},
		{ID: "b", Title: "Second <b>", DetectedAt: detected},
	}
	require.NoError(t, staging.Replace(videos))

	assert.Equal(t, videos, staging.List())
}

func TestStagingMissingAndCorruptFilesAreEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staging_videos.json")
	staging := NewStaging(path, discardLogger())

	assert.Empty(t, staging.List())

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	assert.NotNil(t, staging.List())
	assert.Empty(t, staging.List())
}

func TestStagingClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staging_videos.json")
	staging := NewStaging(path, discardLogger())

	require.NoError(t, staging.Replace([]model.LikedVideo{{ID: "a"}}))
	require.NoError(t, staging.Clear())
	assert.NoFileExists(t, path)
	assert.Empty(t, staging.List())

	require.NoError(t, staging.Clear())
}

func TestProcessedAppend(t *testing.T) {
	processed := NewProcessed(filepath.Join(t.TempDir(), "processed_videos.json"), discardLogger())

	require.NoError(t, processed.Append(model.ProcessedEntry{VideoID: "v1", Category: model.CategorySkipped}))
	require.NoError(t, processed.Append(model.ProcessedEntry{
		VideoID:  "v2",
		Category: "culture_g_knowledge",
		Result: &model.ProcessingResult{
			VideoID:        "v2",
			Mode:           model.ModeKnowledge,
			KnowledgeNotes: &model.KnowledgeNotes{KeyPoints: []string{"one"}},
		},
	}))

	all := processed.All()
	require.Len(t, all, 2)
	assert.Nil(t, all[0].Result)
	assert.Equal(t, []string{"one"}, all[1].Result.KeyPoints)

	assert.Equal(t, map[model.YoutubeVideoID]struct{}{"v1": {}, "v2": {}}, processed.IDs())

	entry, ok := processed.Find("v2")
	require.True(t, ok)
	assert.Equal(t, "culture_g_knowledge", entry.Category)

	_, ok = processed.Find("v3")
	assert.False(t, ok)
}

func TestJSONFileReadErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	file := NewJSONFile(path)

	var v map[string]any
	found, err := file.Read(&v)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, os.WriteFile(path, []byte("[1,"), 0o600))
	_, err = file.Read(&v)
	assert.True(t, errors.Is(err, ErrStorageRead))
}
