package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesLookup(t *testing.T) {
	cats := DefaultCategories()

	cat, err := cats.Lookup("tech_general_knowledge")
	require.NoError(t, err)
	assert.Equal(t, ModeKnowledge, cat.Mode)
	assert.Equal(t, "Tech General Knowledge", cat.Folder)

	_, err = cats.Lookup("cooking")
	assert.True(t, errors.Is(err, ErrInvalidCategory))
}

func TestCategoriesSorted(t *testing.T) {
	keys := DefaultCategories().Keys()
	require.Len(t, keys, 6)
	assert.Equal(t, "ai_business_learning", keys[0])
	assert.Equal(t, "tech_general_learning", keys[5])
}

func TestProcessingResultFlatJSON(t *testing.T) {
	res := ProcessingResult{
		VideoID:  "v1",
		Category: "tech_general_learning",
		Mode:     ModeLearning,
		Summary:  "s",
		LearningNotes: &LearningNotes{
			Concepts:     []Concept{{Name: "Goroutine", Definition: "lightweight thread"}},
			Applications: "use them",
		},
	}

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Contains(t, flat, "concepts")
	assert.Contains(t, flat, "applications")
	assert.NotContains(t, flat, "key_points")

	var back ProcessingResult
	require.NoError(t, json.Unmarshal(raw, &back))
	require.NotNil(t, back.LearningNotes)
	assert.Nil(t, back.KnowledgeNotes)
	assert.Equal(t, "Goroutine", back.Concepts[0].Name)
}
