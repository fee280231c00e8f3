package model

import (
	"errors"
	"fmt"
	"sort"
)

var ErrInvalidCategory = errors.New("invalid category")

type Mode string

const (
	ModeLearning  Mode = "learning"
	ModeKnowledge Mode = "knowledge"
)

func (m Mode) Valid() bool {
	return m == ModeLearning || m == ModeKnowledge
}

// CategorySkip is the pseudo category posted by the staging form to drop a
// video without summarizing it. CategorySkipped is what gets recorded.
const (
	CategorySkip    = "skip"
	CategorySkipped = "skipped"
)

type Category struct {
	Key    string `json:"key" yaml:"key"`
	Name   string `json:"name" yaml:"name"`
	Mode   Mode   `json:"type" yaml:"type"`
	Folder string `json:"folder" yaml:"folder"`
	MOC    string `json:"moc" yaml:"moc"`
}

type Categories map[string]Category

func DefaultCategories() Categories {
	return Categories{
		"ai_technique_learning": {
			Key:    "ai_technique_learning",
			Name:   "🤖 IA Technique Learning",
			Mode:   ModeLearning,
			Folder: "IA Technique Learning",
			MOC:    "IA Technique MOC",
		},
		"ai_business_learning": {
			Key:    "ai_business_learning",
			Name:   "💼 IA Business Learning",
			Mode:   ModeLearning,
			Folder: "IA Business Learning",
			MOC:    "IA Business MOC",
		},
		"tech_general_learning": {
			Key:    "tech_general_learning",
			Name:   "💻 Tech General Learning",
			Mode:   ModeLearning,
			Folder: "Tech General Learning",
			MOC:    "Tech General MOC",
		},
		"culture_g_learning": {
			Key:    "culture_g_learning",
			Name:   "📚 Culture G Learning",
			Mode:   ModeLearning,
			Folder: "Culture G Learning",
			MOC:    "Culture G MOC",
		},
		"tech_general_knowledge": {
			Key:    "tech_general_knowledge",
			Name:   "🔧 Tech General Knowledge",
			Mode:   ModeKnowledge,
			Folder: "Tech General Knowledge",
			MOC:    "Tech General MOC",
		},
		"culture_g_knowledge": {
			Key:    "culture_g_knowledge",
			Name:   "🌍 Culture G Knowledge",
			Mode:   ModeKnowledge,
			Folder: "Culture G Knowledge",
			MOC:    "Culture G MOC",
		},
	}
}

// Lookup returns the category for key, or an error wrapping
// ErrInvalidCategory.
func (c Categories) Lookup(key string) (Category, error) {
	cat, ok := c[key]
	if !ok {
		return Category{}, fmt.Errorf("%w: %q", ErrInvalidCategory, key)
	}
	return cat, nil
}

// Sorted returns the categories ordered by key, for stable rendering.
func (c Categories) Sorted() []Category {
	cats := make([]Category, 0, len(c))
	for _, cat := range c {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Key < cats[j].Key })
	return cats
}

func (c Categories) Keys() []string {
	keys := make([]string, 0, len(c))
	for _, cat := range c.Sorted() {
		keys = append(keys, cat.Key)
	}
	return keys
}
