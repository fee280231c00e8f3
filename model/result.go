package model

import "time"

type Concept struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
}

// LearningNotes is the body of a deep-dive result.
type LearningNotes struct {
	Concepts     []Concept `json:"concepts"`
	Applications string    `json:"applications"`
}

// KnowledgeNotes is the body of a quick-reference result.
type KnowledgeNotes struct {
	KeyPoints   []string `json:"key_points"`
	KeyTakeaway string   `json:"key_takeaway"`
}

// ProcessingResult is what the summarizer produces for one video. Exactly one
// of LearningNotes and KnowledgeNotes is set, matching Mode. Both are embedded
// so the stored JSON keeps a flat shape.
type ProcessingResult struct {
	VideoID     YoutubeVideoID `json:"video_id"`
	Title       string         `json:"title"`
	URL         string         `json:"url"`
	Channel     string         `json:"channel"`
	Category    string         `json:"category"`
	Mode        Mode           `json:"processing_type"`
	ProcessedAt time.Time      `json:"processed_at"`
	Summary     string         `json:"summary"`
	Keywords    []string       `json:"keywords"`

	*LearningNotes
	*KnowledgeNotes

	// Fallback is set when the AI call failed and the result is a placeholder.
	Fallback bool `json:"fallback,omitempty"`
	// MissingSections lists the expected response sections the AI left out.
	MissingSections []string `json:"missing_sections,omitempty"`
}

// ProcessedEntry records a video that left staging. Result is nil for
// skipped videos.
type ProcessedEntry struct {
	VideoID     YoutubeVideoID    `json:"video_id"`
	Category    string            `json:"category"`
	Result      *ProcessingResult `json:"result,omitempty"`
	ProcessedAt time.Time         `json:"processed_at"`
}
