package process

import (
	"errors"
	"strings"

	"github.com/ismaeljda/big-brain/model"
)

const maxKeywords = 7

// Section keys, as headings appear after stripping '#' and lowercasing.
const (
	sectionDetailedSummary = "résumé détaillé"
	sectionConcepts        = "concepts clés"
	sectionApplications    = "applications pratiques"
	sectionSummary         = "résumé"
	sectionKeyPoints       = "points clés"
	sectionTakeaway        = "à retenir"
	sectionKeywords        = "mots-clés"
)

var expectedSections = map[model.Mode][]string{
	model.ModeLearning:  {sectionDetailedSummary, sectionConcepts, sectionApplications, sectionKeywords},
	model.ModeKnowledge: {sectionSummary, sectionKeyPoints, sectionTakeaway, sectionKeywords},
}

var ErrUnparseable = errors.New("response contains no sections")

// parseSections splits text at lines starting with "##". Non-empty lines
// below a heading are joined with newlines. Text before the first heading is
// dropped.
func parseSections(text string) map[string]string {
	sections := make(map[string]string)
	current := ""
	inSection := false
	var content []string

	flush := func() {
		if inSection {
			sections[current] = strings.TrimSpace(strings.Join(content, "\n"))
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "##"):
			flush()
			current = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(line, "#", "")))
			inSection = true
			content = content[:0]
		case line != "":
			content = append(content, line)
		}
	}
	flush()

	return sections
}

// parseResponse fills the mode specific fields of a result from the model's
// answer. Absent sections leave fields empty and are listed in
// MissingSections.
func parseResponse(text string, mode model.Mode) (model.ProcessingResult, error) {
	sections := parseSections(text)
	if len(sections) == 0 {
		return model.ProcessingResult{}, ErrUnparseable
	}

	var res model.ProcessingResult
	switch mode {
	case model.ModeLearning:
		res.Summary = sections[sectionDetailedSummary]
		res.LearningNotes = &model.LearningNotes{
			Concepts:     parseConcepts(sections[sectionConcepts]),
			Applications: sections[sectionApplications],
		}
	default:
		res.Summary = sections[sectionSummary]
		res.KnowledgeNotes = &model.KnowledgeNotes{
			KeyPoints:   parseBulletPoints(sections[sectionKeyPoints]),
			KeyTakeaway: sections[sectionTakeaway],
		}
	}
	res.Keywords = parseKeywords(sections[sectionKeywords])

	for _, key := range expectedSections[mode] {
		if sections[key] == "" {
			res.MissingSections = append(res.MissingSections, key)
		}
	}

	return res, nil
}

// parseConcepts reads "- **Name**: definition" lines.
func parseConcepts(text string) []model.Concept {
	concepts := []model.Concept{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "- **") && !strings.HasPrefix(line, "**") {
			continue
		}
		name, definition, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		name = strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(name, "- "), "**", ""))
		definition = strings.TrimSpace(strings.TrimLeft(definition, "* "))
		if name == "" {
			continue
		}
		concepts = append(concepts, model.Concept{Name: name, Definition: definition})
	}

	return concepts
}

func parseBulletPoints(text string) []string {
	points := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if point, ok := strings.CutPrefix(line, "- "); ok {
			if point = strings.TrimSpace(point); point != "" {
				points = append(points, point)
			}
		}
	}

	return points
}

// parseKeywords splits a comma or line separated list, dropping brackets and
// bullet markers. At most maxKeywords are kept.
func parseKeywords(text string) []string {
	text = strings.NewReplacer("[", "", "]", "", "\n", ",").Replace(text)

	keywords := []string{}
	for _, kw := range strings.Split(text, ",") {
		kw = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(kw), "-*•"))
		if kw == "" {
			continue
		}
		keywords = append(keywords, kw)
		if len(keywords) == maxKeywords {
			break
		}
	}

	return keywords
}
