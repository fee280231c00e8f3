package note

import (
	"strings"
	"text/template"

	"github.com/ismaeljda/big-brain/model"
)

const noteTemplate = `# {{.Title}}

## Métadonnées
- **URL**: {{.URL}}
- **Type**: {{if .Learning}}Learning 🎓{{else}}Knowledge 📰{{end}}
- **Domaine**: [[{{.MOC}}]]
- **Chaîne**: {{.Channel}}
- **Date d'ajout**: {{.Date}}
{{- if .Learning}}
- **Dernière révision**: {{.Date}}
{{- end}}

---

## {{if .Learning}}Résumé Détaillé{{else}}Résumé{{end}}
{{.Summary}}
{{if .Learning -}}
{{if .Concepts}}
## Concepts Clés
{{range .Concepts}}- **{{.Name}}** - {{.Definition}}
{{end}}{{end -}}
{{if .Applications}}
## Applications Pratiques
{{.Applications}}
{{end -}}
{{else -}}
{{if .KeyPoints}}
## Points Clés
{{range .KeyPoints}}- {{.}}
{{end}}{{end -}}
{{if .KeyTakeaway}}
## À Retenir
{{.KeyTakeaway}}
{{end -}}
{{end}}
## Notes Connectées
<!-- Auto-générées -->

---
*Tags: {{join .Tags " "}}*`

var noteTmpl = template.Must(template.New("note").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(noteTemplate))

type noteView struct {
	Title    string
	URL      string
	MOC      string
	Channel  string
	Date     string
	Summary  string
	Learning bool

	Concepts     []model.Concept
	Applications string
	KeyPoints    []string
	KeyTakeaway  string

	Tags []string
}

func newNoteView(result model.ProcessingResult, cat model.Category) noteView {
	v := noteView{
		Title:    result.Title,
		URL:      result.URL,
		MOC:      cat.MOC,
		Channel:  result.Channel,
		Date:     result.ProcessedAt.Format("2006-01-02"),
		Summary:  result.Summary,
		Learning: result.Mode == model.ModeLearning,
		Tags:     tags(result),
	}
	if v.Channel == "" {
		v.Channel = "Unknown"
	}
	if v.Summary == "" {
		v.Summary = "Aucun résumé disponible"
	}
	if result.LearningNotes != nil {
		v.Concepts = result.Concepts
		v.Applications = result.Applications
	}
	if result.KnowledgeNotes != nil {
		v.KeyPoints = result.KeyPoints
		v.KeyTakeaway = result.KeyTakeaway
	}

	return v
}

func tags(result model.ProcessingResult) []string {
	mode := result.Mode
	if !mode.Valid() {
		mode = model.ModeKnowledge
	}
	out := []string{"#video", "#" + string(mode)}
	for _, raw := range append([]string{result.Category}, result.Keywords...) {
		if tag := NormalizeTag(raw); tag != "" {
			out = append(out, "#"+tag)
		}
	}

	return out
}
