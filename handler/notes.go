package handler

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/ismaeljda/big-brain/model"
	"github.com/ismaeljda/big-brain/process"
	"golang.org/x/exp/slog"
)

func (s *Server) Export(w http.ResponseWriter, r *http.Request) {
	id := model.YoutubeVideoID(chi.URLParam(r, "videoID"))

	exp, err := s.pipeline.Export(id)
	switch {
	case errors.Is(err, process.ErrNotProcessed):
		Error(w, http.StatusNotFound, "video not processed", err, id)
		return
	case err != nil:
		s.returnErr(w, http.StatusInternalServerError, "could not export note", err, id)
		return
	}

	Message(w, http.StatusOK, "", map[string]any{
		"content":  exp.Content,
		"filename": exp.Filename,
		"category": exp.Category,
	})
}

func (s *Server) Preview(w http.ResponseWriter, r *http.Request) {
	id := model.YoutubeVideoID(chi.URLParam(r, "videoID"))

	exp, err := s.pipeline.Export(id)
	switch {
	case errors.Is(err, process.ErrNotProcessed):
		s.message(w, http.StatusNotFound, "Note introuvable", err.Error())
		return
	case err != nil:
		s.logger.Error("could not render preview", slog.String("error", err.Error()))
		s.message(w, http.StatusInternalServerError, "Erreur", err.Error())
		return
	}

	s.render(w, http.StatusOK, "preview.html", struct {
		Title    string
		VideoID  model.YoutubeVideoID
		Filename string
		Category string
		Body     template.HTML
	}{
		Title:    exp.Filename,
		VideoID:  id,
		Filename: exp.Filename,
		Category: exp.Category,
		Body:     markdownToHTML(exp.Content),
	})
}

// markdownToHTML renders a note. Raw HTML in the note is escaped.
func markdownToHTML(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank | mdhtml.SkipHTML,
	})

	return template.HTML(markdown.ToHTML([]byte(md), p, renderer))
}

func (s *Server) RegenerateNotes(w http.ResponseWriter, r *http.Request) {
	count, err := s.pipeline.RegenerateNotes()
	if err != nil && count == 0 {
		s.returnErr(w, http.StatusInternalServerError, "could not regenerate notes", err)
		return
	}

	fields := map[string]any{"generated_count": count}
	if err != nil {
		fields["errors"] = err.Error()
	}
	Message(w, http.StatusOK, "notes regenerated", fields)
}
