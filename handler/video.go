package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ismaeljda/big-brain/auth"
	"github.com/ismaeljda/big-brain/model"
	"github.com/ismaeljda/big-brain/process"
	"golang.org/x/exp/slog"
)

func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "home.html", struct {
		Authenticated bool
		Stats         process.Stats
	}{
		Authenticated: s.creds.IsAuthenticated(r.Context()),
		Stats:         s.pipeline.Stats(),
	})
}

func (s *Server) Sync(w http.ResponseWriter, r *http.Request) {
	if !s.creds.IsAuthenticated(r.Context()) {
		http.Redirect(w, r, "/auth/youtube", http.StatusFound)
		return
	}

	fresh, err := s.pipeline.Sync(r.Context())
	switch {
	case errors.Is(err, auth.ErrAuth):
		http.Redirect(w, r, "/auth/youtube", http.StatusFound)
		return
	case err != nil:
		s.returnErr(w, http.StatusInternalServerError, "sync failed", err)
		return
	}

	if len(fresh) == 0 {
		s.message(w, http.StatusOK, "📭 Aucune nouvelle vidéo", "Toutes vos vidéos likées ont déjà été traitées.")
		return
	}
	http.Redirect(w, r, "/staging", http.StatusFound)
}

func (s *Server) SyncAPI(w http.ResponseWriter, r *http.Request) {
	if !s.creds.IsAuthenticated(r.Context()) {
		Error(w, http.StatusUnauthorized, "authentication required", auth.ErrAuth)
		return
	}

	fresh, err := s.pipeline.Sync(r.Context())
	switch {
	case errors.Is(err, auth.ErrAuth):
		Error(w, http.StatusUnauthorized, "authentication required", err)
		return
	case err != nil:
		s.returnErr(w, http.StatusInternalServerError, "sync failed", err)
		return
	}

	Message(w, http.StatusOK, "", map[string]any{
		"new_videos_count": len(fresh),
		"videos":           fresh,
	})
}

func (s *Server) StagingPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "staging.html", struct {
		Authenticated bool
		Stats         process.Stats
		Videos        []model.LikedVideo
		Categories    []model.Category
	}{
		Authenticated: s.creds.IsAuthenticated(r.Context()),
		Stats:         s.pipeline.Stats(),
		Videos:        s.pipeline.Staged(),
		Categories:    s.pipeline.Categories().Sorted(),
	})
}

func (s *Server) StagingAPI(w http.ResponseWriter, r *http.Request) {
	videos := s.pipeline.Staged()
	Message(w, http.StatusOK, "", map[string]any{
		"videos":     videos,
		"categories": s.pipeline.Categories(),
		"count":      len(videos),
	})
}

type processRequest struct {
	VideoID  model.YoutubeVideoID `json:"video_id"`
	Category string               `json:"category"`
}

func (s *Server) ProcessVideo(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.VideoID == "" || req.Category == "" {
		Error(w, http.StatusBadRequest, "video_id and category are required", nil)
		return
	}

	out, err := s.pipeline.Process(r.Context(), req.VideoID, req.Category)
	switch {
	case errors.Is(err, model.ErrInvalidCategory):
		Error(w, http.StatusBadRequest, "invalid category", err, req.Category)
		return
	case errors.Is(err, process.ErrNotStaged):
		Error(w, http.StatusNotFound, "video not found in staging", err, req.VideoID)
		return
	case err != nil:
		s.returnErr(w, http.StatusInternalServerError, "processing failed", err, req.VideoID)
		return
	}

	if out.Result == nil {
		Message(w, http.StatusOK, "video skipped", map[string]any{"category": out.Category})
		return
	}
	Message(w, http.StatusOK, "video processed", map[string]any{
		"result":             out.Result,
		"obsidian_note_path": out.NotePath,
		"category":           out.Category,
		"unliked":            out.Unliked,
	})
}

func (s *Server) ClearStaging(w http.ResponseWriter, r *http.Request) {
	if err := s.pipeline.ClearStaging(); err != nil {
		s.returnErr(w, http.StatusInternalServerError, "could not clear staging", err)
		return
	}

	Message(w, http.StatusOK, "staging cleared", nil)
}

func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	stats := s.pipeline.Stats()
	fields := map[string]any{
		"processed_videos":   stats.ProcessedVideos,
		"staging_videos":     stats.StagingVideos,
		"categories":         stats.Categories,
		"category_breakdown": stats.CategoryBreakdown,
		"authenticated":      s.creds.IsAuthenticated(r.Context()),
	}

	notes, err := s.pipeline.NoteStats()
	if err != nil {
		s.logger.Warn("note stats unavailable", slog.String("error", err.Error()))
	} else {
		fields["notes"] = notes
	}

	Message(w, http.StatusOK, "", fields)
}
