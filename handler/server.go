package handler

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ismaeljda/big-brain/auth"
	"github.com/ismaeljda/big-brain/model"
	"github.com/ismaeljda/big-brain/note"
	"github.com/ismaeljda/big-brain/process"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type Pipeline interface {
	Categories() model.Categories
	Sync(ctx context.Context) ([]model.LikedVideo, error)
	Staged() []model.LikedVideo
	Process(ctx context.Context, id model.YoutubeVideoID, category string) (process.Outcome, error)
	ClearStaging() error
	Stats() process.Stats
	NoteStats() (note.Stats, error)
	Export(id model.YoutubeVideoID) (process.Export, error)
	RegenerateNotes() (int, error)
}

type Authenticator interface {
	IsAuthenticated(ctx context.Context) bool
}

type AuthFlow interface {
	BuildAuthorizationURL() (string, error)
	CompleteAuthorization(ctx context.Context, state, code string) (auth.Credentials, error)
}

type Server struct {
	router   chi.Router
	pipeline Pipeline
	creds    Authenticator
	flow     AuthFlow
	logger   *slog.Logger
}

func NewServer(pipeline Pipeline, creds Authenticator, flow AuthFlow, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	s := &Server{
		pipeline: pipeline,
		creds:    creds,
		flow:     flow,
		logger:   logger.With(slog.String("component", "http")),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", s.Home)
	r.Get("/auth/youtube", s.Authorize)
	r.Get("/oauth/callback", s.Callback)

	r.Get("/sync", s.Sync)
	r.Get("/staging", s.StagingPage)
	r.Post("/process-video", s.ProcessVideo)
	r.Post("/clear-staging", s.ClearStaging)
	r.Get("/stats", s.Stats)

	r.Route("/api", func(r chi.Router) {
		r.Get("/staging", s.StagingAPI)
		r.Post("/sync", s.SyncAPI)
	})

	r.Get("/export/{videoID}", s.Export)
	r.Get("/notes/{videoID}/preview", s.Preview)
	r.Post("/regenerate-notes", s.RegenerateNotes)

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("failed to render page", slog.String("page", name), slog.String("error", err.Error()))
	}
}

func (s *Server) message(w http.ResponseWriter, status int, title, text string) {
	s.render(w, status, "message.html", struct{ Title, Text string }{title, text})
}

func (s *Server) returnErr(w http.ResponseWriter, status int, message string, err error, details ...any) {
	s.logger.Error(message, slog.String("error", err.Error()))
	Error(w, status, message, err, details...)
}
