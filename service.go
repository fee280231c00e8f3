package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ismaeljda/big-brain/auth"
	"github.com/ismaeljda/big-brain/config"
	"github.com/ismaeljda/big-brain/fetch"
	"github.com/ismaeljda/big-brain/handler"
	"github.com/ismaeljda/big-brain/metrics"
	"github.com/ismaeljda/big-brain/note"
	"github.com/ismaeljda/big-brain/process"
	"github.com/ismaeljda/big-brain/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/exp/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("unable to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	if missing := cfg.Validate(); len(missing) > 0 {
		logger.Warn("missing configuration, some features will fail", slog.String("keys", strings.Join(missing, ", ")))
	}

	metrics.MustRegister(prometheus.DefaultRegisterer)

	oauthConf := auth.NewConfig(cfg.Youtube.ClientID, cfg.Youtube.ClientSecret, cfg.Youtube.RedirectURI)
	creds := auth.NewStore(filepath.Join(cfg.DataDir, "oauth_token.json"), oauthConf, logger)
	flow := auth.NewFlow(oauthConf, filepath.Join(cfg.DataDir, "temp_flow_data.json"), creds, logger)

	yt := fetch.NewYoutube(creds, logger)

	generator, closeGenerator, err := newGenerator(ctx, cfg)
	if err != nil {
		logger.Error("unable to create text generator", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeGenerator()
	logger.Info("text generator ready", slog.String("provider", cfg.LLM.Provider), slog.String("model", cfg.LLM.Model))

	pipeline := process.NewPipeline(
		yt,
		process.NewSummarizer(generator, logger),
		note.NewVault(cfg.NotesDir(), cfg.Categories, logger),
		storage.NewStaging(filepath.Join(cfg.DataDir, "staging_videos.json"), logger),
		storage.NewProcessed(filepath.Join(cfg.DataDir, "processed_videos.json"), logger),
		cfg.Categories,
		cfg.Youtube.MaxResults,
		logger,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler.NewServer(pipeline, creds, flow, prometheus.DefaultGatherer, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.String("error", err.Error()))
			stop()
		}
	}()
	logger.Info("http server started", slog.Int("port", cfg.Port))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("service stopped")
}

func newGenerator(ctx context.Context, cfg *config.Config) (process.Generator, func(), error) {
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		return process.NewOpenAI(openai.NewClient(cfg.LLM.OpenAIAPIKey), cfg.LLM.Model), func() {}, nil
	case config.ProviderGemini:
		gemini, err := process.NewGemini(ctx, cfg.LLM.GeminiAPIKey, cfg.LLM.Model)
		if err != nil {
			return nil, nil, err
		}
		return gemini, func() { _ = gemini.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}

func logLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
