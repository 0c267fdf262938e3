package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shouni/gemini-image-studio/pkg/config"
	"github.com/shouni/gemini-image-studio/pkg/generator"
	"github.com/shouni/gemini-image-studio/pkg/prompt"
	"github.com/shouni/gemini-image-studio/pkg/storage"
	"github.com/shouni/gemini-image-studio/pkg/web"
	"google.golang.org/genai"
)

func main() {
	if err := run(); err != nil {
		slog.Error("起動に失敗しました", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(cfg))
	slog.Info("Starting image studio", "text_model", cfg.TextModel, "image_model", cfg.ImageModel, "edit_model", cfg.EditModel)

	ctx := context.Background()

	client, err := newGenAIClient(ctx, cfg)
	if err != nil {
		return err
	}

	store, err := newArtifactStore(ctx, cfg)
	if err != nil {
		return err
	}

	studio, err := generator.NewStudio(client.Models, client.Models, store, generator.Models{
		Text:  cfg.TextModel,
		Image: cfg.ImageModel,
		Edit:  cfg.EditModel,
	})
	if err != nil {
		return err
	}

	h, err := web.NewHandler(studio, prompt.Default(), web.NewSessionRegistry(web.DefaultSessionTTL, false), web.Options{
		MaxUploadBytes: cfg.MaxUploadBytes,
		HistoryDisplay: cfg.HistoryDisplay,
		DefaultCount:   cfg.DefaultCount,
	})
	if err != nil {
		return err
	}

	// 生成と編集はモデルの応答を同期で待つため、書き込みのタイムアウトを長めに取ります。
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      5 * time.Minute,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}

	slog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	slog.Info("Image studio exited")
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	level, _ := cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func newGenAIClient(ctx context.Context, cfg *config.Config) (*genai.Client, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.UseVertexAI {
		cc = &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  cfg.Project,
			Location: cfg.Location,
		}
	}
	return genai.NewClient(ctx, cc)
}

func newArtifactStore(ctx context.Context, cfg *config.Config) (storage.ArtifactStore, error) {
	switch cfg.Storage {
	case config.StorageS3:
		return storage.NewS3Store(ctx, storage.S3Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Prefix:    cfg.S3Prefix,
		})
	case config.StorageNone:
		return storage.NopStore{}, nil
	default:
		return storage.NewLocalStore(cfg.OutputDir)
	}
}
