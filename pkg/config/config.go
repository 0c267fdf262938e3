// Package config は環境変数からアプリケーション設定を読み込みます。
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/shouni/gemini-image-studio/pkg/domain"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"
	StorageNone  = "none"
)

type Config struct {
	// Gemini API / Vertex AI
	APIKey      string `env:"GEMINI_API_KEY"`
	UseVertexAI bool   `env:"GOOGLE_GENAI_USE_VERTEXAI" envDefault:"false"`
	Project     string `env:"GOOGLE_CLOUD_PROJECT"`
	Location    string `env:"GOOGLE_CLOUD_LOCATION" envDefault:"us-central1"`

	// Models
	TextModel  string `env:"STUDIO_TEXT_MODEL" envDefault:"gemini-2.0-flash"`
	ImageModel string `env:"STUDIO_IMAGE_MODEL" envDefault:"imagen-4.0-generate-001"`
	EditModel  string `env:"STUDIO_EDIT_MODEL" envDefault:"gemini-2.5-flash-image"`

	// Server
	HTTPAddr       string `env:"STUDIO_HTTP_ADDR" envDefault:":8080"`
	MaxUploadBytes int64  `env:"STUDIO_MAX_UPLOAD_BYTES" envDefault:"20971520"`
	HistoryDisplay int    `env:"STUDIO_HISTORY_DISPLAY" envDefault:"10"`
	DefaultCount   int    `env:"STUDIO_DEFAULT_IMAGE_COUNT" envDefault:"1"`

	// Logging
	LogLevel  string `env:"STUDIO_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"STUDIO_LOG_FORMAT" envDefault:"text"`

	// Artifacts
	Storage     string `env:"STUDIO_STORAGE" envDefault:"local"`
	OutputDir   string `env:"STUDIO_OUTPUT_DIR" envDefault:"outputs"`
	S3Endpoint  string `env:"STUDIO_S3_ENDPOINT"`
	S3Region    string `env:"STUDIO_S3_REGION" envDefault:"us-east-1"`
	S3Bucket    string `env:"STUDIO_S3_BUCKET"`
	S3AccessKey string `env:"STUDIO_S3_ACCESS_KEY"`
	S3SecretKey string `env:"STUDIO_S3_SECRET_KEY"`
	S3Prefix    string `env:"STUDIO_S3_PREFIX"`
}

// Load はプロセスの環境変数から設定を読み込み、検証します。
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFrom は与えられた環境変数のマップから設定を読み込みます。
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は認証情報の組み合わせと値の範囲を検証します。
func (c *Config) Validate() error {
	var errs []error

	if c.UseVertexAI {
		if c.Project == "" {
			errs = append(errs, errors.New("GOOGLE_CLOUD_PROJECT is required when GOOGLE_GENAI_USE_VERTEXAI is true"))
		}
	} else if c.APIKey == "" {
		errs = append(errs, errors.New("GEMINI_API_KEY is required unless GOOGLE_GENAI_USE_VERTEXAI is true"))
	}

	switch c.Storage {
	case StorageLocal:
		if c.OutputDir == "" {
			errs = append(errs, errors.New("STUDIO_OUTPUT_DIR is required for local storage"))
		}
	case StorageS3:
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("STUDIO_S3_BUCKET is required for s3 storage"))
		}
	case StorageNone:
	default:
		errs = append(errs, fmt.Errorf("unknown STUDIO_STORAGE %q (want local, s3 or none)", c.Storage))
	}

	if c.DefaultCount < 1 || c.DefaultCount > domain.MaxImagesPerRequest {
		errs = append(errs, fmt.Errorf("STUDIO_DEFAULT_IMAGE_COUNT must be between 1 and %d", domain.MaxImagesPerRequest))
	}
	if c.HistoryDisplay < 1 {
		errs = append(errs, errors.New("STUDIO_HISTORY_DISPLAY must be positive"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("STUDIO_MAX_UPLOAD_BYTES must be positive"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if f := strings.ToLower(c.LogFormat); f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("unknown STUDIO_LOG_FORMAT %q (want text or json)", c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// SlogLevel は LogLevel を slog.Level に変換します。
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown STUDIO_LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
