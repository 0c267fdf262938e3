// Package web はブラウザ向けの生成・編集画面と画像配信を提供します。
package web

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/generator"
)

// Vocabulary は画面の選択肢に使う部署キーとスタイルキーです。*prompt.Catalog が満たします。
type Vocabulary interface {
	Departments() []string
	Styles() []string
}

// Options は画面の挙動に関する設定です。
type Options struct {
	MaxUploadBytes int64
	HistoryDisplay int
	DefaultCount   int
}

// Handler は画面と画像配信のハンドラーをまとめます。
type Handler struct {
	studio   generator.ImageStudio
	vocab    Vocabulary
	sessions *SessionRegistry
	opts     Options
}

// NewHandler は依存関係を注入して Handler を初期化します。
func NewHandler(studio generator.ImageStudio, vocab Vocabulary, sessions *SessionRegistry, opts Options) (*Handler, error) {
	if studio == nil {
		return nil, fmt.Errorf("studio is required")
	}
	if vocab == nil {
		return nil, fmt.Errorf("vocabulary is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session registry is required")
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 20 << 20
	}
	if opts.HistoryDisplay <= 0 {
		opts.HistoryDisplay = 10
	}
	if opts.DefaultCount < 1 || opts.DefaultCount > domain.MaxImagesPerRequest {
		opts.DefaultCount = 1
	}
	return &Handler{studio: studio, vocab: vocab, sessions: sessions, opts: opts}, nil
}

// Router はすべてのルートを登録した mux.Router を返します。
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(metricsMiddleware)

	r.HandleFunc("/", h.Index).Methods(http.MethodGet)
	r.HandleFunc("/generate", h.Generate).Methods(http.MethodPost)
	r.HandleFunc("/edit", h.Edit).Methods(http.MethodPost)
	r.HandleFunc("/generated/{id}/select", h.SelectForEdit).Methods(http.MethodPost)
	r.HandleFunc("/history/clear", h.ClearHistory).Methods(http.MethodPost)

	img := r.PathPrefix("/images").Subrouter()
	img.HandleFunc("/generated/{id}", h.GeneratedImage).Methods(http.MethodGet)
	img.HandleFunc("/edited/{id}", h.EditedImage).Methods(http.MethodGet)
	img.HandleFunc("/original/{id}", h.OriginalImage).Methods(http.MethodGet)
	img.HandleFunc("/base", h.BaseImage).Methods(http.MethodGet)

	r.HandleFunc("/healthz", h.Healthz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

// Healthz は生存確認に応答します。
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
