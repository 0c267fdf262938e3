package generator

import (
	"fmt"
	"time"

	"github.com/shouni/gemini-image-studio/pkg/prompt"
	"github.com/shouni/gemini-image-studio/pkg/storage"
)

// Studio はテキスト洗練、画像生成、画像編集の 3 つのモデル呼び出しを束ねるサービスです。
// 状態を持たないため、複数のセッションから同時に利用できます。履歴は呼び出し側が渡します。
type Studio struct {
	text     ContentModel
	images   ImageModel
	store    storage.ArtifactStore
	composer PromptComposer
	models   Models
	now      func() time.Time
}

// Option は Studio の任意設定です。
type Option func(*Studio)

// WithComposer は既定のテンプレートカタログの代わりに使う PromptComposer を指定します。
func WithComposer(c PromptComposer) Option {
	return func(s *Studio) { s.composer = c }
}

// WithClock はファイル名のタイムスタンプに使う時計を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(s *Studio) { s.now = now }
}

// NewStudio は依存関係を注入して Studio を初期化します。
func NewStudio(text ContentModel, images ImageModel, store storage.ArtifactStore, models Models, opts ...Option) (*Studio, error) {
	if text == nil {
		return nil, fmt.Errorf("text model client is required")
	}
	if images == nil {
		return nil, fmt.Errorf("image model client is required")
	}
	if models.Text == "" || models.Image == "" || models.Edit == "" {
		return nil, fmt.Errorf("model names are required: %+v", models)
	}
	// store は nil を許容（保存なし動作）
	if store == nil {
		store = storage.NopStore{}
	}

	s := &Studio{
		text:     text,
		images:   images,
		store:    store,
		composer: prompt.Default(),
		models:   models,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.composer == nil {
		return nil, fmt.Errorf("composer is required")
	}
	return s, nil
}

var _ ImageStudio = (*Studio)(nil)
