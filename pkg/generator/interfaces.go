package generator

import (
	"context"

	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/extract"
	"google.golang.org/genai"
)

// ContentModel はテキスト洗練と画像編集に使うモデル呼び出しです。*genai.Models が満たします。
type ContentModel interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ImageModel は text-to-image 生成に使うモデル呼び出しです。*genai.Models が満たします。
type ImageModel interface {
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// PromptComposer は部署テンプレートとスタイルからプロンプトを組み立てます。
type PromptComposer interface {
	domain.Vocabulary
	Compose(department, idea, style string) string
}

// Recorder は結果を履歴に追記します。*history.Store が満たします。
type Recorder[T any] interface {
	Append(items ...T)
}

// ImageStudio は Web 層が利用する統合窓口です。
type ImageStudio interface {
	// Refine はアイデアを部署テンプレートで展開し、テキストモデルで画像用プロンプトに洗練します。
	Refine(ctx context.Context, req domain.GenerationRequest) (string, extract.Tier, error)
	// Generate は洗練したプロンプトで画像を生成し、保存して履歴に追記します。
	Generate(ctx context.Context, req domain.GenerationRequest, hist Recorder[domain.GeneratedImage]) (*GenerationResult, error)
	// Edit はベース画像に自然言語の編集指示を適用し、保存して履歴に追記します。
	Edit(ctx context.Context, req domain.EditRequest, hist Recorder[domain.EditedImage]) (*EditResult, error)
}
