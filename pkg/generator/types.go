package generator

import (
	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/extract"
)

const (
	opRefine   = "refine"
	opGenerate = "generate"
	opEdit     = "edit"
)

// Models は用途ごとのモデル名です。
type Models struct {
	Text  string
	Image string
	Edit  string
}

// SkippedSlot は画像を取り出せなかった生成枠です。
type SkippedSlot struct {
	Index  int
	Reason string // 安全フィルターの理由など。不明な場合は空
}

// GenerationResult は 1 回の生成操作の結果です。
type GenerationResult struct {
	RefinedPrompt string
	Tier          extract.Tier
	Images        []domain.GeneratedImage
	Skipped       []SkippedSlot
}

// EditResult は 1 回の編集操作の結果です。
type EditResult struct {
	Images []domain.EditedImage
	// ModelText は画像を返さなかったバリエーションでモデルが返したテキストです。
	ModelText []string
}
