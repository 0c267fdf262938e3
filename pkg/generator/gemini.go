package generator

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/extract"
	"github.com/shouni/gemini-image-studio/pkg/metrics"
	"github.com/shouni/gemini-image-studio/pkg/storage"
	"google.golang.org/genai"
)

// Refine はアイデアを部署テンプレートとスタイルで展開し、テキストモデルで画像用プロンプトに洗練します。
// 応答から本来の回答を見つけられなかった場合も、応答全体の文字列化をプロンプトとして返し、その段階を Tier で知らせます。
func (s *Studio) Refine(ctx context.Context, req domain.GenerationRequest) (string, extract.Tier, error) {
	if err := req.Validate(s.composer); err != nil {
		return "", 0, err
	}
	return s.refine(ctx, req)
}

func (s *Studio) refine(ctx context.Context, req domain.GenerationRequest) (string, extract.Tier, error) {
	composed := s.composer.Compose(req.Department, req.Idea, req.Style)

	start := time.Now()
	resp, err := s.text.GenerateContent(ctx, s.models.Text, genai.Text(composed), nil)
	observeModelCall(opRefine, s.models.Text, start, err)
	if err != nil {
		return "", 0, fmt.Errorf("プロンプトの洗練に失敗しました: %w", err)
	}

	res := extract.ExtractText(resp)
	metrics.ExtractionTotal.WithLabelValues(opRefine, res.Tier.String()).Inc()
	if res.Tier != extract.TierDirectText {
		slog.WarnContext(ctx, "洗練モデルの応答から直接テキストを取得できませんでした",
			"tier", res.Tier.String(), "model", s.models.Text)
	}

	refined := strings.TrimSpace(res.Text)
	if refined == "" {
		return "", res.Tier, domain.ErrEmptyPrompt
	}
	return refined, res.Tier, nil
}

// Generate はプロンプトを洗練して画像生成モデルに渡し、得られた画像を保存して履歴に追記します。
// 画像を取り出せなかった枠は飛ばし、すべての枠が空だった場合のみ ErrNoImageFound を返します。
func (s *Studio) Generate(ctx context.Context, req domain.GenerationRequest, hist Recorder[domain.GeneratedImage]) (*GenerationResult, error) {
	if err := req.Validate(s.composer); err != nil {
		return nil, err
	}

	refined, tier, err := s.refine(ctx, req)
	if err != nil {
		return nil, err
	}

	count := domain.ResolveCount(req.Count)
	slog.InfoContext(ctx, "画像生成リクエスト",
		"model", s.models.Image, "department", req.Department, "style", req.Style, "count", count)

	start := time.Now()
	resp, err := s.images.GenerateImages(ctx, s.models.Image, refined, &genai.GenerateImagesConfig{
		NumberOfImages: int32(count),
	})
	observeModelCall(opGenerate, s.models.Image, start, err)
	if err != nil {
		return nil, fmt.Errorf("画像生成に失敗しました: %w", err)
	}

	var items []*genai.GeneratedImage
	if resp != nil {
		items = resp.GeneratedImages
	}

	result := &GenerationResult{RefinedPrompt: refined, Tier: tier}
	for i := 0; i < count; i++ {
		var item *genai.GeneratedImage
		if i < len(items) {
			item = items[i]
		}

		img := extract.ExtractImageBytes(item)
		metrics.ExtractionTotal.WithLabelValues(opGenerate, img.Shape.String()).Inc()
		if !img.Found() {
			reason := filteredReason(item)
			slog.WarnContext(ctx, "生成結果から画像を取得できなかったため枠を飛ばします", "index", i, "reason", reason)
			result.Skipped = append(result.Skipped, SkippedSlot{Index: i, Reason: reason})
			continue
		}

		data, mimeType := asPNG(ctx, img.Data, img.MIMEType)
		createdAt := s.now()
		key := storage.GeneratedKey(req.Department, req.Style, createdAt, i)
		result.Images = append(result.Images, domain.GeneratedImage{
			ID:           uuid.New(),
			Data:         data,
			MIMEType:     mimeType,
			SourcePrompt: refined,
			FileName:     path.Base(key),
			Department:   req.Department,
			Style:        req.Style,
			CreatedAt:    createdAt,
			Location:     s.persist(ctx, key, data, mimeType),
		})
	}

	if len(result.Images) == 0 {
		return nil, fmt.Errorf("%d 枠すべてが空でした: %w", count, domain.ErrNoImageFound)
	}

	metrics.ImagesProducedTotal.WithLabelValues(opGenerate).Add(float64(len(result.Images)))
	if hist != nil {
		hist.Append(result.Images...)
	}
	return result, nil
}
