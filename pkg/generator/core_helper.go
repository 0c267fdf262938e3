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
	"github.com/shouni/gemini-image-studio/pkg/prompt"
	"github.com/shouni/gemini-image-studio/pkg/storage"
	"google.golang.org/genai"
)

// Edit はベース画像に編集指示を適用します。バリエーションの数だけ順番にモデルを呼び出します。
// 呼び出しが 1 回でも失敗した場合は何も保存せずにエラーを返します。
// 画像を返さなかったバリエーションは飛ばし、すべてが空だった場合はモデルのテキストを持つ *domain.NoImageError を返します。
func (s *Studio) Edit(ctx context.Context, req domain.EditRequest, hist Recorder[domain.EditedImage]) (*EditResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	variations := domain.ResolveCount(req.Variations)
	contents := buildEditContents(req)
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityText), string(genai.ModalityImage)},
	}

	slog.InfoContext(ctx, "画像編集リクエスト", "model", s.models.Edit, "base", req.BaseName, "variations", variations)

	var outputs []extract.ImageResult
	var modelTexts []string
	for v := 0; v < variations; v++ {
		start := time.Now()
		resp, err := s.text.GenerateContent(ctx, s.models.Edit, contents, config)
		observeModelCall(opEdit, s.models.Edit, start, err)
		if err != nil {
			return nil, fmt.Errorf("画像編集に失敗しました: %w", err)
		}

		img := extract.ExtractEditedImage(resp)
		metrics.ExtractionTotal.WithLabelValues(opEdit, img.Shape.String()).Inc()
		if !img.Found() {
			text := modelText(resp)
			slog.WarnContext(ctx, "編集モデルが画像の代わりにテキストを返しました", "variation", v, "text", text)
			if text != "" {
				modelTexts = append(modelTexts, text)
			}
			continue
		}
		outputs = append(outputs, img)
	}

	if len(outputs) == 0 {
		return nil, &domain.NoImageError{ModelText: strings.Join(modelTexts, "\n\n")}
	}

	result := &EditResult{ModelText: modelTexts}
	for i, out := range outputs {
		data, mimeType := asPNG(ctx, out.Data, out.MIMEType)
		createdAt := s.now()
		key := storage.EditedKey(createdAt, i)
		result.Images = append(result.Images, domain.EditedImage{
			ID:          uuid.New(),
			Original:    req.BaseImage,
			Edited:      data,
			MIMEType:    mimeType,
			Instruction: req.Instruction,
			FileName:    path.Base(key),
			CreatedAt:   createdAt,
			Location:    s.persist(ctx, key, data, mimeType),
		})
	}

	metrics.ImagesProducedTotal.WithLabelValues(opEdit).Add(float64(len(result.Images)))
	if hist != nil {
		hist.Append(result.Images...)
	}
	return result, nil
}

// buildEditContents は [編集指示テキスト, インライン PNG] の順で 1 つのユーザーターンを作ります。
func buildEditContents(req domain.EditRequest) []*genai.Content {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt.EditInstruction(req.Instruction)),
		genai.NewPartFromBytes(req.BaseImage, domain.DefaultImageMIMEType),
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

// modelText は画像が無かった応答のテキスト部分を返します。文字列化はしません。
func modelText(resp *genai.GenerateContentResponse) string {
	res := extract.ExtractText(resp)
	if res.Degraded() {
		return ""
	}
	return strings.TrimSpace(res.Text)
}
