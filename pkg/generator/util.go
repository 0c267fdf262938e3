package generator

import (
	"context"
	"log/slog"
	"time"

	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/imgutil"
	"github.com/shouni/gemini-image-studio/pkg/metrics"
	"google.golang.org/genai"
)

// persist はアーティファクトを保存し、保存先を返します。
// 保存に失敗しても画像はセッションに残すため、警告を記録して空文字を返します。
func (s *Studio) persist(ctx context.Context, key string, data []byte, mimeType string) string {
	loc, err := s.store.Save(ctx, key, data, mimeType)
	if err != nil {
		slog.WarnContext(ctx, "アーティファクトの保存に失敗しました", "key", key, "error", err)
		return ""
	}
	return loc
}

func observeModelCall(operation, model string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.ModelCallTotal.WithLabelValues(operation, model, status).Inc()
	metrics.ModelCallDuration.WithLabelValues(operation, model).Observe(time.Since(start).Seconds())
}

// filteredReason は安全フィルターで除外された枠の理由を返します。
func filteredReason(item *genai.GeneratedImage) string {
	if item == nil {
		return "missing from response"
	}
	return item.RAIFilteredReason
}

// asPNG はモデルが PNG 以外で返した画像を PNG に変換します。
// 変換できない場合は元のバイトとモデルが示した MIME タイプをそのまま返します。
func asPNG(ctx context.Context, data []byte, mimeType string) ([]byte, string) {
	if imgutil.IsPNG(data) {
		return data, domain.DefaultImageMIMEType
	}
	converted, err := imgutil.NormalizeToPNG(data)
	if err != nil {
		slog.WarnContext(ctx, "画像を PNG に変換できなかったため元の形式で扱います", "mime_type", mimeType, "error", err)
		return data, mimeOrDefault(mimeType)
	}
	return converted, domain.DefaultImageMIMEType
}

func mimeOrDefault(mimeType string) string {
	if mimeType == "" {
		return domain.DefaultImageMIMEType
	}
	return mimeType
}
