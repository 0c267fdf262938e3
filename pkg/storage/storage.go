// Package storage は生成・編集した画像をアーティファクトとして永続化します。
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	GeneratedDir = "generated"
	EditedDir    = "edited"

	// timestampLayout は YYYYMMDD_HHMMSS 形式です。
	timestampLayout = "20060102_150405"
)

// ArtifactStore は画像バイトをキーで保存し、保存先を返します。
type ArtifactStore interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// GeneratedKey は生成画像の保存キーを返します。
// 例: generated/marketing_watercolor_20250101_093000_0.png
func GeneratedKey(department, style string, at time.Time, index int) string {
	return fmt.Sprintf("%s/%s_%s_%s_%d.png",
		GeneratedDir, strings.ToLower(department), strings.ToLower(style), at.Format(timestampLayout), index)
}

// EditedKey は編集画像の保存キーを返します。
// 例: edited/edited_20250101_093000_0.png
func EditedKey(at time.Time, index int) string {
	return fmt.Sprintf("%s/edited_%s_%d.png", EditedDir, at.Format(timestampLayout), index)
}

// NopStore は何も保存しません。保存先は常に空文字です。
type NopStore struct{}

func (NopStore) Save(context.Context, string, []byte, string) (string, error) {
	return "", nil
}
