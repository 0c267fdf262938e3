package domain

import (
	"strings"

	"github.com/shouni/gemini-image-studio/pkg/imgutil"
)

// Vocabulary は部署キーとスタイルキーの存在確認を提供します。
type Vocabulary interface {
	HasDepartment(key string) bool
	HasStyle(key string) bool
}

// Validate は外部モデルを呼び出す前に生成要求を検証します。
func (r GenerationRequest) Validate(v Vocabulary) error {
	if strings.TrimSpace(r.Idea) == "" {
		return invalid("please enter a prompt")
	}
	if v != nil {
		if !v.HasDepartment(r.Department) {
			return invalid("unknown department %q", r.Department)
		}
		if !v.HasStyle(r.Style) {
			return invalid("unknown style %q", r.Style)
		}
	}
	if n := ResolveCount(r.Count); n < 1 || n > MaxImagesPerRequest {
		return invalid("number of images must be between 1 and %d, got %d", MaxImagesPerRequest, r.Count)
	}
	return nil
}

// Validate は編集要求を検証します。ベース画像は PNG としてデコードできる必要があります。
func (r EditRequest) Validate() error {
	if len(r.BaseImage) == 0 || strings.TrimSpace(r.Instruction) == "" {
		return invalid("please upload an image and enter instructions")
	}
	if !imgutil.IsPNG(r.BaseImage) {
		return invalid("base image is not a decodable PNG")
	}
	if n := ResolveCount(r.Variations); n < 1 || n > MaxImagesPerRequest {
		return invalid("number of variations must be between 1 and %d, got %d", MaxImagesPerRequest, r.Variations)
	}
	return nil
}
