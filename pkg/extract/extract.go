// Package extract は形の安定しないモデル応答からテキストや画像バイトを取り出します。
// どの関数もエラーや panic を返さず、どの段階で見つかったかを結果に含めます。
package extract

import (
	"fmt"

	"google.golang.org/genai"
)

// ExtractText は洗練モデルの応答からテキストを取り出します。
//  1. 応答が直接持つテキストが空でなければそれを返す
//  2. 最初の candidate の content の最初の part のテキスト
//  3. 応答全体の文字列化（診断用の品質）
func ExtractText(resp any) TextResult {
	n := Normalize(resp)
	if n.Text != "" {
		return TextResult{Text: n.Text, Tier: TierDirectText}
	}
	if text := firstCandidatePartText(n.Candidates); text != "" {
		return TextResult{Text: text, Tier: TierCandidatePart}
	}
	return TextResult{Text: fmt.Sprintf("%+v", resp), Tier: TierStringified}
}

func firstCandidatePartText(candidates []*genai.Candidate) string {
	if len(candidates) == 0 {
		return ""
	}
	c := candidates[0]
	if c == nil || c.Content == nil || len(c.Content.Parts) == 0 || c.Content.Parts[0] == nil {
		return ""
	}
	return c.Content.Parts[0].Text
}

// ImageBytesCarrier は画像バイトを直接公開する生成結果です。
type ImageBytesCarrier interface {
	ImageBytes() []byte
}

// NestedImageCarrier は画像バイトを持つ値を入れ子で公開する生成結果です。
type NestedImageCarrier interface {
	NestedImage() any
}

// ExtractImageBytes は画像生成結果の 1 要素から画像バイトを取り出します。
//  1. 要素そのものがバイト列ならそのまま返す
//  2. 要素が画像バイトを持っていれば返す
//  3. 要素が入れ子の画像を持っていれば、その画像に 2 を適用する
//
// 見つからない場合は ShapeNone を返します。呼び出し側はその枠を飛ばして残りを処理します。
func ExtractImageBytes(item any) ImageResult {
	switch v := item.(type) {
	case []byte:
		if len(v) > 0 {
			return ImageResult{Data: v, Shape: ShapeDirectBytes}
		}
	case *genai.GeneratedImage:
		if v != nil {
			if res, ok := probeImageBytes(v.Image); ok {
				res.Shape = ShapeNestedImage
				return res
			}
		}
	case genai.GeneratedImage:
		if res, ok := probeImageBytes(v.Image); ok {
			res.Shape = ShapeNestedImage
			return res
		}
	default:
		if res, ok := probeImageBytes(item); ok {
			return res
		}
		if c, ok := item.(NestedImageCarrier); ok {
			if res, ok := probeImageBytes(safeNestedImage(c)); ok {
				res.Shape = ShapeNestedImage
				return res
			}
		}
	}
	return notFound()
}

func safeNestedImage(c NestedImageCarrier) (v any) {
	defer func() {
		if recover() != nil {
			v = nil
		}
	}()
	return c.NestedImage()
}

// probeImageBytes は画像バイトを持つ既知の型を調べます。
func probeImageBytes(v any) (ImageResult, bool) {
	switch img := v.(type) {
	case *genai.Image:
		if img != nil && len(img.ImageBytes) > 0 {
			return ImageResult{Data: img.ImageBytes, MIMEType: img.MIMEType, Shape: ShapeImageBytes}, true
		}
	case genai.Image:
		if len(img.ImageBytes) > 0 {
			return ImageResult{Data: img.ImageBytes, MIMEType: img.MIMEType, Shape: ShapeImageBytes}, true
		}
	case *genai.Blob:
		if img != nil && len(img.Data) > 0 {
			return ImageResult{Data: img.Data, MIMEType: img.MIMEType, Shape: ShapeImageBytes}, true
		}
	case ImageBytesCarrier:
		if data := safeImageBytes(img); len(data) > 0 {
			return ImageResult{Data: data, Shape: ShapeImageBytes}, true
		}
	}
	return ImageResult{}, false
}

func safeImageBytes(c ImageBytesCarrier) (data []byte) {
	defer func() {
		if recover() != nil {
			data = nil
		}
	}()
	return c.ImageBytes()
}

// ExtractEditedImage は編集モデルの応答から画像バイトを取り出します。
//  1. candidates -> content -> parts を走査し、最初の空でないインラインデータ
//  2. 応答直下の parts を同様に走査
//  3. 応答テキストに埋め込まれた data:image/...;base64,... をデコード
//
// 見つからない場合は ShapeNone を返します。モデルが画像の代わりにテキストで答えた場合もこれに当たります。
func ExtractEditedImage(resp any) ImageResult {
	n := Normalize(resp)

	for _, cand := range n.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		if res, ok := firstInline(cand.Content.Parts); ok {
			res.Shape = ShapeCandidateParts
			return res
		}
	}

	if res, ok := firstInline(n.Parts); ok {
		res.Shape = ShapeFlatParts
		return res
	}

	if data, mimeType, ok := DecodeDataURI(n.Text); ok {
		return ImageResult{Data: data, MIMEType: mimeType, Shape: ShapeDataURI}
	}

	return notFound()
}

func firstInline(parts []*genai.Part) (ImageResult, bool) {
	for _, part := range parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return ImageResult{Data: part.InlineData.Data, MIMEType: part.InlineData.MIMEType}, true
		}
	}
	return ImageResult{}, false
}
