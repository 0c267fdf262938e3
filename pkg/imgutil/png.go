package imgutil

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/webp"
)

// NormalizeToPNG はアップロードされた画像（PNG, JPEG, GIF, WebP）を不透明な RGB の PNG に変換します。
// 透過部分は黒の背景に合成されます。
func NormalizeToPNG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("画像のデコードに失敗しました: %w", err)
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, dst); err != nil {
		return nil, fmt.Errorf("PNGエンコードに失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}

// IsPNG はデータが PNG としてデコード可能かどうかをヘッダーから判定します。
func IsPNG(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	_, err := png.DecodeConfig(bytes.NewReader(data))
	return err == nil
}
