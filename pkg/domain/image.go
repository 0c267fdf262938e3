package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MaxImagesPerRequest は 1 回の生成・編集で要求できる最大枚数です。
	MaxImagesPerRequest = 4
	// DefaultImageMIMEType は保存・配信時に扱う画像の MIME タイプです。
	DefaultImageMIMEType = "image/png"
)

// GenerationRequest は部署テンプレートとスタイルを指定した画像生成要求です。
type GenerationRequest struct {
	Idea       string
	Department string
	Style      string
	Count      int // 0 の場合は 1 枚として扱う
}

// EditRequest は既存画像に対する自然言語での編集要求です。
// BaseImage は PNG としてデコード可能である必要があります。
type EditRequest struct {
	Instruction string
	BaseImage   []byte
	BaseName    string
	Variations  int // 0 の場合は 1 回として扱う
}

// GeneratedImage は生成モデルから得られた 1 枚の画像です。生成後に変更されることはありません。
type GeneratedImage struct {
	ID           uuid.UUID
	Data         []byte
	MIMEType     string
	SourcePrompt string
	FileName     string
	Department   string
	Style        string
	CreatedAt    time.Time
	Location     string // 永続化先 (ローカルパスや s3:// URI)。保存しない構成では空
}

// EditedImage は編集前後の画像と指示文の組です。
type EditedImage struct {
	ID          uuid.UUID
	Original    []byte
	Edited      []byte
	MIMEType    string
	Instruction string
	FileName    string
	CreatedAt   time.Time
	Location    string
}

// ImageRef は編集対象として選択された画像への参照です。
type ImageRef struct {
	Name string
	Data []byte
}

// ResolveCount は 0 を既定値の 1 に読み替えます。範囲外の値はそのまま返し、検証側で弾きます。
func ResolveCount(n int) int {
	if n == 0 {
		return 1
	}
	return n
}
