package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest は外部呼び出しの前に弾かれる入力不備を表します。
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNoImageFound は呼び出し自体は成功したが応答から画像を取り出せなかったことを表します。
	ErrNoImageFound = errors.New("no image found in response")
	// ErrEmptyPrompt は洗練モデルの応答が空白のみだったことを表します。
	ErrEmptyPrompt = errors.New("refined prompt is empty")
)

// NoImageError は画像の代わりにモデルが返したテキストを保持します。errors.Is で ErrNoImageFound と一致します。
type NoImageError struct {
	ModelText string
}

func (e *NoImageError) Error() string {
	if e.ModelText == "" {
		return ErrNoImageFound.Error()
	}
	return fmt.Sprintf("%s: model replied with text: %s", ErrNoImageFound.Error(), e.ModelText)
}

func (e *NoImageError) Unwrap() error { return ErrNoImageFound }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
