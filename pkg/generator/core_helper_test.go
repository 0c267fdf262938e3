package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestStudio_Edit(t *testing.T) {
	ctx := context.Background()
	base := tinyPNG(t)
	req := domain.EditRequest{Instruction: "make the sky purple", BaseImage: base, BaseName: "upload.png"}

	t.Run("成功: 指示テキストとインライン PNG の順で送る", func(t *testing.T) {
		text := &mockContentModel{generateContentFunc: func(context.Context, int) (*genai.GenerateContentResponse, error) {
			return inlineImageResponse([]byte("edited")), nil
		}}
		store := newMockStore()
		hist := &mockRecorder[domain.EditedImage]{}
		s := newTestStudio(t, text, &mockImageModel{}, store)

		res, err := s.Edit(ctx, req, hist)

		require.NoError(t, err)
		assert.Equal(t, "edit-model", text.lastModel)
		require.Len(t, text.lastContents, 1)
		content := text.lastContents[0]
		assert.Equal(t, genai.RoleUser, content.Role)
		require.Len(t, content.Parts, 2)
		assert.Equal(t, prompt.EditInstruction("make the sky purple"), content.Parts[0].Text)
		require.NotNil(t, content.Parts[1].InlineData)
		assert.Equal(t, "image/png", content.Parts[1].InlineData.MIMEType)
		assert.Equal(t, base, content.Parts[1].InlineData.Data)
		assert.Equal(t, []string{"TEXT", "IMAGE"}, text.lastConfig.ResponseModalities)

		require.Len(t, res.Images, 1)
		got := res.Images[0]
		assert.Equal(t, []byte("edited"), got.Edited)
		assert.Equal(t, base, got.Original)
		assert.Equal(t, "make the sky purple", got.Instruction)
		assert.Equal(t, "edited_20250102_093005_0.png", got.FileName)
		assert.Equal(t, "mem://edited/edited_20250102_093005_0.png", got.Location)
		assert.Equal(t, res.Images, hist.items)
	})

	t.Run("バリエーションの数だけ順番に呼び出す", func(t *testing.T) {
		text := &mockContentModel{generateContentFunc: func(_ context.Context, call int) (*genai.GenerateContentResponse, error) {
			return inlineImageResponse([]byte{byte('0' + call)}), nil
		}}
		s := newTestStudio(t, text, &mockImageModel{}, newMockStore())

		r := req
		r.Variations = 3
		res, err := s.Edit(ctx, r, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, text.calls)
		require.Len(t, res.Images, 3)
		assert.Equal(t, []byte("1"), res.Images[0].Edited)
		assert.Equal(t, []byte("3"), res.Images[2].Edited)
		assert.Equal(t, "edited_20250102_093005_2.png", res.Images[2].FileName)
	})

	t.Run("テキストに埋め込まれた data URI も画像として扱う", func(t *testing.T) {
		text := &mockContentModel{generateContentFunc: func(context.Context, int) (*genai.GenerateContentResponse, error) {
			return textResponse("Here it is: data:image/png;base64,aGVsbG8="), nil
		}}
		s := newTestStudio(t, text, &mockImageModel{}, newMockStore())

		res, err := s.Edit(ctx, req, nil)

		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), res.Images[0].Edited)
	})

	t.Run("テキストのみの応答は NoImageError でモデルの文言を保持する", func(t *testing.T) {
		text := &mockContentModel{generateContentFunc: func(context.Context, int) (*genai.GenerateContentResponse, error) {
			return textResponse("I cannot edit images of people."), nil
		}}
		store := newMockStore()
		hist := &mockRecorder[domain.EditedImage]{}
		s := newTestStudio(t, text, &mockImageModel{}, store)

		_, err := s.Edit(ctx, req, hist)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNoImageFound)
		var nie *domain.NoImageError
		require.ErrorAs(t, err, &nie)
		assert.Equal(t, "I cannot edit images of people.", nie.ModelText)
		assert.Empty(t, store.saved)
		assert.Empty(t, hist.items)
	})

	t.Run("一部のバリエーションだけ画像が無い場合は残りを返す", func(t *testing.T) {
		text := &mockContentModel{generateContentFunc: func(_ context.Context, call int) (*genai.GenerateContentResponse, error) {
			if call == 1 {
				return textResponse("no image this time"), nil
			}
			return inlineImageResponse([]byte("ok")), nil
		}}
		s := newTestStudio(t, text, &mockImageModel{}, newMockStore())

		r := req
		r.Variations = 2
		res, err := s.Edit(ctx, r, nil)

		require.NoError(t, err)
		require.Len(t, res.Images, 1)
		assert.Equal(t, "edited_20250102_093005_0.png", res.Images[0].FileName)
		assert.Equal(t, []string{"no image this time"}, res.ModelText)
	})

	t.Run("途中で呼び出しが失敗したら何も保存しない", func(t *testing.T) {
		text := &mockContentModel{generateContentFunc: func(_ context.Context, call int) (*genai.GenerateContentResponse, error) {
			if call == 2 {
				return nil, errors.New("connection reset")
			}
			return inlineImageResponse([]byte("ok")), nil
		}}
		store := newMockStore()
		hist := &mockRecorder[domain.EditedImage]{}
		s := newTestStudio(t, text, &mockImageModel{}, store)

		r := req
		r.Variations = 2
		_, err := s.Edit(ctx, r, hist)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
		assert.Empty(t, store.saved)
		assert.Empty(t, hist.items)
	})

	t.Run("PNG ではないベース画像はモデルを呼び出さずに拒否する", func(t *testing.T) {
		text := &mockContentModel{}
		s := newTestStudio(t, text, &mockImageModel{}, newMockStore())

		_, err := s.Edit(ctx, domain.EditRequest{Instruction: "x", BaseImage: []byte("jpeg?")}, nil)

		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		assert.Equal(t, 0, text.calls)
	})
}
