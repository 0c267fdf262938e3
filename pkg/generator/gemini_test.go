package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/extract"
	"github.com/shouni/gemini-image-studio/pkg/imgutil"
	"github.com/shouni/gemini-image-studio/pkg/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestStudio_Refine(t *testing.T) {
	ctx := context.Background()
	req := domain.GenerationRequest{Idea: "a red bicycle", Department: "General", Style: "Watercolor"}

	t.Run("成功: 組み立てたプロンプトがテキストモデルに渡される", func(t *testing.T) {
		text := &mockContentModel{generateContentFunc: func(context.Context, int) (*genai.GenerateContentResponse, error) {
			return textResponse("  A watercolor red bicycle.  \n"), nil
		}}
		s := newTestStudio(t, text, &mockImageModel{}, newMockStore())

		refined, tier, err := s.Refine(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, "A watercolor red bicycle.", refined)
		assert.Equal(t, extract.TierDirectText, tier)
		assert.Equal(t, "text-model", text.lastModel)
		require.Len(t, text.lastContents, 1)
		require.Len(t, text.lastContents[0].Parts, 1)
		assert.Equal(t, prompt.Default().Compose("General", "a red bicycle", "Watercolor"), text.lastContents[0].Parts[0].Text)
	})

	t.Run("直接テキストが無い場合はフォールバック段階を返す", func(t *testing.T) {
		text := &mockContentModel{generateContentFunc: func(context.Context, int) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{}, nil
		}}
		s := newTestStudio(t, text, &mockImageModel{}, newMockStore())

		refined, tier, err := s.Refine(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, extract.TierStringified, tier)
		assert.NotEmpty(t, refined)
	})

	t.Run("空白のみの応答は ErrEmptyPrompt", func(t *testing.T) {
		text := &mockContentModel{generateContentFunc: func(context.Context, int) (*genai.GenerateContentResponse, error) {
			return textResponse("   "), nil
		}}
		s := newTestStudio(t, text, &mockImageModel{}, newMockStore())

		_, _, err := s.Refine(ctx, req)
		assert.ErrorIs(t, err, domain.ErrEmptyPrompt)
	})

	t.Run("モデルのエラーはラップして返す", func(t *testing.T) {
		boom := errors.New("quota exceeded")
		text := &mockContentModel{generateContentFunc: func(context.Context, int) (*genai.GenerateContentResponse, error) {
			return nil, boom
		}}
		s := newTestStudio(t, text, &mockImageModel{}, newMockStore())

		_, _, err := s.Refine(ctx, req)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("不正な要求ではモデルを呼び出さない", func(t *testing.T) {
		text := &mockContentModel{}
		s := newTestStudio(t, text, &mockImageModel{}, newMockStore())

		_, _, err := s.Refine(ctx, domain.GenerationRequest{Idea: " ", Department: "General", Style: "None"})
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		assert.Equal(t, 0, text.calls)
	})
}

func TestStudio_Generate(t *testing.T) {
	ctx := context.Background()
	req := domain.GenerationRequest{Idea: "a red bicycle", Department: "Marketing", Style: "Watercolor", Count: 2}

	t.Run("成功: すべての枠を保存して履歴に追記する", func(t *testing.T) {
		text := &mockContentModel{}
		images := &mockImageModel{}
		store := newMockStore()
		hist := &mockRecorder[domain.GeneratedImage]{}
		s := newTestStudio(t, text, images, store)

		res, err := s.Generate(ctx, req, hist)

		require.NoError(t, err)
		assert.Equal(t, "refined", res.RefinedPrompt)
		assert.Equal(t, "refined", images.lastPrompt)
		assert.Equal(t, "image-model", images.lastModel)
		assert.Equal(t, int32(2), images.lastConfig.NumberOfImages)

		require.Len(t, res.Images, 2)
		assert.Equal(t, "marketing_watercolor_20250102_093005_0.png", res.Images[0].FileName)
		assert.Equal(t, "marketing_watercolor_20250102_093005_1.png", res.Images[1].FileName)
		assert.Equal(t, []byte("a"), res.Images[0].Data)
		assert.Equal(t, "mem://generated/marketing_watercolor_20250102_093005_1.png", res.Images[1].Location)
		assert.Equal(t, "refined", res.Images[0].SourcePrompt)
		assert.NotEqual(t, res.Images[0].ID, res.Images[1].ID)
		assert.Len(t, store.saved, 2)
		assert.Equal(t, res.Images, hist.items)
	})

	t.Run("JPEG で返った画像は PNG に変換して保存し、そのまま編集に使える", func(t *testing.T) {
		jpg := tinyJPEG(t)
		images := &mockImageModel{generateImagesFunc: func(context.Context, string, int32) (*genai.GenerateImagesResponse, error) {
			return &genai.GenerateImagesResponse{GeneratedImages: []*genai.GeneratedImage{
				{Image: &genai.Image{ImageBytes: jpg, MIMEType: "image/jpeg"}},
			}}, nil
		}}
		text := &mockContentModel{generateContentFunc: func(_ context.Context, call int) (*genai.GenerateContentResponse, error) {
			if call == 1 {
				return textResponse("refined"), nil
			}
			return inlineImageResponse(tinyPNG(t)), nil
		}}
		store := newMockStore()
		s := newTestStudio(t, text, images, store)

		r := req
		r.Count = 1
		res, err := s.Generate(ctx, r, nil)

		require.NoError(t, err)
		require.Len(t, res.Images, 1)
		generated := res.Images[0]
		assert.Equal(t, "image/png", generated.MIMEType)
		assert.True(t, imgutil.IsPNG(generated.Data))

		key := "generated/" + generated.FileName
		assert.True(t, imgutil.IsPNG(store.saved[key]))
		assert.Equal(t, "image/png", store.contentTypes[key])

		edited, err := s.Edit(ctx, domain.EditRequest{
			Instruction: "add a hat",
			BaseImage:   generated.Data,
			BaseName:    generated.FileName,
		}, nil)
		require.NoError(t, err)
		assert.Len(t, edited.Images, 1)
	})

	t.Run("Count が 0 の場合は 1 枚", func(t *testing.T) {
		images := &mockImageModel{}
		s := newTestStudio(t, &mockContentModel{}, images, newMockStore())

		r := req
		r.Count = 0
		res, err := s.Generate(ctx, r, nil)

		require.NoError(t, err)
		assert.Equal(t, int32(1), images.lastConfig.NumberOfImages)
		assert.Len(t, res.Images, 1)
	})

	t.Run("画像を取り出せない枠は飛ばす", func(t *testing.T) {
		images := &mockImageModel{generateImagesFunc: func(context.Context, string, int32) (*genai.GenerateImagesResponse, error) {
			return &genai.GenerateImagesResponse{GeneratedImages: []*genai.GeneratedImage{
				{RAIFilteredReason: "blocked by safety filter"},
				{Image: &genai.Image{ImageBytes: []byte("second")}},
			}}, nil
		}}
		store := newMockStore()
		s := newTestStudio(t, &mockContentModel{}, images, store)

		r := req
		r.Count = 3
		res, err := s.Generate(ctx, r, nil)

		require.NoError(t, err)
		require.Len(t, res.Images, 1)
		assert.Equal(t, []byte("second"), res.Images[0].Data)
		assert.True(t, strings.HasSuffix(res.Images[0].FileName, "_1.png"), "index of the slot is kept")
		assert.Equal(t, domain.DefaultImageMIMEType, res.Images[0].MIMEType)
		assert.Equal(t, []SkippedSlot{
			{Index: 0, Reason: "blocked by safety filter"},
			{Index: 2, Reason: "missing from response"},
		}, res.Skipped)
		assert.Len(t, store.saved, 1)
	})

	t.Run("すべての枠が空なら ErrNoImageFound で履歴は変えない", func(t *testing.T) {
		images := &mockImageModel{generateImagesFunc: func(context.Context, string, int32) (*genai.GenerateImagesResponse, error) {
			return &genai.GenerateImagesResponse{}, nil
		}}
		hist := &mockRecorder[domain.GeneratedImage]{}
		s := newTestStudio(t, &mockContentModel{}, images, newMockStore())

		_, err := s.Generate(ctx, req, hist)

		assert.ErrorIs(t, err, domain.ErrNoImageFound)
		assert.Empty(t, hist.items)
	})

	t.Run("画像モデルのエラーでは何も保存しない", func(t *testing.T) {
		images := &mockImageModel{generateImagesFunc: func(context.Context, string, int32) (*genai.GenerateImagesResponse, error) {
			return nil, errors.New("503 unavailable")
		}}
		store := newMockStore()
		hist := &mockRecorder[domain.GeneratedImage]{}
		s := newTestStudio(t, &mockContentModel{}, images, store)

		_, err := s.Generate(ctx, req, hist)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "503 unavailable")
		assert.Empty(t, store.saved)
		assert.Empty(t, hist.items)
	})

	t.Run("洗練に失敗した場合は画像モデルを呼び出さない", func(t *testing.T) {
		text := &mockContentModel{generateContentFunc: func(context.Context, int) (*genai.GenerateContentResponse, error) {
			return nil, errors.New("timeout")
		}}
		images := &mockImageModel{}
		s := newTestStudio(t, text, images, newMockStore())

		_, err := s.Generate(ctx, req, nil)

		require.Error(t, err)
		assert.Equal(t, 0, images.calls)
	})

	t.Run("保存に失敗しても画像は返す", func(t *testing.T) {
		store := newMockStore()
		store.err = errors.New("disk full")
		hist := &mockRecorder[domain.GeneratedImage]{}
		s := newTestStudio(t, &mockContentModel{}, &mockImageModel{}, store)

		res, err := s.Generate(ctx, req, hist)

		require.NoError(t, err)
		require.Len(t, res.Images, 2)
		assert.Empty(t, res.Images[0].Location)
		assert.Len(t, hist.items, 2)
	})

	t.Run("不正な要求ではどのモデルも呼び出さない", func(t *testing.T) {
		text := &mockContentModel{}
		images := &mockImageModel{}
		s := newTestStudio(t, text, images, newMockStore())

		r := req
		r.Style = "Baroque"
		_, err := s.Generate(ctx, r, nil)

		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		assert.Equal(t, 0, text.calls)
		assert.Equal(t, 0, images.calls)
	})
}
