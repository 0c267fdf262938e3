package generator

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"sync"
	"testing"
	"time"

	"google.golang.org/genai"
)

// --- Mocks ---

type mockContentModel struct {
	mu                  sync.Mutex
	calls               int
	lastModel           string
	lastContents        []*genai.Content
	lastConfig          *genai.GenerateContentConfig
	generateContentFunc func(ctx context.Context, call int) (*genai.GenerateContentResponse, error)
}

func (m *mockContentModel) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.mu.Lock()
	m.calls++
	call := m.calls
	m.lastModel = model
	m.lastContents = contents
	m.lastConfig = config
	m.mu.Unlock()

	if m.generateContentFunc != nil {
		return m.generateContentFunc(ctx, call)
	}
	return textResponse("refined"), nil
}

type mockImageModel struct {
	calls              int
	lastModel          string
	lastPrompt         string
	lastConfig         *genai.GenerateImagesConfig
	generateImagesFunc func(ctx context.Context, prompt string, n int32) (*genai.GenerateImagesResponse, error)
}

func (m *mockImageModel) GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	m.calls++
	m.lastModel = model
	m.lastPrompt = prompt
	m.lastConfig = config
	if m.generateImagesFunc != nil {
		return m.generateImagesFunc(ctx, prompt, config.NumberOfImages)
	}
	return imagesResponse(int(config.NumberOfImages)), nil
}

type mockStore struct {
	saved        map[string][]byte
	contentTypes map[string]string
	err          error
}

func newMockStore() *mockStore {
	return &mockStore{saved: make(map[string][]byte), contentTypes: make(map[string]string)}
}

func (m *mockStore) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.saved[key] = data
	m.contentTypes[key] = contentType
	return "mem://" + key, nil
}

type mockRecorder[T any] struct {
	items []T
}

func (m *mockRecorder[T]) Append(items ...T) {
	m.items = append(m.items, items...)
}

// --- Fixtures ---

var fixedTime = time.Date(2025, 1, 2, 9, 30, 5, 0, time.UTC)

var testModels = Models{Text: "text-model", Image: "image-model", Edit: "edit-model"}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func inlineImageResponse(data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: "image/png", Data: data}},
			}},
		}},
	}
}

func imagesResponse(n int) *genai.GenerateImagesResponse {
	resp := &genai.GenerateImagesResponse{}
	for i := 0; i < n; i++ {
		resp.GeneratedImages = append(resp.GeneratedImages, &genai.GeneratedImage{
			Image: &genai.Image{ImageBytes: []byte{byte('a' + i)}, MIMEType: "image/png"},
		})
	}
	return resp
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}

func tinyJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 30, G: 120, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}

func newTestStudio(t *testing.T, text *mockContentModel, images *mockImageModel, store *mockStore) *Studio {
	t.Helper()
	s, err := NewStudio(text, images, store, testModels, WithClock(func() time.Time { return fixedTime }))
	if err != nil {
		t.Fatalf("failed to create studio: %v", err)
	}
	return s
}
