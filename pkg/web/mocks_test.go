package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/extract"
	"github.com/shouni/gemini-image-studio/pkg/generator"
	"github.com/shouni/gemini-image-studio/pkg/prompt"
)

// --- Mocks ---

type fakeStudio struct {
	lastGenerate domain.GenerationRequest
	lastEdit     domain.EditRequest
	generateCall int
	editCall     int
	generateFunc func(ctx context.Context, req domain.GenerationRequest) (*generator.GenerationResult, error)
	editFunc     func(ctx context.Context, req domain.EditRequest) (*generator.EditResult, error)
}

func (f *fakeStudio) Refine(ctx context.Context, req domain.GenerationRequest) (string, extract.Tier, error) {
	return "refined " + req.Idea, extract.TierDirectText, nil
}

func (f *fakeStudio) Generate(ctx context.Context, req domain.GenerationRequest, hist generator.Recorder[domain.GeneratedImage]) (*generator.GenerationResult, error) {
	f.generateCall++
	f.lastGenerate = req
	if f.generateFunc == nil {
		return nil, domain.ErrNoImageFound
	}
	res, err := f.generateFunc(ctx, req)
	if err != nil {
		return nil, err
	}
	hist.Append(res.Images...)
	return res, nil
}

func (f *fakeStudio) Edit(ctx context.Context, req domain.EditRequest, hist generator.Recorder[domain.EditedImage]) (*generator.EditResult, error) {
	f.editCall++
	f.lastEdit = req
	if f.editFunc == nil {
		return nil, domain.ErrNoImageFound
	}
	res, err := f.editFunc(ctx, req)
	if err != nil {
		return nil, err
	}
	hist.Append(res.Images...)
	return res, nil
}

// --- Helpers ---

func newTestRouter(t *testing.T, studio *fakeStudio) *mux.Router {
	t.Helper()
	h, err := NewHandler(studio, prompt.Default(), NewSessionRegistry(0, false), Options{MaxUploadBytes: 1 << 20})
	if err != nil {
		t.Fatalf("failed to create handler: %v", err)
	}
	return h.Router()
}

// client は cookie を引き継いでリクエストを実行します。
type client struct {
	t      *testing.T
	router http.Handler
	cookie *http.Cookie
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookieName {
			c.cookie = ck
		}
	}
	return rec
}
