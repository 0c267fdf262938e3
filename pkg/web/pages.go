package web

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/extract"
	"github.com/shouni/gemini-image-studio/pkg/imgutil"
)

const (
	tabGenerate = "generate"
	tabEdit     = "edit"
)

type pageData struct {
	Tab           string
	Departments   []string
	Styles        []string
	Department    string
	Style         string
	DefaultCount  int
	MaxImages     int
	Flashes       []Flash
	RefinedPrompt string
	LastGenerated []domain.GeneratedImage
	LastEdited    []domain.EditedImage
	Base          *domain.ImageRef
	BaseVersion   int
	Generated     []domain.GeneratedImage
	Edited        []domain.EditedImage
}

// Index は生成タブと編集タブ、履歴を持つページを表示します。
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	tab := r.URL.Query().Get("tab")
	if tab != tabEdit {
		tab = tabGenerate
	}

	refined, lastGen, lastEdit := sess.lastResults()
	department, style := sess.selection()
	data := pageData{
		Tab:           tab,
		Departments:   h.vocab.Departments(),
		Styles:        h.vocab.Styles(),
		Department:    department,
		Style:         style,
		DefaultCount:  h.opts.DefaultCount,
		MaxImages:     domain.MaxImagesPerRequest,
		Flashes:       sess.popFlashes(),
		RefinedPrompt: refined,
		LastGenerated: pickGenerated(sess, lastGen),
		LastEdited:    pickEdited(sess, lastEdit),
		Generated:     sess.Generated.ListRecent(h.opts.HistoryDisplay),
		Edited:        sess.Edited.ListRecent(h.opts.HistoryDisplay),
	}
	if base, version, ok := sess.versionedBase(); ok {
		data.Base = &base
		data.BaseVersion = version
	}

	render(w, "index", data)
}

// Generate は生成フォームを受け取り、結果をセッションに記録して元のページへ戻します。
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	defer redirectToTab(w, r, tabGenerate)

	if err := r.ParseForm(); err != nil {
		sess.addFlash("error", "failed to parse form")
		return
	}
	sess.rememberSelection(r.PostForm.Get("department"), r.PostForm.Get("style"))

	count, err := parseCount(r.PostForm.Get("count"), h.opts.DefaultCount)
	if err != nil {
		sess.addFlash("warning", err.Error())
		return
	}

	req := domain.GenerationRequest{
		Idea:       r.PostForm.Get("prompt"),
		Department: r.PostForm.Get("department"),
		Style:      r.PostForm.Get("style"),
		Count:      count,
	}

	res, err := h.studio.Generate(r.Context(), req, sess.Generated)
	if err != nil {
		flashError(sess, "Image generation", err)
		return
	}

	ids := make([]uuid.UUID, 0, len(res.Images))
	for _, img := range res.Images {
		ids = append(ids, img.ID)
	}
	sess.setLastGeneration(res.RefinedPrompt, ids)

	if res.Tier == extract.TierStringified {
		sess.addFlash("warning", "The prompt refiner returned no text; the raw response was used as the prompt.")
	}
	for _, slot := range res.Skipped {
		msg := fmt.Sprintf("Image %d was not returned by the model.", slot.Index+1)
		if slot.Reason != "" {
			msg = fmt.Sprintf("Image %d was not returned by the model: %s", slot.Index+1, slot.Reason)
		}
		sess.addFlash("warning", msg)
	}
	sess.addFlash("success", fmt.Sprintf("Generated %d image(s).", len(res.Images)))
}

// Edit は編集フォームを受け取ります。画像がアップロードされた場合は PNG に正規化して編集対象を置き換えます。
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	defer redirectToTab(w, r, tabEdit)

	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.opts.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sess.addFlash("warning", fmt.Sprintf("Upload is larger than %d bytes.", h.opts.MaxUploadBytes))
			return
		}
		sess.addFlash("error", "failed to parse multipart form")
		return
	}

	if err := h.acceptUpload(r, sess); err != nil {
		sess.addFlash("warning", err.Error())
		return
	}

	variations, err := parseCount(r.FormValue("variations"), 1)
	if err != nil {
		sess.addFlash("warning", err.Error())
		return
	}

	req := domain.EditRequest{
		Instruction: r.FormValue("instruction"),
		Variations:  variations,
	}
	if base, ok := sess.Base(); ok {
		req.BaseImage = base.Data
		req.BaseName = base.Name
	}

	res, err := h.studio.Edit(r.Context(), req, sess.Edited)
	if err != nil {
		flashError(sess, "Image editing", err)
		return
	}

	ids := make([]uuid.UUID, 0, len(res.Images))
	for _, img := range res.Images {
		ids = append(ids, img.ID)
	}
	sess.setLastEdit(ids)

	for _, text := range res.ModelText {
		sess.addFlash("warning", "The model returned text instead of an image: "+text)
	}
	sess.addFlash("success", fmt.Sprintf("Edited %d version(s).", len(res.Images)))
}

// acceptUpload はフォームの image フィールドがあれば編集対象として設定します。
func (h *Handler) acceptUpload(r *http.Request, sess *Session) error {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	if len(raw) == 0 {
		return nil
	}

	normalized, err := imgutil.NormalizeToPNG(raw)
	if err != nil {
		slog.WarnContext(r.Context(), "アップロード画像を変換できませんでした", "name", header.Filename, "error", err)
		return fmt.Errorf("unsupported image: %s", header.Filename)
	}

	name := header.Filename
	if name == "" {
		name = "upload.png"
	}
	sess.SetBase(domain.ImageRef{Name: name, Data: normalized})
	return nil
}

// SelectForEdit は履歴中の生成画像を編集対象に設定して編集タブへ移動します。
func (h *Handler) SelectForEdit(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid image id", http.StatusBadRequest)
		return
	}
	img, ok := sess.Generated.Find(func(g domain.GeneratedImage) bool { return g.ID == id })
	if !ok {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}

	data := img.Data
	if !imgutil.IsPNG(data) {
		normalized, err := imgutil.NormalizeToPNG(data)
		if err != nil {
			slog.WarnContext(r.Context(), "生成画像を PNG に変換できませんでした", "name", img.FileName, "error", err)
			sess.addFlash("warning", fmt.Sprintf("Image '%s' cannot be edited.", img.FileName))
			redirectToTab(w, r, tabGenerate)
			return
		}
		data = normalized
	}

	sess.SetBase(domain.ImageRef{Name: img.FileName, Data: data})
	sess.addFlash("success", fmt.Sprintf("Image '%s' sent to the editor.", img.FileName))
	redirectToTab(w, r, tabEdit)
}

// ClearHistory はセッションの生成・編集履歴を消去します。
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	sess.clear()
	sess.addFlash("info", "History cleared.")
	redirectToTab(w, r, r.FormValue("tab"))
}

func redirectToTab(w http.ResponseWriter, r *http.Request, tab string) {
	target := "/"
	if tab == tabEdit {
		target = "/?tab=edit"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// parseCount は空文字を def として扱い、1 から MaxImagesPerRequest の範囲を検証します。
func parseCount(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > domain.MaxImagesPerRequest {
		return 0, fmt.Errorf("number of images must be between 1 and %d", domain.MaxImagesPerRequest)
	}
	return n, nil
}

// flashError はエラーの種類に応じたメッセージをセッションに記録します。
func flashError(sess *Session, action string, err error) {
	var noImage *domain.NoImageError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		sess.addFlash("warning", capitalize(strings.TrimPrefix(err.Error(), domain.ErrInvalidRequest.Error()+": ")))
	case errors.As(err, &noImage) && noImage.ModelText != "":
		sess.addFlash("warning", "The model returned text instead of an image: "+noImage.ModelText)
	case errors.Is(err, domain.ErrNoImageFound):
		sess.addFlash("error", "No image found in response.")
	default:
		slog.Error(action+" failed", "error", err)
		sess.addFlash("error", fmt.Sprintf("%s failed: %v", action, err))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

func pickGenerated(sess *Session, ids []uuid.UUID) []domain.GeneratedImage {
	out := make([]domain.GeneratedImage, 0, len(ids))
	for _, id := range ids {
		if img, ok := sess.Generated.Find(func(g domain.GeneratedImage) bool { return g.ID == id }); ok {
			out = append(out, img)
		}
	}
	return out
}

func pickEdited(sess *Session, ids []uuid.UUID) []domain.EditedImage {
	out := make([]domain.EditedImage, 0, len(ids))
	for _, id := range ids {
		if img, ok := sess.Edited.Find(func(e domain.EditedImage) bool { return e.ID == id }); ok {
			out = append(out, img)
		}
	}
	return out
}
