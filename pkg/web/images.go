package web

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shouni/gemini-image-studio/pkg/domain"
)

// 履歴の画像は ID ごとに不変です。
const (
	cacheImmutable = "private, max-age=3600"
	cacheNone      = "no-store"
)

// GeneratedImage は生成画像を配信します。?download=1 で添付ファイルとして返します。
func (h *Handler) GeneratedImage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	img, found := sess.Generated.Find(func(g domain.GeneratedImage) bool { return g.ID == id })
	if !found {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}
	writeImage(w, r, img.Data, img.MIMEType, img.FileName, cacheImmutable)
}

// EditedImage は編集後の画像を配信します。
func (h *Handler) EditedImage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	img, found := sess.Edited.Find(func(e domain.EditedImage) bool { return e.ID == id })
	if !found {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}
	writeImage(w, r, img.Edited, img.MIMEType, img.FileName, cacheImmutable)
}

// OriginalImage は編集履歴の編集前の画像を配信します。
func (h *Handler) OriginalImage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	img, found := sess.Edited.Find(func(e domain.EditedImage) bool { return e.ID == id })
	if !found {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}
	writeImage(w, r, img.Original, domain.DefaultImageMIMEType, "original_"+img.FileName, cacheImmutable)
}

// BaseImage は現在の編集対象の画像を配信します。編集対象は差し替わるためキャッシュさせません。
func (h *Handler) BaseImage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	base, ok := sess.Base()
	if !ok {
		http.Error(w, "no image selected", http.StatusNotFound)
		return
	}
	writeImage(w, r, base.Data, domain.DefaultImageMIMEType, base.Name, cacheNone)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid image id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func writeImage(w http.ResponseWriter, r *http.Request, data []byte, mimeType, fileName, cacheControl string) {
	if mimeType == "" {
		mimeType = domain.DefaultImageMIMEType
	}
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", cacheControl)

	disposition := "inline"
	if r.URL.Query().Get("download") == "1" {
		disposition = "attachment"
	}
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": fileName}))

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
