package handlers

import (
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ashokvas/flowspace/internal/storage"
	"github.com/ashokvas/flowspace/pkg/logger"
)

// FilesHandler implements the blob half of the attachment flow: mint an
// upload URL, accept the binary, serve it back. Metadata lives on the note
// and is written after the blob exists, never before.
type FilesHandler struct {
	blobs         storage.BlobStore
	tokenSecret   []byte
	tokenTTL      time.Duration
	publicBaseURL string
}

func NewFilesHandler(blobs storage.BlobStore, tokenSecret []byte, tokenTTL time.Duration, publicBaseURL string) *FilesHandler {
	return &FilesHandler{blobs: blobs, tokenSecret: tokenSecret, tokenTTL: tokenTTL, publicBaseURL: publicBaseURL}
}

// UploadURL serves POST /files/upload-url. It allocates a ref and returns a
// short-lived URL authorizing one direct binary upload to that ref.
func (h *FilesHandler) UploadURL(w http.ResponseWriter, r *http.Request) {
	ref := storage.NewRef()
	token, err := storage.SignUploadToken(h.tokenSecret, ref, h.tokenTTL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"storage_id": ref,
		"upload_url": h.publicBaseURL + "/api/v1/files/upload?token=" + url.QueryEscape(token),
	})
}

// Upload serves POST /files/upload?token=… . The token is the credential;
// this route sits outside the JWT auth group.
func (h *FilesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ref, err := storage.ParseUploadToken(h.tokenSecret, r.URL.Query().Get("token"))
	if err != nil {
		writeError(w, err)
		return
	}

	size, err := h.blobs.Put(r.Context(), ref, r.Header.Get("Content-Type"), r.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	logger.L().Info("blob uploaded", zap.String("ref", ref), zap.Int64("size", size))
	writeData(w, http.StatusCreated, map[string]any{"storage_id": ref, "size": size})
}

// Serve serves GET /files/{ref}: the blob bytes with their content type.
func (h *FilesHandler) Serve(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	rc, contentType, err := h.blobs.Open(r.Context(), ref)
	if err != nil {
		writeError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	if _, err := io.Copy(w, rc); err != nil {
		logger.L().Warn("blob stream interrupted", zap.String("ref", ref), zap.Error(err))
	}
}

// URLFor serves GET /files/{ref}/url. Clients re-resolve per render instead
// of persisting fetch URLs.
func (h *FilesHandler) URLFor(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	u, err := h.blobs.URL(r.Context(), ref)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"url": u})
}
