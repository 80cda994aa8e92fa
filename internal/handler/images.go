package handler

import (
	"log/slog"
	"net/http"

	"darkroom/internal/httputil"
	"darkroom/internal/service"
)

// ImagesHandler handles image listing requests.
type ImagesHandler struct {
	images *service.ImageService
	logger *slog.Logger
}

// NewImagesHandler creates a new images handler
func NewImagesHandler(images *service.ImageService, logger *slog.Logger) *ImagesHandler {
	return &ImagesHandler{
		images: images,
		logger: logger,
	}
}

// HealthCheck reports server liveness
// GET /health
func (h *ImagesHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListImages returns the metadata of every image in pool, picks and trash
// GET /api/images
func (h *ImagesHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	metas, err := h.images.ListAll(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, metas)
}

// ListTrash returns the metadata of trashed images
// GET /api/images/trash
func (h *ImagesHandler) ListTrash(w http.ResponseWriter, r *http.Request) {
	metas, err := h.images.ListTrash(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, metas)
}

// ListPicks returns the metadata of picked images
// GET /api/images/picks
func (h *ImagesHandler) ListPicks(w http.ResponseWriter, r *http.Request) {
	metas, err := h.images.ListPicks(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, metas)
}
