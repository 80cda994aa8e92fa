package handler

import (
	"context"
	"log/slog"
	"net/http"

	"darkroom/internal/httputil"
	"darkroom/internal/service"
)

// MovesHandler handles lifecycle transition requests.
type MovesHandler struct {
	images *service.ImageService
	logger *slog.Logger
}

// NewMovesHandler creates a new moves handler
func NewMovesHandler(images *service.ImageService, logger *slog.Logger) *MovesHandler {
	return &MovesHandler{
		images: images,
		logger: logger,
	}
}

type moveRequest struct {
	ImageName string `json:"image_name"`
}

// ToTrash moves an image and its sidecar to the trash
// POST /api/move-images/to-trash
func (h *MovesHandler) ToTrash(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.images.ToTrash, "Image and its JSON moved to trash")
}

// ToPicks moves an image and its sidecar to the picks
// POST /api/move-images/to-picks
func (h *MovesHandler) ToPicks(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.images.ToPicks, "Image and its JSON moved to picks")
}

// RestoreFromTrash moves an image and its sidecar from the trash back to the pool
// POST /api/move-images/restore-from-trash
func (h *MovesHandler) RestoreFromTrash(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.images.RestoreFromTrash, "Image and its JSON restored from trash")
}

// DemotePick moves an image and its sidecar from the picks back to the pool
// POST /api/move-images/demote-pick
func (h *MovesHandler) DemotePick(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.images.DemotePick, "Pick status updated and image moved")
}

// PurgeTrash deletes every file in the trash
// POST /api/move-images/delete-all-trash
func (h *MovesHandler) PurgeTrash(w http.ResponseWriter, r *http.Request) {
	if err := h.images.PurgeTrash(r.Context()); err != nil {
		handleError(w, err)
		return
	}
	respondMessage(w, "All images deleted from trash")
}

func (h *MovesHandler) move(w http.ResponseWriter, r *http.Request, op func(context.Context, string) error, message string) {
	var req moveRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.logger.Debug("move requested",
		"image", req.ImageName,
		"subject", httputil.GetSubject(r),
		"request_id", httputil.GetRequestID(r),
	)

	if err := op(r.Context(), req.ImageName); err != nil {
		handleError(w, err)
		return
	}
	respondMessage(w, message)
}
