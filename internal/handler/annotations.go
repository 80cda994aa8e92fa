package handler

import (
	"log/slog"
	"net/http"

	"darkroom/internal/httputil"
	"darkroom/internal/service"
)

// AnnotationsHandler handles per-image metadata edits.
type AnnotationsHandler struct {
	images *service.ImageService
	logger *slog.Logger
}

// NewAnnotationsHandler creates a new annotations handler
func NewAnnotationsHandler(images *service.ImageService, logger *slog.Logger) *AnnotationsHandler {
	return &AnnotationsHandler{
		images: images,
		logger: logger,
	}
}

type updateMetadataRequest struct {
	Filename  string                  `json:"filename"`
	Directory string                  `json:"directory"`
	Notes     httputil.OptionalString `json:"notes"`
	Prompt    httputil.OptionalString `json:"prompt"`
}

// UpdateMetadata rewrites the notes and/or prompt of one image's sidecar.
// Absent fields are left untouched.
// PUT /api/image/update-metadata
func (h *AnnotationsHandler) UpdateMetadata(w http.ResponseWriter, r *http.Request) {
	var req updateMetadataRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.images.UpdateAnnotation(r.Context(), &service.UpdateAnnotationRequest{
		Filename: req.Filename,
		Location: req.Directory,
		Notes:    req.Notes.Ptr(),
		Prompt:   req.Prompt.Ptr(),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	respondMessage(w, "Metadata updated successfully")
}
