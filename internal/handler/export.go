package handler

import (
	"log/slog"
	"net/http"

	"darkroom/internal/export"
)

// ExportHandler serves zip archives of parts of the asset tree.
type ExportHandler struct {
	exports *export.Service
	logger  *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(exports *export.Service, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		exports: exports,
		logger:  logger,
	}
}

// Prompts streams a zip of every image with a non-empty prompt plus a
// text file per image holding the prompt
// GET /api/export/prompts
func (h *ExportHandler) Prompts(w http.ResponseWriter, r *http.Request) {
	zipPath, err := h.exports.Prompts(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	serveZip(w, r, zipPath, "exported_prompts.zip")
}

// Picks streams a zip of the picks directory
// GET /api/export/picks
func (h *ExportHandler) Picks(w http.ResponseWriter, r *http.Request) {
	zipPath, err := h.exports.Picks(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	serveZip(w, r, zipPath, "exported_picks.zip")
}

func serveZip(w http.ResponseWriter, r *http.Request, path, downloadName string) {
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+downloadName+`"`)
	http.ServeFile(w, r, path)
}
