package handler

import (
	"errors"
	"net/http"

	"darkroom/internal/domain"
	"darkroom/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrCorruptData), errors.Is(err, domain.ErrIO):
		httputil.RespondError(w, http.StatusInternalServerError, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// messageResponse is the body for operations that only report success.
type messageResponse struct {
	Message string `json:"message"`
}

func respondMessage(w http.ResponseWriter, message string) {
	httputil.RespondJSON(w, http.StatusOK, messageResponse{Message: message})
}
