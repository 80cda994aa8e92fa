package handler

import (
	"log/slog"
	"net/http"

	"darkroom/internal/auth"
	"darkroom/internal/httputil"
)

// AuthHandler handles login and token refresh.
type AuthHandler struct {
	tokens auth.TokenService
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(tokens auth.TokenService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		tokens: tokens,
		logger: logger,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

// Login issues an access/refresh token pair for the configured password
// POST /api/auth/token/get
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pair, err := h.tokens.IssueTokenPair(req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, pair)
}

// Refresh issues a new access token for a valid refresh token
// POST /api/auth/token/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	access, err := h.tokens.Refresh(req.RefreshToken)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, refreshResponse{AccessToken: access})
}
