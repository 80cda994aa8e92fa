package auth

import "darkroom/internal/domain/models"

// TokenService issues and verifies the JWTs gating every API call.
// The abstraction keeps the middleware agnostic to how tokens are signed.
type TokenService interface {
	// IssueTokenPair checks the login password and, on success, returns
	// a fresh access/refresh token pair.
	IssueTokenPair(password string) (*models.TokenPair, error)

	// Refresh validates a refresh token and returns a new access token.
	Refresh(refreshToken string) (string, error)

	// Verify validates a token string and returns the parsed claims.
	// Returns domain.ErrUnauthorized if the token is invalid or expired.
	Verify(tokenString string) (*models.Claims, error)
}
