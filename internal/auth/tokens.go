package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"darkroom/internal/domain"
	"darkroom/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

// tokenSubject is the fixed JWT subject. This is a single-user tool;
// there are no accounts to distinguish.
const tokenSubject = "user"

// hmacTokenService implements TokenService with HS256 shared-secret
// signing. A single-user server has no remote key set to fetch, so the
// signing and verifying key are the same configured secret.
type hmacTokenService struct {
	secret     []byte
	password   string
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *slog.Logger
}

// NewTokenService creates an HS256 token service. The secret signs all
// tokens; the password is the single login credential.
func NewTokenService(secret, password string, accessTTL, refreshTTL time.Duration, logger *slog.Logger) (TokenService, error) {
	if secret == "" {
		return nil, errors.New("secret key cannot be empty")
	}
	if password == "" {
		return nil, errors.New("password cannot be empty")
	}
	return &hmacTokenService{
		secret:     []byte(secret),
		password:   password,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}, nil
}

// IssueTokenPair checks the password and mints an access/refresh pair.
func (s *hmacTokenService) IssueTokenPair(password string) (*models.TokenPair, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		s.logger.Warn("login rejected: incorrect password")
		return nil, &domain.UnauthorizedError{Message: "incorrect password"}
	}

	access, err := s.sign(s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(s.refreshTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("token pair issued",
		"access_expires_in", s.accessTTL.String(),
		"refresh_expires_in", s.refreshTTL.String(),
	)
	return &models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

// Refresh validates the refresh token and mints a new access token.
func (s *hmacTokenService) Refresh(refreshToken string) (string, error) {
	if _, err := s.Verify(refreshToken); err != nil {
		return "", err
	}
	return s.sign(s.accessTTL)
}

// Verify parses and validates a token. All failure modes (missing,
// malformed, expired, bad signature, wrong algorithm) collapse into
// domain.ErrUnauthorized; the distinction is logged, not exposed.
func (s *hmacTokenService) Verify(tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Prevent algorithm confusion attacks - allow only HS256
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		s.logger.Debug("token rejected", "error", err.Error())
		return nil, &domain.UnauthorizedError{Message: "invalid or expired token"}
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, &domain.UnauthorizedError{Message: "invalid or expired token"}
	}
	return claims, nil
}

func (s *hmacTokenService) sign(ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   tokenSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
