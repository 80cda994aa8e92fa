package auth

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"darkroom/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, accessTTL time.Duration) TokenService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := NewTokenService("test-secret", "hunter2", accessTTL, 24*time.Hour, logger)
	require.NoError(t, err)
	return svc
}

func TestNewTokenServiceRejectsEmptyConfig(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewTokenService("", "hunter2", time.Minute, time.Hour, logger)
	assert.Error(t, err)

	_, err = NewTokenService("secret", "", time.Minute, time.Hour, logger)
	assert.Error(t, err)
}

func TestIssueTokenPair(t *testing.T) {
	svc := newTestTokenService(t, 30*time.Minute)

	pair, err := svc.IssueTokenPair("hunter2")

	require.NoError(t, err)
	assert.Equal(t, "bearer", pair.TokenType)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Subject)
}

func TestIssueTokenPairWrongPassword(t *testing.T) {
	svc := newTestTokenService(t, 30*time.Minute)

	_, err := svc.IssueTokenPair("wrong")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh(t *testing.T) {
	svc := newTestTokenService(t, 30*time.Minute)
	pair, err := svc.IssueTokenPair("hunter2")
	require.NoError(t, err)

	access, err := svc.Refresh(pair.RefreshToken)

	require.NoError(t, err)
	claims, err := svc.Verify(access)
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Subject)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := newTestTokenService(t, 30*time.Minute)

	_, err := svc.Refresh("not.a.token")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := newTestTokenService(t, -time.Minute)
	pair, err := svc.IssueTokenPair("hunter2")
	require.NoError(t, err)

	_, err = svc.Verify(pair.AccessToken)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyRejectsTokenFromOtherSecret(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	other, err := NewTokenService("other-secret", "hunter2", time.Minute, time.Hour, logger)
	require.NoError(t, err)
	pair, err := other.IssueTokenPair("hunter2")
	require.NoError(t, err)

	svc := newTestTokenService(t, time.Minute)
	_, err = svc.Verify(pair.AccessToken)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
