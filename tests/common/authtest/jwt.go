//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"studio-booking/internal/pkg/config"
	"studio-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

// GenerateToken issues a token for a student. Pass provider ids to act as
// studio staff.
func (h *JWTHelper) GenerateToken(t *testing.T, accountID uuid.UUID, providerIDs ...uuid.UUID) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	service := jwt.NewService(h.cfg.Secret, duration)
	token, err := service.GenerateToken(accountID, accountID.String()[:8]+"@example.com", providerIDs)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, accountID uuid.UUID) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, -time.Minute)
	token, err := service.GenerateToken(accountID, "expired@example.com", nil)
	require.NoError(t, err)
	return token
}
