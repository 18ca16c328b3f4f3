//go:build unit

package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := NewService("secret", time.Hour)
	accountID := uuid.New()
	studios := []uuid.UUID{uuid.New(), uuid.New()}

	token, err := svc.GenerateToken(accountID, "drummer@example.com", studios)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, "drummer@example.com", claims.Email)
	assert.Equal(t, studios, claims.ProviderIDs)
}

func TestService_ValidateToken_Rejects(t *testing.T) {
	svc := NewService("secret", time.Hour)
	accountID := uuid.New()

	expired, err := NewService("secret", -time.Minute).GenerateToken(accountID, "", nil)
	require.NoError(t, err)

	otherKey, err := NewService("other", time.Hour).GenerateToken(accountID, "", nil)
	require.NoError(t, err)

	noAccount, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	unsigned, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, Claims{AccountID: accountID}).
		SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "expired", token: expired, want: ErrExpiredToken},
		{name: "wrong key", token: otherKey, want: ErrInvalidToken},
		{name: "missing account", token: noAccount, want: ErrInvalidToken},
		{name: "alg none", token: unsigned, want: ErrInvalidToken},
		{name: "garbage", token: "not.a.jwt", want: ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
