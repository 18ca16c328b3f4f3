package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"studio-booking/internal/handler/httperr"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TokenValidator verifies a bearer token issued by the identity service.
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	tokenValidator TokenValidator
}

const (
	ctxAccountIDKey   = "account_id"
	ctxEmailKey       = "email"
	ctxProviderIDsKey = "provider_ids"

	ProviderIDParam = "providerId"
)

func NewAuthMiddleware(tokenValidator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthenticated, "Access token required", nil)
			return
		}

		claims, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.Mark(err, errs.ErrUnauthenticated), "Invalid or expired token", nil)
			return
		}

		SetIdentity(c, claims.AccountID, claims.Email, claims.ProviderIDs)
		c.Next()
	}
}

// RequireProvider lets the request through only when the :providerId path
// parameter is one of the studios in the caller's token. Use after RequireAuth.
func (m *AuthMiddleware) RequireProvider() gin.HandlerFunc {
	return func(c *gin.Context) {
		providerID, err := uuid.Parse(c.Param(ProviderIDParam))
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, errs.Validation("invalid provider id"), "Invalid provider ID format", nil)
			return
		}

		if !slices.Contains(GetProviderIDs(c), providerID) {
			httperr.AbortWithError(c, http.StatusForbidden, errs.ErrAccessDenied, "Not allowed to act for this provider", nil)
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetAccountID(c *gin.Context) (uuid.UUID, bool) {
	accountID, exists := c.Get(ctxAccountIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := accountID.(uuid.UUID)
	return id, ok
}

func GetEmail(c *gin.Context) string {
	return c.GetString(ctxEmailKey)
}

func GetProviderIDs(c *gin.Context) []uuid.UUID {
	v, exists := c.Get(ctxProviderIDsKey)
	if !exists {
		return nil
	}
	ids, _ := v.([]uuid.UUID)
	return ids
}

// SetIdentity stores a verified identity on the context. Tests use it to
// stand in for RequireAuth.
func SetIdentity(c *gin.Context, accountID uuid.UUID, email string, providerIDs []uuid.UUID) {
	c.Set(ctxAccountIDKey, accountID)
	c.Set(ctxEmailKey, email)
	c.Set(ctxProviderIDsKey, providerIDs)
}
