// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/pkg/apperr"
	"github.com/your-org/pos-backend/internal/pkg/auth"
)

const identityKey = "identity"

// Auth requires a bearer token, inspects it and stores the identity on both
// the gin context and the request context so it is forwarded upstream.
func Auth(inspector *auth.TokenInspector) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, apperr.KindUnauthorized, http.StatusUnauthorized, "Authorization header required")
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			abort(c, apperr.KindUnauthorized, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		identity, err := inspector.Inspect(tokenString)
		if err != nil {
			message := "Invalid or expired token"
			if errors.Is(err, auth.ErrTokenExpired) {
				message = "Your session has expired. Please log in again."
			}
			abort(c, apperr.KindUnauthorized, http.StatusUnauthorized, message)
			return
		}

		c.Set(identityKey, identity)
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), identity))

		c.Next()
	}
}

// RequireRole rejects callers whose token carries a role outside roles.
// Opaque tokens carry no role and are left for the bookkeeping API to judge.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[strings.ToLower(r)] = struct{}{}
	}

	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			abort(c, apperr.KindUnauthorized, http.StatusUnauthorized, "Authentication required")
			return
		}

		if identity.Claims != nil {
			if _, permitted := allowed[identity.Role()]; !permitted {
				abort(c, apperr.KindForbidden, http.StatusForbidden, "You are not allowed to do that.")
				return
			}
		}

		c.Next()
	}
}

// GetIdentity extracts the caller identity from gin context
func GetIdentity(c *gin.Context) (*auth.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*auth.Identity)
	return identity, ok
}

func abort(c *gin.Context, kind apperr.Kind, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": message,
		"kind":  kind,
		"level": "error",
	})
}
