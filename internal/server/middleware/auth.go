package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AnsarMahir/doc4all-dashboard/internal/auth"
)

const identityKey = "auth.identity"

// Auth verifies the bearer token, checks the route's required role and
// stores the resulting Identity on the request context for handlers to
// pass into services.
func Auth(secret []byte, required auth.Role, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		ident, err := auth.ParseIdentity(raw, secret)
		if err != nil {
			logger.Warn("rejected bearer token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if !ident.HasRole(required) {
			logger.Warn("role mismatch",
				zap.String("required", string(required)),
				zap.String("got", string(ident.Role)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

// IdentityFrom retrieves the authenticated identity stored by Auth.
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return auth.Identity{}, false
	}
	ident, ok := v.(auth.Identity)
	return ident, ok
}
