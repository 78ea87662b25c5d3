package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const adminTokenKey = "admin_token"

// SessionVerifier validates an admin session token.
type SessionVerifier interface {
	Verify(token string) error
}

// RequireAdmin rejects requests without a live admin session.
func RequireAdmin(v SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if err := v.Verify(token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      err.Error(),
				"code":       "unauthorized",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Set(adminTokenKey, token)
		c.Next()
	}
}

// BearerToken reads "Authorization: Bearer <token>".
func BearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
