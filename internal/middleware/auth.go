package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/listingkit/listingkit-backend/internal/service"
	"github.com/listingkit/listingkit-backend/pkg/response"
)

// UserKey is the context key holding the authenticated email
const UserKey = "user"

// TokenVerifier validates bearer tokens
type TokenVerifier interface {
	VerifyToken(token string) (*service.Claims, error)
}

// Auth requires a valid bearer token and stores the caller's email
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			response.Unauthorized(c, "Authorization token required")
			return
		}

		claims, err := verifier.VerifyToken(strings.TrimSpace(token))
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(UserKey, claims.Email)
		c.Next()
	}
}
