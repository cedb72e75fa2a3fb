package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/showcase_api/internal/utils"
)

// JWTMiddleware authenticates session tokens issued by the auth provider.
type JWTMiddleware struct {
	secret      string
	rateLimiter *InvalidAuthRateLimiter
}

// NewJWTMiddleware constructs a JWTMiddleware verifying tokens with secret.
func NewJWTMiddleware(secret string, rateLimiter *InvalidAuthRateLimiter) *JWTMiddleware {
	return &JWTMiddleware{secret: secret, rateLimiter: rateLimiter}
}

// Handle returns a Gin middleware function that requires a valid Bearer token.
func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.handleAuthError(c, "UNAUTHORIZED", "Missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.handleAuthError(c, "UNAUTHORIZED", "Invalid authorization header")
			return
		}

		claims, err := utils.ValidateJWT(m.secret, parts[1])
		if err != nil {
			m.handleAuthError(c, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set("user_id", claims.UserID())
		c.Set("email", claims.Email)
		c.Next()
	}
}

func (m *JWTMiddleware) handleAuthError(c *gin.Context, code, message string) {
	if m.rateLimiter != nil && !m.rateLimiter.Allow(c.ClientIP()) {
		utils.Error(c, 429, "TOO_MANY_REQUESTS", "Too many invalid authentication attempts")
		c.Abort()
		return
	}

	utils.Error(c, 401, code, message)
	c.Abort()
}

// GetUserID returns the authenticated user id from context.
func GetUserID(c *gin.Context) string {
	return c.GetString("user_id")
}
