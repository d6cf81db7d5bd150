package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aulagen/aulagen-backend/internal/pkg/ctxutil"
	"github.com/aulagen/aulagen-backend/internal/platform/logger"
)

type AuthMiddleware struct {
	log *logger.Logger
}

func NewAuthMiddleware(log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "AuthMiddleware")}
}

// RequireToken attaches the caller's Google OAuth bearer token to the request
// context. The token is passed through to the Classroom and Drive clients
// untouched; validation happens at Google, not here.
func (am *AuthMiddleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing or invalid token", "code": "unauthorized"},
			})
			return
		}
		rd := &ctxutil.RequestData{
			RequestID:   uuid.NewString(),
			AccessToken: token,
		}
		c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), rd))
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
