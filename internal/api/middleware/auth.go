package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yashovardan8harit/caption-backend/internal/auth"
	"github.com/yashovardan8harit/caption-backend/internal/logger"
)

const userIDKey = "user_id"

// RequireAuth returns a middleware that verifies the bearer credential and
// injects the resolved user ID into the request context. Requests without a
// valid credential are rejected before any handler work.
// Parameters:
//   - verifier: identity verifier.
// Returns:
//   - gin.HandlerFunc: middleware handler.
func RequireAuth(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header missing",
			})
			return
		}

		// Accept both "Bearer <token>" and a raw token
		token := header
		if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
			token = header[7:]
		}

		userID, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "Token verification failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		c.Set(userIDKey, userID)
		ctx := logger.WithField(c.Request.Context(), logger.FieldUserID, userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// UserID extracts the verified user ID set by RequireAuth.
// Parameters:
//   - c: Gin request context.
// Returns:
//   - string: user ID, empty when the request is unauthenticated.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
