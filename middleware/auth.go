package middleware

import (
	"net/http"

	"equiptrack/services/auth"
	"equiptrack/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionAuthMiddleware gates protected routes on a valid session cookie. It
// fails closed: a missing cookie, unknown token, or expired session all end the
// request with 401 and the SPA handles the redirect to login. On success the
// resolved user ID is placed in the context under "userID".
func SessionAuthMiddleware(sessions *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.SessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		userID, err := sessions.Validate(token)
		if err != nil {
			utils.GetLogger().Error("SessionAuthMiddleware: session lookup failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
