package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const sessionContextKey = "auth_session"

// RequireSession rejects requests without a live session cookie. This is the
// only authentication signal the rest of the application consumes.
func RequireSession(manager *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "You must be signed in to book flights.",
			})
			return
		}

		session, err := manager.Session(id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "You must be signed in to book flights.",
			})
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// SessionFromContext returns the session attached by RequireSession, or nil.
func SessionFromContext(c *gin.Context) *Session {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	session, ok := value.(*Session)
	if !ok {
		return nil
	}
	return session
}
