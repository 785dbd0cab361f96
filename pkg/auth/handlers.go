package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName = "skytrip_session"
	cookieMaxAge      = 86400 // 24 hours
)

// RegisterRoutes wires the login flow under /auth.
func RegisterRoutes(router *gin.Engine, manager *Manager) {
	router.GET("/auth/login", LoginHandler(manager))
	router.GET("/auth/callback", CallbackHandler(manager))
	router.GET("/auth/me", RequireSession(manager), MeHandler())
	router.GET("/auth/logout", LogoutHandler(manager))
}

// LoginHandler redirects to the identity provider's login page.
func LoginHandler(manager *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authURL, err := manager.LoginURL()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to start sign-in."})
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, authURL)
	}
}

// CallbackHandler completes the code flow and sets the session cookie.
func CallbackHandler(manager *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("code")
		state := c.Query("state")
		if code == "" || state == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing code or state"})
			return
		}

		session, err := manager.HandleCallback(c.Request.Context(), code, state)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign-in failed. Please try again."})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookieName, session.ID, cookieMaxAge, "/", "", false, true)

		c.JSON(http.StatusOK, gin.H{
			"message": "authenticated",
			"email":   session.User.Email,
		})
	}
}

func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionFromContext(c)
		if session == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
			return
		}
		c.JSON(http.StatusOK, session.User)
	}
}

func LogoutHandler(manager *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(sessionCookieName); err == nil {
			manager.Logout(id)
		}
		c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "signed out"})
	}
}
