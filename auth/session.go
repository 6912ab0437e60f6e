package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jeevankiran1503/Prodigy-FS-03/middleware"
	"github.com/Jeevankiran1503/Prodigy-FS-03/security"
	"github.com/Jeevankiran1503/Prodigy-FS-03/services"
)

// GET /api/auth/check-auth, behind middleware.RequireSession.
func CheckAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, services.Session{
			UserID: middleware.UserID(c),
			Role:   middleware.Role(c),
		})
	}
}

// POST /api/auth/logout
//
// Tokens are not tracked server-side, so logging out only clears the cookie; a
// copied token stays valid until it expires.
func Logout(cookie security.CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		security.ClearSessionCookie(c, cookie)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}
