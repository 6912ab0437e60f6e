package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jeevankiran1503/Prodigy-FS-03/models"
	"github.com/Jeevankiran1503/Prodigy-FS-03/security"
	"github.com/Jeevankiran1503/Prodigy-FS-03/services"
)

// Context keys set by RequireSession.
const (
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// SessionValidator is satisfied by *services.AuthService.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*services.Session, error)
}

// RequireSession rejects requests without a valid session cookie and stores the
// caller's id and role on the context.
func RequireSession(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := sessions.ValidateSession(c.Request.Context(), security.SessionToken(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": services.MsgNotAuthorized})
			return
		}

		c.Set(UserIDKey, session.UserID)
		c.Set(RoleKey, session.Role)
		c.Next()
	}
}

// RequireRole must run after RequireSession.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}
		c.Next()
	}
}

// UserID returns the id stored by RequireSession, or "".
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

func Role(c *gin.Context) models.Role {
	role, _ := c.Get(RoleKey)
	r, _ := role.(models.Role)
	return r
}
