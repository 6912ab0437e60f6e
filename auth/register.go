package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jeevankiran1503/Prodigy-FS-03/controllers/apierror"
	"github.com/Jeevankiran1503/Prodigy-FS-03/security"
	"github.com/Jeevankiran1503/Prodigy-FS-03/services"
)

var registerMessages = map[string]string{
	"Name":     services.MsgRegisterRequired,
	"Email":    services.MsgRegisterRequired,
	"Password": services.MsgRegisterRequired,
	"Role":     services.MsgInvalidRole,
}

// POST /api/auth/register
func Register(svc *services.AuthService, cookie security.CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": apierror.BindMessage(err, "Invalid request body", registerMessages)})
			return
		}

		res, err := svc.Register(c.Request.Context(), input)
		if err != nil {
			apierror.Respond(c, err, http.StatusBadRequest)
			return
		}

		security.SetSessionCookie(c, cookie, res.Token)
		c.JSON(http.StatusCreated, res.User)
	}
}
