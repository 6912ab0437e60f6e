package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jeevankiran1503/Prodigy-FS-03/controllers/apierror"
	"github.com/Jeevankiran1503/Prodigy-FS-03/metrics"
	"github.com/Jeevankiran1503/Prodigy-FS-03/security"
	"github.com/Jeevankiran1503/Prodigy-FS-03/services"
)

// POST /api/auth/login
func Login(svc *services.AuthService, cookie security.CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			metrics.AuthFailures.WithLabelValues("login").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"message": services.MsgInvalidCredentials})
			return
		}

		res, err := svc.Login(c.Request.Context(), input)
		if err != nil {
			// Bad credentials are a 400, same as the other login failures.
			if errors.Is(err, services.ErrAuth) {
				c.JSON(http.StatusBadRequest, gin.H{"message": services.MsgInvalidCredentials})
				return
			}
			apierror.Respond(c, err, http.StatusInternalServerError)
			return
		}

		security.SetSessionCookie(c, cookie, res.Token)
		c.JSON(http.StatusOK, res.User)
	}
}
