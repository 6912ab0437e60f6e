package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Jeevankiran1503/Prodigy-FS-03/auth"
	"github.com/Jeevankiran1503/Prodigy-FS-03/middleware"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints. Register and login are
// rate limited per client IP.
func SetupAuthRoutes(app *App, api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		limited := app.AuthLimiter.Middleware()
		authGroup.POST("/register", limited, auth.Register(app.auth, app.cookie))
		authGroup.POST("/login", limited, auth.Login(app.auth, app.cookie))

		authGroup.GET("/check-auth", middleware.RequireSession(app.auth), auth.CheckAuth())
		authGroup.POST("/logout", auth.Logout(app.cookie))
	}
}
