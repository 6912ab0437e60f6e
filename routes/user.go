package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/Jeevankiran1503/Prodigy-FS-03/controllers/cart"
	"github.com/Jeevankiran1503/Prodigy-FS-03/middleware"
)

// SetupUserRoutes registers the session-protected "/api/cart" endpoints.
func SetupUserRoutes(app *App, api *gin.RouterGroup) {
	cartGroup := api.Group("/cart")
	cartGroup.Use(middleware.RequireSession(app.auth))
	{
		cartGroup.GET("", cartControllers.GetCart(app.cart))                      // GET /api/cart
		cartGroup.POST("", cartControllers.AddCartItem(app.cart))                 // POST /api/cart
		cartGroup.DELETE("", cartControllers.ClearCart(app.cart))                 // DELETE /api/cart
		cartGroup.PUT("/:productId", cartControllers.UpdateCartItem(app.cart))    // PUT /api/cart/:productId
		cartGroup.DELETE("/:productId", cartControllers.DeleteCartItem(app.cart)) // DELETE /api/cart/:productId
	}
}
