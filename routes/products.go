package routes

import (
	"github.com/gin-gonic/gin"

	productcontroller "github.com/Jeevankiran1503/Prodigy-FS-03/controllers/product"
)

// SetupProductRoutes registers the public catalog reads and the live feed.
func SetupProductRoutes(app *App, api *gin.RouterGroup) {
	products := api.Group("/products")
	{
		products.GET("", productcontroller.GetAllProducts(app.catalog))
		products.GET("/ws", app.Feed.Serve())
		products.GET("/:id", productcontroller.GetProduct(app.catalog))
	}
}
