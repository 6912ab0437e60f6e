package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Jeevankiran1503/Prodigy-FS-03/config"
	productcontroller "github.com/Jeevankiran1503/Prodigy-FS-03/controllers/product"
	"github.com/Jeevankiran1503/Prodigy-FS-03/middleware"
	"github.com/Jeevankiran1503/Prodigy-FS-03/models"
	"github.com/Jeevankiran1503/Prodigy-FS-03/services"
)

// SetupAdminRoutes registers catalog maintenance endpoints behind the catalog guard.
func SetupAdminRoutes(app *App, api *gin.RouterGroup) {
	productAdmin := api.Group("/products")
	productAdmin.Use(catalogGuard(app.cfg, app.auth)...)
	{
		productAdmin.POST("/add", productcontroller.CreateProduct(app.catalog))
		productAdmin.PUT("/:id", productcontroller.UpdateProduct(app.catalog))
		productAdmin.DELETE("/:id", productcontroller.DeleteProduct(app.catalog))
		productAdmin.POST("/import", productcontroller.ImportProductsFromExcel(app.catalog))
		productAdmin.GET("/export", productcontroller.ExportProductsToExcel(app.catalog))
	}
}

// catalogGuard is empty unless CATALOG_API_KEY or CATALOG_REQUIRE_ADMIN is set,
// leaving catalog maintenance open.
func catalogGuard(cfg *config.Config, auth *services.AuthService) []gin.HandlerFunc {
	var guard []gin.HandlerFunc
	if cfg.CatalogAPIKey != "" {
		guard = append(guard, middleware.ValidateAPIKey(cfg.CatalogAPIKey))
	}
	if cfg.CatalogRequireAdmin {
		guard = append(guard, middleware.RequireSession(auth), middleware.RequireRole(models.RoleAdmin))
	}
	return guard
}
