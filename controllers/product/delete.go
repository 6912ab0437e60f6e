package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jeevankiran1503/Prodigy-FS-03/controllers/apierror"
	"github.com/Jeevankiran1503/Prodigy-FS-03/services"
)

// DELETE /api/products/:id
func DeleteProduct(svc *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			apierror.Respond(c, err, http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted and carts updated!"})
	}
}
