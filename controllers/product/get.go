package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jeevankiran1503/Prodigy-FS-03/controllers/apierror"
	"github.com/Jeevankiran1503/Prodigy-FS-03/services"
)

// GET /api/products/:id
func GetProduct(svc *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			apierror.Respond(c, err, http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
