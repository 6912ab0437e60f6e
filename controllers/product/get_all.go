package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jeevankiran1503/Prodigy-FS-03/controllers/apierror"
	"github.com/Jeevankiran1503/Prodigy-FS-03/services"
)

// GET /api/products?search=
//
// The search term is matched literally, ignoring case, against name, category
// and description.
func GetAllProducts(svc *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context(), c.Query("search"))
		if err != nil {
			apierror.Respond(c, err, http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
