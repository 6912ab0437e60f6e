package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jeevankiran1503/Prodigy-FS-03/controllers/apierror"
	"github.com/Jeevankiran1503/Prodigy-FS-03/services"
)

// PUT /api/products/:id
//
// Every field is optional. Empty values, including a price of 0, keep the
// current value.
func UpdateProduct(svc *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		image, file, err := imageFromForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid image upload"})
			return
		}
		if file != nil {
			defer file.Close()
		}

		input, err := productInputFromForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		product, err := svc.Update(c.Request.Context(), c.Param("id"), input, image)
		if err != nil {
			apierror.Respond(c, err, http.StatusBadRequest)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product updated!", "product": product})
	}
}
