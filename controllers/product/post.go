package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jeevankiran1503/Prodigy-FS-03/controllers/apierror"
	"github.com/Jeevankiran1503/Prodigy-FS-03/services"
)

// POST /api/products/add (multipart form with an "image" file)
func CreateProduct(svc *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		image, file, err := imageFromForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": services.MsgImageRequired})
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

		product, err := svc.Add(c.Request.Context(), input, image)
		if err != nil {
			apierror.Respond(c, err, http.StatusBadRequest)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Product added successfully!",
			"product": product,
		})
	}
}
