package cartControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Jeevankiran1503/Prodigy-FS-03/controllers/apierror"
	"github.com/Jeevankiran1503/Prodigy-FS-03/middleware"
	"github.com/Jeevankiran1503/Prodigy-FS-03/services"
)

type AddItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateItemInput struct {
	Quantity *int `json:"quantity" binding:"required,min=1"`
}

const (
	msgInvalidBody      = "Invalid request body"
	msgQuantityRequired = "Quantity is required"
	msgQuantityMin      = "Quantity must be at least 1"
)

var addItemMessages = map[string]string{
	"ProductID": "Product ID is required",
	"Quantity":  msgQuantityMin,
}

var updateItemMessages = map[string]string{
	"Quantity.required": msgQuantityRequired,
	"Quantity.min":      msgQuantityMin,
}

// GET /api/cart
func GetCart(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, err := svc.Get(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			apierror.Respond(c, err, http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, lines)
	}
}

// POST /api/cart
//
// Sets the quantity of a product in the cart; a missing quantity means 1.
func AddCartItem(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": apierror.BindMessage(err, msgInvalidBody, addItemMessages)})
			return
		}
		quantity := 1
		if input.Quantity != nil {
			quantity = *input.Quantity
		}

		lines, err := svc.AddOrUpdate(c.Request.Context(), middleware.UserID(c), strings.TrimSpace(input.ProductID), quantity)
		if err != nil {
			apierror.Respond(c, err, http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusCreated, lines)
	}
}

// PUT /api/cart/:productId
func UpdateCartItem(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": apierror.BindMessage(err, msgQuantityRequired, updateItemMessages)})
			return
		}

		lines, err := svc.SetQuantity(c.Request.Context(), middleware.UserID(c), c.Param("productId"), *input.Quantity)
		if err != nil {
			apierror.Respond(c, err, http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, lines)
	}
}

// DELETE /api/cart/:productId
func DeleteCartItem(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, err := svc.Remove(c.Request.Context(), middleware.UserID(c), c.Param("productId"))
		if err != nil {
			apierror.Respond(c, err, http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, lines)
	}
}

// DELETE /api/cart
func ClearCart(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, err := svc.Clear(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			apierror.Respond(c, err, http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, lines)
	}
}
