package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Jeevankiran1503/Prodigy-FS-03/models"
)

type cartItemRequest struct {
	ProductID string `json:"productId,omitempty"`
	Quantity  int    `json:"quantity"`
}

func (c *Client) FetchCart(ctx context.Context) ([]models.CartLine, error) {
	return c.cartCall(ctx, http.MethodGet, "/cart", nil)
}

// AddToCart sets the quantity of productID, adding the line if needed.
func (c *Client) AddToCart(ctx context.Context, productID string, quantity int) ([]models.CartLine, error) {
	return c.cartCall(ctx, http.MethodPost, "/cart", cartItemRequest{ProductID: productID, Quantity: quantity})
}

func (c *Client) UpdateQuantity(ctx context.Context, productID string, quantity int) ([]models.CartLine, error) {
	return c.cartCall(ctx, http.MethodPut, "/cart/"+url.PathEscape(productID), cartItemRequest{Quantity: quantity})
}

func (c *Client) RemoveFromCart(ctx context.Context, productID string) ([]models.CartLine, error) {
	return c.cartCall(ctx, http.MethodDelete, "/cart/"+url.PathEscape(productID), nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	_, err := c.cartCall(ctx, http.MethodDelete, "/cart", nil)
	return err
}

func (c *Client) cartCall(ctx context.Context, method, path string, body any) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := c.doJSON(ctx, method, path, body, &lines); err != nil {
		if IsUnauthorized(err) {
			c.signedOut()
		}
		return nil, err
	}
	c.State.Cart.set(lines)
	return lines, nil
}
