package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Jeevankiran1503/Prodigy-FS-03/models"
)

// ProductForm is the multipart body for creating or updating a product. On
// update, empty fields leave the stored value unchanged.
type ProductForm struct {
	Name        string
	Description string
	Price       string
	Category    string
	Sizes       []string
	Colors      []string
	InStock     *bool

	ImageName string
	Image     io.Reader
}

type productResponse struct {
	Message string         `json:"message"`
	Product models.Product `json:"product"`
}

// FetchProducts loads the catalog, filtered by search when it is not empty. On
// failure the stored list is emptied and the error message kept.
func (c *Client) FetchProducts(ctx context.Context, search string) ([]models.Product, error) {
	path := "/products"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}

	c.State.Products.begin()
	var products []models.Product
	err := c.doJSON(ctx, http.MethodGet, path, nil, &products)
	if err != nil {
		products = nil
	}
	c.State.Products.set(products)
	c.State.Products.finish(err)
	return products, err
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	return c.FetchProducts(ctx, query)
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// AddProduct uploads a new product. Image is required by the server.
func (c *Client) AddProduct(ctx context.Context, form ProductForm) (*models.Product, error) {
	return c.sendProduct(ctx, http.MethodPost, "/products/add", form)
}

func (c *Client) UpdateProduct(ctx context.Context, id string, form ProductForm) (*models.Product, error) {
	return c.sendProduct(ctx, http.MethodPut, "/products/"+url.PathEscape(id), form)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	c.State.Products.begin()
	err := c.doJSON(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
	if err == nil {
		c.State.Products.remove(id)
	}
	c.State.Products.finish(err)
	return err
}

func (c *Client) sendProduct(ctx context.Context, method, path string, form ProductForm) (*models.Product, error) {
	c.State.Products.begin()
	product, err := c.postProductForm(ctx, method, path, form)
	if err == nil {
		c.State.Products.apply(*product)
	}
	c.State.Products.finish(err)
	return product, err
}

func (c *Client) postProductForm(ctx context.Context, method, path string, form ProductForm) (*models.Product, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var resp productResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

func (f ProductForm) encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ key, value string }{
		{"name", f.Name},
		{"description", f.Description},
		{"price", f.Price},
		{"category", f.Category},
	}
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		if err := w.WriteField(field.key, field.value); err != nil {
			return nil, "", err
		}
	}
	for _, size := range f.Sizes {
		if err := w.WriteField("sizes", size); err != nil {
			return nil, "", err
		}
	}
	for _, color := range f.Colors {
		if err := w.WriteField("colors", color); err != nil {
			return nil, "", err
		}
	}
	if f.InStock != nil {
		if err := w.WriteField("inStock", strconv.FormatBool(*f.InStock)); err != nil {
			return nil, "", err
		}
	}

	if f.Image != nil {
		name := f.ImageName
		if name == "" {
			name = "image.jpg"
		}
		part, err := w.CreateFormFile("image", name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f.Image); err != nil {
			return nil, "", fmt.Errorf("read image: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
