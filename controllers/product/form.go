package productcontroller

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Jeevankiran1503/Prodigy-FS-03/services"
)

// productInputFromForm reads product fields from a multipart or urlencoded form.
func productInputFromForm(c *gin.Context) (services.ProductInput, error) {
	input := services.ProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
		Category:    c.PostForm("category"),
		Sizes:       c.PostFormArray("sizes"),
		Colors:      c.PostFormArray("colors"),
	}
	if raw := strings.TrimSpace(c.PostForm("inStock")); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			return input, fmt.Errorf("invalid inStock %q", raw)
		}
		input.InStock = &inStock
	}
	return input, nil
}

// imageFromForm returns the uploaded "image" file, or nil when none was sent.
// The caller must close the returned file.
func imageFromForm(c *gin.Context) (*services.ImageUpload, multipart.File, error) {
	header, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return &services.ImageUpload{Filename: header.Filename, Content: file}, file, nil
}
