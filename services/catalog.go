package services

import (
	"context"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Jeevankiran1503/Prodigy-FS-03/imagestore"
	"github.com/Jeevankiran1503/Prodigy-FS-03/logging"
	"github.com/Jeevankiran1503/Prodigy-FS-03/models"
	"github.com/Jeevankiran1503/Prodigy-FS-03/store"
)

const (
	MsgImageRequired   = "Image upload failed. Please select a file."
	MsgProductNotFound = "Product not found"
)

// Catalog event types published after a successful mutation.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

type CatalogEvent struct {
	Type      string          `json:"type"`
	ProductID string          `json:"productId"`
	Product   *models.Product `json:"product,omitempty"`
}

// Publisher receives catalog events, e.g. to push them to websocket clients.
type Publisher interface {
	Publish(event CatalogEvent)
}

// ImageStore persists uploaded images and returns the URL to store on the product.
type ImageStore interface {
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
}

// ImageUpload is an uploaded image file.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// ProductInput holds product fields as submitted by a form. Sizes and Colors may
// hold one comma separated value or several values; see ParseList.
type ProductInput struct {
	Name        string
	Description string
	Price       string
	Category    string
	Sizes       []string
	Colors      []string
	InStock     *bool

	// ImageURL is only used by spreadsheet imports, which reference already
	// hosted images instead of uploading them.
	ImageURL string
}

type CatalogService struct {
	products  store.ProductRepository
	users     store.UserRepository
	images    ImageStore
	publisher Publisher
}

// NewCatalogService wires the catalog. publisher may be nil.
func NewCatalogService(products store.ProductRepository, users store.UserRepository, images ImageStore, publisher Publisher) *CatalogService {
	return &CatalogService{products: products, users: users, images: images, publisher: publisher}
}

// ParseList flattens form values into a trimmed list, splitting each value on
// commas and dropping empty entries.
func ParseList(values []string) []string {
	out := []string{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, validationError("Price must be a non-negative number")
	}
	return price, nil
}

// List returns every product, or only those matching search when it is non-empty.
func (s *CatalogService) List(ctx context.Context, search string) ([]models.Product, error) {
	products, err := s.products.ListProducts(ctx, search)
	if err != nil {
		return nil, upstreamError("Error fetching products", err)
	}
	return products, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundError(MsgProductNotFound)
		}
		return nil, upstreamError("Error fetching product", err)
	}
	return product, nil
}

// Add creates a product from form input and an uploaded image.
func (s *CatalogService) Add(ctx context.Context, in ProductInput, image *ImageUpload) (*models.Product, error) {
	if image == nil || image.Content == nil {
		return nil, validationError(MsgImageRequired)
	}

	product, err := newProduct(in)
	if err != nil {
		return nil, err
	}

	url, err := s.saveImage(ctx, image)
	if err != nil {
		return nil, err
	}
	product.ImageURL = url

	return s.create(ctx, product)
}

// Upsert creates the product when id is empty or unknown and updates it
// otherwise. Used by spreadsheet imports; created reports which path was taken.
func (s *CatalogService) Upsert(ctx context.Context, id string, in ProductInput) (product *models.Product, created bool, err error) {
	if id != "" {
		product, err = s.Update(ctx, id, in, nil)
		if err == nil {
			return product, false, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, false, err
		}
	}

	product, err = newProduct(in)
	if err != nil {
		return nil, false, err
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		return nil, false, validationError("Image URL is required")
	}
	product.ImageURL = strings.TrimSpace(in.ImageURL)

	product, err = s.create(ctx, product)
	if err != nil {
		return nil, false, err
	}
	return product, true, nil
}

func newProduct(in ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || in.Description == "" || strings.TrimSpace(in.Price) == "" || category == "" {
		return nil, validationError("Name, description, price and category are required")
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}

	inStock := true
	if in.InStock != nil {
		inStock = *in.InStock
	}

	return &models.Product{
		Name:        name,
		Description: in.Description,
		Price:       price,
		Category:    category,
		Sizes:       ParseList(in.Sizes),
		Colors:      ParseList(in.Colors),
		InStock:     inStock,
	}, nil
}

func (s *CatalogService) create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := s.products.CreateProduct(ctx, product); err != nil {
		return nil, upstreamError("Error saving product to the database.", err)
	}
	logging.Ctx(ctx).Info().Str("product_id", product.ID).Str("name", product.Name).Msg("product created")
	s.publish(CatalogEvent{Type: EventProductCreated, ProductID: product.ID, Product: product})
	return product, nil
}

// Update applies the non-empty fields of in to product id. Empty strings, an
// empty list and a zero price leave the stored value unchanged.
func (s *CatalogService) Update(ctx context.Context, id string, in ProductInput, image *ImageUpload) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		product.Name = name
	}
	if in.Description != "" {
		product.Description = in.Description
	}
	if strings.TrimSpace(in.Price) != "" {
		price, err := parsePrice(in.Price)
		if err != nil {
			return nil, err
		}
		if price != 0 {
			product.Price = price
		}
	}
	if category := strings.TrimSpace(in.Category); category != "" {
		product.Category = category
	}
	if sizes := ParseList(in.Sizes); len(sizes) > 0 {
		product.Sizes = sizes
	}
	if colors := ParseList(in.Colors); len(colors) > 0 {
		product.Colors = colors
	}
	if in.InStock != nil {
		product.InStock = *in.InStock
	}
	if url := strings.TrimSpace(in.ImageURL); url != "" {
		product.ImageURL = url
	}

	if image != nil && image.Content != nil {
		url, err := s.saveImage(ctx, image)
		if err != nil {
			return nil, err
		}
		product.ImageURL = url
	}

	if err := s.products.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundError(MsgProductNotFound)
		}
		return nil, upstreamError("Error updating product", err)
	}

	s.publish(CatalogEvent{Type: EventProductUpdated, ProductID: product.ID, Product: product})
	return product, nil
}

// Delete removes the product and then pulls it out of every cart. A failed
// cart cleanup is logged only; carts drop unknown products when read.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.products.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundError(MsgProductNotFound)
		}
		return upstreamError("Error deleting product", err)
	}

	removed, err := s.users.RemoveProductFromCarts(ctx, id)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("product_id", id).Msg("failed to remove deleted product from carts")
	} else {
		logging.Ctx(ctx).Info().Str("product_id", id).Int64("cart_lines_removed", removed).Msg("product deleted")
	}

	s.publish(CatalogEvent{Type: EventProductDeleted, ProductID: id})
	return nil
}

func (s *CatalogService) saveImage(ctx context.Context, image *ImageUpload) (string, error) {
	url, err := s.images.Save(ctx, image.Filename, image.Content)
	if err != nil {
		if errors.Is(err, imagestore.ErrUnsupportedFormat) {
			return "", validationError("Unsupported image format")
		}
		return "", upstreamError("Image upload failed", err)
	}
	return url, nil
}

func (s *CatalogService) publish(event CatalogEvent) {
	if s.publisher != nil {
		s.publisher.Publish(event)
	}
}
