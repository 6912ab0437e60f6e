// Package store persists identities (with their embedded carts) and products.
//
// Two backends implement Store: GormStore (Postgres, or SQLite for local runs and
// tests) and MongoStore. Both return the sentinel errors below so callers never
// depend on driver errors.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Jeevankiran1503/Prodigy-FS-03/config"
	"github.com/Jeevankiran1503/Prodigy-FS-03/models"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicate       = errors.New("duplicate key")
	ErrVersionConflict = errors.New("version conflict")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// SaveCart replaces the user's cart if user.Version still matches the stored
	// version, then increments user.Version. ErrVersionConflict otherwise, and
	// ErrDuplicate if the cart lists a product twice.
	SaveCart(ctx context.Context, user *models.User) error

	// RemoveProductFromCarts pulls productID out of every cart and returns the
	// number of cart lines removed, which is also the number of carts changed.
	RemoveProductFromCarts(ctx context.Context, productID string) (int64, error)
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	GetProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error)

	// ListProducts returns products in insertion order. A non-empty search keeps
	// only products whose name, category or description contains it, ignoring case.
	ListProducts(ctx context.Context, search string) ([]models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

type Store interface {
	UserRepository
	ProductRepository
	Close(ctx context.Context) error
}

// Open connects to the backend selected by cfg.DBDriver and prepares its schema.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres, config.DriverSQLite:
		dsn := cfg.DatabaseURL
		if cfg.DBDriver == config.DriverSQLite {
			dsn = cfg.SQLitePath
		}
		s, err := OpenGorm(cfg.DBDriver, dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverMongo:
		s, err := OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// escapeLike escapes LIKE wildcards so the search term matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
