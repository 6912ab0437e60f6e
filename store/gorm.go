package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/Jeevankiran1503/Prodigy-FS-03/config"
	"github.com/Jeevankiran1503/Prodigy-FS-03/models"
)

type GormStore struct {
	db *gorm.DB
}

// OpenGorm opens a relational store and auto-migrates its tables.
func OpenGorm(driver, dsn string) (*GormStore, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported gorm driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	if driver == config.DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	}

	s := NewGormStore(db)
	if err := s.Migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Migrate() error {
	if err := s.db.AutoMigrate(&models.User{}, &models.CartItem{}, &models.Product{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

func (s *GormStore) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

func orderedCart(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// ─────────── Users ───────────

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
	return translate(err)
}

func (s *GormStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Cart", orderedCart).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Cart", orderedCart).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) SaveCart(ctx context.Context, user *models.User) error {
	now := time.Now()
	items := make([]models.CartItem, len(user.Cart))
	for i, item := range user.Cart {
		items[i] = models.CartItem{
			UserID:    user.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Position:  i,
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND version = ?", user.ID, user.Version).
			UpdateColumns(map[string]interface{}{
				"version":    gorm.Expr("version + 1"),
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return translate(err)
	}

	user.Cart = items
	user.Version++
	user.UpdatedAt = now
	return nil
}

func (s *GormStore) RemoveProductFromCarts(ctx context.Context, productID string) (int64, error) {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owners := tx.Model(&models.CartItem{}).Select("user_id").Where("product_id = ?", productID)
		if err := tx.Model(&models.User{}).
			Where("id IN (?)", owners).
			UpdateColumn("version", gorm.Expr("version + 1")).Error; err != nil {
			return err
		}

		res := tx.Where("product_id = ?", productID).Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return nil
	})
	return removed, translate(err)
}

// ─────────── Products ───────────

func (s *GormStore) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	return translate(s.db.WithContext(ctx).Create(product).Error)
}

func (s *GormStore) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *GormStore) GetProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, translate(err)
}

func (s *GormStore) ListProducts(ctx context.Context, search string) ([]models.Product, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})
	if search != "" {
		// Postgres ILIKE folds case with the database collation. SQLite LIKE
		// only folds ASCII letters; other characters match exactly.
		op := "LIKE"
		if s.db.Dialector.Name() == "postgres" {
			op = "ILIKE"
		}
		pattern := "%" + escapeLike(search) + "%"
		query = query.Where(
			fmt.Sprintf(`name %[1]s ? ESCAPE '\' OR category %[1]s ? ESCAPE '\' OR description %[1]s ? ESCAPE '\'`, op),
			pattern, pattern, pattern,
		)
	}

	products := []models.Product{}
	err := query.Order("created_at ASC").Find(&products).Error
	return products, translate(err)
}

func (s *GormStore) UpdateProduct(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()
	res := s.db.WithContext(ctx).Model(product).
		Select("name", "description", "price", "category", "sizes", "colors", "image_url", "in_stock", "updated_at").
		Updates(product)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteProduct(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
