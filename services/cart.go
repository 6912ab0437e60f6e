package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Jeevankiran1503/Prodigy-FS-03/logging"
	"github.com/Jeevankiran1503/Prodigy-FS-03/metrics"
	"github.com/Jeevankiran1503/Prodigy-FS-03/models"
	"github.com/Jeevankiran1503/Prodigy-FS-03/store"
)

const MsgItemNotInCart = "Item not found in cart"

// maxCartAttempts bounds how often a cart mutation is replayed after losing a
// version race with a concurrent write to the same identity.
const maxCartAttempts = 3

type CartService struct {
	users    store.UserRepository
	products store.ProductRepository
}

func NewCartService(users store.UserRepository, products store.ProductRepository) *CartService {
	return &CartService{users: users, products: products}
}

// Get returns the user's cart with products resolved. Lines whose product no
// longer exists are left out.
func (s *CartService) Get(ctx context.Context, userID string) ([]models.CartLine, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, user.Cart)
}

// AddOrUpdate sets the quantity of productID, appending a new line when the
// product is not in the cart yet. Quantities are replaced, never summed.
func (s *CartService) AddOrUpdate(ctx context.Context, userID, productID string, quantity int) ([]models.CartLine, error) {
	if _, err := s.products.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundError(MsgProductNotFound)
		}
		return nil, upstreamError("Server Error", err)
	}

	return s.mutate(ctx, "add", userID, func(user *models.User) (bool, error) {
		if i := models.FindCartItem(user.Cart, productID); i >= 0 {
			user.Cart[i].Quantity = quantity
		} else {
			user.Cart = append(user.Cart, models.CartItem{ProductID: productID, Quantity: quantity})
		}
		return true, nil
	})
}

// SetQuantity changes the quantity of a line already in the cart.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID string, quantity int) ([]models.CartLine, error) {
	return s.mutate(ctx, "update", userID, func(user *models.User) (bool, error) {
		i := models.FindCartItem(user.Cart, productID)
		if i < 0 {
			return false, notFoundError(MsgItemNotInCart)
		}
		user.Cart[i].Quantity = quantity
		return true, nil
	})
}

// Remove drops productID from the cart. Removing an absent product is not an error.
func (s *CartService) Remove(ctx context.Context, userID, productID string) ([]models.CartLine, error) {
	return s.mutate(ctx, "remove", userID, func(user *models.User) (bool, error) {
		i := models.FindCartItem(user.Cart, productID)
		if i < 0 {
			return false, nil
		}
		user.Cart = append(user.Cart[:i], user.Cart[i+1:]...)
		return true, nil
	})
}

func (s *CartService) Clear(ctx context.Context, userID string) ([]models.CartLine, error) {
	return s.mutate(ctx, "clear", userID, func(user *models.User) (bool, error) {
		if len(user.Cart) == 0 {
			return false, nil
		}
		user.Cart = []models.CartItem{}
		return true, nil
	})
}

// mutate runs a read-modify-write of the user's cart. apply reports whether it
// changed anything; unchanged carts are not written back.
func (s *CartService) mutate(ctx context.Context, op, userID string, apply func(*models.User) (bool, error)) (lines []models.CartLine, err error) {
	defer func() { metrics.RecordCartMutation(op, err) }()

	for attempt := 1; ; attempt++ {
		user, err := s.loadUser(ctx, userID)
		if err != nil {
			return nil, err
		}

		changed, err := apply(user)
		if err != nil {
			return nil, err
		}
		if !changed {
			return s.resolve(ctx, user.Cart)
		}

		err = s.users.SaveCart(ctx, user)
		if err == nil {
			return s.resolve(ctx, user.Cart)
		}
		if !errors.Is(err, store.ErrVersionConflict) {
			return nil, upstreamError("Server Error", err)
		}

		metrics.CartVersionConflicts.Inc()
		logging.Ctx(ctx).Debug().Str("user_id", userID).Str("op", op).Int("attempt", attempt).Msg("cart version conflict")
		if attempt == maxCartAttempts {
			return nil, upstreamError("Server Error", fmt.Errorf("cart %s gave up after %d attempts: %w", op, attempt, err))
		}
	}
}

func (s *CartService) loadUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, authError(MsgNotAuthorized, err)
		}
		return nil, upstreamError("Server Error", err)
	}
	return user, nil
}

func (s *CartService) resolve(ctx context.Context, cart []models.CartItem) ([]models.CartLine, error) {
	lines := make([]models.CartLine, 0, len(cart))
	if len(cart) == 0 {
		return lines, nil
	}

	ids := make([]string, len(cart))
	for i, item := range cart {
		ids[i] = item.ProductID
	}
	products, err := s.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, upstreamError("Server Error", err)
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, item := range cart {
		if p, ok := byID[item.ProductID]; ok {
			lines = append(lines, models.CartLine{Product: p, Quantity: item.Quantity})
		}
	}
	return lines, nil
}
