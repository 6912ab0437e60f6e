package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Jeevankiran1503/Prodigy-FS-03/config"
	"github.com/Jeevankiran1503/Prodigy-FS-03/models"
)

// StoreTestSuite runs the same behaviour checks against every backend.
type StoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	open  func() Store
	reset func(Store)
	store Store
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.open()
	if s.reset != nil {
		s.reset(s.store)
	}
}

func (s *StoreTestSuite) TearDownTest() {
	require.NoError(s.T(), s.store.Close(s.ctx))
}

func (s *StoreTestSuite) newUser(email string) *models.User {
	user := &models.User{Name: "Ada", Email: email, Password: "hash", Role: models.RoleUser}
	require.NoError(s.T(), s.store.CreateUser(s.ctx, user))
	return user
}

func (s *StoreTestSuite) newProduct(name, category, description string) *models.Product {
	product := &models.Product{
		Name:        name,
		Description: description,
		Price:       19.99,
		Category:    category,
		Sizes:       []string{"S", "M"},
		Colors:      []string{"red"},
		ImageURL:    "/uploads/" + name + ".jpg",
		InStock:     true,
	}
	require.NoError(s.T(), s.store.CreateProduct(s.ctx, product))
	return product
}

func (s *StoreTestSuite) TestCreateUser() {
	user := s.newUser("a@x.com")
	s.NotEmpty(user.ID)

	found, err := s.store.GetUserByEmail(s.ctx, "a@x.com")
	s.Require().NoError(err)
	s.Equal(user.ID, found.ID)
	s.Equal(models.RoleUser, found.Role)
	s.Empty(found.Cart)
}

func (s *StoreTestSuite) TestCreateUser_DuplicateEmail() {
	s.newUser("dup@x.com")
	err := s.store.CreateUser(s.ctx, &models.User{Name: "B", Email: "dup@x.com", Password: "h", Role: models.RoleUser})
	s.ErrorIs(err, ErrDuplicate)
}

func (s *StoreTestSuite) TestGetUser_NotFound() {
	_, err := s.store.GetUserByID(s.ctx, uuid.NewString())
	s.ErrorIs(err, ErrNotFound)

	_, err = s.store.GetUserByEmail(s.ctx, "nobody@x.com")
	s.ErrorIs(err, ErrNotFound)
}

func (s *StoreTestSuite) TestEmailIsCaseSensitive() {
	s.newUser("Case@x.com")
	_, err := s.store.GetUserByEmail(s.ctx, "case@x.com")
	s.ErrorIs(err, ErrNotFound)
}

func (s *StoreTestSuite) TestSaveCart_KeepsOrderAndBumpsVersion() {
	user := s.newUser("cart@x.com")
	user.Cart = []models.CartItem{
		{ProductID: "p2", Quantity: 2},
		{ProductID: "p1", Quantity: 1},
	}
	s.Require().NoError(s.store.SaveCart(s.ctx, user))
	s.Equal(int64(1), user.Version)

	found, err := s.store.GetUserByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), found.Version)
	s.Require().Len(found.Cart, 2)
	s.Equal("p2", found.Cart[0].ProductID)
	s.Equal(2, found.Cart[0].Quantity)
	s.Equal("p1", found.Cart[1].ProductID)
}

func (s *StoreTestSuite) TestSaveCart_StaleVersionConflicts() {
	user := s.newUser("race@x.com")

	first, err := s.store.GetUserByID(s.ctx, user.ID)
	s.Require().NoError(err)
	second, err := s.store.GetUserByID(s.ctx, user.ID)
	s.Require().NoError(err)

	first.Cart = []models.CartItem{{ProductID: "p1", Quantity: 1}}
	s.Require().NoError(s.store.SaveCart(s.ctx, first))

	second.Cart = []models.CartItem{{ProductID: "p2", Quantity: 1}}
	s.ErrorIs(s.store.SaveCart(s.ctx, second), ErrVersionConflict)

	found, err := s.store.GetUserByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Require().Len(found.Cart, 1)
	s.Equal("p1", found.Cart[0].ProductID)
}

func (s *StoreTestSuite) TestSaveCart_Empty() {
	user := s.newUser("empty@x.com")
	user.Cart = []models.CartItem{{ProductID: "p1", Quantity: 3}}
	s.Require().NoError(s.store.SaveCart(s.ctx, user))

	user.Cart = nil
	s.Require().NoError(s.store.SaveCart(s.ctx, user))

	found, err := s.store.GetUserByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Empty(found.Cart)
	s.Equal(int64(2), found.Version)
}

func (s *StoreTestSuite) TestSaveCart_DuplicateProductRejected() {
	user := s.newUser("dup@x.com")
	user.Cart = []models.CartItem{{ProductID: "p1", Quantity: 1}, {ProductID: "p1", Quantity: 2}}
	s.ErrorIs(s.store.SaveCart(s.ctx, user), ErrDuplicate)

	found, err := s.store.GetUserByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Empty(found.Cart)
	s.Equal(user.Version, found.Version)
}

func (s *StoreTestSuite) TestRemoveProductFromCarts() {
	u1 := s.newUser("u1@x.com")
	u2 := s.newUser("u2@x.com")
	u3 := s.newUser("u3@x.com")
	u1.Cart = []models.CartItem{{ProductID: "gone", Quantity: 1}, {ProductID: "kept", Quantity: 2}}
	u2.Cart = []models.CartItem{{ProductID: "gone", Quantity: 4}}
	u3.Cart = []models.CartItem{{ProductID: "kept", Quantity: 1}}
	s.Require().NoError(s.store.SaveCart(s.ctx, u1))
	s.Require().NoError(s.store.SaveCart(s.ctx, u2))
	s.Require().NoError(s.store.SaveCart(s.ctx, u3))

	removed, err := s.store.RemoveProductFromCarts(s.ctx, "gone")
	s.Require().NoError(err)
	s.Equal(int64(2), removed)

	found1, err := s.store.GetUserByID(s.ctx, u1.ID)
	s.Require().NoError(err)
	s.Require().Len(found1.Cart, 1)
	s.Equal("kept", found1.Cart[0].ProductID)
	s.Equal(u1.Version+1, found1.Version)

	found2, err := s.store.GetUserByID(s.ctx, u2.ID)
	s.Require().NoError(err)
	s.Empty(found2.Cart)

	found3, err := s.store.GetUserByID(s.ctx, u3.ID)
	s.Require().NoError(err)
	s.Equal(u3.Version, found3.Version, "carts without the product are untouched")
}

func (s *StoreTestSuite) TestProductCRUD() {
	product := s.newProduct("Linen Shirt", "Shirts", "Breathable summer shirt")
	s.NotEmpty(product.ID)

	found, err := s.store.GetProductByID(s.ctx, product.ID)
	s.Require().NoError(err)
	s.Equal("Linen Shirt", found.Name)
	s.Equal([]string{"S", "M"}, found.Sizes)
	s.True(found.InStock)

	found.Price = 25
	found.Colors = []string{"blue", "white"}
	s.Require().NoError(s.store.UpdateProduct(s.ctx, found))

	updated, err := s.store.GetProductByID(s.ctx, product.ID)
	s.Require().NoError(err)
	s.Equal(25.0, updated.Price)
	s.Equal([]string{"blue", "white"}, updated.Colors)

	s.Require().NoError(s.store.DeleteProduct(s.ctx, product.ID))
	_, err = s.store.GetProductByID(s.ctx, product.ID)
	s.ErrorIs(err, ErrNotFound)
	s.ErrorIs(s.store.DeleteProduct(s.ctx, product.ID), ErrNotFound)
}

func (s *StoreTestSuite) TestUpdateProduct_NotFound() {
	err := s.store.UpdateProduct(s.ctx, &models.Product{ID: uuid.NewString(), Name: "x"})
	s.ErrorIs(err, ErrNotFound)
}

func (s *StoreTestSuite) TestGetProductsByIDs() {
	a := s.newProduct("A", "c", "d")
	b := s.newProduct("B", "c", "d")

	products, err := s.store.GetProductsByIDs(s.ctx, []string{a.ID, b.ID, uuid.NewString()})
	s.Require().NoError(err)
	s.Len(products, 2)

	products, err = s.store.GetProductsByIDs(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(products)
}

func (s *StoreTestSuite) TestListProducts_Search() {
	shirt := s.newProduct("Linen Shirt", "Tops", "Light fabric")
	time.Sleep(2 * time.Millisecond)
	jeans := s.newProduct("Denim", "Bottoms", "Classic SHIRT-friendly jeans")
	time.Sleep(2 * time.Millisecond)
	hat := s.newProduct("Sun Hat", "Accessories", "100% straw")
	time.Sleep(2 * time.Millisecond)
	s.newProduct("Scarf", "Accessories", "Wool_blend")

	all, err := s.store.ListProducts(s.ctx, "")
	s.Require().NoError(err)
	s.Require().Len(all, 4)
	s.Equal(shirt.ID, all[0].ID)

	matches, err := s.store.ListProducts(s.ctx, "shirt")
	s.Require().NoError(err)
	s.ElementsMatch([]string{shirt.ID, jeans.ID}, productIDs(matches))

	byCategory, err := s.store.ListProducts(s.ctx, "ACCESS")
	s.Require().NoError(err)
	s.Len(byCategory, 2)

	literal, err := s.store.ListProducts(s.ctx, "100%")
	s.Require().NoError(err)
	s.Equal([]string{hat.ID}, productIDs(literal))

	wildcard, err := s.store.ListProducts(s.ctx, "_")
	s.Require().NoError(err)
	s.Len(wildcard, 1)

	phrase, err := s.store.ListProducts(s.ctx, "linen hat")
	s.Require().NoError(err)
	s.Empty(phrase)
}

func (s *StoreTestSuite) TestListProducts_NonASCII() {
	scarf := s.newProduct("Écharpe", "Accessoires", "Laine mérinos")

	exact, err := s.store.ListProducts(s.ctx, "Écharpe")
	s.Require().NoError(err)
	s.Equal([]string{scarf.ID}, productIDs(exact))

	if _, ok := s.store.(*GormStore); ok {
		// SQLite folds ASCII only, so "É" does not match "é".
		accented, err := s.store.ListProducts(s.ctx, "MÉRINOS")
		s.Require().NoError(err)
		s.Empty(accented)
	}

	ascii, err := s.store.ListProducts(s.ctx, "LAINE")
	s.Require().NoError(err)
	s.Equal([]string{scarf.ID}, productIDs(ascii))
}

func productIDs(products []models.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestGormStoreSuite(t *testing.T) {
	suite.Run(t, &StoreTestSuite{
		open: func() Store {
			dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
			s, err := OpenGorm(config.DriverSQLite, dsn)
			require.NoError(t, err)
			return s
		},
	})
}

func TestMongoStoreSuite(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	suite.Run(t, &StoreTestSuite{
		open: func() Store {
			s, err := OpenMongo(context.Background(), uri, "storefront_test")
			require.NoError(t, err)
			return s
		},
		reset: func(s Store) {
			ms := s.(*MongoStore)
			require.NoError(t, ms.Drop(context.Background()))
			require.NoError(t, ms.Migrate(context.Background()))
		},
	})
}

func TestEscapeLike(t *testing.T) {
	require.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
}
