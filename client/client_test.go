package client

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jeevankiran1503/Prodigy-FS-03/config"
	"github.com/Jeevankiran1503/Prodigy-FS-03/imagestore"
	"github.com/Jeevankiran1503/Prodigy-FS-03/models"
	"github.com/Jeevankiran1503/Prodigy-FS-03/routes"
	"github.com/Jeevankiran1503/Prodigy-FS-03/services"
	"github.com/Jeevankiran1503/Prodigy-FS-03/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AppEnv:           "test",
		DBDriver:         config.DriverSQLite,
		SQLitePath:       fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		JWTSecret:        "client-test-secret-0123456789abcdef",
		SessionTTL:       time.Hour,
		BcryptCost:       4,
		UploadsDir:       t.TempDir(),
		UploadsURLPrefix: "/uploads",
		ImageMaxWidth:    800,
		AuthRateLimit:    1000,
		AuthRateBurst:    1000,
	}

	st, err := store.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	images, err := imagestore.NewLocalStore(cfg.UploadsDir, cfg.UploadsURLPrefix, cfg.ImageMaxWidth)
	require.NoError(t, err)

	app, err := routes.NewApp(cfg, st, images)
	require.NoError(t, err)
	t.Cleanup(app.Feed.Close)

	srv := httptest.NewServer(app.Engine)
	t.Cleanup(srv.Close)
	return srv
}

func pngImage(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return &buf
}

func TestAuthStateFollowsSession(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	c, err := New(srv.URL + "/")
	require.NoError(t, err)
	assert.False(t, c.State.Auth.SignedIn())

	_, err = c.CheckAuth(ctx)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	user, err := c.Register(ctx, services.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	require.NotNil(t, c.State.Auth.User())
	assert.Equal(t, user.ID, c.State.Auth.User().ID)

	sess, err := c.CheckAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sess.UserID)
	assert.Equal(t, models.RoleUser, sess.Role)

	require.NoError(t, c.Logout(ctx))
	assert.False(t, c.State.Auth.SignedIn())
	assert.Nil(t, c.State.Auth.User())

	_, err = c.CheckAuth(ctx)
	assert.True(t, IsUnauthorized(err))
}

func TestLoginFailureKeepsServerMessage(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	c, err := New(srv.URL)
	require.NoError(t, err)
	_, err = c.Register(ctx, services.RegisterInput{Name: "Bo", Email: "bo@example.com", Password: "right"})
	require.NoError(t, err)

	other, err := New(srv.URL)
	require.NoError(t, err)
	_, err = other.Login(ctx, services.LoginInput{Email: "bo@example.com", Password: "wrong"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, services.MsgInvalidCredentials, apiErr.Message)
	assert.False(t, other.State.Auth.SignedIn())

	user, err := other.Login(ctx, services.LoginInput{Email: "bo@example.com", Password: "right"})
	require.NoError(t, err)
	assert.Equal(t, "Bo", user.Name)
	assert.True(t, other.State.Auth.SignedIn())
}

func TestCatalogAndCartFlow(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	c, err := New(srv.URL)
	require.NoError(t, err)
	_, err = c.Register(ctx, services.RegisterInput{Name: "Cy", Email: "cy@example.com", Password: "pw"})
	require.NoError(t, err)

	inStock := false
	shirt, err := c.AddProduct(ctx, ProductForm{
		Name:        "Linen Shirt",
		Description: "Light summer shirt",
		Price:       "39.5",
		Category:    "tops",
		Sizes:       []string{"S, M", "L"},
		Colors:      []string{"white"},
		InStock:     &inStock,
		ImageName:   "shirt.png",
		Image:       pngImage(t),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "M", "L"}, shirt.Sizes)
	assert.False(t, shirt.InStock)
	assert.True(t, strings.HasPrefix(shirt.ImageURL, "/uploads/"))

	scarf, err := c.AddProduct(ctx, ProductForm{
		Name: "Wool Scarf", Description: "Warm", Price: "20", Category: "accessories",
		ImageName: "scarf.png", Image: pngImage(t),
	})
	require.NoError(t, err)
	assert.Len(t, c.State.Products.Products(), 2)

	found, err := c.SearchProducts(ctx, "WOOL")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, scarf.ID, found[0].ID)
	assert.Len(t, c.State.Products.Products(), 1)
	assert.False(t, c.State.Products.Loading())

	updated, err := c.UpdateProduct(ctx, shirt.ID, ProductForm{Price: "45"})
	require.NoError(t, err)
	assert.Equal(t, 45.0, updated.Price)
	assert.Equal(t, "Linen Shirt", updated.Name)

	_, err = c.AddToCart(ctx, shirt.ID, 2)
	require.NoError(t, err)
	lines, err := c.AddToCart(ctx, scarf.ID, 1)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, shirt.ID, lines[0].Product.ID)
	assert.Equal(t, 3, c.State.Cart.Count())
	assert.InDelta(t, 110.0, c.State.Cart.Total(), 0.001)

	lines, err = c.UpdateQuantity(ctx, scarf.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, lines[1].Quantity)

	_, err = c.UpdateQuantity(ctx, uuid.NewString(), 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	lines, err = c.RemoveFromCart(ctx, shirt.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, scarf.ID, lines[0].Product.ID)

	require.NoError(t, c.DeleteProduct(ctx, scarf.ID))
	_, err = c.GetProduct(ctx, scarf.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	lines, err = c.FetchCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = c.AddToCart(ctx, shirt.ID, 1)
	require.NoError(t, err)
	require.NoError(t, c.ClearCart(ctx))
	assert.Empty(t, c.State.Cart.Lines())
	assert.Zero(t, c.State.Cart.Count())
}

func TestCartCallsWithoutSession(t *testing.T) {
	srv := newTestServer(t)

	c, err := New(srv.URL)
	require.NoError(t, err)
	_, err = c.FetchCart(context.Background())
	assert.True(t, IsUnauthorized(err))
	assert.Empty(t, c.State.Cart.Lines())
}

func TestFetchProductsFailureRecordsError(t *testing.T) {
	srv := newTestServer(t)
	c, err := New(srv.URL)
	require.NoError(t, err)

	srv.Close()
	_, err = c.FetchProducts(context.Background(), "")
	require.Error(t, err)
	assert.NotEmpty(t, c.State.Products.Err())
	assert.Empty(t, c.State.Products.Products())
	assert.False(t, c.State.Products.Loading())
}

func TestAddProductWithoutImage(t *testing.T) {
	srv := newTestServer(t)
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.AddProduct(context.Background(), ProductForm{Name: "Hat", Description: "d", Price: "5", Category: "c"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, services.MsgImageRequired, apiErr.Message)
	assert.Equal(t, services.MsgImageRequired, c.State.Products.Err())
}

func TestAPIKeyHeaderIsSent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-API-KEY")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Product deleted and carts updated!"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithAPIKey("k-123"))
	require.NoError(t, err)
	require.NoError(t, c.DeleteProduct(context.Background(), "p1"))
	assert.Equal(t, "k-123", got)
}

func TestProductFormEncoding(t *testing.T) {
	inStock := true
	form := ProductForm{
		Name:    "Cap",
		Price:   "12",
		Sizes:   []string{"S", "M"},
		InStock: &inStock,
		Image:   strings.NewReader("gifdata"),
	}

	body, contentType, err := form.encode()
	require.NoError(t, err)

	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	mr := multipart.NewReader(body, params["boundary"])
	parsed, err := mr.ReadForm(1 << 20)
	require.NoError(t, err)

	assert.Equal(t, []string{"Cap"}, parsed.Value["name"])
	assert.Equal(t, []string{"S", "M"}, parsed.Value["sizes"])
	assert.Equal(t, []string{"true"}, parsed.Value["inStock"])
	assert.NotContains(t, parsed.Value, "description")
	require.Len(t, parsed.File["image"], 1)
	assert.Equal(t, "image.jpg", parsed.File["image"][0].Filename)
}
