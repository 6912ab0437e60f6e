package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Jeevankiran1503/Prodigy-FS-03/config"
	productcontroller "github.com/Jeevankiran1503/Prodigy-FS-03/controllers/product"
	"github.com/Jeevankiran1503/Prodigy-FS-03/middleware"
	"github.com/Jeevankiran1503/Prodigy-FS-03/security"
	"github.com/Jeevankiran1503/Prodigy-FS-03/services"
	"github.com/Jeevankiran1503/Prodigy-FS-03/store"
)

// App is the wired HTTP application plus the pieces main needs to run and stop it.
type App struct {
	Engine      *gin.Engine
	Feed        *productcontroller.FeedHub
	AuthLimiter *middleware.RateLimiter
	Tokens      *security.TokenManager

	auth    *services.AuthService
	catalog *services.CatalogService
	cart    *services.CartService
	cookie  security.CookieConfig
	cfg     *config.Config
}

// NewApp builds the services on top of st and images and registers every route.
func NewApp(cfg *config.Config, st store.Store, images services.ImageStore) (*App, error) {
	tokens, err := security.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		return nil, err
	}

	feed := productcontroller.NewFeedHub(cfg.CORSOrigins)
	authService := services.NewAuthService(st, tokens, cfg.BcryptCost)
	authService.SetAdminSignup(!cfg.DisableAdminSignup)
	app := &App{
		Feed:        feed,
		AuthLimiter: middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst),
		Tokens:      tokens,
		auth:        authService,
		catalog:     services.NewCatalogService(st, st, images, feed),
		cart:        services.NewCartService(st, st),
		cookie:      security.CookieConfig{Secure: cfg.CookieSecure, TTL: cfg.SessionTTL},
		cfg:         cfg,
	}

	r := gin.New()
	r.MaxMultipartMemory = 32 << 20
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(), middleware.Metrics())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	if strings.HasPrefix(cfg.UploadsURLPrefix, "/") {
		r.Static(cfg.UploadsURLPrefix, cfg.UploadsDir)
	}
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	app.Engine = r
	SetupRoutes(app, r.Group("/api"))
	return app, nil
}

// SetupRoutes wires the auth, cart and product route groups under api.
func SetupRoutes(app *App, api *gin.RouterGroup) {
	SetupAuthRoutes(app, api)
	SetupUserRoutes(app, api)
	SetupProductRoutes(app, api)
	SetupAdminRoutes(app, api)
}

// corsConfig allows credentials from the configured origins. An empty list or
// "*" reflects any origin, since a literal wildcard cannot carry cookies.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-API-KEY", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	wildcard := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
	}
	if wildcard {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
