package http

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"pehlione.com/storefront/internal/config"
	"pehlione.com/storefront/internal/http/cartcookie"
	"pehlione.com/storefront/internal/http/handlers"
	"pehlione.com/storefront/internal/http/middleware"
	"pehlione.com/storefront/internal/modules/cart"
	"pehlione.com/storefront/internal/modules/products"
	"pehlione.com/storefront/internal/observability"
	"pehlione.com/storefront/internal/storage"
)

// Deps is everything the router needs. Repos are interfaces so tests can
// run the full engine without MySQL.
type Deps struct {
	Config    config.Config
	Logger    *slog.Logger
	Products  products.Repository
	CartStore cart.Store
	Storage   storage.Storage
}

// NewRouterFromDB wires the gorm repositories.
func NewRouterFromDB(cfg config.Config, l *slog.Logger, db *gorm.DB, st storage.Storage) *gin.Engine {
	return NewRouter(Deps{
		Config:    cfg,
		Logger:    l,
		Products:  products.NewGormRepo(db),
		CartStore: cart.NewRepo(db),
		Storage:   st,
	})
}

func NewRouter(d Deps) *gin.Engine {
	observability.RegisterMetrics()

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Logger),
		middleware.Logger(d.Logger),
		middleware.Metrics(),
		middleware.ErrorHandler(d.Logger),
	)
	if len(d.Config.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.Config.CORSOrigins,
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	if local, ok := d.Storage.(*storage.Local); ok {
		r.Static(local.URLPrefix, local.BaseDir)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	catalog := handlers.NewCatalog(d.Products, d.Storage, d.Logger)
	ck := cartcookie.New(d.Config.CartCookieSecret, d.Config.CartCookieName, d.Config.CookieSecure)

	productsH := handlers.NewProductsHandler(catalog, d.Config.DefaultCurrency)
	cartH := handlers.NewCartHandler(catalog, cart.NewService(d.CartStore, d.Config.DefaultCurrency), ck, d.Logger)

	api := r.Group("/api")
	api.GET("/products", productsH.List)
	api.GET("/products/:slug", productsH.Show)
	api.POST("/products/:slug/options", productsH.ChangeOption)
	api.GET("/cart", cartH.Get)
	api.POST("/cart/items", cartH.Add)

	return r
}
