package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Meseret1G/inventory-management-system/api/controllers"
	"github.com/Meseret1G/inventory-management-system/api/middleware"
	authsvc "github.com/Meseret1G/inventory-management-system/internal/auth"
	categorysvc "github.com/Meseret1G/inventory-management-system/internal/categories"
	productsvc "github.com/Meseret1G/inventory-management-system/internal/products"
	stocksvc "github.com/Meseret1G/inventory-management-system/internal/stock"
	"github.com/Meseret1G/inventory-management-system/pkg/auth/session"
	"github.com/Meseret1G/inventory-management-system/pkg/config"
	"github.com/Meseret1G/inventory-management-system/pkg/db"
	"github.com/Meseret1G/inventory-management-system/pkg/logger"
	"github.com/Meseret1G/inventory-management-system/pkg/metrics"
	redisclient "github.com/Meseret1G/inventory-management-system/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	DBPinger        db.Pinger
	RedisClient     *redisclient.Client
	SessionChecker  session.AccessSessionChecker
	AuthService     authsvc.Service
	CategoryService categorysvc.Service
	ProductService  productsvc.Service
	StockService    stocksvc.Service
	Registry        *prometheus.Registry
	HTTPMetrics     *metrics.HTTPMetrics
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
	)

	// A nil *Client would still wrap into a non-nil interface, so only
	// hand the readiness check a pinger when the client really exists.
	var redisPinger redisclient.Pinger
	if p.RedisClient != nil {
		redisPinger = p.RedisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DBPinger, redisPinger))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(p.AuthService, logg))
		r.Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, p.SessionChecker, logg)).
			Post("/logout", controllers.AuthLogout(p.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionChecker, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(p.ProductService, logg))
			r.Get("/{productId}", controllers.ProductDetail(p.ProductService, logg))
			r.Get("/{productId}/movements", controllers.ProductMovements(p.StockService, logg))
			r.Post("/{productId}/adjust-stock", controllers.ProductAdjustStock(p.StockService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSuperuser(logg))
				r.Post("/", controllers.ProductCreate(p.ProductService, logg))
				r.Put("/{productId}", controllers.ProductUpdate(p.ProductService, logg))
				r.Patch("/{productId}", controllers.ProductUpdate(p.ProductService, logg))
				r.Delete("/{productId}", controllers.ProductDelete(p.ProductService, logg))
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(p.CategoryService, logg))
			r.Get("/{categoryId}", controllers.CategoryDetail(p.CategoryService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSuperuser(logg))
				r.Post("/", controllers.CategoryCreate(p.CategoryService, logg))
				r.Put("/{categoryId}", controllers.CategoryUpdate(p.CategoryService, logg))
				r.Patch("/{categoryId}", controllers.CategoryUpdate(p.CategoryService, logg))
				r.Delete("/{categoryId}", controllers.CategoryDelete(p.CategoryService, logg))
			})
		})

		r.Get("/reports/low-stock", controllers.LowStockReport(p.ProductService, logg))
	})

	return r
}
