package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bookstocknook/storefront/internal/auth"
	"github.com/bookstocknook/storefront/internal/cart"
	"github.com/bookstocknook/storefront/internal/catalog"
	"github.com/bookstocknook/storefront/internal/event"
	"github.com/bookstocknook/storefront/internal/notify"
	"github.com/bookstocknook/storefront/pkg/health"
	"github.com/bookstocknook/storefront/pkg/middleware"
)

// RouterConfig bundles the dependencies and tunables for the HTTP router.
type RouterConfig struct {
	Catalog  catalog.Provider
	Cart     *cart.Store
	JWT      *auth.JWTManager
	Hints    hintGenerator
	Feed     *notify.Feed
	Notifier notify.Notifier
	Events   *event.Producer // nil disables event publishing
	Health   *health.Handler
	Logger   *slog.Logger

	Environment    string
	SimulatedDelay time.Duration
	HintsRateRPS   int
	HintsRateBurst int
	CORSOrigins    []string
	PprofCIDRs     []string
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.CORSOrigins,
		Environment:    cfg.Environment,
	}))

	// Health check endpoints
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofCIDRs, cfg.Logger)

	catalogHandler := NewCatalogHandler(cfg.Catalog, cfg.Logger)
	cartHandler := NewCartHandler(cfg.Cart, cfg.Catalog, cfg.Logger)
	checkoutHandler := NewCheckoutHandler(cfg.Cart, cfg.Notifier, checkoutEvents(cfg.Events), cfg.SimulatedDelay, cfg.Logger)
	authHandler := NewAuthHandler(cfg.JWT, cfg.Notifier, cfg.SimulatedDelay, cfg.Logger)
	hintsHandler := NewHintsHandler(cfg.Hints, cfg.Notifier, cfg.Logger)
	contactHandler := NewContactHandler(contactEvents(cfg.Events), cfg.Notifier, cfg.Logger)
	notificationsHandler := NewNotificationsHandler(cfg.Feed)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/books", catalogHandler.ListBooks)
		r.Get("/books/featured", catalogHandler.ListFeatured)
		r.Get("/books/popular", catalogHandler.ListPopular)
		r.Get("/books/{slug}", catalogHandler.GetBook)
		r.Get("/categories", catalogHandler.ListCategories)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{bookID}", cartHandler.UpdateQuantity)
			r.Delete("/items/{bookID}", cartHandler.RemoveItem)
		})

		r.Post("/checkout", checkoutHandler.Checkout)

		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/login", authHandler.Login)
		r.Group(func(r chi.Router) {
			r.Use(RequireSession(cfg.JWT))
			r.Get("/auth/session", authHandler.Session)
		})

		// The upstream AI service is metered, so hint requests are rate
		// limited per client IP.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.HintsRateRPS, cfg.HintsRateBurst, cfg.Logger))
			r.Post("/hints", hintsHandler.Generate)
		})

		r.Post("/contact", contactHandler.Submit)

		r.Get("/notifications", notificationsHandler.List)
	})

	return r
}

// checkoutEvents converts the optional producer to the checkout handler's
// interface without wrapping a nil pointer in a non-nil interface.
func checkoutEvents(p *event.Producer) checkoutPublisher {
	if p == nil {
		return nil
	}
	return p
}

func contactEvents(p *event.Producer) contactPublisher {
	if p == nil {
		return nil
	}
	return p
}
