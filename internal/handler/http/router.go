package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ariyanssg/rizz-pharmacy/internal/service"
	"github.com/ariyanssg/rizz-pharmacy/pkg/health"
	"github.com/ariyanssg/rizz-pharmacy/pkg/middleware"
)

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	cartService *service.CartService,
	catalogService *service.CatalogService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cors middleware.CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cors))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	cartHandler := NewCartHandler(cartService, logger)
	catalogHandler := NewCatalogHandler(catalogService, logger)

	// Cart API endpoints: every route is scoped to the caller's session.
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionIDFromHeader)

		r.Get("/", cartHandler.GetCart)
		r.Get("/summary", cartHandler.GetSummary)
		r.Delete("/", cartHandler.ClearCart)

		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{productId}", cartHandler.SetQuantity)
		r.Delete("/items/{productId}", cartHandler.RemoveItem)
	})

	// Catalog API endpoints: read-only, no session required.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{id}", catalogHandler.GetProduct)
		r.Get("/categories", catalogHandler.ListCategories)
	})

	return r
}
