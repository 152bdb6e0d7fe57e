package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/service"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/pkg/health"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/pkg/middleware"
)

// RouterConfig holds the dependencies and settings for the HTTP router.
type RouterConfig struct {
	ProductService *service.ProductService
	ReviewService  *service.ReviewService
	HealthHandler  *health.Handler
	ServiceName    string
	LinkBaseURL    string
	CORS           middleware.CORSConfig
	Logger         *slog.Logger
}

// NewRouter creates a chi router with all catalog routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))

	// Health check endpoints
	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	productHandler := NewProductHandler(cfg.ProductService, cfg.LinkBaseURL, cfg.Logger)
	reviewHandler := NewReviewHandler(cfg.ReviewService, cfg.Logger)

	r.Route("/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", productHandler.ListProducts)
		r.Post("/", productHandler.CreateProduct)
		r.Get("/{productId}", productHandler.GetProduct)
		r.Put("/{productId}", productHandler.UpdateProduct)
		r.Delete("/{productId}", productHandler.DeleteProduct)

		r.Post("/{productId}/uploadImage", productHandler.UploadImage)

		r.Route("/{productId}/reviews", func(r chi.Router) {
			r.Get("/", reviewHandler.ListReviews)
			r.Post("/", reviewHandler.AddReview)
			r.Get("/{reviewId}", reviewHandler.GetReview)
			r.Put("/{reviewId}", reviewHandler.UpdateReview)
			r.Delete("/{reviewId}", reviewHandler.RemoveReview)
		})
	})

	return r
}

// LogRoutes walks the router and logs every registered route pattern. Useful at
// startup to confirm the final route table.
func LogRoutes(router http.Handler, logger *slog.Logger) {
	r, ok := router.(chi.Routes)
	if !ok {
		return
	}

	_ = chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		logger.Info("route registered",
			slog.String("method", method),
			slog.String("route", route),
		)
		return nil
	})
}
