package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/config"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/event"
	handler "github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/handler/http"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/repository/mongodb"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/service"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/storage"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/storage/mediahost"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/storage/memory"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/pkg/health"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/pkg/httpclient"
	pkgkafka "github.com/FarhanaRafi/MarketPlace-MongoDB-BE/pkg/kafka"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/pkg/middleware"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/pkg/tracing"
)

// ServiceName identifies this service in logs, metrics, and traces.
const ServiceName = "catalog-service"

// App wires together all dependencies and runs the catalog service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	mongoClient    *mongo.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
// MongoDB is connected and pinged before anything else so a dead database
// fails startup instead of the first request.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Initialize tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    ServiceName,
		ServiceVersion: "1.0.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Connect to MongoDB.
	mongoClient, err := mongodb.Connect(ctx, cfg.MongoURL)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	logger.Info("connected to MongoDB",
		slog.String("database", cfg.MongoDB),
	)

	db := mongoClient.Database(cfg.MongoDB)

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Image storage backend.
	var store storage.Storage
	if cfg.MediaHostURL != "" {
		client := httpclient.New(httpclient.DefaultConfig())
		cbClient := httpclient.NewCircuitBreakerClient(client,
			httpclient.DefaultCircuitBreakerConfig("media-host"), logger)
		store = mediahost.New(mediahost.Config{
			BaseURL: cfg.MediaHostURL,
			APIKey:  cfg.MediaHostAPIKey,
		}, cbClient, logger)
		logger.Info("media host storage initialized", slog.String("base_url", cfg.MediaHostURL))
	} else {
		baseURL := cfg.LinkBaseURL
		if baseURL == "" {
			baseURL = fmt.Sprintf("http://localhost:%d", cfg.HTTPPort)
		}
		store = memory.New(baseURL)
		logger.Warn("MEDIA_HOST_URL not set, using in-memory image storage")
	}

	// Build the dependency graph.
	repo := mongodb.NewProductRepository(db)
	eventProducer := event.NewProducer(producer, logger)
	productService := service.NewProductService(repo, store, eventProducer, logger)
	reviewService := service.NewReviewService(repo, eventProducer, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("mongodb", func(ctx context.Context) error {
		return mongoClient.Ping(ctx, readpref.Primary())
	})

	linkBaseURL := cfg.LinkBaseURL
	if linkBaseURL == "" {
		linkBaseURL = fmt.Sprintf("http://localhost:%d", cfg.HTTPPort)
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	// HTTP router.
	router := handler.NewRouter(handler.RouterConfig{
		ProductService: productService,
		ReviewService:  reviewService,
		HealthHandler:  healthHandler,
		ServiceName:    ServiceName,
		LinkBaseURL:    linkBaseURL,
		CORS:           corsCfg,
		Logger:         logger,
	})
	handler.LogRoutes(router, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		mongoClient:    mongoClient,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Close Kafka producer.
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	// Flush pending spans.
	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	// Disconnect from MongoDB.
	if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
		a.logger.Error("mongodb disconnect error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
