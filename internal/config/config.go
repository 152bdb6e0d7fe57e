package config

import (
	"fmt"

	pkgconfig "github.com/FarhanaRafi/MarketPlace-MongoDB-BE/pkg/config"
)

// Config holds all configuration for the catalog service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// LinkBaseURL is the externally visible address used when building
	// pagination links. Falls back to http://localhost:<port> when empty.
	LinkBaseURL string `env:"LINK_BASE_URL"`

	// MongoDB
	MongoURL string `env:"MONGO_URL" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB" envDefault:"marketplace"`

	// Media host (external image hosting). When MEDIA_HOST_URL is empty the
	// service falls back to in-memory storage, which keeps local runs and
	// tests off the network.
	MediaHostURL    string `env:"MEDIA_HOST_URL"`
	MediaHostAPIKey string `env:"MEDIA_HOST_API_KEY"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load catalog config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGO_URL is required")
	}
	if cfg.MongoDB == "" {
		return nil, fmt.Errorf("MONGO_DB is required")
	}
	if cfg.MediaHostURL != "" && cfg.MediaHostAPIKey == "" {
		return nil, fmt.Errorf("MEDIA_HOST_API_KEY is required when MEDIA_HOST_URL is set")
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS is required")
	}
	if cfg.OTELSampleRate < 0 || cfg.OTELSampleRate > 1.0 {
		return nil, fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", cfg.OTELSampleRate)
	}
	return cfg, nil
}
