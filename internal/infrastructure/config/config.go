package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/velopago/riskengine/internal/domain/service"
)

// Config holds all configuration for the risk engine.
type Config struct {
	GRPCPort    string
	HTTPPort    string
	KafkaBroker string
	KafkaTopic  string
	Environment string
	LogLevel    string
	LogFormat   string

	// JWTSecret enables request authentication on the daemon when set.
	// Empty means the gRPC surface runs unauthenticated.
	JWTSecret string
	JWTIssuer string

	// OTLPEndpoint enables trace export when set.
	OTLPEndpoint string

	// Scoring is the rule engine configuration: built-in defaults with the
	// decision thresholds optionally overridden from the environment.
	Scoring service.Config
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		GRPCPort:     getEnv("GRPC_PORT", "8090"),
		HTTPPort:     getEnv("HTTP_PORT", "9090"),
		KafkaBroker:  getEnv("KAFKA_BROKER", "localhost:9092"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "risk.events"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		JWTIssuer:    getEnv("JWT_ISSUER", "riskengine"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		Scoring:      service.DefaultConfig(),
	}
	applyScoringOverrides(&cfg.Scoring)
	return cfg
}

// applyScoringOverrides reads the decision threshold overrides. A value that
// is unset or does not parse as an integer leaves the built-in default in
// place; overrides never fail startup.
func applyScoringOverrides(scoring *service.Config) {
	if v, ok := intEnv("REJECT_AT"); ok {
		scoring.RejectAt = v
	}
	if v, ok := intEnv("REVIEW_AT"); ok {
		scoring.ReviewAt = v
	}
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func intEnv(key string) (int, bool) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}
