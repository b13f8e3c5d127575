package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velopago/riskengine/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, "8090", cfg.GRPCPort)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "risk.events", cfg.KafkaTopic)
	assert.Equal(t, ":8090", cfg.GRPCAddress())
	assert.Equal(t, ":9090", cfg.HTTPAddress())

	// Scoring defaults come straight from the built-in configuration.
	assert.Equal(t, 4, cfg.Scoring.ReviewAt)
	assert.Equal(t, 10, cfg.Scoring.RejectAt)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("GRPC_PORT", "7001")
	t.Setenv("KAFKA_BROKER", "kafka-1:9092")

	cfg := config.Load()

	assert.Equal(t, "7001", cfg.GRPCPort)
	assert.Equal(t, "kafka-1:9092", cfg.KafkaBroker)
}

func TestLoad_ScoringThresholdOverrides(t *testing.T) {
	t.Run("valid integers override the defaults", func(t *testing.T) {
		t.Setenv("REJECT_AT", "12")
		t.Setenv("REVIEW_AT", "6")

		cfg := config.Load()

		assert.Equal(t, 12, cfg.Scoring.RejectAt)
		assert.Equal(t, 6, cfg.Scoring.ReviewAt)
	})

	t.Run("non-numeric values keep the defaults", func(t *testing.T) {
		t.Setenv("REJECT_AT", "strict")
		t.Setenv("REVIEW_AT", "4.5")

		cfg := config.Load()

		assert.Equal(t, 10, cfg.Scoring.RejectAt)
		assert.Equal(t, 4, cfg.Scoring.ReviewAt)
	})

	t.Run("negative thresholds are accepted as-is", func(t *testing.T) {
		t.Setenv("REVIEW_AT", "-1")

		cfg := config.Load()

		assert.Equal(t, -1, cfg.Scoring.ReviewAt)
	})
}
