package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "public/uploads", cfg.Upload.Directory)
	assert.Equal(t, "/uploads", cfg.Upload.PublicBase)
	assert.Equal(t, int64(5), cfg.Upload.MaxSizeMB)

	assert.Equal(t, "0 * * * *", cfg.Worker.InvoiceSweepSchedule)
	assert.Equal(t, "*/30 * * * *", cfg.Worker.TrackingRefreshSchedule)
	assert.Equal(t, "0 3 * * *", cfg.Worker.TokenCleanupSchedule)

	// Without defaults an unset environment would build a zero-valued
	// limiter that rejects every request.
	assert.Equal(t, float64(50), cfg.RateLimit.GeneralRPS)
	assert.Equal(t, 100, cfg.RateLimit.GeneralBurst)
}

func TestRateLimitDefaultsOverridable(t *testing.T) {
	t.Setenv("RATE_LIMIT_GENERAL_RPS", "5")
	t.Setenv("RATE_LIMIT_GENERAL_BURST", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, float64(5), cfg.RateLimit.GeneralRPS)
	assert.Equal(t, 10, cfg.RateLimit.GeneralBurst)
}

func TestDatabaseDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "app",
		Password: "secret",
		DBName:   "shipping",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=app password=secret dbname=shipping sslmode=disable",
		db.DSN(),
	)
}
