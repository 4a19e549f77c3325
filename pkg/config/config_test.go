package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, BackendDynamoDB, cfg.Backend)
	assert.Equal(t, "prize-pools", cfg.Tables.Pools)
	assert.Equal(t, "settlements", cfg.Tables.Settlements)
	assert.Equal(t, int64(80), cfg.Pool.Split.First)
	assert.Equal(t, 30, cfg.Pool.CarryWindowDays)
	assert.Equal(t, int32(500), cfg.Settlement.BatchSize)
	assert.Equal(t, int32(6), cfg.TokenDecimals)
	assert.Equal(t, 5*time.Minute, cfg.DrawGrace)
	assert.False(t, cfg.LocalCron)
	assert.Equal(t, 10*time.Minute, cfg.SettlementRetryDelay)
	assert.Equal(t, 48, cfg.SettlementMaxAttempts)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"STORAGE_BACKEND":             "Postgres",
		"DATABASE_URL":                "postgres://x",
		"SPLIT_FIRST_PERCENT":         "70",
		"SPLIT_SECOND_PERCENT":        "20",
		"RETRY_BASE_DELAY":            "10ms",
		"SETTLEMENT_READS_PER_SECOND": "2.5",
		"LOCAL_CRON":                  "true",
		"DYNAMODB_TICKETS_TABLE_NAME": " custom-tickets ",
	}))
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.Backend)
	assert.Equal(t, "postgres://x", cfg.DatabaseURL)
	assert.Equal(t, int64(70), cfg.Pool.Split.First)
	assert.Equal(t, int64(20), cfg.Pool.Split.Second)
	assert.Equal(t, 10*time.Millisecond, cfg.Pool.BaseDelay)
	assert.Equal(t, 2.5, cfg.Settlement.ReadsPerSecond)
	assert.True(t, cfg.LocalCron)
	assert.Equal(t, "custom-tickets", cfg.Tables.Tickets)
}

func TestFromEnvErrors(t *testing.T) {
	_, err := FromEnv(envOf(map[string]string{
		"STORAGE_BACKEND":     "mongo",
		"CARRY_WINDOW_DAYS":   "thirty",
		"DRAW_GRACE":          "5",
		"SPLIT_FIRST_PERCENT": "90",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_BACKEND")
	assert.Contains(t, err.Error(), "CARRY_WINDOW_DAYS")
	assert.Contains(t, err.Error(), "DRAW_GRACE")
	assert.Contains(t, err.Error(), "SPLIT_*_PERCENT")
}
