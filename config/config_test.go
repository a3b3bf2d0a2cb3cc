package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetDurationFallsBackOnBadInput(t *testing.T) {
	t.Setenv("HISTORY_TIMEOUT", "soon")
	assert.Equal(t, 15*time.Second, getDuration("HISTORY_TIMEOUT", 15*time.Second))

	t.Setenv("HISTORY_TIMEOUT", "-2s")
	assert.Equal(t, 15*time.Second, getDuration("HISTORY_TIMEOUT", 15*time.Second))

	t.Setenv("HISTORY_TIMEOUT", "3s")
	assert.Equal(t, 3*time.Second, getDuration("HISTORY_TIMEOUT", 15*time.Second))
}

func TestGetIntRejectsNonPositive(t *testing.T) {
	t.Setenv("RECOMMENDATION_LIMIT", "0")
	assert.Equal(t, 6, getInt("RECOMMENDATION_LIMIT", 6))

	t.Setenv("RECOMMENDATION_LIMIT", "ten")
	assert.Equal(t, 6, getInt("RECOMMENDATION_LIMIT", 6))

	t.Setenv("RECOMMENDATION_LIMIT", "9")
	assert.Equal(t, 9, getInt("RECOMMENDATION_LIMIT", 6))
}

func TestLoadEnvReadsHistorySettings(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/gallery")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("HISTORY_SOURCE", "REMOTE")
	t.Setenv("HISTORY_BASE_URL", "http://orders.internal")
	t.Setenv("HISTORY_TIMEOUT", "2s")

	LoadEnv()

	assert.Equal(t, HistorySourceRemote, HISTORY_SOURCE)
	assert.Equal(t, "http://orders.internal", HISTORY_BASE_URL)
	assert.Equal(t, 2*time.Second, HISTORY_TIMEOUT)
	assert.Equal(t, 6, RECOMMENDATION_LIMIT)
}
