package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sonbt56/ice4j/timing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, timing.Default(), cfg.Timing)
	assert.False(t, cfg.KeepAfterResponse)
}

func TestFromEnvFallsBackOnAbsence(t *testing.T) {
	clearEnv(t)
	cfg := FromEnv()
	assert.Equal(t, Default(), cfg)
}

func TestFromEnvParsesValidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvMaxRetransmissions, "3")
	t.Setenv(EnvOriginalWaitMillis, "50")
	t.Setenv(EnvMaxWaitMillis, "400")
	t.Setenv(EnvKeepAfterResponse, "true")

	cfg := FromEnv()
	assert.Equal(t, 3, cfg.Timing.MaxRetransmissions)
	assert.Equal(t, 50*time.Millisecond, cfg.Timing.OriginalWait)
	assert.Equal(t, 400*time.Millisecond, cfg.Timing.MaxWait)
	assert.True(t, cfg.KeepAfterResponse)
}

func TestFromEnvIgnoresInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvMaxRetransmissions, "not-a-number")
	t.Setenv(EnvMaxWaitMillis, "-5")
	t.Setenv(EnvKeepAfterResponse, "maybe")

	cfg := FromEnv()
	assert.Equal(t, Default(), cfg)
}

func TestFromEnvRevertsWhenMaxWaitBelowOriginal(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvOriginalWaitMillis, "500")
	t.Setenv(EnvMaxWaitMillis, "100")

	cfg := FromEnv()
	// MAX_WAIT_INTERVAL is rejected for being below ORIGINAL_WAIT_INTERVAL,
	// so MaxWait keeps its default while OriginalWait picks up the override.
	assert.Equal(t, 500*time.Millisecond, cfg.Timing.OriginalWait)
	assert.Equal(t, timing.DefaultMaxWait, cfg.Timing.MaxWait)
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvMaxRetransmissions, EnvOriginalWaitMillis, EnvMaxWaitMillis, EnvKeepAfterResponse} {
		orig, had := os.LookupEnv(key)
		os.Unsetenv(key)
		if had {
			t.Cleanup(func() { os.Setenv(key, orig) })
		}
	}
}
