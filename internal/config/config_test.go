package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 60, cfg.TickRate)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 20*time.Second, cfg.HeadlessDuration)
	assert.InDelta(t, 2.0, cfg.Leash.SlackLength, 1e-9)
	assert.InDelta(t, 4.5, cfg.Leash.MaxLength, 1e-9)
	assert.True(t, cfg.Trick.BailOnUnfinishedFlip)
	assert.False(t, cfg.Trick.BailOnHeldGrab)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TICK_RATE", "30")
	t.Setenv("HEADLESS", "true")
	t.Setenv("HEADLESS_DURATION", "5s")
	t.Setenv("LEASH_SPRING_K", "9.5")
	t.Setenv("TRICK_BAIL_HELD_GRAB", "1")

	cfg := Load()

	assert.Equal(t, 30, cfg.TickRate)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 5*time.Second, cfg.HeadlessDuration)
	assert.InDelta(t, 9.5, cfg.Leash.SpringK, 1e-9)
	assert.True(t, cfg.Trick.BailOnHeldGrab)
}

func TestLoad_MalformedFallsBack(t *testing.T) {
	t.Setenv("TICK_RATE", "fast")
	t.Setenv("LEASH_MAX", "long")
	t.Setenv("HEADLESS", "maybe")

	cfg := Load()

	assert.Equal(t, 60, cfg.TickRate)
	assert.InDelta(t, 4.5, cfg.Leash.MaxLength, 1e-9)
	assert.False(t, cfg.Headless)
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{60, time.Second / 60},
		{20, 50 * time.Millisecond},
		{0, time.Second / 60},
	}
	for _, tt := range tests {
		cfg := &Config{TickRate: tt.rate}
		assert.Equal(t, tt.want, cfg.TickInterval())
	}
}
