package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	LogLevel  string
	LogFormat string
	LogFile   string

	TickRate         int
	Headless         bool
	HeadlessDuration time.Duration
	Seed             uint64

	Leash LeashConfig
	Trick TrickConfig
}

// LeashConfig overrides the leash tuning. Zero values are never produced by
// Load; each field falls back to the game default.
type LeashConfig struct {
	SlackLength float64
	MaxLength   float64
	SpringK     float64
	DamperC     float64
	MaxTension  float64
}

type TrickConfig struct {
	BailOnUnfinishedFlip  bool
	BailOnHeldGrab        bool
	UseNoDirectionVariant bool
}

func Load() *Config {
	return &Config{
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		LogFile:          getEnv("LOG_FILE", "skatedog.log"),
		TickRate:         getEnvInt("TICK_RATE", 60),
		Headless:         getEnvBool("HEADLESS", false),
		HeadlessDuration: getEnvDuration("HEADLESS_DURATION", 20*time.Second),
		Seed:             uint64(getEnvInt("SEED", 1)),
		Leash: LeashConfig{
			SlackLength: getEnvFloat("LEASH_SLACK", 2.0),
			MaxLength:   getEnvFloat("LEASH_MAX", 4.5),
			SpringK:     getEnvFloat("LEASH_SPRING_K", 6.0),
			DamperC:     getEnvFloat("LEASH_DAMPER_C", 1.5),
			MaxTension:  getEnvFloat("LEASH_MAX_TENSION", 40.0),
		},
		Trick: TrickConfig{
			BailOnUnfinishedFlip:  getEnvBool("TRICK_BAIL_UNFINISHED_FLIP", true),
			BailOnHeldGrab:        getEnvBool("TRICK_BAIL_HELD_GRAB", false),
			UseNoDirectionVariant: getEnvBool("TRICK_NO_DIRECTION_VARIANT", true),
		},
	}
}

// TickInterval returns the fixed step length derived from TickRate.
func (c *Config) TickInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
