package slider

import (
	"os"
	"strconv"
)

// Config holds tunable parameters for the controller.
// Values can be set via:
//  1. Code (programmatic configuration)
//  2. Environment variables (TIMEAXIS_*)
//
// Precedence: Code > Env Vars > Defaults
type Config struct {
	// Notification bus sizing
	BusBufferSize int  `env:"TIMEAXIS_BUS_BUFFER" default:"64"`      // Per-subscription channel buffer
	BusDropSlow   bool `env:"TIMEAXIS_BUS_DROP_SLOW" default:"false"` // Drop events for slow subscribers

	// Source is the event source label stamped on notifications.
	Source string `env:"TIMEAXIS_SOURCE" default:"controller:TimeSlider"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BusBufferSize: 64,
		BusDropSlow:   false,
		Source:        "controller:TimeSlider",
	}
}

// LoadFromEnv loads configuration from environment variables.
// Returns a Config with defaults, overridden by any TIMEAXIS_* env
// vars found.
func LoadFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TIMEAXIS_BUS_BUFFER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BusBufferSize = n
		}
	}
	if v := os.Getenv("TIMEAXIS_BUS_DROP_SLOW"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.BusDropSlow = b
		}
	}
	if v := os.Getenv("TIMEAXIS_SOURCE"); v != "" {
		cfg.Source = v
	}

	return cfg
}
