package mandi

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// FromEnv builds a Config from MANDI_* environment variables. Unset
// variables keep their defaults, so an empty environment yields the zero
// Config.
//
//	MANDI_BASE_URL        backend address
//	MANDI_TIMEOUT_SECONDS per-request timeout
//	MANDI_DEV             "true" for debug logging
func FromEnv() Config {
	cfg := Config{
		BaseURL: strings.TrimSpace(os.Getenv("MANDI_BASE_URL")),
	}

	if raw := os.Getenv("MANDI_TIMEOUT_SECONDS"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			cfg.Timeout = time.Duration(seconds) * time.Second
		}
	}

	if dev, err := strconv.ParseBool(os.Getenv("MANDI_DEV")); err == nil {
		cfg.Development = dev
	}

	return cfg
}
