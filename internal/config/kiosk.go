package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// KioskConfig configures the headless kiosk terminal (cmd/kiosk).
type KioskConfig struct {
	APIURL         string
	RequestTimeout time.Duration
}

// LoadKiosk reads kiosk terminal settings from the environment and validates them.
func LoadKiosk() (*KioskConfig, error) {
	cfg := &KioskConfig{}

	cfg.APIURL = strings.TrimRight(os.Getenv("KIOSK_API_URL"), "/")
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("KIOSK_API_URL is required")
	}

	timeout, err := parseTimeout(os.Getenv("REQUEST_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	cfg.RequestTimeout = timeout

	return cfg, nil
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 10 * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid REQUEST_TIMEOUT %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %v", d)
	}
	return d, nil
}
