package config

import (
	"errors"
)

// Sentinel errors returned by Load. Callers match them with errors.Is.
var (
	// ErrInvalidConfig indicates the loaded configuration failed validation.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig indicates a provider could not be read or parsed.
	ErrLoadConfig = errors.New("load config failed")
)
