package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

var (
	// ErrMissingEnv is returned when a required environment variable is unset or empty.
	ErrMissingEnv = errors.New("missing required configuration")

	// ErrInvalidEnv is returned when an environment variable cannot be parsed.
	ErrInvalidEnv = errors.New("invalid configuration")
)

// GetEnv returns the environment variable value for key, or def if unset or empty.
func GetEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// RequireEnv returns the environment variable value for key, or an error wrapping
// ErrMissingEnv that names the variable when it is unset or empty.
func RequireEnv(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%w: %s environment variable is required", ErrMissingEnv, key)
	}
	return val, nil
}

// GetEnvDuration returns the environment variable value for key parsed as time.Duration, or def if unset or invalid.
func GetEnvDuration(key string, def time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return def
}

// GetEnvFileMode returns key parsed as an octal permission (e.g. "0640"), or def if unset.
// An unparsable value is an error, not a fallback to def.
func GetEnvFileMode(key string, def os.FileMode) (os.FileMode, error) {
	val := os.Getenv(key)
	if val == "" {
		return def, nil
	}
	m, err := strconv.ParseUint(val, 8, 32)
	if err != nil || m > 0o777 {
		return 0, fmt.Errorf("%w: %s=%q is not an octal file mode", ErrInvalidEnv, key, val)
	}
	return os.FileMode(m), nil
}
