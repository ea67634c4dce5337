package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for env-fetcher.
type Config struct {
	ServiceName string
	Env         string
	LogLevel    string

	// Required. Checked in this order; the first missing one aborts Load.
	SecretName string
	Region     string
	OutputPath string

	// Zero keeps the mode of an existing output file.
	OutputFileMode os.FileMode

	// Run metrics are pushed only when PushgatewayURL is set.
	PushgatewayURL string
	PushTimeout    time.Duration
}

// Load loads configuration from environment variables.
//
// The required variables are read from the process environment only. After
// they are resolved, the optional settings may come from the dotenv file named
// by ENV_FILE; it never overrides variables that are already set.
func Load() (*Config, error) {
	secretName, err := RequireEnv("SECRET_NAME")
	if err != nil {
		return nil, err
	}
	region, err := RequireEnv("REGION_NAME")
	if err != nil {
		return nil, err
	}
	outputPath, err := RequireEnv("OUTPUT_PATH")
	if err != nil {
		return nil, err
	}

	if err := loadEnvFile(GetEnv("ENV_FILE", ""), outputPath); err != nil {
		return nil, err
	}

	mode, err := GetEnvFileMode("OUTPUT_FILE_MODE", 0)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServiceName:    GetEnv("SERVICE_NAME", "env-fetcher"),
		Env:            GetEnv("ENV", "prod"),
		LogLevel:       GetEnv("LOG_LEVEL", "info"),
		SecretName:     secretName,
		Region:         region,
		OutputPath:     outputPath,
		OutputFileMode: mode,
		PushgatewayURL: GetEnv("PUSHGATEWAY_URL", ""),
		PushTimeout:    GetEnvDuration("PUSH_TIMEOUT", 5*time.Second),
	}, nil
}

// loadEnvFile loads path into the environment. The output file is refused:
// it holds the previous run's secret.
func loadEnvFile(path, outputPath string) error {
	if path == "" {
		return nil
	}
	if samePath(path, outputPath) {
		return fmt.Errorf("%w: ENV_FILE %s is the OUTPUT_PATH", ErrInvalidEnv, path)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w: load ENV_FILE %s: %v", ErrInvalidEnv, path, err)
	}
	return nil
}

func samePath(a, b string) bool {
	if ia, err := os.Stat(a); err == nil {
		if ib, err := os.Stat(b); err == nil {
			return os.SameFile(ia, ib)
		}
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
