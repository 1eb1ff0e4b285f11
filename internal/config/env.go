package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read at startup
const (
	EnvAPIBaseURL       = "CLIP_API_BASE_URL"
	EnvMetricsAddr      = "CLIP_METRICS_ADDR"
	EnvLookupTimeoutSec = "CLIP_LOOKUP_TIMEOUT_SECONDS"
)

// LoadEnv reads .env files into the process environment. With no paths,
// ".env" in the working directory is used. A missing file is reported as an
// error that callers may ignore.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	return godotenv.Load(paths...)
}

// GetEnv returns the value of the environment variable named by key, or
// fallback if the variable is unset or empty.
func GetEnv(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}

// GetEnvInt returns the integer value of the environment variable named by
// key, or fallback if the variable is unset, empty, or not a valid integer.
func GetEnvInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}
