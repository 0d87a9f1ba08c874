package config

import (
	"fmt"
	"os"
	"time"

	"github.com/jokehub/jokehub/internal/common/constants"
	commonerrors "github.com/jokehub/jokehub/internal/common/errors"
)

type Config struct {
	HTTPPort       string
	DatabaseURL    string
	SessionSecret  string
	SessionTTL     time.Duration
	RequestTimeout time.Duration
}

// Load reads the process configuration from the environment. The session
// secret signs every cookie the service issues, so its absence refuses
// startup rather than degrading to an unsigned session.
func Load() (Config, error) {
	sessionSecret, err := mustEnv("SESSION_SECRET")
	if err != nil {
		return Config{}, err
	}

	if len(sessionSecret) < constants.SessionSecretMinLength {
		return Config{}, fmt.Errorf("%w: got %d bytes", commonerrors.ErrSessionSecretTooShort, len(sessionSecret))
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:       getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:    databaseURL,
		SessionSecret:  sessionSecret,
		SessionTTL:     getDurationEnv("SESSION_TTL", constants.SessionTTL),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", commonerrors.ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
