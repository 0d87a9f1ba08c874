package config

import (
	"errors"
	"testing"
	"time"

	"github.com/jokehub/jokehub/internal/common/constants"
	commonerrors "github.com/jokehub/jokehub/internal/common/errors"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/jokehub")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.HTTPPort != constants.DefaultHTTPPort {
		t.Errorf("expected default port %s, got %s", constants.DefaultHTTPPort, cfg.HTTPPort)
	}
	if cfg.SessionTTL != constants.SessionTTL {
		t.Errorf("expected default ttl %v, got %v", constants.SessionTTL, cfg.SessionTTL)
	}
	if cfg.SessionSecret != testSecret {
		t.Errorf("unexpected secret %s", cfg.SessionSecret)
	}
}

func TestLoad_MissingSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/jokehub")

	_, err := Load()
	if !errors.Is(err, commonerrors.ErrMissingRequiredEnv) {
		t.Errorf("expected ErrMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_ShortSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "too-short")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/jokehub")

	_, err := Load()
	if !errors.Is(err, commonerrors.ErrSessionSecretTooShort) {
		t.Errorf("expected ErrSessionSecretTooShort, got %v", err)
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	if !errors.Is(err, commonerrors.ErrMissingRequiredEnv) {
		t.Errorf("expected ErrMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/jokehub")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SESSION_TTL", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.HTTPPort != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.HTTPPort)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("expected ttl 1h, got %v", cfg.SessionTTL)
	}
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/jokehub")
	t.Setenv("SESSION_TTL", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.SessionTTL != constants.SessionTTL {
		t.Errorf("expected fallback ttl %v, got %v", constants.SessionTTL, cfg.SessionTTL)
	}
}
