package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
http:
  addr: ":8081"
auth:
  jwt_secret: file-secret
  refresh_ttl_days: 21
login:
  max_per_minute: 5
cleanup:
  interval: 90m
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":8081" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Auth.JWTSecret != "file-secret" {
		t.Fatalf("unexpected jwt secret: %s", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.RefreshTTLDays != 21 {
		t.Fatalf("unexpected refresh_ttl_days override: %d", cfg.Auth.RefreshTTLDays)
	}
	if cfg.Login.MaxPerMinute != 5 {
		t.Fatalf("unexpected login.max_per_minute override: %d", cfg.Login.MaxPerMinute)
	}
	if cfg.Cleanup.Interval.String() != "1h30m0s" {
		t.Fatalf("unexpected cleanup interval: %s", cfg.Cleanup.Interval)
	}

	if cfg.Auth.JWTAccessTTL.String() != "15m0s" {
		t.Fatalf("jwt_access_ttl default should stay 15m, got %s", cfg.Auth.JWTAccessTTL)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Fatalf("bcrypt_cost default should stay 10, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Login.MaxPer10Sec != 6 {
		t.Fatalf("login.max_per_10sec default should stay 6, got %d", cfg.Login.MaxPer10Sec)
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config with missing file: %v", err)
	}

	if cfg.HTTP.Addr != ":3000" {
		t.Fatalf("unexpected default http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Auth.RefreshTTLDays != 10 {
		t.Fatalf("unexpected default refresh_ttl_days: %d", cfg.Auth.RefreshTTLDays)
	}
	if cfg.Auth.JWTAccessTTL.String() != "15m0s" {
		t.Fatalf("unexpected default jwt_access_ttl: %s", cfg.Auth.JWTAccessTTL)
	}
	if cfg.Cleanup.Interval.String() != "6h0m0s" {
		t.Fatalf("unexpected default cleanup interval: %s", cfg.Cleanup.Interval)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("REFRESH_TTL_DAYS", "3")
	t.Setenv("JWT_ACCESS_TTL", "5m")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Auth.JWTSecret != "env-secret" {
		t.Fatalf("unexpected jwt secret: %s", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.RefreshTTLDays != 3 {
		t.Fatalf("unexpected refresh_ttl_days: %d", cfg.Auth.RefreshTTLDays)
	}
	if cfg.Auth.JWTAccessTTL.String() != "5m0s" {
		t.Fatalf("unexpected jwt_access_ttl: %s", cfg.Auth.JWTAccessTTL)
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV",
		"HTTP_ADDR",
		"HTTP_READ_TIMEOUT",
		"HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT",
		"LOG_LEVEL",
		"POSTGRES_DSN",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"JWT_SECRET",
		"JWT_ACCESS_TTL",
		"REFRESH_TTL_DAYS",
		"BCRYPT_COST",
		"LOGIN_MAX_PER_MINUTE",
		"LOGIN_MAX_PER_10SEC",
		"CLEANUP_INTERVAL",
	} {
		t.Setenv(key, "")
	}
}
