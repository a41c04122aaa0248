package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := LoadConfig()
	if cfg.Port != "5000" {
		t.Errorf("expected default port 5000, got %s", cfg.Port)
	}
	if cfg.DatabaseDriver != "sqlite" || cfg.DatabasePath != "fester.db" {
		t.Errorf("unexpected database defaults: %s %s", cfg.DatabaseDriver, cfg.DatabasePath)
	}
	if cfg.TokenTTL != 168*time.Hour {
		t.Errorf("expected 7 day token TTL, got %s", cfg.TokenTTL)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Errorf("expected JWT secret from env, got %q", cfg.JWTSecret)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "host=db user=fester dbname=fester")
	t.Setenv("TOKEN_TTL", "24h")

	cfg := LoadConfig()
	if cfg.Port != "9090" || cfg.DatabaseDriver != "postgres" || cfg.TokenTTL != 24*time.Hour {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected config to validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := Config{JWTSecret: "x", DatabaseDriver: "sqlite", DatabasePath: "f.db", TokenTTL: time.Hour}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"MissingSecret", func(c *Config) { c.JWTSecret = "" }},
		{"UnknownDriver", func(c *Config) { c.DatabaseDriver = "mysql" }},
		{"PostgresWithoutDSN", func(c *Config) { c.DatabaseDriver = "postgres" }},
		{"ZeroTTL", func(c *Config) { c.TokenTTL = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
