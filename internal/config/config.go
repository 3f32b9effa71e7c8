// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

// Package config loads server configuration from defaults, an optional YAML
// file, and command-line flags, in that order of precedence.
package config

import (
	"os"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Config is the complete server configuration.
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Database      DatabaseConfig      `koanf:"database"`
	Auth          AuthConfig          `koanf:"auth"`
	Mail          MailConfig          `koanf:"mail"`
	Media         MediaConfig         `koanf:"media"`
	Observability ObservabilityConfig `koanf:"observability"`
	Log           LogConfig           `koanf:"log"`
}

// ServerConfig configures the HTTP API listener.
type ServerConfig struct {
	Addr           string   `koanf:"addr"`
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// DatabaseConfig configures the PostgreSQL connection.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// AuthConfig configures token signing and lifetimes. Secrets have no defaults;
// they must come from the config file or flags.
type AuthConfig struct {
	VerificationSecret string        `koanf:"verification_secret"`
	SessionSecret      string        `koanf:"session_secret"`
	AccessTokenTTL     time.Duration `koanf:"access_token_ttl"`
	RefreshTokenTTL    time.Duration `koanf:"refresh_token_ttl"`
}

// MailConfig configures outbound email via Resend.
type MailConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	From         string `koanf:"from"`
	AppURL       string `koanf:"app_url"`
}

// MediaConfig configures S3-compatible object storage for uploads.
type MediaConfig struct {
	Endpoint  string `koanf:"endpoint"`
	Region    string `koanf:"region"`
	Bucket    string `koanf:"bucket"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
}

// ObservabilityConfig configures the metrics and health endpoint listener.
type ObservabilityConfig struct {
	Addr string `koanf:"addr"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// defaults returns the baseline configuration before file and flag overlays.
func defaults() map[string]any {
	return map[string]any{
		"server.addr":            ":8080",
		"server.allowed_origins": []string{"http://localhost:3000"},
		"auth.access_token_ttl":  15 * time.Minute,
		"auth.refresh_token_ttl": 7 * 24 * time.Hour,
		"media.region":           "us-east-1",
		"observability.addr":     ":9090",
		"log.level":              "info",
		"log.format":             "json",
	}
}

// Load assembles configuration from defaults, the YAML file at path (skipped
// if path is empty or the file does not exist), and the given flag set. The
// database URL falls back to the DATABASE_URL environment variable when file
// and flags leave it unset.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, oops.Code("CONFIG_DEFAULTS_FAILED").Wrap(err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, oops.Code("CONFIG_FILE_FAILED").
					With("path", path).
					Wrap(err)
			}
		} else if !os.IsNotExist(err) {
			return nil, oops.Code("CONFIG_FILE_FAILED").With("path", path).Wrap(err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}

	// DATABASE_URL from the environment backstops a file/flag omission.
	if cfg.Database.URL == "" {
		cfg.Database.URL = os.Getenv("DATABASE_URL")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every required setting is present and coherent.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database.url is required")
	}
	if c.Auth.VerificationSecret == "" {
		return oops.Code("CONFIG_INVALID").Errorf("auth.verification_secret is required")
	}
	if c.Auth.SessionSecret == "" {
		return oops.Code("CONFIG_INVALID").Errorf("auth.session_secret is required")
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("auth.access_token_ttl must be positive")
	}
	if c.Auth.RefreshTokenTTL <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("auth.refresh_token_ttl must be positive")
	}
	if c.Auth.RefreshTokenTTL < c.Auth.AccessTokenTTL {
		return oops.Code("CONFIG_INVALID").Errorf("auth.refresh_token_ttl must not be shorter than auth.access_token_ttl")
	}
	if c.Server.Addr == "" {
		return oops.Code("CONFIG_INVALID").Errorf("server.addr is required")
	}
	return nil
}
