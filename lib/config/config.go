// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Server  ServerConfig  `mapstructure:"server"`
	Session SessionConfig `mapstructure:"session"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type TMDBConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	APIKey       string        `mapstructure:"api_key"`
	AccessToken  string        `mapstructure:"access_token"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type ServerConfig struct {
	Port         string `mapstructure:"port"`
	SecureCookie bool   `mapstructure:"secure_cookie"`
}

type SessionConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

var (
	ErrMissingAPIKey      = errors.New("TMDB_API_KEY is required")
	ErrMissingAccessToken = errors.New("TMDB_ACCESS_TOKEN is required")
)

// envKeys maps config keys to the environment variables that set them.
var envKeys = map[string]string{
	"tmdb.base_url":          "TMDB_BASE_URL",
	"tmdb.image_base_url":    "TMDB_IMAGE_BASE_URL",
	"tmdb.api_key":           "TMDB_API_KEY",
	"tmdb.access_token":      "TMDB_ACCESS_TOKEN",
	"tmdb.timeout":           "TMDB_TIMEOUT",
	"server.port":            "PORT",
	"server.secure_cookie":   "SECURE_COOKIE",
	"session.ttl":            "SESSION_TTL",
	"session.sweep_interval": "SESSION_SWEEP_INTERVAL",
	"logging.level":          "LOG_LEVEL",
	"logging.format":         "LOG_FORMAT",
	"logging.file":           "LOG_FILE",
}

// Load reads an optional .env file, then the environment. envFile may be
// empty, in which case ".env" in the working directory is tried.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("error loading env file: %w", err)
		}
	} else {
		// A missing default .env is fine.
		_ = godotenv.Load()
	}

	v := viper.New()
	setDefaults(v)
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.image_base_url", "https://image.tmdb.org/t/p/w500")
	v.SetDefault("tmdb.timeout", 30*time.Second)

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.secure_cookie", false)

	v.SetDefault("session.ttl", 12*time.Hour)
	v.SetDefault("session.sweep_interval", 10*time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "auto")
	v.SetDefault("logging.file", "")
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.TMDB.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if strings.TrimSpace(cfg.TMDB.AccessToken) == "" {
		return ErrMissingAccessToken
	}

	if cfg.TMDB.Timeout <= 0 {
		return fmt.Errorf("invalid tmdb.timeout: %s", cfg.TMDB.Timeout)
	}
	if cfg.Session.TTL <= 0 {
		return fmt.Errorf("invalid session.ttl: %s", cfg.Session.TTL)
	}
	if cfg.Session.SweepInterval <= 0 {
		return fmt.Errorf("invalid session.sweep_interval: %s", cfg.Session.SweepInterval)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"auto": true,
		"json": true,
		"text": true,
	}
	cfg.Logging.Format = strings.ToLower(cfg.Logging.Format)
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// Addr is the listen address for the configured port.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Server.Port, ":")
}
