package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Postgres  PostgresConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	BcryptCost int
}

// RateLimitConfig bounds the request rate per client address. RPS <= 0
// disables limiting.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

var defaults = map[string]any{
	"SERVER_ADDR":                ":8080",
	"SERVER_READ_TIMEOUT":        "10s",
	"SERVER_WRITE_TIMEOUT":       "10s",
	"SERVER_SHUTDOWN_TIMEOUT":    "15s",
	"LOGGER_LEVEL":               "info",
	"LOGGER_ENCODING":            "json",
	"LOGGER_DEVELOPMENT":         false,
	"LOGGER_DISABLE_CALLER":      false,
	"LOGGER_DISABLE_STACKTRACE":  true,
	"POSTGRES_HOST":              "localhost",
	"POSTGRES_PORT":              "5432",
	"POSTGRES_USER":              "shop",
	"POSTGRES_PASSWORD":          "",
	"POSTGRES_DB":                "shop",
	"POSTGRES_SSLMODE":           "disable",
	"POSTGRES_MAX_OPEN_CONNS":    25,
	"POSTGRES_MAX_IDLE_CONNS":    5,
	"POSTGRES_CONN_MAX_LIFETIME": "5m",
	"AUTH_BCRYPT_COST":           12,
	"RATE_LIMIT_RPS":             20.0,
	"RATE_LIMIT_BURST":           40,
}

// Load reads the configuration from the environment. Variables from envFile
// are loaded first when the file exists; variables already set in the
// environment take precedence.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Addr:            v.GetString("SERVER_ADDR"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
		},
		Logger: LoggerConfig{
			Level:             v.GetString("LOGGER_LEVEL"),
			Encoding:          v.GetString("LOGGER_ENCODING"),
			Development:       v.GetBool("LOGGER_DEVELOPMENT"),
			DisableCaller:     v.GetBool("LOGGER_DISABLE_CALLER"),
			DisableStacktrace: v.GetBool("LOGGER_DISABLE_STACKTRACE"),
		},
		Postgres: PostgresConfig{
			Host:            v.GetString("POSTGRES_HOST"),
			Port:            v.GetString("POSTGRES_PORT"),
			User:            v.GetString("POSTGRES_USER"),
			Password:        v.GetString("POSTGRES_PASSWORD"),
			DBName:          v.GetString("POSTGRES_DB"),
			SSLMode:         v.GetString("POSTGRES_SSLMODE"),
			MaxOpenConns:    v.GetInt("POSTGRES_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("POSTGRES_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("POSTGRES_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			BcryptCost: v.GetInt("AUTH_BCRYPT_COST"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Server.Addr == "":
		return errors.New("SERVER_ADDR must not be empty")
	case c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31:
		return fmt.Errorf("AUTH_BCRYPT_COST must be between 4 and 31, got %d", c.Auth.BcryptCost)
	case c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1:
		return errors.New("RATE_LIMIT_BURST must be positive when rate limiting is enabled")
	}
	return nil
}
