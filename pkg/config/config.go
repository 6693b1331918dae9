// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/NERVsystems/rejseplanenmcp/pkg/rejseplanen"
	"github.com/NERVsystems/rejseplanenmcp/pkg/version"
)

// Transports
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config is built once at startup and shared read-only with the server
// and the tools.
type Config struct {
	Host        string `env:"HOST" envDefault:"0.0.0.0" validate:"required"`
	Port        int    `env:"PORT" envDefault:"8000" validate:"gte=1,lte=65535"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Transport   string `env:"TRANSPORT" envDefault:"http" validate:"oneof=http stdio"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	BaseURL   string        `env:"REJSEPLANEN_BASE_URL" envDefault:"https://xmlopen.rejseplanen.dk/bin/rest.exe" validate:"required,url"`
	Timeout   time.Duration `env:"REJSEPLANEN_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	RateLimit float64       `env:"REJSEPLANEN_RATE_LIMIT" envDefault:"5" validate:"gte=0"`
	RateBurst int           `env:"REJSEPLANEN_RATE_BURST" envDefault:"5" validate:"gte=1"`
	UserAgent string        `env:"USER_AGENT"`
}

var validate = validator.New()

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding ones already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load parses the process environment.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// FromMap parses vars instead of the process environment.
func FromMap(vars map[string]string) (*Config, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = version.UserAgent()
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// TransportDescription is the human-readable transport reported to clients.
func (c *Config) TransportDescription() string {
	if c.Transport == TransportStdio {
		return "stdio"
	}
	return "HTTP (Stateless)"
}

// ClientOptions returns the Rejseplanen client options this configuration
// implies.
func (c *Config) ClientOptions() []rejseplanen.Option {
	return []rejseplanen.Option{
		rejseplanen.WithBaseURL(c.BaseURL),
		rejseplanen.WithTimeout(c.Timeout),
		rejseplanen.WithUserAgent(c.UserAgent),
		rejseplanen.WithRateLimiter(rejseplanen.NewRateLimiter(c.RateLimit, c.RateBurst)),
	}
}
