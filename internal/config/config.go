package config

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/jub0bs/cors"
)

// Environment variables with defaults
type Config struct {
	Environment       string        `env:"ENVIRONMENT,default=dev"`
	Host              string        `env:"HOST,default=0.0.0.0"`
	Port              int           `env:"PORT,default=8080"`
	LogLevel          string        `env:"LOG_LEVEL,default=debug"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT,default=60s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	GreenAPIURL       string        `env:"GREEN_API_URL,default=https://api.green-api.com"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT,default=30s"` // outbound calls to GREEN-API
	SessionTTL        time.Duration `env:"SESSION_TTL,default=12h"`
	AllowedOrigins    []string      `env:"ALLOWED_ORIGINS,separator=|"`
	MaxAPIRequestSize int64         `env:"MAX_API_REQUEST_SIZE,default=65536"` // 64KB
	RateLimitRPS      int32         `env:"RATE_LIMIT_RPS,default=20"`
	RateLimitBurst    int32         `env:"RATE_LIMIT_BURST,default=10"`
	ServiceMode       string        `env:"SERVICE_MODE,default=all"` // overridden by the --mode flag
}

// CORSConfigs holds the CORS middleware instances for different endpoint types
type CORSConfigs struct {
	Public *cors.Middleware
	API    *cors.Middleware
}

const (
	ServerShutdownTimeout = 10 * time.Second
	CORSMaxAgeInSeconds   = 86400 // 24 hours
	SessionCookieName     = "dos_session"
)

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"perf":    true,
	"prod":    true,
	"staging": true,
}

var ValidServiceModes = map[string]bool{
	"all": true, // web UI + JSON API
	"ui":  true, // web UI only
	"api": true, // JSON pass-through API only
}

// NewConfig loads the environment variables and returns the validated config and the CORS middleware built from it
func NewConfig() (*Config, *CORSConfigs, error) {
	var cfg Config

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	corsConfigs, err := createCORSConfigs(&cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("CORS configuration failed: %w", err)
	}

	return &cfg, corsConfigs, nil
}

func validateConfig(cfg *Config) error {
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid environment '%s'. Valid environments: dev, test, perf, staging, prod", cfg.Environment)
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}

	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %v", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive, got %v", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive, got %v", cfg.IdleTimeout)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %v", cfg.RequestTimeout)
	}
	// the response is written after the GREEN-API call returns
	if cfg.RequestTimeout >= cfg.WriteTimeout {
		return fmt.Errorf("REQUEST_TIMEOUT (%v) must be shorter than WRITE_TIMEOUT (%v)", cfg.RequestTimeout, cfg.WriteTimeout)
	}
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got %v", cfg.SessionTTL)
	}
	if cfg.MaxAPIRequestSize < 1 {
		return fmt.Errorf("MAX_API_REQUEST_SIZE must be at least 1")
	}

	if !ValidServiceModes[cfg.ServiceMode] {
		return fmt.Errorf("invalid service mode '%s'. Valid modes: all, ui, api", cfg.ServiceMode)
	}

	u, err := url.ParseRequestURI(cfg.GreenAPIURL)
	if err != nil {
		return fmt.Errorf("GREEN_API_URL is not a valid URL: %s", cfg.GreenAPIURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("GREEN_API_URL does not include a valid scheme (http or https): %s", cfg.GreenAPIURL)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("GREEN_API_URL does not include a host: %s", cfg.GreenAPIURL)
	}
	if cfg.Environment == "prod" && u.Scheme != "https" {
		return fmt.Errorf("GREEN_API_URL must use https in production: %s", cfg.GreenAPIURL)
	}

	if cfg.Environment == "prod" || cfg.Environment == "staging" {
		if len(cfg.AllowedOrigins) == 0 {
			return fmt.Errorf("ALLOWED_ORIGINS must be set in %v", cfg.Environment)
		}
		if cfg.AllowedOrigins[0] == "*" {
			return fmt.Errorf("ALLOWED_ORIGINS must not be set to '*' in %v", cfg.Environment)
		}
	}

	// default to all origins when not in prod/staging
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	return nil
}

// createCORSConfigs creates the CORS configurations based on the server config
func createCORSConfigs(cfg *Config) (*CORSConfigs, error) {
	origins := make([]string, len(cfg.AllowedOrigins))
	for i, origin := range cfg.AllowedOrigins {
		origins[i] = strings.TrimSpace(origin)
	}

	publicConfig := cors.Config{
		Origins: []string{"*"},
		Methods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
		},
		RequestHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Requested-With",
		},
		MaxAgeInSeconds: CORSMaxAgeInSeconds,
	}

	publicMiddleware, err := cors.NewMiddleware(publicConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create public CORS middleware: %w", err)
	}

	apiConfig := cors.Config{
		Origins: origins,
		Methods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		RequestHeaders: []string{
			"Content-Type",
			"X-Requested-With",
		},
		MaxAgeInSeconds: CORSMaxAgeInSeconds,
	}

	apiMiddleware, err := cors.NewMiddleware(apiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create API CORS middleware: %w", err)
	}

	return &CORSConfigs{
		Public: publicMiddleware,
		API:    apiMiddleware,
	}, nil
}
