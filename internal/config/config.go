package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultAccessTokenSecret  = "change-me-access-secret"
	defaultRefreshTokenSecret = "change-me-refresh-secret"
)

// Config is the runtime configuration of the storefront API.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"5000"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"storefront.db"`

	RedisURL          string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisDialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	RedisReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	RedisWriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`

	AccessTokenSecret  string        `env:"ACCESS_TOKEN_SECRET" envDefault:"change-me-access-secret"`
	RefreshTokenSecret string        `env:"REFRESH_TOKEN_SECRET" envDefault:"change-me-refresh-secret"`
	AccessTokenTTL     time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL    time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`

	CookieSameSite string `env:"COOKIE_SAMESITE" envDefault:"Strict"`
	CookiePath     string `env:"COOKIE_PATH" envDefault:"/"`
	CookieDomain   string `env:"COOKIE_DOMAIN"`

	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	FeaturedCacheTTL   time.Duration `env:"FEATURED_CACHE_TTL" envDefault:"1h"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.AccessTokenSecret = strings.TrimSpace(cfg.AccessTokenSecret)
	cfg.RefreshTokenSecret = strings.TrimSpace(cfg.RefreshTokenSecret)
	cfg.CookieSameSite = strings.TrimSpace(cfg.CookieSameSite)
	cfg.CookiePath = strings.TrimSpace(cfg.CookiePath)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDevelopment reports whether error details and insecure cookies are allowed.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev" || c.AppEnv == "local"
}

// CookieSecure is true everywhere except development.
func (c *Config) CookieSecure() bool {
	return !c.IsDevelopment()
}

func (c *Config) SameSite() http.SameSite {
	switch strings.ToLower(c.CookieSameSite) {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}

func validateConfig(cfg *Config) error {
	if cfg.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be > 0")
	}
	if cfg.RefreshTokenTTL <= 0 {
		return fmt.Errorf("REFRESH_TOKEN_TTL must be > 0")
	}
	if cfg.RefreshTokenTTL <= cfg.AccessTokenTTL {
		return fmt.Errorf("REFRESH_TOKEN_TTL must be longer than ACCESS_TOKEN_TTL")
	}
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must not be empty")
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	if cfg.CookiePath == "" {
		return fmt.Errorf("COOKIE_PATH must not be empty")
	}
	sameSite := strings.ToLower(cfg.CookieSameSite)
	if sameSite != "lax" && sameSite != "none" && sameSite != "strict" {
		return fmt.Errorf("COOKIE_SAMESITE must be one of: Lax, None, Strict")
	}
	if sameSite == "none" && !cfg.CookieSecure() {
		return fmt.Errorf("COOKIE_SAMESITE=None requires a non-development APP_ENV")
	}
	if cfg.FeaturedCacheTTL < 0 {
		return fmt.Errorf("FEATURED_CACHE_TTL must be >= 0")
	}

	if !cfg.IsDevelopment() {
		if cfg.AccessTokenSecret == defaultAccessTokenSecret {
			return fmt.Errorf("outside development ACCESS_TOKEN_SECRET must be set and not default")
		}
		if cfg.RefreshTokenSecret == defaultRefreshTokenSecret {
			return fmt.Errorf("outside development REFRESH_TOKEN_SECRET must be set and not default")
		}
	}

	return nil
}
