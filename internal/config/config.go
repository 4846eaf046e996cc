package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN            string
	HTTPAddr         string
	CartCookieSecret []byte
	CartCookieName   string
	CookieSecure     bool
	CORSOrigins      []string
	DefaultCurrency  string
}

// Load reads .env (if present) and the process environment. Real env vars
// win over .env entries.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds the config from any lookup function; tests pass a map.
func FromEnv(getenv func(string) string) (Config, error) {
	or := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		DBDSN:           or("DB_DSN", ""),
		HTTPAddr:        or("HTTP_ADDR", ":8080"),
		CartCookieName:  or("CART_COOKIE_NAME", "cart_id"),
		DefaultCurrency: strings.ToUpper(or("DEFAULT_CURRENCY", "EUR")),
	}

	var errs []error
	if cfg.DBDSN == "" {
		errs = append(errs, errors.New("DB_DSN environment variable is required"))
	}

	secret := getenv("CART_COOKIE_SECRET")
	if len(secret) < 16 {
		errs = append(errs, errors.New("CART_COOKIE_SECRET must be at least 16 bytes"))
	}
	cfg.CartCookieSecret = []byte(secret)

	if v := or("COOKIE_SECURE", "false"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("COOKIE_SECURE: %w", err))
		}
		cfg.CookieSecure = b
	}

	for _, o := range strings.Split(or("CORS_ORIGINS", ""), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if len(cfg.DefaultCurrency) != 3 {
		errs = append(errs, fmt.Errorf("DEFAULT_CURRENCY must be an ISO 4217 code, got %q", cfg.DefaultCurrency))
	}

	return cfg, errors.Join(errs...)
}
