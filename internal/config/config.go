// Package config loads runtime settings from defaults, a .env file and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile         = ".env"
	defaultPort            = "8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultHeaderTimeout   = 10 * time.Second
	defaultContactEndpoint = "https://formspree.io/f/xdkyaree"
	defaultContactTimeout  = 8 * time.Second
	defaultContentCacheTTL = 5 * time.Minute
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Env     string
	BaseURL string
	Server  ServerConfig
	Paths   PathsConfig
	Contact ContactConfig
	Session SessionConfig
	Site    SiteConfig
	Log     LogConfig
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

// PathsConfig points at on-disk templates and content.
type PathsConfig struct {
	Templates string
	Public    string
	Locales   string
	Content   string
}

// ContactConfig configures the outbound form endpoint.
type ContactConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// SessionConfig configures the signed session cookie.
type SessionConfig struct {
	SigningKey string
	Secure     bool
}

// SiteConfig holds presentation toggles.
type SiteConfig struct {
	NegotiateLanguage bool
	LanguageCookie    bool
	ContentCacheTTL   time.Duration
	GA4MeasurementID  string
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string
}

// Dev reports whether templates and content should be reloaded on change.
func (c Config) Dev() bool { return c.Env == "dev" }

// Prod reports whether cookies must be Secure.
func (c Config) Prod() bool { return c.Env == "prod" }

// ValidationError lists invalid settings.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "config: invalid settings: " + strings.Join(e.Problems, "; ")
}

// Option customises Load.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path. An empty path disables it.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) { o.envFile = path }
}

// WithEnvMap injects explicit values that take precedence over everything else.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) { o.envMap = values }
}

// WithoutSystemEnv stops Load from consulting the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) { o.useSystemEnv = false }
}

// Load assembles the configuration. Precedence: explicit map, process
// environment, .env file, defaults.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{envFile: defaultEnvFile, useSystemEnv: true}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnv, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if v, ok := options.envMap[key]; ok {
			return v, true
		}
		if options.useSystemEnv {
			if v, ok := os.LookupEnv(key); ok {
				return v, true
			}
		}
		v, ok := dotEnv[key]
		return v, ok
	}

	port := stringWithDefault(lookup, "PORT", defaultPort)
	env := strings.ToLower(stringWithDefault(lookup, "SITE_ENV", "local"))
	cfg := Config{
		Env:     env,
		BaseURL: strings.TrimRight(stringWithDefault(lookup, "SITE_BASE_URL", ""), "/"),
		Server: ServerConfig{
			Addr:              stringWithDefault(lookup, "SITE_ADDR", ":"+port),
			ReadTimeout:       durationWithDefault(lookup, "SITE_READ_TIMEOUT", defaultReadTimeout),
			ReadHeaderTimeout: durationWithDefault(lookup, "SITE_READ_HEADER_TIMEOUT", defaultHeaderTimeout),
			WriteTimeout:      durationWithDefault(lookup, "SITE_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:       durationWithDefault(lookup, "SITE_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Paths: PathsConfig{
			Templates: stringWithDefault(lookup, "SITE_TEMPLATES_DIR", "templates"),
			Public:    stringWithDefault(lookup, "SITE_PUBLIC_DIR", "public"),
			Locales:   stringWithDefault(lookup, "SITE_LOCALES_DIR", "locales"),
			Content:   stringWithDefault(lookup, "SITE_CONTENT_DIR", "content"),
		},
		Contact: ContactConfig{
			Endpoint: stringWithDefault(lookup, "SITE_CONTACT_ENDPOINT", defaultContactEndpoint),
			Timeout:  durationWithDefault(lookup, "SITE_CONTACT_TIMEOUT", defaultContactTimeout),
		},
		Session: SessionConfig{
			SigningKey: stringWithDefault(lookup, "SITE_SESSION_SIGNING_KEY", ""),
			Secure:     env == "prod",
		},
		Site: SiteConfig{
			NegotiateLanguage: boolWithDefault(lookup, "SITE_NEGOTIATE_LANGUAGE", false),
			LanguageCookie:    boolWithDefault(lookup, "SITE_LANGUAGE_COOKIE", true),
			ContentCacheTTL:   durationWithDefault(lookup, "SITE_CONTENT_CACHE_TTL", defaultContentCacheTTL),
			GA4MeasurementID:  stringWithDefault(lookup, "SITE_GA_MEASUREMENT_ID", ""),
		},
		Log: LogConfig{
			Level: stringWithDefault(lookup, "LOG_LEVEL", "info"),
		},
	}
	// An explicitly empty endpoint selects the logging sender.
	if v, ok := lookup("SITE_CONTACT_ENDPOINT"); ok && strings.TrimSpace(v) == "" {
		cfg.Contact.Endpoint = ""
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	var problems []string
	switch cfg.Env {
	case "local", "dev", "prod", "test":
	default:
		problems = append(problems, fmt.Sprintf("SITE_ENV %q must be one of local, dev, prod, test", cfg.Env))
	}
	if cfg.Contact.Endpoint != "" {
		u, err := url.Parse(cfg.Contact.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			problems = append(problems, "SITE_CONTACT_ENDPOINT must be an absolute http(s) URL")
		}
	}
	if cfg.Prod() && cfg.Session.SigningKey == "" {
		problems = append(problems, "SITE_SESSION_SIGNING_KEY is required when SITE_ENV=prod")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if v, ok := lookup(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if v, ok := lookup(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}
