// Package config loads the lumio service configuration from YAML, an optional
// .env file, and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-lumio/pkg/pricing"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Render    RenderConfig    `yaml:"render"`
	Brand     BrandConfig     `yaml:"brand"`
	Directory DirectoryConfig `yaml:"directory"`
	Widgets   []WidgetConfig  `yaml:"widgets"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	CORSOrigins    []string      `yaml:"cors_origins"`
}

// CatalogConfig points at the live pricing catalog. An empty source runs on
// the fallback catalog.
type CatalogConfig struct {
	Source   string        `yaml:"source"`
	Timeout  time.Duration `yaml:"timeout"`
	MaxBytes int64         `yaml:"max_bytes"`
	Pricing  PricingConfig `yaml:"pricing"`
}

// PricingConfig is the pricing rule of this integration. PerUserPrice is in
// whole currency units.
type PricingConfig struct {
	PerUser              bool  `yaml:"per_user"`
	PerUserPrice         int64 `yaml:"per_user_price"`
	CustomQuoteThreshold int   `yaml:"custom_quote_threshold"`
}

// Rule converts the settings into a pricing.Rule.
func (c PricingConfig) Rule() pricing.Rule {
	return pricing.Rule{
		PerUserPrice:         pricing.Units(c.PerUserPrice),
		CustomQuoteThreshold: c.CustomQuoteThreshold,
		ApplyPerUserPricing:  c.PerUser,
	}
}

// RenderConfig represents signature rendering defaults
type RenderConfig struct {
	DefaultRenderer string `yaml:"default_renderer"`
	IconBaseURL     string `yaml:"icon_base_url"`
	Preset          string `yaml:"preset"`
	Locale          string `yaml:"locale"`
}

// BrandConfig optionally adds palettes on top of the built-in set
type BrandConfig struct {
	PalettesFile string `yaml:"palettes_file"`
}

// DirectoryConfig replaces the embedded demo directory when File is set
type DirectoryConfig struct {
	File string `yaml:"file"`
}

// WidgetConfig describes a third-party script widget for the preview page
type WidgetConfig struct {
	ID         string            `yaml:"id"`
	Src        string            `yaml:"src"`
	Priority   int               `yaml:"priority"`
	Attributes map[string]string `yaml:"attributes"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   15 * time.Second,
			RequestTimeout: 10 * time.Second,
		},
		Catalog: CatalogConfig{
			Timeout:  5 * time.Second,
			MaxBytes: 4 << 20,
			Pricing: PricingConfig{
				PerUser:              true,
				PerUserPrice:         100,
				CustomQuoteThreshold: pricing.DefaultCustomQuoteThreshold,
			},
		},
		Render: RenderConfig{
			DefaultRenderer: "email",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads filename over the defaults and applies environment overrides.
// An empty filename skips the file.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(filename) != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDotEnv loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is not an
// error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides
func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("LUMIO_ADDR"); addr != "" {
		c.Server.Addr = addr
	}

	if origins := os.Getenv("LUMIO_CORS_ORIGINS"); origins != "" {
		c.Server.CORSOrigins = splitList(origins)
	}

	if source := os.Getenv("LUMIO_CATALOG"); source != "" {
		c.Catalog.Source = source
	}

	if timeout := os.Getenv("LUMIO_CATALOG_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Catalog.Timeout = d
		}
	}

	if perUser := os.Getenv("LUMIO_PER_USER_PRICING"); perUser != "" {
		if v, err := strconv.ParseBool(perUser); err == nil {
			c.Catalog.Pricing.PerUser = v
		}
	}

	if base := os.Getenv("LUMIO_ICON_BASE_URL"); base != "" {
		c.Render.IconBaseURL = base
	}

	if preset := os.Getenv("LUMIO_PRESET"); preset != "" {
		c.Render.Preset = preset
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Log.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Log.Format = logFormat
	}
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("config: server.addr is required")
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: log.format must be console or json, got %q", c.Log.Format)
	}
	if c.Catalog.Pricing.PerUserPrice < 0 {
		return errors.New("config: catalog.pricing.per_user_price must not be negative")
	}
	if c.Catalog.Pricing.CustomQuoteThreshold < 1 {
		return errors.New("config: catalog.pricing.custom_quote_threshold must be at least 1")
	}
	for idx, widget := range c.Widgets {
		if strings.TrimSpace(widget.ID) == "" || strings.TrimSpace(widget.Src) == "" {
			return fmt.Errorf("config: widgets[%d] needs an id and a src", idx)
		}
	}
	return nil
}

// Logger builds the service logger from the log settings.
func (c LogConfig) Logger(out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(c.Level))
	if err != nil || c.Level == "" {
		level = zerolog.InfoLevel
	}
	if strings.EqualFold(c.Format, "json") {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
