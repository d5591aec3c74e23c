package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/alex-user-go/hotel-widget/internal/providers"
)

type Config struct {
	Server   ServerConfig
	Provider ProviderConfig
	Search   SearchConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type ProviderConfig struct {
	Mode       providers.Mode
	Affiliates providers.Affiliates
}

type SearchConfig struct {
	Timeout time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string // json or text
}

// Address returns the listen address for the HTTP server.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads configuration from .env, config.yaml and the environment
// in the working directory. Environment variables win.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is Load with an explicit directory for .env and config.yaml.
func LoadFrom(dir string) (*Config, error) {
	_ = gotenv.Load(filepath.Join(dir, ".env"))

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	mode, err := providers.ParseMode(v.GetString("provider_mode"))
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("port"),
			ReadTimeout:     v.GetDuration("read_timeout"),
			WriteTimeout:    v.GetDuration("write_timeout"),
			IdleTimeout:     v.GetDuration("idle_timeout"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
			AllowedOrigins:  splitList(v.GetString("cors_allowed_origins")),
		},
		Provider: ProviderConfig{
			Mode: mode,
			Affiliates: providers.Affiliates{
				AgodaCID:           strings.TrimSpace(v.GetString("agoda_affiliate_cid")),
				PricelineRefID:     strings.TrimSpace(v.GetString("priceline_refid")),
				ExpediaPartnerAttr: strings.TrimSpace(v.GetString("expedia_partner_attr")),
			},
		},
		Search: SearchConfig{
			Timeout: v.GetDuration("search_timeout"),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(v.GetString("log_level")),
			Format: strings.ToLower(v.GetString("log_format")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 3000)
	v.SetDefault("provider_mode", string(providers.ModeDemo))
	v.SetDefault("agoda_affiliate_cid", "")
	v.SetDefault("priceline_refid", "")
	v.SetDefault("expedia_partner_attr", "")
	v.SetDefault("search_timeout", 2*time.Second)
	v.SetDefault("read_timeout", 10*time.Second)
	v.SetDefault("write_timeout", 10*time.Second)
	v.SetDefault("idle_timeout", 60*time.Second)
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Provider.Mode != providers.ModeDemo && c.Provider.Mode != providers.ModeLive {
		return fmt.Errorf("invalid provider mode: %q", c.Provider.Mode)
	}

	timeouts := map[string]time.Duration{
		"search_timeout":   c.Search.Timeout,
		"read_timeout":     c.Server.ReadTimeout,
		"write_timeout":    c.Server.WriteTimeout,
		"idle_timeout":     c.Server.IdleTimeout,
		"shutdown_timeout": c.Server.ShutdownTimeout,
	}
	for name, d := range timeouts {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid log format: %q", c.Logging.Format)
	}

	return nil
}
