package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Port      string        `yaml:"port"`
	DBPath    string        `yaml:"db_path"`
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
	LogLevel  string        `yaml:"log_level"`

	// AuthRequired gates the data routes behind a bearer token
	AuthRequired bool `yaml:"auth_required"`

	GoogleMapsAPIKey  string `yaml:"google_maps_api_key"`
	GoogleMapsBaseURL string `yaml:"google_maps_base_url"`

	SchoolDiggerAPIKey  string `yaml:"schooldigger_api_key"`
	SchoolDiggerAppID   string `yaml:"schooldigger_app_id"`
	SchoolDiggerBaseURL string `yaml:"schooldigger_base_url"`

	// PlacesPerType caps results per category; kept small to bound API cost
	PlacesPerType   int           `yaml:"places_per_type"`
	UpstreamTimeout time.Duration `yaml:"upstream_timeout"`

	RateLimit  int           `yaml:"rate_limit"`
	RateWindow time.Duration `yaml:"rate_window"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Port:            ":8080",
		DBPath:          "./data/listingkit.db",
		JWTSecret:       "your-secret-key-change-in-production",
		TokenTTL:        24 * time.Hour,
		LogLevel:        "info",
		PlacesPerType:   3,
		UpstreamTimeout: 10 * time.Second,
		RateLimit:       60,
		RateWindow:      time.Minute,
	}
}

// Load 加载配置: defaults, then the YAML file named by CONFIG_FILE, then env
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	setString(&c.Port, "PORT")
	setString(&c.DBPath, "DB_PATH")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.GoogleMapsAPIKey, "GOOGLE_MAPS_API_KEY")
	setString(&c.GoogleMapsBaseURL, "GOOGLE_MAPS_BASE_URL")
	setString(&c.SchoolDiggerAPIKey, "SCHOOLDIGGER_API_KEY")
	setString(&c.SchoolDiggerAppID, "SCHOOLDIGGER_APP_ID")
	setString(&c.SchoolDiggerBaseURL, "SCHOOLDIGGER_BASE_URL")

	if err := setInt(&c.PlacesPerType, "PLACES_PER_TYPE"); err != nil {
		return err
	}
	if err := setInt(&c.RateLimit, "RATE_LIMIT"); err != nil {
		return err
	}
	if err := setDuration(&c.TokenTTL, "TOKEN_TTL"); err != nil {
		return err
	}
	if err := setDuration(&c.UpstreamTimeout, "UPSTREAM_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&c.RateWindow, "RATE_WINDOW"); err != nil {
		return err
	}
	if v := os.Getenv("AUTH_REQUIRED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid AUTH_REQUIRED %q: %w", v, err)
		}
		c.AuthRequired = b
	}
	return nil
}

// Validate rejects values the server cannot run with
func (c *Config) Validate() error {
	if c.PlacesPerType <= 0 {
		return fmt.Errorf("places_per_type must be positive, got %d", c.PlacesPerType)
	}
	if c.RateLimit <= 0 || c.RateWindow <= 0 {
		return fmt.Errorf("rate limit and window must be positive")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}
