package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Catalog   CatalogConfig
	Avatar    AvatarConfig
	Redis     RedisConfig
	Server    ServerConfig
	Logging   LoggingConfig
	Telemetry TelemetryConfig
}

// CatalogConfig holds workout catalog endpoint configuration
type CatalogConfig struct {
	Endpoint    string
	BearerToken string
	MaxPages    int
	HTTPTimeout time.Duration
}

// AvatarConfig holds avatar cache configuration
type AvatarConfig struct {
	MaxEntries  int
	RedisTTL    time.Duration
	FallbackURL string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL     string
	Enabled bool
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
	Host string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// TelemetryConfig holds observability configuration
type TelemetryConfig struct {
	Enabled           bool
	JaegerURL         string
	PrometheusEnabled bool
	PrometheusPort    int
	ServiceName       string
}

const defaultFallbackAvatarURL = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_960_720.png"

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	// Set defaults
	setDefaults()

	// Load from environment
	viper.SetEnvPrefix("FEED")
	viper.AutomaticEnv()

	// Load from config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.feedcore")
	viper.AddConfigPath("/etc/feedcore")

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found; this is OK if we have env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Catalog: CatalogConfig{
			Endpoint:    getString("catalog_endpoint", ""),
			BearerToken: getString("catalog_bearer_token", ""),
			MaxPages:    getInt("catalog_max_pages", 4),
			HTTPTimeout: getDuration("catalog_http_timeout", 15*time.Second),
		},
		Avatar: AvatarConfig{
			MaxEntries:  getInt("avatar_max_entries", 256),
			RedisTTL:    getDuration("avatar_redis_ttl", 24*time.Hour),
			FallbackURL: getString("avatar_fallback_url", defaultFallbackAvatarURL),
		},
		Redis: RedisConfig{
			URL:     getString("redis_url", ""),
			Enabled: getString("redis_url", "") != "",
		},
		Server: ServerConfig{
			Port: getInt("http_server_port", 8080),
			Host: getString("http_server_host", "0.0.0.0"),
		},
		Logging: LoggingConfig{
			Level:  getString("log_level", "INFO"),
			Format: getString("log_format", "json"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           getBool("telemetry_enabled", false),
			JaegerURL:         getString("jaeger_url", "http://localhost:14268/api/traces"),
			PrometheusEnabled: getBool("prometheus_enabled", true),
			PrometheusPort:    getInt("prometheus_port", 9090),
			ServiceName:       getString("service_name", "feedcore"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("catalog_max_pages", 4)
	viper.SetDefault("catalog_http_timeout", "15s")
	viper.SetDefault("avatar_max_entries", 256)
	viper.SetDefault("avatar_redis_ttl", "24h")
	viper.SetDefault("avatar_fallback_url", defaultFallbackAvatarURL)
	viper.SetDefault("http_server_port", 8080)
	viper.SetDefault("http_server_host", "0.0.0.0")
	viper.SetDefault("log_level", "INFO")
	viper.SetDefault("log_format", "json")
	viper.SetDefault("telemetry_enabled", false)
	viper.SetDefault("prometheus_enabled", true)
	viper.SetDefault("prometheus_port", 9090)
	viper.SetDefault("service_name", "feedcore")
}

func getString(key, defaultValue string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	// Also check environment variable directly
	if val := os.Getenv("FEED_" + toEnvKey(key)); val != "" {
		return val
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	if val := os.Getenv("FEED_" + toEnvKey(key)); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	if val := os.Getenv("FEED_" + toEnvKey(key)); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	if val := os.Getenv("FEED_" + toEnvKey(key)); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultValue
}

func toEnvKey(key string) string {
	// Convert snake_case to UPPER_SNAKE_CASE
	result := ""
	for _, r := range key {
		if r == '-' || r == '_' {
			result += "_"
		} else if r >= 'a' && r <= 'z' {
			result += string(r - 32)
		} else {
			result += string(r)
		}
	}
	return result
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Catalog.Endpoint == "" {
		return fmt.Errorf("catalog_endpoint is required")
	}
	if c.Catalog.BearerToken == "" {
		return fmt.Errorf("catalog_bearer_token is required")
	}
	if c.Catalog.MaxPages <= 0 || c.Catalog.MaxPages > 100 {
		return fmt.Errorf("catalog_max_pages must be between 1 and 100")
	}
	if c.Catalog.HTTPTimeout <= 0 {
		return fmt.Errorf("catalog_http_timeout must be positive")
	}
	if c.Avatar.MaxEntries <= 0 {
		return fmt.Errorf("avatar_max_entries must be positive")
	}
	return nil
}
