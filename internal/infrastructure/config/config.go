package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	Metrics MetricsConfig
	Health  HealthConfig
	Log     LogConfig
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	Workers         int   // Maximum number of requests handled at once
	MaxBodyBytes    int64 // Request bodies above this size are rejected
	ShutdownTimeout time.Duration
}

// CORSConfig represents the headers added by the CORS middleware
type CORSConfig struct {
	AllowedOrigin  string
	AllowedMethods string
	AllowedHeaders string
}

// MetricsConfig represents the Prometheus listener configuration
type MetricsConfig struct {
	Enabled bool
	Port    int
}

// HealthConfig represents the gRPC health listener configuration
type HealthConfig struct {
	Enabled bool
	Port    int
}

// LogConfig represents logger configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

// Addr returns the HTTP listen address
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// findProjectRoot finds the project root directory by looking for go.mod
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	// Walk up the directory tree until we find go.mod
	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found in any parent directory")
		}
		dir = parent
	}
}

// InitConfig initializes viper configuration
// env: environment name (dev, test, prod)
func InitConfig(env string) error {
	if env == "" {
		env = "dev"
	}

	viper.SetConfigName(fmt.Sprintf(".env.%s", env))
	viper.SetConfigType("env")

	// A deployed binary has no go.mod around it; the working directory is
	// searched in that case.
	if projectRoot, err := findProjectRoot(); err == nil {
		viper.AddConfigPath(projectRoot)
	}
	viper.AddConfigPath(".")

	// Read config file (optional, ignore error if not found)
	_ = viper.ReadInConfig()

	// Environment variables take precedence over config file
	viper.AutomaticEnv()

	setDefaults()
	return nil
}

func setDefaults() {
	viper.SetDefault("SERVER_HOST", "127.0.0.1")
	viper.SetDefault("SERVER_PORT", 8399)
	viper.SetDefault("SERVER_WORKERS", 4)
	viper.SetDefault("SERVER_MAX_BODY_BYTES", 2<<20) // 2MB
	viper.SetDefault("SERVER_SHUTDOWN_SECONDS", 30)

	viper.SetDefault("CORS_ALLOWED_ORIGIN", "*")
	viper.SetDefault("CORS_ALLOWED_METHODS", "GET, PUT, OPTIONS")
	viper.SetDefault("CORS_ALLOWED_HEADERS", "Content-Type")

	viper.SetDefault("METRICS_ENABLED", true)
	viper.SetDefault("METRICS_PORT", 9090)
	viper.SetDefault("HEALTH_ENABLED", true)
	viper.SetDefault("HEALTH_PORT", 8398)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
}

// Load loads configuration from viper
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Host:            viper.GetString("SERVER_HOST"),
			Port:            viper.GetInt("SERVER_PORT"),
			Workers:         viper.GetInt("SERVER_WORKERS"),
			MaxBodyBytes:    viper.GetInt64("SERVER_MAX_BODY_BYTES"),
			ShutdownTimeout: time.Duration(viper.GetInt("SERVER_SHUTDOWN_SECONDS")) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigin:  viper.GetString("CORS_ALLOWED_ORIGIN"),
			AllowedMethods: viper.GetString("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetString("CORS_ALLOWED_HEADERS"),
		},
		Metrics: MetricsConfig{
			Enabled: viper.GetBool("METRICS_ENABLED"),
			Port:    viper.GetInt("METRICS_PORT"),
		},
		Health: HealthConfig{
			Enabled: viper.GetBool("HEALTH_ENABLED"),
			Port:    viper.GetInt("HEALTH_PORT"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(viper.GetString("LOG_LEVEL")),
			Format: strings.ToLower(viper.GetString("LOG_FORMAT")),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	if err := validatePort("SERVER_PORT", c.Server.Port); err != nil {
		return err
	}
	if c.Metrics.Enabled {
		if err := validatePort("METRICS_PORT", c.Metrics.Port); err != nil {
			return err
		}
	}
	if c.Health.Enabled {
		if err := validatePort("HEALTH_PORT", c.Health.Port); err != nil {
			return err
		}
	}
	if c.Server.Workers < 1 {
		return fmt.Errorf("SERVER_WORKERS must be at least 1, got %d", c.Server.Workers)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("SERVER_MAX_BODY_BYTES must be positive, got %d", c.Server.MaxBodyBytes)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("SERVER_SHUTDOWN_SECONDS must not be negative")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.Log.Format)
	}

	return nil
}

func validatePort(key string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", key, port)
	}
	return nil
}
