package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/platinummonkey/apiman/pkg/observability"
	"github.com/platinummonkey/apiman/pkg/storage"
	"github.com/sirupsen/logrus"
)

// Config holds all application configuration
type Config struct {
	// LogLevel is a logrus level name
	LogLevel string

	Markdown MarkdownConfig
	Man      ManConfig

	// Sink is where man pages are written
	Sink storage.Config

	Cache  CacheConfig
	Server ServerConfig
	OTel   observability.OTelConfig
}

// MarkdownConfig holds Markdown rendering settings
type MarkdownConfig struct {
	Title        string
	CodeLanguage string
}

// ManConfig holds man page settings
type ManConfig struct {
	Dir       string
	Section   string
	Prefix    string
	Source    string
	Library   string
	Copyright string

	dirSet bool
}

// PageDir returns the directory pages of section are written to. An explicit
// APIMAN_MAN_DIR wins; otherwise the directory follows the section.
func (c ManConfig) PageDir(section string) string {
	if c.dirSet {
		return c.Dir
	}
	return "man/man" + section
}

// CacheConfig sizes the writer's body digest cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// ServerConfig holds preview server settings
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		LogLevel: getEnv("APIMAN_LOG_LEVEL", "info"),
		Markdown: loadMarkdownConfig(),
		Man:      loadManConfig(),
		Sink:     loadSinkConfig(),
		Cache: CacheConfig{
			Size: getEnvInt("APIMAN_CACHE_SIZE", 1024),
			TTL:  getEnvDuration("APIMAN_CACHE_TTL", 10*time.Minute),
		},
		Server: ServerConfig{
			Addr:            getEnv("APIMAN_ADDR", ":8080"),
			ReadTimeout:     getEnvDuration("APIMAN_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("APIMAN_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getEnvDuration("APIMAN_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		OTel: observability.OTelConfig{
			Enabled:        getEnvBool("APIMAN_OTEL_ENABLED", false),
			Endpoint:       getEnv("APIMAN_OTEL_ENDPOINT", "localhost:4317"),
			ServiceName:    getEnv("APIMAN_OTEL_SERVICE_NAME", "apiman"),
			ServiceVersion: getEnv("APIMAN_OTEL_SERVICE_VERSION", "1.0.0"),
			Insecure:       getEnvBool("APIMAN_OTEL_INSECURE", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Title:        getEnv("APIMAN_TITLE", "API"),
		CodeLanguage: getEnv("APIMAN_CODE_LANG", ""),
	}
}

func loadManConfig() ManConfig {
	cfg := ManConfig{
		Section:   getEnv("APIMAN_MAN_SECTION", "3"),
		Prefix:    getEnv("APIMAN_PAGE_PREFIX", ""),
		Source:    getEnv("APIMAN_MAN_SOURCE", "API man-pages"),
		Library:   getEnv("APIMAN_LIBRARY", "API Reference"),
		Copyright: getEnv("APIMAN_COPYRIGHT", ""),
	}
	cfg.Dir, cfg.dirSet = os.LookupEnv("APIMAN_MAN_DIR")
	if !cfg.dirSet || cfg.Dir == "" {
		cfg.Dir, cfg.dirSet = "man/man"+cfg.Section, false
	}
	return cfg
}

// loadSinkConfig loads sink configuration from environment
func loadSinkConfig() storage.Config {
	cfg := storage.DefaultConfig()

	if sinkType := getEnv("APIMAN_SINK", ""); sinkType != "" {
		cfg.Type = strings.ToLower(sinkType)
	}
	cfg.FilesystemRoot = getEnv("APIMAN_FILESYSTEM_ROOT", "")

	cfg.S3 = storage.S3Config{
		Bucket:       getEnv("APIMAN_S3_BUCKET", ""),
		Region:       getEnv("APIMAN_S3_REGION", "us-east-1"),
		Endpoint:     getEnv("APIMAN_S3_ENDPOINT", ""),
		AccessKey:    getEnv("APIMAN_S3_ACCESS_KEY", ""),
		SecretKey:    getEnv("APIMAN_S3_SECRET_KEY", ""),
		UsePathStyle: getEnvBool("APIMAN_S3_USE_PATH_STYLE", false),
		Prefix:       getEnv("APIMAN_S3_PREFIX", ""),
	}

	return cfg
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if c.Man.Section == "" {
		return fmt.Errorf("man section is required")
	}
	if c.Man.Dir == "" {
		return fmt.Errorf("man directory is required")
	}

	switch c.Sink.Type {
	case storage.SinkFileSystem:
	case storage.SinkS3:
		if c.Sink.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required for s3 sink")
		}
	default:
		return fmt.Errorf("invalid sink type: %s (must be filesystem or s3)", c.Sink.Type)
	}

	if c.Cache.Size < 0 {
		return fmt.Errorf("cache size must not be negative")
	}

	if c.OTel.Enabled {
		if c.OTel.Endpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.OTel.ServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
