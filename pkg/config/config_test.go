package config

import (
	"testing"
	"time"

	"github.com/platinummonkey/apiman/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetEnv tests the getEnv helper function
func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		want         string
	}{
		{
			name:         "returns env value when set",
			key:          "TEST_VAR",
			defaultValue: "default",
			envValue:     "custom",
			want:         "custom",
		},
		{
			name:         "returns default when env not set",
			key:          "TEST_VAR_NOT_SET",
			defaultValue: "default",
			envValue:     "",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv(tt.key, tt.envValue)
			}

			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		defaultValue bool
		envValue     string
		want         bool
	}{
		{"true", false, "true", true},
		{"TRUE", false, "TRUE", true},
		{"one", false, "1", true},
		{"false", true, "false", false},
		{"garbage", true, "yes", false},
		{"unset keeps default", true, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.envValue)
			if got := getEnvBool("TEST_BOOL", tt.defaultValue); got != tt.want {
				t.Errorf("getEnvBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		want     int
	}{
		{"valid", "42", 42},
		{"negative", "-1", -1},
		{"invalid falls back", "many", 7},
		{"unset falls back", "", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.envValue)
			if got := getEnvInt("TEST_INT", 7); got != tt.want {
				t.Errorf("getEnvInt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		want     time.Duration
	}{
		{"valid", "90s", 90 * time.Second},
		{"minutes", "5m", 5 * time.Minute},
		{"invalid falls back", "soon", time.Second},
		{"unset falls back", "", time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.envValue)
			if got := getEnvDuration("TEST_DURATION", time.Second); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "API", cfg.Markdown.Title)
	assert.Empty(t, cfg.Markdown.CodeLanguage)
	assert.Equal(t, "3", cfg.Man.Section)
	assert.Equal(t, "man/man3", cfg.Man.Dir)
	assert.Empty(t, cfg.Man.Prefix)
	assert.Equal(t, "API man-pages", cfg.Man.Source)
	assert.Equal(t, "API Reference", cfg.Man.Library)
	assert.Equal(t, storage.SinkFileSystem, cfg.Sink.Type)
	assert.Equal(t, 1024, cfg.Cache.Size)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.OTel.Enabled)
	assert.Equal(t, "apiman", cfg.OTel.ServiceName)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("APIMAN_LOG_LEVEL", "debug")
	t.Setenv("APIMAN_TITLE", "Tomo")
	t.Setenv("APIMAN_CODE_LANG", "tomo")
	t.Setenv("APIMAN_MAN_SECTION", "3")
	t.Setenv("APIMAN_PAGE_PREFIX", "tomo-")
	t.Setenv("APIMAN_MAN_SOURCE", "Tomo man-pages")
	t.Setenv("APIMAN_LIBRARY", "Tomo Standard Library")
	t.Setenv("APIMAN_COPYRIGHT", "Bruce Hill")
	t.Setenv("APIMAN_SINK", "S3")
	t.Setenv("APIMAN_S3_BUCKET", "docs")
	t.Setenv("APIMAN_S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("APIMAN_S3_USE_PATH_STYLE", "true")
	t.Setenv("APIMAN_S3_PREFIX", "reference")
	t.Setenv("APIMAN_CACHE_SIZE", "0")
	t.Setenv("APIMAN_ADDR", "127.0.0.1:9999")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "Tomo", cfg.Markdown.Title)
	assert.Equal(t, "tomo", cfg.Markdown.CodeLanguage)
	assert.Equal(t, "tomo-", cfg.Man.Prefix)
	assert.Equal(t, "Tomo man-pages", cfg.Man.Source)
	assert.Equal(t, "Tomo Standard Library", cfg.Man.Library)
	assert.Equal(t, "Bruce Hill", cfg.Man.Copyright)
	assert.Equal(t, storage.SinkS3, cfg.Sink.Type)
	assert.Equal(t, "docs", cfg.Sink.S3.Bucket)
	assert.Equal(t, "http://localhost:9000", cfg.Sink.S3.Endpoint)
	assert.True(t, cfg.Sink.S3.UsePathStyle)
	assert.Equal(t, "reference", cfg.Sink.S3.Prefix)
	assert.Equal(t, 0, cfg.Cache.Size)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
}

func TestLoadConfig_ManDirFollowsSection(t *testing.T) {
	t.Setenv("APIMAN_MAN_SECTION", "7")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "man/man7", cfg.Man.Dir)

	t.Setenv("APIMAN_MAN_DIR", "out/pages")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "out/pages", cfg.Man.Dir)
}

func TestManConfig_PageDir(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "man/man7", cfg.Man.PageDir("7"))

	t.Setenv("APIMAN_MAN_DIR", "out/pages")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "out/pages", cfg.Man.PageDir("7"))
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("APIMAN_SINK", "ftp")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
	assert.Contains(t, err.Error(), "invalid sink type: ftp")
}

func validConfig() *Config {
	return &Config{
		LogLevel: "info",
		Man:      ManConfig{Dir: "man/man3", Section: "3"},
		Sink:     storage.DefaultConfig(),
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "loud" },
			wantErr: "invalid log level",
		},
		{
			name:    "empty section",
			mutate:  func(c *Config) { c.Man.Section = "" },
			wantErr: "man section is required",
		},
		{
			name:    "empty dir",
			mutate:  func(c *Config) { c.Man.Dir = "" },
			wantErr: "man directory is required",
		},
		{
			name:    "s3 without bucket",
			mutate:  func(c *Config) { c.Sink.Type = storage.SinkS3 },
			wantErr: "S3 bucket is required",
		},
		{
			name: "s3 with bucket",
			mutate: func(c *Config) {
				c.Sink.Type = storage.SinkS3
				c.Sink.S3.Bucket = "docs"
			},
		},
		{
			name:    "negative cache",
			mutate:  func(c *Config) { c.Cache.Size = -1 },
			wantErr: "cache size must not be negative",
		},
		{
			name:    "otel without endpoint",
			mutate:  func(c *Config) { c.OTel.Enabled = true; c.OTel.ServiceName = "apiman" },
			wantErr: "endpoint is required",
		},
		{
			name:    "otel without service name",
			mutate:  func(c *Config) { c.OTel.Enabled = true; c.OTel.Endpoint = "localhost:4317" },
			wantErr: "service name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
