package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:                      "development",
		Port:                     "5000",
		JWTSecret:                "secure-secret-at-least-32-chars-long",
		TokenTTLHours:            24,
		DBDriver:                 "postgres",
		DBPassword:               "secure-password",
		DBSSLMode:                "require",
		UploadBackend:            "local",
		UploadMaxSizeMB:          10,
		DBConnMaxLifetimeMinutes: 1,
		DisplayTimezone:          "Asia/Makassar",
	}
}

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with disable SSL mode", "prod", "disable", true},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
		{"Test with empty SSL mode", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = tt.env
			c.DBSSLMode = tt.sslMode

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"missing port", func(c *Config) { c.Port = "" }, "PORT is required"},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET is required"},
		{"zero token ttl", func(c *Config) { c.TokenTTLHours = 0 }, "TOKEN_TTL_HOURS"},
		{"zero upload size", func(c *Config) { c.UploadMaxSizeMB = 0 }, "UPLOAD_MAX_SIZE_MB"},
		{"bad timezone", func(c *Config) { c.DisplayTimezone = "Mars/Olympus" }, "DISPLAY_TIMEZONE"},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, "DB_DRIVER"},
		{"unknown upload backend", func(c *Config) { c.UploadBackend = "ftp" }, "UPLOAD_BACKEND"},
		{"s3 without bucket", func(c *Config) { c.UploadBackend = "s3" }, "S3_BUCKET"},
		{"default secret in production", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = defaultJWTSecret
		}, "default value"},
		{"short secret in production", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}, "at least 32"},
		{"weak db password in production", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, "DB_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("s3 fully configured", func(t *testing.T) {
		c := validConfig()
		c.UploadBackend = "s3"
		c.S3Bucket = "artspace"
		c.S3Endpoint = "localhost:9000"
		c.S3Region = "us-east-1"
		c.S3AccessKeyID = "minio"
		c.S3SecretAccessKey = "minio123"
		assert.NoError(t, c.Validate())
	})

	t.Run("sqlite in production skips postgres checks", func(t *testing.T) {
		c := validConfig()
		c.Env = "production"
		c.DBDriver = "sqlite"
		c.DBPassword = ""
		c.DBSSLMode = ""
		assert.NoError(t, c.Validate())
	})
}

func TestConfig_Helpers(t *testing.T) {
	c := validConfig()
	assert.Equal(t, 24*time.Hour, c.TokenTTL())
	assert.Equal(t, int64(10*1024*1024), c.UploadMaxBytes())
	assert.Equal(t, "Asia/Makassar", c.Location().String())

	c.DisplayTimezone = ""
	assert.Equal(t, time.UTC, c.Location())
}

func TestLoadConfig_Normalization(t *testing.T) {
	defer viper.Reset()

	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_SSLMODE", "  DISABLE  ")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("PUBLIC_BASE_URL", "http://localhost:5000/")
	t.Setenv("TOKEN_TTL_HOURS", "12")
	t.Setenv("S3_PUBLIC_URL", "https://cdn.example.com/art/")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "http://localhost:5000", c.PublicBaseURL)
	assert.Equal(t, 12, c.TokenTTLHours)
	assert.Equal(t, "Asia/Makassar", c.DisplayTimezone)
	assert.Equal(t, "https://cdn.example.com/art", c.S3PublicURL)

	require.NotNil(t, c.location)
	assert.Same(t, c.location, c.Location())
	assert.Equal(t, "Asia/Makassar", c.Location().String())
}
