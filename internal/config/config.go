// Package config reads process configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	// HTTP server
	Addr string

	// Storage
	DataBackend      string
	SQLiteDBPath     string
	DatabaseURL      string
	StorageNamespace string

	// Export sinks
	ExportDir         string
	ExportS3Bucket    string
	ExportS3Region    string
	ExportS3Endpoint  string
	ExportS3Prefix    string
	ExportS3PathStyle bool

	// Static credentials; empty uses the default AWS chain
	ExportS3AccessKeyID     string
	ExportS3SecretAccessKey string

	// Reminder delivery; empty URL logs reminders instead
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Logging
	LogLevel  string
	LogFormat string

	// Locale picks weekday labels for chart series.
	Locale string
}

// LoadDotEnv loads .env from the working directory if it exists.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Addr: getEnv("ADDR", ":8080"),

		DataBackend:      getEnv("DATA_BACKEND", BackendMemory),
		SQLiteDBPath:     getEnv("SQLITE_DB_PATH", "./data/nappu.db"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		StorageNamespace: getEnv("NAPPU_STORAGE_NAMESPACE", "nappu-storage"),

		ExportDir:         getEnv("EXPORT_DIR", "./data/exports"),
		ExportS3Bucket:    getEnv("EXPORT_S3_BUCKET", ""),
		ExportS3Region:    getEnv("EXPORT_S3_REGION", "us-east-1"),
		ExportS3Endpoint:  getEnv("EXPORT_S3_ENDPOINT", ""),
		ExportS3Prefix:    getEnv("EXPORT_S3_PREFIX", "exports"),
		ExportS3PathStyle: getEnvBool("EXPORT_S3_PATH_STYLE", false),

		ExportS3AccessKeyID:     getEnv("EXPORT_S3_ACCESS_KEY_ID", ""),
		ExportS3SecretAccessKey: getEnv("EXPORT_S3_SECRET_ACCESS_KEY", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "nappu"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "feeding_reminders"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		Locale: getEnv("LOCALE", "zh-Hans"),
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errors []string

	if c.Addr == "" {
		errors = append(errors, "listen address cannot be empty")
	}

	switch c.DataBackend {
	case BackendMemory:
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if isSQLiteMemory(c.SQLiteDBPath) {
			// Migrations run on their own connection and would miss an in-memory database.
			errors = append(errors, "in-memory SQLite database is not supported; use DATA_BACKEND=memory instead")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
			}
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errors = append(errors, "DATABASE_URL is required when using postgres backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v",
			c.DataBackend, []string{BackendMemory, BackendSQLite, BackendPostgres}))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.ExportS3Endpoint != "" {
		if u, err := url.Parse(c.ExportS3Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
			errors = append(errors, fmt.Sprintf("invalid S3 endpoint '%s'", c.ExportS3Endpoint))
		}
	}

	if (c.ExportS3AccessKeyID == "") != (c.ExportS3SecretAccessKey == "") {
		errors = append(errors, "EXPORT_S3_ACCESS_KEY_ID and EXPORT_S3_SECRET_ACCESS_KEY must be set together")
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func isSQLiteMemory(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file::memory:") || strings.Contains(path, "mode=memory")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
