// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/usestring/wpbridge-mcp/pkg/jsoncompact"
)

// Tool output limit defaults
const (
	DefaultPerPageValue    = 20
	DefaultQueryLimitValue = 20
	DefaultPreviewRecords  = 5
)

// Processing safety cap defaults
const (
	MaxRecordsValue = 1000
)

// Config holds all configuration for the MCP server and CLI.
type Config struct {
	WordPressURL      string        // WP_BASE_URL, default "http://localhost:8080"
	Username          string        // WP_USERNAME, default ""
	AppPassword       string        // WP_APP_PASSWORD, default ""
	JWTToken          string        // WP_JWT_TOKEN, default "" (takes precedence over basic auth)
	HTTPClientTimeout time.Duration // HTTP_CLIENT_TIMEOUT_MS, default 15000ms (15s)
	FetchTimeout      time.Duration // FETCH_TIMEOUT_MS, default 60000ms (60s)
	FetchWorkers      int           // FETCH_WORKERS, default 4
	WebhookTargetURL  string        // WEBHOOK_TARGET_URL, default ""

	// Batch cache
	BatchCacheMaxItems int           // BATCH_CACHE_MAX_ITEMS, default 64
	BatchCacheTTL      time.Duration // BATCH_CACHE_TTL_MS, default 300000ms (5m)

	// Compaction defaults (for AI-optimized responses)
	CompactMaxArrayItems int // COMPACT_MAX_ARRAY_ITEMS
	CompactMaxStringLen  int // COMPACT_MAX_STRING_LEN
	CompactMaxDepth      int // COMPACT_MAX_DEPTH

	// Tool output limits
	DefaultPerPage    int // DEFAULT_PER_PAGE
	DefaultQueryLimit int // DEFAULT_QUERY_LIMIT

	// Processing safety caps
	MaxRecords int // MAX_RECORDS, default 1000

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, "text" or "json", default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		WordPressURL:      getEnvString("WP_BASE_URL", "http://localhost:8080"),
		Username:          getEnvString("WP_USERNAME", ""),
		AppPassword:       getEnvString("WP_APP_PASSWORD", ""),
		JWTToken:          getEnvString("WP_JWT_TOKEN", ""),
		HTTPClientTimeout: getEnvDurationMs("HTTP_CLIENT_TIMEOUT_MS", 15000),
		FetchTimeout:      getEnvDurationMs("FETCH_TIMEOUT_MS", 60000),
		FetchWorkers:      getEnvInt("FETCH_WORKERS", 4),
		WebhookTargetURL:  getEnvString("WEBHOOK_TARGET_URL", ""),

		BatchCacheMaxItems: getEnvInt("BATCH_CACHE_MAX_ITEMS", 64),
		BatchCacheTTL:      getEnvDurationMs("BATCH_CACHE_TTL_MS", 300000),

		// Compaction defaults (from jsoncompact package)
		CompactMaxArrayItems: getEnvInt("COMPACT_MAX_ARRAY_ITEMS", jsoncompact.DefaultMaxArrayItems),
		CompactMaxStringLen:  getEnvInt("COMPACT_MAX_STRING_LEN", jsoncompact.DefaultMaxStringLen),
		CompactMaxDepth:      getEnvInt("COMPACT_MAX_DEPTH", jsoncompact.DefaultMaxDepth),

		DefaultPerPage:    getEnvInt("DEFAULT_PER_PAGE", DefaultPerPageValue),
		DefaultQueryLimit: getEnvInt("DEFAULT_QUERY_LIMIT", DefaultQueryLimitValue),

		MaxRecords: getEnvInt("MAX_RECORDS", MaxRecordsValue),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// HasCredentials reports whether any authentication is configured.
func (c *Config) HasCredentials() bool {
	return c.JWTToken != "" || (c.Username != "" && c.AppPassword != "")
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
