// Package config handles application configuration and environment loading.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultMaxUploadBytes is the global multipart upload cap (20 MiB).
const DefaultMaxUploadBytes = 20 << 20

// DefaultExtractCharCap bounds the text returned by the extraction pipeline.
const DefaultExtractCharCap = 10000

// Config holds the configuration for the HTTP service and its pipelines.
type Config struct {
	ListenAddr    string // HTTP listen address (default ":8080")
	PublicBaseURL string // URL prefix for artifact download links (default "http://localhost:8080")
	ScratchDir    string // artifact scratch directory (default "static")
	AuditLogPath  string // compression audit log file (default "compressions.log")

	MaxUploadBytes int64 // global upload cap in bytes (default 20 MiB)
	ExtractCharCap int   // extraction character cap (default 10000)

	Retention      time.Duration // artifact retention window (default 24h)
	SweepSchedule  string        // janitor cron schedule (default "@hourly")
	JanitorEnabled bool          // run the in-process retention janitor (default true)

	GhostscriptBin string // converter binary (default: platform-dependent)

	LogLevel  string // log level: debug, info, warn, error (default "info")
	LogFormat string // log output: json (default) or text
	Env       string // environment: "development" (default) or "production"

	// Rate limiting (0 disables)
	RateLimitRPS   float64 // sustained requests per second (default 50)
	RateLimitBurst int     // burst capacity (default 100)

	// CORS
	CORSAllowedOrigins []string // allowed origins for CORS (default: ["*"])

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsProduction returns true when the server is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// LoadFromEnv loads configuration from environment variables.
// Every pipeline knob has a working default; the service starts with no env at all.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		ListenAddr:     os.Getenv("DOCMILL_ADDR"),
		PublicBaseURL:  os.Getenv("DOCMILL_PUBLIC_BASE_URL"),
		ScratchDir:     os.Getenv("DOCMILL_SCRATCH_DIR"),
		AuditLogPath:   os.Getenv("DOCMILL_AUDIT_LOG"),
		SweepSchedule:  os.Getenv("DOCMILL_SWEEP_SCHEDULE"),
		GhostscriptBin: os.Getenv("DOCMILL_GS_BIN"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogFormat:      os.Getenv("LOG_FORMAT"),
		Env:            os.Getenv("ENV"),
		JanitorEnabled: parseBoolEnvDefault("DOCMILL_JANITOR", true),
	}

	if v := os.Getenv("DOCMILL_MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("DOCMILL_MAX_UPLOAD_BYTES must be a positive integer, got %q", v)
		}
		cfg.MaxUploadBytes = n
	}
	if v := os.Getenv("DOCMILL_EXTRACT_CHAR_CAP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("DOCMILL_EXTRACT_CHAR_CAP must be a positive integer, got %q", v)
		}
		cfg.ExtractCharCap = n
	}
	if v := os.Getenv("DOCMILL_RETENTION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("DOCMILL_RETENTION must be a positive duration, got %q", v)
		}
		cfg.Retention = d
	}

	// Rate limiting
	if v := os.Getenv("DOCMILL_RATE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = f
		}
	}
	if v := os.Getenv("DOCMILL_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitBurst = n
		}
	}

	// CORS
	if v := os.Getenv("DOCMILL_CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORSAllowedOrigins = origins
	}

	// Defaults
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:8080"
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	if cfg.ScratchDir == "" {
		cfg.ScratchDir = "static"
	}
	if cfg.AuditLogPath == "" {
		cfg.AuditLogPath = "compressions.log"
	}
	if cfg.MaxUploadBytes == 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.ExtractCharCap == 0 {
		cfg.ExtractCharCap = DefaultExtractCharCap
	}
	if cfg.Retention == 0 {
		cfg.Retention = 24 * time.Hour
	}
	if cfg.SweepSchedule == "" {
		cfg.SweepSchedule = "@hourly"
	}
	if cfg.GhostscriptBin == "" {
		cfg.GhostscriptBin = DefaultGhostscriptBin()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}
	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS = 50
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst = 100
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	if !strings.HasPrefix(cfg.PublicBaseURL, "http://") && !strings.HasPrefix(cfg.PublicBaseURL, "https://") {
		return nil, fmt.Errorf("DOCMILL_PUBLIC_BASE_URL must start with http:// or https://, got %q", cfg.PublicBaseURL)
	}

	// Production mode: insecure defaults are fatal errors.
	if cfg.IsProduction() {
		if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
			return nil, fmt.Errorf("CORS wildcard (*) is not allowed in production (ENV=production)")
		}
		if strings.Contains(cfg.PublicBaseURL, "localhost") {
			cfg.Warnings = append(cfg.Warnings, "DOCMILL_PUBLIC_BASE_URL points at localhost; download links will not resolve for external callers")
		}
	}
	if !cfg.JanitorEnabled {
		cfg.Warnings = append(cfg.Warnings, "retention janitor disabled; scratch directory will grow until swept externally")
	}

	return cfg, nil
}

// DefaultGhostscriptBin returns the converter binary to use when
// DOCMILL_GS_BIN is not set. Homebrew installs outside $PATH on macOS.
func DefaultGhostscriptBin() string {
	if runtime.GOOS == "darwin" {
		return "/opt/homebrew/bin/gs"
	}
	return "gs"
}

func parseBoolEnvDefault(key string, defaultVal bool) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if v == "" {
		return defaultVal
	}
	if v == "0" || v == "false" || v == "no" || v == "off" {
		return false
	}
	if v == "1" || v == "true" || v == "yes" || v == "on" {
		return true
	}
	return defaultVal
}

// LoadDotEnv reads a .env file into the environment when present. Variables
// already set in the real environment take precedence over file values.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil // .env not found is not an error
	}
	return godotenv.Load(path)
}
