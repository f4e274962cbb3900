package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the relay server
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Relay   RelayConfig   `yaml:"relay"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// RelayConfig holds session registry and file relay policy settings
type RelayConfig struct {
	// MaxFileSize is the hard admission limit for a single upload, in bytes.
	MaxFileSize int64 `yaml:"max_file_size"`
	// SessionTTL is how long a session may stay idle before the sweep removes it.
	SessionTTL time.Duration `yaml:"session_ttl"`
	// SweepInterval is how often the background sweep runs.
	SweepInterval time.Duration `yaml:"sweep_interval"`
	// CodePolicy names the format used for auto-generated session codes.
	CodePolicy string `yaml:"code_policy"`
	// ExplicitCodePolicy names the format client-chosen codes must satisfy.
	ExplicitCodePolicy string `yaml:"explicit_code_policy"`
	// ImplicitSessions lets an upload to an unknown code create the
	// session on the fly instead of failing with not-found.
	ImplicitSessions bool `yaml:"implicit_sessions"`
	// StaticDir, when set, is a directory with a client bundle to serve.
	StaticDir string `yaml:"static_dir"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json, console
}

// DefaultMaxFileSize is the relay's upload ceiling: 5 MiB.
const DefaultMaxFileSize = 5 * 1024 * 1024

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvInt("SERVER_PORT", 3001),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Relay: RelayConfig{
			MaxFileSize:        getEnvInt64("RELAY_MAX_FILE_SIZE", DefaultMaxFileSize),
			SessionTTL:         getEnvDuration("RELAY_SESSION_TTL", time.Hour),
			SweepInterval:      getEnvDuration("RELAY_SWEEP_INTERVAL", 30*time.Minute),
			CodePolicy:         getEnv("RELAY_CODE_POLICY", "alphanum6"),
			ExplicitCodePolicy: getEnv("RELAY_EXPLICIT_CODE_POLICY", "repeated-digit"),
			ImplicitSessions:   getEnvBool("RELAY_IMPLICIT_SESSIONS", true),
			StaticDir:          getEnv("RELAY_STATIC_DIR", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
