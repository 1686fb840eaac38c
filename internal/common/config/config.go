// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Database      DatabaseConfig     `mapstructure:"database"`
	RateLimit     RateLimitConfig    `mapstructure:"rate_limit"`
	Frequency     FrequencyConfig    `mapstructure:"frequency"`
	Uploads       UploadConfig       `mapstructure:"uploads"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// IsProduction reports whether the portal runs with production hardening
// (secure cookies, json logs).
func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type ServerConfig struct {
	Port           int    `mapstructure:"port"`
	MetricsPort    int    `mapstructure:"metrics_port"`
	ReadTimeout    int    `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout   int    `mapstructure:"write_timeout"` // milliseconds
	BodyLimit      int    `mapstructure:"body_limit"`    // bytes
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Mongo MongoConfig `mapstructure:"mongo"`
	Redis RedisConfig `mapstructure:"redis"`
}

type MongoConfig struct {
	URI          string `mapstructure:"uri"`
	Database     string `mapstructure:"database"`
	Collection   string `mapstructure:"collection"`
	ConnTimeout  int    `mapstructure:"conn_timeout"`  // milliseconds
	QueryTimeout int    `mapstructure:"query_timeout"` // milliseconds
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig holds the per-endpoint throttling thresholds.
type RateLimitConfig struct {
	Submission LimitConfig       `mapstructure:"submission"`
	Status     LimitConfig       `mapstructure:"status"`
	Bucket     TokenBucketConfig `mapstructure:"bucket"`
}

type LimitConfig struct {
	MaxRequests int `mapstructure:"max_requests"`
	Window      int `mapstructure:"window"` // milliseconds
}

type TokenBucketConfig struct {
	Capacity   int     `mapstructure:"capacity"`
	RefillRate float64 `mapstructure:"refill_rate"` // tokens per second
}

// FrequencyConfig holds the one-submission-per-interval gate settings.
type FrequencyConfig struct {
	MinInterval int `mapstructure:"min_interval"` // milliseconds
}

// UploadConfig holds attachment validation limits.
type UploadConfig struct {
	MaxDocumentBytes int64 `mapstructure:"max_document_bytes"`
	MaxPhotoBytes    int64 `mapstructure:"max_photo_bytes"`
}

// NotificationConfig holds settings for post-submission confirmations.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled  bool   `mapstructure:"enabled"`
		SenderID string `mapstructure:"sender_id"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}
