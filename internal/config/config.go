// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults,
// optionally overlaid by a YAML file, and validates all settings on startup to
// fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Import    ImportConfig    `yaml:"import"`
	Rate      RateLimitConfig `yaml:"rate"`
	Security  SecurityConfig  `yaml:"security"`
	Logging   LoggingConfig   `yaml:"logging"`
	AI        AIConfig        `yaml:"ai"`
	Events    EventsConfig    `yaml:"events"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Audit     AuditConfig     `yaml:"audit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `yaml:"host" env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `yaml:"port" env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 0, websockets stay open)
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" default:"0s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `yaml:"request_timeout" env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. Empty selects the in-memory store.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `yaml:"url" env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 10)
	MaxConns int `yaml:"max_conns" env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 1)
	MinConns int `yaml:"min_conns" env:"DB_MIN_CONNS" default:"1"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// Enabled reports whether a Postgres store is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// ImportConfig holds CSV import settings.
type ImportConfig struct {
	// MaxFileSize is the maximum accepted upload in bytes (default: 10MB)
	MaxFileSize int64 `yaml:"max_file_size" env:"IMPORT_MAX_FILE_SIZE" default:"10485760"`

	// DefaultCharset is used when a request names none (default: utf-8)
	DefaultCharset string `yaml:"default_charset" env:"IMPORT_DEFAULT_CHARSET" default:"utf-8"`

	// DefaultMode is the decoder mode when a request names none: legacy or strict (default: legacy)
	DefaultMode string `yaml:"default_mode" env:"IMPORT_DEFAULT_MODE" default:"legacy"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `yaml:"enabled" env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `yaml:"requests_per_minute" env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// ImportLimit is requests per minute for the import endpoint (default: 10)
	ImportLimit int `yaml:"import_limit" env:"RATE_LIMIT_IMPORT" default:"10"`

	// GenerateLimit is requests per minute for AI generation endpoints (default: 30)
	GenerateLimit int `yaml:"generate_limit" env:"RATE_LIMIT_GENERATE" default:"30"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `yaml:"trusted_proxies" env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `yaml:"enable_csp" env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey protects /api routes with an X-API-Key header (default: false)
	RequireAPIKey bool `yaml:"require_api_key" env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted API keys
	APIKeys []string `yaml:"api_keys" env:"API_KEYS"`

	// AllowedOrigins lists extra host patterns (path.Match syntax) allowed
	// to open the event WebSocket. Same-origin pages are always allowed.
	AllowedOrigins []string `yaml:"allowed_origins" env:"WS_ALLOWED_ORIGINS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `yaml:"level" env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `yaml:"format" env:"LOG_FORMAT" default:"text"`
}

// AIConfig holds text generation settings.
type AIConfig struct {
	// Provider is the registered generator name (default: openai)
	Provider string `yaml:"provider" env:"AI_PROVIDER" default:"openai"`

	// BaseURL overrides the provider API root
	BaseURL string `yaml:"base_url" env:"AI_BASE_URL"`

	// Timeout bounds each provider call (default: 30s)
	Timeout time.Duration `yaml:"timeout" env:"AI_TIMEOUT" default:"30s"`

	// ModelCacheTTL is how long a model listing is trusted (default: 10m)
	ModelCacheTTL time.Duration `yaml:"model_cache_ttl" env:"AI_MODEL_CACHE_TTL" default:"10m"`

	// MaxConcurrent is the number of generations allowed at once (default: 4)
	MaxConcurrent int `yaml:"max_concurrent" env:"AI_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long a generation waits for a slot (default: 10s)
	MaxWaitTime time.Duration `yaml:"max_wait_time" env:"AI_MAX_WAIT_TIME" default:"10s"`
}

// EventsConfig holds change-feed settings.
type EventsConfig struct {
	// NATSURL enables the NATS publisher when set
	NATSURL string `yaml:"nats_url" env:"NATS_URL"`

	// Subject is the subject prefix for published events (default: qaeditor.dataset)
	Subject string `yaml:"subject" env:"EVENTS_SUBJECT" default:"qaeditor.dataset"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	// Endpoint is the OTLP gRPC collector address; empty disables tracing
	Endpoint string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// ServiceName is reported as service.name (default: qaeditor)
	ServiceName string `yaml:"service_name" env:"OTEL_SERVICE_NAME" default:"qaeditor"`

	// Insecure disables TLS to the collector (default: true)
	Insecure bool `yaml:"insecure" env:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
}

// AuditConfig holds audit log retention settings.
type AuditConfig struct {
	// RetentionDays is how long audit entries are kept (default: 90)
	RetentionDays int `yaml:"retention_days" env:"AUDIT_RETENTION_DAYS" default:"90"`

	// PruneInterval is how often expired entries are removed (default: 24h)
	PruneInterval time.Duration `yaml:"prune_interval" env:"AUDIT_PRUNE_INTERVAL" default:"24h"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
