// Package config provides configuration loading and validation for the service.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: defaults -> base.yaml -> {profile}.yaml -> .env -> env vars.
package config

import "time"

// Store driver names.
const (
	DriverPostgREST = "postgrest"
	DriverPostgres  = "postgres"
	DriverMemory    = "memory"
)

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Store     StoreConfig     `koanf:"store"`
	Guard     GuardConfig     `koanf:"guard"`
	CORS      CORSConfig      `koanf:"cors"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string        `koanf:"host"`
	Port           int           `koanf:"port"`
	ReadTimeout    time.Duration `koanf:"read_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
	IdleTimeout    time.Duration `koanf:"idle_timeout"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	MaxBodyBytes   int64         `koanf:"max_body_bytes"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// StoreConfig selects the project store backend and holds the settings of
// each. Only the section matching Driver is validated.
type StoreConfig struct {
	Driver    string          `koanf:"driver"`
	PostgREST PostgRESTConfig `koanf:"postgrest"`
	Postgres  PostgresConfig  `koanf:"postgres"`
	Memory    MemoryConfig    `koanf:"memory"`
}

// PostgRESTConfig holds settings for the hosted REST query gateway.
type PostgRESTConfig struct {
	BaseURL string       `koanf:"base_url"`
	APIKey  string       `koanf:"api_key"`
	Schema  string       `koanf:"schema"`
	Table   string       `koanf:"table"`
	Client  ClientConfig `koanf:"client"`
}

// ClientConfig holds outbound HTTP client settings.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// PostgresConfig holds settings for a direct database connection pool.
type PostgresConfig struct {
	DSN      string `koanf:"dsn"`
	MaxConns int32  `koanf:"max_conns"`
	MinConns int32  `koanf:"min_conns"`
	Migrate  bool   `koanf:"migrate"`
}

// MemoryConfig holds settings for the in-process store. SeedFile, when set,
// names a JSON array of project inputs loaded at startup.
type MemoryConfig struct {
	SeedFile string `koanf:"seed_file"`
}

// GuardConfig holds the shared-secret settings for mutating routes.
// An empty AdminToken is allowed at startup; mutating requests then fail
// with a server error.
type GuardConfig struct {
	Header     string `koanf:"header"`
	AdminToken string `koanf:"admin_token"`
}

// CORSConfig holds cross-origin settings.
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// RateLimitConfig holds per-client inbound rate limit settings.
type RateLimitConfig struct {
	Enabled           bool `koanf:"enabled"`
	RequestsPerMinute int  `koanf:"requests_per_minute"`
	Burst             int  `koanf:"burst"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
