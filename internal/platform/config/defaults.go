package config

const (
	defaultServerPort   = 8080
	defaultMaxBodyBytes = 1 << 20

	defaultRetryMaxAttempts = 1
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultPostgresMaxConns = 10
	defaultPostgresMinConns = 0

	defaultRequestsPerMinute = 60
	defaultRateLimitBurst    = 60
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
// Every key listed here is also resolvable from an APP_ environment variable.
func defaults() map[string]any {
	return map[string]any{
		"server.host":            "0.0.0.0",
		"server.port":            defaultServerPort,
		"server.read_timeout":    "5s",
		"server.write_timeout":   "10s",
		"server.idle_timeout":    "120s",
		"server.request_timeout": "15s",
		"server.max_body_bytes":  defaultMaxBodyBytes,

		"log.level":  "info",
		"log.format": "json",

		"store.driver": DriverPostgREST,

		"store.postgrest.base_url": "",
		"store.postgrest.api_key":  "",
		"store.postgrest.schema":   "public",
		"store.postgrest.table":    "projects",

		"store.postgrest.client.timeout":                "10s",
		"store.postgrest.client.retry.max_attempts":     defaultRetryMaxAttempts,
		"store.postgrest.client.retry.initial_interval": "100ms",
		"store.postgrest.client.retry.max_interval":     "2s",
		"store.postgrest.client.retry.multiplier":       defaultRetryMultiplier,

		"store.postgrest.client.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"store.postgrest.client.circuit_breaker.timeout":         "30s",
		"store.postgrest.client.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,

		"store.postgres.dsn":       "",
		"store.postgres.max_conns": defaultPostgresMaxConns,
		"store.postgres.min_conns": defaultPostgresMinConns,
		"store.postgres.migrate":   false,

		"store.memory.seed_file": "",

		"guard.header":      "x-admin-token",
		"guard.admin_token": "",

		"cors.allowed_origins": []string{"*"},

		"rate_limit.enabled":             true,
		"rate_limit.requests_per_minute": defaultRequestsPerMinute,
		"rate_limit.burst":               defaultRateLimitBurst,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "portfolio-service",
	}
}
