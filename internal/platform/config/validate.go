package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Store.validate(),
		c.Guard.validate(),
		c.RateLimit.validate(),
		c.Telemetry.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}
	if s.RequestTimeout <= 0 {
		errs = append(errs, errors.New("server.request_timeout must be positive"))
	}
	if s.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_bytes must be positive, got %d", s.MaxBodyBytes))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (s *StoreConfig) validate() error {
	switch s.Driver {
	case DriverPostgREST:
		return s.PostgREST.validate()
	case DriverPostgres:
		return s.Postgres.validate()
	case DriverMemory:
		return nil
	default:
		return fmt.Errorf("store.driver must be one of: %s, %s, %s; got %q",
			DriverPostgREST, DriverPostgres, DriverMemory, s.Driver)
	}
}

func (p *PostgRESTConfig) validate() error {
	var errs []error

	if p.BaseURL == "" {
		errs = append(errs, errors.New("store.postgrest.base_url must not be empty"))
	} else if u, err := url.Parse(p.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("store.postgrest.base_url must be an absolute URL, got %q", p.BaseURL))
	}
	if p.APIKey == "" {
		errs = append(errs, errors.New("store.postgrest.api_key must not be empty"))
	}
	if strings.TrimSpace(p.Table) == "" {
		errs = append(errs, errors.New("store.postgrest.table must not be empty"))
	}
	errs = append(errs, p.Client.validate("store.postgrest.client"))

	return errors.Join(errs...)
}

func (cl *ClientConfig) validate(prefix string) error {
	var errs []error

	if cl.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s.timeout must be positive", prefix))
	}
	if cl.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("%s.retry.max_attempts must be >= 1, got %d", prefix, cl.Retry.MaxAttempts))
	}
	if cl.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("%s.retry.multiplier must be positive, got %f", prefix, cl.Retry.Multiplier))
	}
	if cl.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("%s.circuit_breaker.max_failures must be >= 1, got %d",
			prefix, cl.CircuitBreaker.MaxFailures))
	}

	return errors.Join(errs...)
}

func (p *PostgresConfig) validate() error {
	var errs []error

	if p.DSN == "" {
		errs = append(errs, errors.New("store.postgres.dsn must not be empty"))
	}
	if p.MaxConns < 1 {
		errs = append(errs, fmt.Errorf("store.postgres.max_conns must be >= 1, got %d", p.MaxConns))
	}
	if p.MinConns < 0 || p.MinConns > p.MaxConns {
		errs = append(errs, fmt.Errorf("store.postgres.min_conns must be between 0 and max_conns, got %d", p.MinConns))
	}

	return errors.Join(errs...)
}

// validate checks only the header name. A missing admin token is not a
// startup error.
func (g *GuardConfig) validate() error {
	if strings.TrimSpace(g.Header) == "" {
		return errors.New("guard.header must not be empty")
	}
	return nil
}

func (r *RateLimitConfig) validate() error {
	if !r.Enabled {
		return nil
	}

	var errs []error

	if r.RequestsPerMinute < 1 {
		errs = append(errs, fmt.Errorf("rate_limit.requests_per_minute must be >= 1, got %d", r.RequestsPerMinute))
	}
	if r.Burst < 1 {
		errs = append(errs, fmt.Errorf("rate_limit.burst must be >= 1, got %d", r.Burst))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}
