package ports

import (
	"context"
	"time"
)

// HealthChecker is a dependency the readiness probe can interrogate, such as
// the configured project store.
type HealthChecker interface {
	// Name identifies the component in the readiness report ("postgrest",
	// "postgres", "memory").
	Name() string

	// HealthCheck returns nil when the component can serve traffic. It must
	// honour ctx cancellation.
	HealthCheck(ctx context.Context) error
}

// CheckResult is the outcome of one HealthChecker run.
type CheckResult struct {
	Name    string
	Err     error
	Latency time.Duration
}

// HealthRegistry runs the registered checkers for the readiness endpoint.
type HealthRegistry interface {
	// Register adds checker, replacing any checker with the same name.
	Register(checker HealthChecker)

	// CheckAll runs every checker and returns one result per checker in
	// registration order.
	CheckAll(ctx context.Context) []CheckResult
}
