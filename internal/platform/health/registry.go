// Package health runs readiness checks against the project store and any
// other dependency registered at startup.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/jsamuelsen11/portfolio-service/internal/ports"
)

// DefaultCheckTimeout bounds a single checker when no other timeout is set.
const DefaultCheckTimeout = 2 * time.Second

var _ ports.HealthRegistry = (*Registry)(nil)

// Option configures a Registry.
type Option func(*Registry)

// WithCheckTimeout sets the deadline applied to each check. Non-positive
// values disable it.
func WithCheckTimeout(d time.Duration) Option {
	return func(r *Registry) {
		r.checkTimeout = d
	}
}

// Registry is a concurrency-safe ports.HealthRegistry.
type Registry struct {
	mu           sync.RWMutex
	checkers     []ports.HealthChecker
	checkTimeout time.Duration
}

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{checkTimeout: DefaultCheckTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds checker. A checker whose name is already registered takes
// over that slot.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.checkers {
		if c.Name() == checker.Name() {
			r.checkers[i] = checker
			return
		}
	}
	r.checkers = append(r.checkers, checker)
}

// CheckAll runs every checker concurrently, each under its own deadline.
func (r *Registry) CheckAll(ctx context.Context) []ports.CheckResult {
	r.mu.RLock()
	checkers := append([]ports.HealthChecker(nil), r.checkers...)
	r.mu.RUnlock()

	results := make([]ports.CheckResult, len(checkers))
	var wg sync.WaitGroup
	for i, c := range checkers {
		wg.Go(func() {
			results[i] = r.run(ctx, c)
		})
	}
	wg.Wait()

	return results
}

func (r *Registry) run(ctx context.Context, c ports.HealthChecker) ports.CheckResult {
	if r.checkTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.checkTimeout)
		defer cancel()
	}

	start := time.Now()
	err := c.HealthCheck(ctx)
	return ports.CheckResult{Name: c.Name(), Err: err, Latency: time.Since(start)}
}

// Healthy reports whether every result passed.
func Healthy(results []ports.CheckResult) bool {
	for _, res := range results {
		if res.Err != nil {
			return false
		}
	}
	return true
}
