package health_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/portfolio-service/internal/platform/health"
	"github.com/jsamuelsen11/portfolio-service/internal/ports"
	"github.com/jsamuelsen11/portfolio-service/mocks"
)

// stubChecker reports err after waiting delay or until ctx ends.
type stubChecker struct {
	name  string
	err   error
	delay time.Duration
}

func (s stubChecker) Name() string { return s.name }

func (s stubChecker) HealthCheck(ctx context.Context) error {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.err
}

func names(results []ports.CheckResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Name)
	}
	return out
}

func TestCheckAll_Empty(t *testing.T) {
	t.Parallel()

	results := health.New().CheckAll(context.Background())

	assert.Empty(t, results)
	assert.True(t, health.Healthy(results))
}

func TestCheckAll_ReportsInRegistrationOrder(t *testing.T) {
	t.Parallel()

	gatewayDown := errors.New("postgrest: failing (circuit breaker open)")

	r := health.New()
	r.Register(stubChecker{name: "postgrest", err: gatewayDown, delay: 20 * time.Millisecond})
	r.Register(stubChecker{name: "memory"})

	results := r.CheckAll(context.Background())

	require.Equal(t, []string{"postgrest", "memory"}, names(results))
	assert.ErrorIs(t, results[0].Err, gatewayDown)
	assert.GreaterOrEqual(t, results[0].Latency, 20*time.Millisecond)
	assert.NoError(t, results[1].Err)
	assert.False(t, health.Healthy(results))
}

func TestRegister_ReplacesSameName(t *testing.T) {
	t.Parallel()

	r := health.New()
	r.Register(stubChecker{name: "postgres", err: errors.New("stale pool")})
	r.Register(stubChecker{name: "memory"})
	r.Register(stubChecker{name: "postgres"})

	results := r.CheckAll(context.Background())

	assert.Equal(t, []string{"postgres", "memory"}, names(results))
	assert.True(t, health.Healthy(results))
}

func TestCheckAll_PerCheckTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		timeout time.Duration
		wantErr error
	}{
		{name: "deadline applied", timeout: 20 * time.Millisecond, wantErr: context.DeadlineExceeded},
		{name: "deadline disabled", timeout: 0, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := health.New(health.WithCheckTimeout(tt.timeout))
			r.Register(stubChecker{name: "postgrest", delay: 100 * time.Millisecond})

			results := r.CheckAll(context.Background())

			require.Len(t, results, 1)
			if tt.wantErr == nil {
				assert.NoError(t, results[0].Err)
			} else {
				assert.ErrorIs(t, results[0].Err, tt.wantErr)
			}
		})
	}
}

func TestCheckAll_PassesContextToChecker(t *testing.T) {
	t.Parallel()

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "probe")

	checker := mocks.NewMockHealthChecker(t)
	checker.EXPECT().Name().Return("postgres")
	checker.EXPECT().HealthCheck(mock.MatchedBy(func(c context.Context) bool {
		_, hasDeadline := c.Deadline()
		return c.Value(key{}) == "probe" && hasDeadline
	})).Return(nil)

	r := health.New()
	r.Register(checker)

	results := r.CheckAll(ctx)

	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	t.Parallel()

	r := health.New()
	var wg sync.WaitGroup
	for i := range 40 {
		wg.Go(func() {
			if i%2 == 0 {
				r.Register(stubChecker{name: "memory"})
				return
			}
			for _, res := range r.CheckAll(context.Background()) {
				assert.Equal(t, "memory", res.Name)
			}
		})
	}
	wg.Wait()

	assert.Len(t, r.CheckAll(context.Background()), 1)
}
