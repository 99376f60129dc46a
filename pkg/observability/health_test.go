package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthRegistry_Check(t *testing.T) {
	ok := func(ctx context.Context) error { return nil }
	down := func(ctx context.Context) error { return errors.New("connection refused") }

	t.Run("healthy when empty", func(t *testing.T) {
		r := NewHealthRegistry()
		assert.Equal(t, HealthStatusHealthy, r.Check(context.Background()).Status)
	})

	t.Run("degraded when an optional dependency fails", func(t *testing.T) {
		r := NewHealthRegistry()
		r.Register("database", PingChecker("database", true, ok))
		r.Register("redis", PingChecker("redis", false, down))

		health := r.Check(context.Background())

		assert.Equal(t, HealthStatusDegraded, health.Status)
		assert.Equal(t, HealthStatusHealthy, health.Checks["database"].Status)
		assert.Contains(t, health.Checks["redis"].Message, "connection refused")
	})

	t.Run("unhealthy when a critical dependency fails", func(t *testing.T) {
		r := NewHealthRegistry()
		r.Register("database", PingChecker("database", true, down))
		r.Register("redis", PingChecker("redis", false, down))

		assert.Equal(t, HealthStatusUnhealthy, r.Check(context.Background()).Status)
	})
}
