package outbox_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/tribunal/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakePublisher struct {
	mu        sync.Mutex
	failures  int
	published []string
}

func (p *fakePublisher) Publish(_ context.Context, routingKey string, _ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failures > 0 {
		p.failures--
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, routingKey)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

func saveEvent(t *testing.T, repo outbox.Repository, caseID string) {
	t.Helper()
	msg, err := outbox.NewMessage(newListingEvent(caseID))
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), msg))
}

func testConfig() outbox.ProcessorConfig {
	cfg := outbox.DefaultProcessorConfig()
	cfg.PollInterval = 5 * time.Millisecond
	cfg.MaxRetries = 3
	cfg.RetryBackoffBase = 0
	return cfg
}

func TestProcessor_ProcessOnce_Publishes(t *testing.T) {
	repo := outbox.NewInMemoryRepository()
	saveEvent(t, repo, "1")
	saveEvent(t, repo, "2")
	publisher := &fakePublisher{}
	metrics := observability.NewInMemoryMetrics()

	p := outbox.NewProcessor(repo, publisher, testConfig(), observability.DiscardLogger(), metrics)
	require.NoError(t, p.ProcessOnce(context.Background()))

	assert.Equal(t, 2, publisher.count())
	for _, msg := range repo.Messages() {
		assert.True(t, msg.IsPublished())
	}
	stats := p.GetStats()
	assert.Equal(t, uint64(2), stats.PublishedCount)
	assert.NotNil(t, stats.LastProcessedAt)
	assert.Equal(t, int64(2), metrics.GetCounter(outbox.MetricPublished, observability.T("routing_key", "hearings.request.created")))
}

func TestProcessor_FailureSchedulesRetry(t *testing.T) {
	repo := outbox.NewInMemoryRepository()
	saveEvent(t, repo, "1")
	publisher := &fakePublisher{failures: 1}

	p := outbox.NewProcessor(repo, publisher, testConfig(), observability.DiscardLogger(), nil)
	require.NoError(t, p.ProcessOnce(context.Background()))

	msg := repo.Messages()[0]
	assert.False(t, msg.IsPublished())
	assert.Equal(t, 1, msg.RetryCount)
	require.NotNil(t, msg.LastError)
	assert.Equal(t, "broker unavailable", *msg.LastError)
	assert.Equal(t, uint64(1), p.GetStats().FailedCount)
}

func TestProcessor_DeadLettersAfterMaxRetries(t *testing.T) {
	repo := outbox.NewInMemoryRepository()
	saveEvent(t, repo, "1")
	publisher := &fakePublisher{failures: 10}
	cfg := testConfig()
	cfg.RetryBackoffBase = time.Nanosecond
	cfg.RetryBackoffMax = time.Nanosecond

	p := outbox.NewProcessor(repo, publisher, cfg, observability.DiscardLogger(), nil)
	for i := 0; i < cfg.MaxRetries; i++ {
		time.Sleep(time.Millisecond)
		require.NoError(t, p.ProcessOnce(context.Background()))
	}

	msg := repo.Messages()[0]
	assert.True(t, msg.IsDead())
	require.NotNil(t, msg.DeadLetterReason)
	assert.Equal(t, "broker unavailable", *msg.DeadLetterReason)
	assert.Equal(t, uint64(1), p.GetStats().DeadCount)
}

func TestProcessor_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := outbox.NewInMemoryRepository()
	saveEvent(t, repo, "1")
	publisher := &fakePublisher{}

	p := outbox.NewProcessor(repo, publisher, testConfig(), observability.DiscardLogger(), nil)
	p.Start(context.Background())

	assert.Eventually(t, func() bool { return publisher.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, p.IsRunning())

	p.Stop()
	assert.False(t, p.IsRunning())
	p.Stop()
}

func TestProcessor_RunReturnsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	p := outbox.NewProcessor(outbox.NewInMemoryRepository(), &fakePublisher{}, testConfig(), observability.DiscardLogger(), nil)

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("processor did not stop")
	}
}

func TestInMemoryRepository_DeleteOld(t *testing.T) {
	repo := outbox.NewInMemoryRepository()
	saveEvent(t, repo, "1")
	saveEvent(t, repo, "2")
	msgs := repo.Messages()
	old := time.Now().AddDate(0, 0, -30)
	msgs[0].PublishedAt = &old

	deleted, err := repo.DeleteOld(context.Background(), 14)
	require.NoError(t, err)

	assert.Equal(t, int64(1), deleted)
	assert.Len(t, repo.Messages(), 1)
}
