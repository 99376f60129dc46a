package eventbus_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/tribunal/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInProcessEventBus_Publish(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(observability.DiscardLogger())
	consumer := &recordingConsumer{eventTypes: []string{keyRequested}}
	bus.RegisterConsumer(consumer)

	event := newEvent(keyRequested)
	event.OccurredAt = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	event.Payload = json.RawMessage(`{"duration_minutes":60}`)
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), keyRequested, payload))

	require.Len(t, consumer.events, 1)
	got := consumer.events[0]
	assert.Equal(t, event.EventID, got.EventID)
	assert.Equal(t, "1650000000000001", got.AggregateID)
	assert.JSONEq(t, `{"duration_minutes":60}`, string(got.Payload))
}

func TestInProcessEventBus_FillsMissingRoutingKey(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(observability.DiscardLogger())
	consumer := &recordingConsumer{eventTypes: []string{keyCancelled}}
	bus.RegisterConsumer(consumer)

	require.NoError(t, bus.Publish(context.Background(), keyCancelled, []byte(`{"aggregate_id":"42"}`)))

	require.Len(t, consumer.events, 1)
	assert.Equal(t, keyCancelled, consumer.events[0].RoutingKey)
}

func TestInProcessEventBus_ConsumerErrorIsSwallowed(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(observability.DiscardLogger())
	bus.RegisterConsumer(&recordingConsumer{eventTypes: []string{keyRequested}, err: errors.New("boom")})

	payload, err := json.Marshal(newEvent(keyRequested))
	require.NoError(t, err)

	assert.NoError(t, bus.Publish(context.Background(), keyRequested, payload))
}

func TestInProcessEventBus_InvalidPayload(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(observability.DiscardLogger())

	err := bus.Publish(context.Background(), keyRequested, []byte("not json"))

	assert.Error(t, err)
	assert.NoError(t, bus.Close())
	assert.Equal(t, 0, bus.Registry().ConsumerCount())
}

func TestNoopPublisher(t *testing.T) {
	p := eventbus.NewNoopPublisher(observability.DiscardLogger())
	assert.NoError(t, p.Publish(context.Background(), keyRequested, []byte("{}")))
	assert.NoError(t, p.Close())
}
