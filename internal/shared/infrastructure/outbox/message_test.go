package outbox_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/felixgeelhaar/tribunal/internal/shared/domain"
	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/outbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listingEvent struct {
	domain.BaseEvent
	Minutes int
}

func (e listingEvent) MarshalJSON() ([]byte, error) {
	return domain.MarshalEnvelope(e, map[string]int{"duration_minutes": e.Minutes})
}

func newListingEvent(caseID string) listingEvent {
	base := domain.NewBaseEvent(caseID, "Case", "hearings.request.created")
	base.SetMetadata(domain.EventMetadata{CorrelationID: "corr-1", CausationID: "adjournCase"})
	return listingEvent{BaseEvent: base, Minutes: 60}
}

func TestNewMessage(t *testing.T) {
	event := newListingEvent("1650000000000001")

	msg, err := outbox.NewMessage(event)
	require.NoError(t, err)

	assert.Equal(t, event.EventID(), msg.EventID)
	assert.Equal(t, "Case", msg.AggregateType)
	assert.Equal(t, "1650000000000001", msg.AggregateID)
	assert.Equal(t, "hearings.request.created", msg.RoutingKey)
	assert.Equal(t, event.OccurredAt(), msg.CreatedAt)
	assert.False(t, msg.IsPublished())
	assert.False(t, msg.IsDead())

	var body struct {
		AggregateID string         `json:"aggregate_id"`
		Payload     map[string]int `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(msg.Payload, &body))
	assert.Equal(t, "1650000000000001", body.AggregateID)
	assert.Equal(t, 60, body.Payload["duration_minutes"])

	var meta domain.EventMetadata
	require.NoError(t, json.Unmarshal(msg.Metadata, &meta))
	assert.Equal(t, "corr-1", meta.CorrelationID)
	assert.Equal(t, "adjournCase", meta.CausationID)
}

func TestMessage_State(t *testing.T) {
	now := time.Now()
	msg := &outbox.Message{RetryCount: 2}

	assert.True(t, msg.CanRetry(3))
	assert.False(t, msg.CanRetry(2))

	msg.PublishedAt = &now
	assert.True(t, msg.IsPublished())

	msg.DeadLetteredAt = &now
	assert.True(t, msg.IsDead())
}
