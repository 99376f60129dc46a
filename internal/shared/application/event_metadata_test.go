package application

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/tribunal/internal/shared/domain"
	"github.com/felixgeelhaar/tribunal/pkg/observability"
	"github.com/stretchr/testify/assert"
)

type testEvent struct {
	domain.BaseEvent
}

func TestEventMetadataFromContext(t *testing.T) {
	ctx := observability.WithCorrelationID(context.Background(), "corr-1")
	ctx = observability.WithCase(ctx, "1234", "adjournCase")

	metadata := EventMetadataFromContext(ctx)

	assert.Equal(t, "corr-1", metadata.CorrelationID)
	assert.Equal(t, "adjournCase", metadata.CausationID)
}

func TestApplyEventMetadata(t *testing.T) {
	event := &testEvent{BaseEvent: domain.NewBaseEvent("1234", "Case", "hearings.request.created")}
	metadata := domain.EventMetadata{CorrelationID: "corr-1", CausationID: "adjournCase"}

	ApplyEventMetadata([]domain.DomainEvent{event}, metadata)

	assert.Equal(t, metadata, event.Metadata())
}
