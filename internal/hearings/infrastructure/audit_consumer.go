// Package infrastructure holds consumers of hearing events.
package infrastructure

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/tribunal/internal/hearings/domain"
	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/eventbus"
)

// AuditConsumer logs every scheduling signal. In local mode it is the only
// consumer, standing in for the scheduling system.
type AuditConsumer struct {
	logger *slog.Logger
}

var _ eventbus.EventConsumer = (*AuditConsumer)(nil)

func NewAuditConsumer(logger *slog.Logger) *AuditConsumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditConsumer{logger: logger}
}

func (c *AuditConsumer) EventTypes() []string {
	return []string{domain.RoutingKeyHearingRequested, domain.RoutingKeyHearingCancelled}
}

func (c *AuditConsumer) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	c.logger.InfoContext(ctx, "scheduling signal delivered",
		"routing_key", event.RoutingKey,
		"case_id", event.AggregateID,
		"event_id", event.EventID,
		"correlation_id", event.Metadata.CorrelationID,
		"causation_id", event.Metadata.CausationID,
		"payload", string(event.Payload),
	)
	return nil
}
