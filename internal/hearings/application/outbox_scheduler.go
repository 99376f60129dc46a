// Package application implements the hearing scheduler on the outbox.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/felixgeelhaar/tribunal/internal/caserecord"
	"github.com/felixgeelhaar/tribunal/internal/hearings/domain"
	sharedApplication "github.com/felixgeelhaar/tribunal/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/tribunal/internal/shared/domain"
	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/tribunal/pkg/observability"
)

// ErrMissingCaseID is returned for a signal without a case identifier.
var ErrMissingCaseID = errors.New("case id is required")

// OutboxScheduler records scheduling signals in the outbox. Publishing is
// left to the outbox processor, so a broker outage never fails a callback.
type OutboxScheduler struct {
	repo    outbox.Repository
	uow     sharedApplication.UnitOfWork
	logger  *slog.Logger
	metrics observability.Metrics
}

var _ domain.Scheduler = (*OutboxScheduler)(nil)

func NewOutboxScheduler(repo outbox.Repository, uow sharedApplication.UnitOfWork, logger *slog.Logger, metrics observability.Metrics) *OutboxScheduler {
	if uow == nil {
		uow = sharedApplication.NopUnitOfWork{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &OutboxScheduler{repo: repo, uow: uow, logger: logger, metrics: metrics}
}

// RequestHearing enqueues a create-hearing request carrying the case's
// schedule override.
func (s *OutboxScheduler) RequestHearing(ctx context.Context, details caserecord.CaseDetails) error {
	if strings.TrimSpace(details.ID) == "" {
		return ErrMissingCaseID
	}
	var override caserecord.ScheduleOverride
	if details.Data.ScheduleOverride != nil {
		override = *details.Data.ScheduleOverride
	}
	event := domain.NewHearingRequested(details.ID, details.Data.CaseReference, override)
	if err := s.enqueue(ctx, event); err != nil {
		return fmt.Errorf("request hearing for case %s: %w", details.ID, err)
	}
	s.metrics.Counter(observability.MetricHearingRequests, 1, observability.T("kind", "create"))
	return nil
}

// CancelHearing enqueues a cancellation.
func (s *OutboxScheduler) CancelHearing(ctx context.Context, caseID, reason string) error {
	if strings.TrimSpace(caseID) == "" {
		return ErrMissingCaseID
	}
	event := domain.NewHearingCancelled(caseID, reason)
	if err := s.enqueue(ctx, event); err != nil {
		return fmt.Errorf("cancel hearing for case %s: %w", caseID, err)
	}
	s.metrics.Counter(observability.MetricHearingRequests, 1, observability.T("kind", "cancel"))
	return nil
}

func (s *OutboxScheduler) enqueue(ctx context.Context, event sharedDomain.DomainEvent) error {
	sharedApplication.ApplyEventMetadata([]sharedDomain.DomainEvent{event}, sharedApplication.EventMetadataFromContext(ctx))

	msg, err := outbox.NewMessage(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event.RoutingKey(), err)
	}

	err = sharedApplication.WithUnitOfWork(ctx, s.uow, func(ctx context.Context) error {
		return s.repo.Save(ctx, msg)
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "scheduling signal queued",
		"case_id", event.AggregateID(),
		"routing_key", event.RoutingKey(),
		"event_id", event.EventID(),
	)
	return nil
}
