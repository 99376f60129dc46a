// Package domain holds the signals sent to the hearing-scheduling system.
package domain

import (
	"context"

	"github.com/felixgeelhaar/tribunal/internal/caserecord"
	sharedDomain "github.com/felixgeelhaar/tribunal/internal/shared/domain"
)

const (
	AggregateType = "Case"

	RoutingKeyHearingRequested = "hearings.request.created"
	RoutingKeyHearingCancelled = "hearings.request.cancelled"
)

// HearingRequested asks the scheduler to list a new hearing for a case.
type HearingRequested struct {
	sharedDomain.BaseEvent
	CaseReference string
	Override      caserecord.ScheduleOverride
}

type hearingRequestedPayload struct {
	CaseReference string                      `json:"case_reference,omitempty"`
	Override      caserecord.ScheduleOverride `json:"override"`
}

// NewHearingRequested creates a request for caseID.
func NewHearingRequested(caseID, caseReference string, override caserecord.ScheduleOverride) *HearingRequested {
	return &HearingRequested{
		BaseEvent:     sharedDomain.NewBaseEvent(caseID, AggregateType, RoutingKeyHearingRequested),
		CaseReference: caseReference,
		Override:      override,
	}
}

func (e *HearingRequested) MarshalJSON() ([]byte, error) {
	return sharedDomain.MarshalEnvelope(e, hearingRequestedPayload{
		CaseReference: e.CaseReference,
		Override:      e.Override,
	})
}

// HearingCancelled withdraws any pending hearing request for a case.
type HearingCancelled struct {
	sharedDomain.BaseEvent
	Reason string
}

// NewHearingCancelled creates a cancellation for caseID.
func NewHearingCancelled(caseID, reason string) *HearingCancelled {
	return &HearingCancelled{
		BaseEvent: sharedDomain.NewBaseEvent(caseID, AggregateType, RoutingKeyHearingCancelled),
		Reason:    reason,
	}
}

func (e *HearingCancelled) MarshalJSON() ([]byte, error) {
	return sharedDomain.MarshalEnvelope(e, struct {
		Reason string `json:"reason"`
	}{e.Reason})
}

// Scheduler sends fire-and-forget signals to the hearing-scheduling system.
type Scheduler interface {
	RequestHearing(ctx context.Context, data caserecord.CaseDetails) error
	CancelHearing(ctx context.Context, caseID, reason string) error
}
