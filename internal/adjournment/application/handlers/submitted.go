package handlers

import (
	"context"

	"github.com/felixgeelhaar/tribunal/internal/adjournment/domain"
	"github.com/felixgeelhaar/tribunal/internal/callback"
)

// SubmittedHandler runs after the platform saved the event.
type SubmittedHandler struct{}

func NewSubmittedHandler() *SubmittedHandler {
	return &SubmittedHandler{}
}

func (h *SubmittedHandler) CanHandle(phase callback.Phase, cb callback.Callback) bool {
	return phase == callback.Submitted && isAdjournmentEvent(cb.Event)
}

// Handle clears the working data once a notice is issued. Nothing happens
// after an adjournment is drafted.
func (h *SubmittedHandler) Handle(_ context.Context, cb callback.Callback) (callback.Outcome, error) {
	details := cb.CaseDetails
	if cb.Event == callback.EventIssueAdjournmentNotice {
		details.Data.Adjournment = domain.ClearAfterIssue(details.Data.Adjournment)
	}
	return callback.Ok(details), nil
}

// All returns one handler per phase, ready for callback.NewDispatcher.
func All(start *AboutToStartHandler, mid *MidEventHandler, submit *AboutToSubmitHandler, submitted *SubmittedHandler) []callback.Handler {
	return []callback.Handler{start, mid, submit, submitted}
}
