// Package handlers binds the adjournment rules to the callback phases.
package handlers

import (
	"context"

	"github.com/felixgeelhaar/tribunal/internal/adjournment/domain"
	"github.com/felixgeelhaar/tribunal/internal/callback"
	sharedDomain "github.com/felixgeelhaar/tribunal/internal/shared/domain"
)

func isAdjournmentEvent(e callback.EventType) bool {
	return e == callback.EventAdjournCase || e == callback.EventIssueAdjournmentNotice
}

// AboutToStartHandler prepares the working data when an event starts.
type AboutToStartHandler struct{}

func NewAboutToStartHandler() *AboutToStartHandler {
	return &AboutToStartHandler{}
}

func (h *AboutToStartHandler) CanHandle(phase callback.Phase, cb callback.Callback) bool {
	return phase == callback.AboutToStart && isAdjournmentEvent(cb.Event)
}

// Handle clears derived fields for a fresh adjournment, keeping answers when a
// draft is being revised. Issuing requires a draft.
func (h *AboutToStartHandler) Handle(_ context.Context, cb callback.Callback) (callback.Outcome, error) {
	details := cb.CaseDetails
	hasDraft := domain.HasDraftNotice(details.Data)

	if cb.Event == callback.EventIssueAdjournmentNotice {
		if !hasDraft {
			return callback.Fail(details, sharedDomain.UserError(domain.MsgNoDraftNotice)), nil
		}
		return callback.Ok(details), nil
	}

	if !hasDraft {
		details.Data.Adjournment = domain.ResetDerived(details.Data.Adjournment)
	}
	return callback.Ok(details), nil
}
