package handlers

import (
	"context"

	"github.com/felixgeelhaar/tribunal/internal/adjournment/domain"
	"github.com/felixgeelhaar/tribunal/internal/callback"
	"github.com/felixgeelhaar/tribunal/internal/caserecord"
)

// MidEventHandler validates the operator's answers between pages.
type MidEventHandler struct {
	clock       caserecord.Clock
	constraints domain.ConstraintValidator
}

func NewMidEventHandler(clock caserecord.Clock, constraints domain.ConstraintValidator) *MidEventHandler {
	return &MidEventHandler{clock: clock, constraints: constraints}
}

func (h *MidEventHandler) CanHandle(phase callback.Phase, cb callback.Callback) bool {
	return phase == callback.MidEvent && cb.Event == callback.EventAdjournCase
}

func (h *MidEventHandler) Handle(_ context.Context, cb callback.Callback) (callback.Outcome, error) {
	out := callback.Ok(cb.CaseDetails)
	out.Errors = domain.Validate(cb.CaseDetails.Data.Adjournment, h.clock.Today(), h.constraints)
	return out, nil
}
