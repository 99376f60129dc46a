package handlers

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/tribunal/internal/adjournment/application/services"
	"github.com/felixgeelhaar/tribunal/internal/adjournment/domain"
	"github.com/felixgeelhaar/tribunal/internal/callback"
	"github.com/felixgeelhaar/tribunal/internal/caserecord"
	hearings "github.com/felixgeelhaar/tribunal/internal/hearings/domain"
	sharedDomain "github.com/felixgeelhaar/tribunal/internal/shared/domain"
)

// AboutToSubmitHandler resolves the next hearing, renders the notice and
// commits the derived scheduling data.
type AboutToSubmitHandler struct {
	clock       caserecord.Clock
	constraints domain.ConstraintValidator
	resolver    *services.Resolver
	preview     *services.PreviewService
	scheduler   hearings.Scheduler
	logger      *slog.Logger
}

func NewAboutToSubmitHandler(
	clock caserecord.Clock,
	constraints domain.ConstraintValidator,
	resolver *services.Resolver,
	preview *services.PreviewService,
	scheduler hearings.Scheduler,
	logger *slog.Logger,
) *AboutToSubmitHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AboutToSubmitHandler{
		clock:       clock,
		constraints: constraints,
		resolver:    resolver,
		preview:     preview,
		scheduler:   scheduler,
		logger:      logger,
	}
}

func (h *AboutToSubmitHandler) CanHandle(phase callback.Phase, cb callback.Callback) bool {
	return phase == callback.AboutToSubmit && isAdjournmentEvent(cb.Event)
}

func (h *AboutToSubmitHandler) Handle(ctx context.Context, cb callback.Callback) (callback.Outcome, error) {
	if cb.Event == callback.EventIssueAdjournmentNotice {
		return h.issue(ctx, cb)
	}
	return h.adjourn(ctx, cb)
}

func (h *AboutToSubmitHandler) adjourn(ctx context.Context, cb callback.Callback) (callback.Outcome, error) {
	today := h.clock.Today()
	details := cb.CaseDetails

	if errs := domain.Validate(details.Data.Adjournment, today, h.constraints); len(errs) > 0 {
		return callback.Outcome{Data: details, Errors: errs}, nil
	}
	alreadyIssued := domain.HasIssuedNotice(details.Data)

	adj := &details.Data.Adjournment
	domain.StampGeneratedDate(adj, today, true)

	resolved, err := h.resolver.Resolve(ctx, details, today)
	if err != nil {
		return callback.Outcome{}, err
	}
	notice, err := h.preview.Render(ctx, details, resolved, today, true)
	if err != nil {
		return callback.Outcome{}, err
	}

	adj.PreviewDocument = &notice.Document.Link
	adj.PanelDescription = notice.Body.HeldBefore
	adj.NextHearingTypeDescription = resolved.Resolution.Channel.Description()

	details.Data.RemoveDocuments(caserecord.DocumentTypeDraftAdjournmentNotice)
	details.Data.AddDocument(notice.Document)

	override := resolved.Resolution.ScheduleOverride(today)
	details.Data.ScheduleOverride = &override

	if domain.QualifiesForRelisting(details.Data) {
		adj.InProgress = caserecord.Yes
		if err := h.scheduler.RequestHearing(ctx, details); err != nil {
			return callback.Outcome{}, err
		}
	} else {
		h.logger.DebugContext(ctx, "no hearing requested",
			"hearing_route", details.Data.HearingRoute,
			"directions_being_made", string(adj.DirectionsBeingMade),
		)
	}

	out := callback.Ok(details)
	if alreadyIssued {
		out = out.WithWarning(domain.MsgNoticeAlreadyIssued)
	}
	return out, nil
}

// issue renders the final notice in place of the draft.
func (h *AboutToSubmitHandler) issue(ctx context.Context, cb callback.Callback) (callback.Outcome, error) {
	today := h.clock.Today()
	details := cb.CaseDetails

	if !domain.HasDraftNotice(details.Data) {
		return callback.Fail(details, sharedDomain.UserError(domain.MsgNoDraftNotice)), nil
	}

	adj := &details.Data.Adjournment
	domain.StampGeneratedDate(adj, today, false)

	resolved, err := h.resolver.Resolve(ctx, details, today)
	if err != nil {
		return callback.Outcome{}, err
	}
	notice, err := h.preview.Render(ctx, details, resolved, today, false)
	if err != nil {
		return callback.Outcome{}, err
	}

	details.Data.RemoveDocuments(caserecord.DocumentTypeDraftAdjournmentNotice)
	details.Data.AddDocument(notice.Document)
	adj.PreviewDocument = nil

	return callback.Ok(details), nil
}
