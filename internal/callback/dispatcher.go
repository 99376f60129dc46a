package callback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sharedDomain "github.com/felixgeelhaar/tribunal/internal/shared/domain"
	"github.com/felixgeelhaar/tribunal/pkg/observability"
)

var (
	// ErrNoHandler means no handler is registered for the phase and event.
	ErrNoHandler = errors.New("no callback handler registered")
	// ErrAmbiguousHandler means more than one handler claimed the callback.
	ErrAmbiguousHandler = errors.New("more than one callback handler matched")
)

// GenericErrorMessage replaces every invariant violation shown to the operator.
const GenericErrorMessage = "There was a problem processing this case. Please contact the tribunal support team."

// Dispatcher routes callbacks to the single handler that claims them.
type Dispatcher struct {
	handlers []Handler
	policy   WarningPolicy
	logger   *slog.Logger
	metrics  observability.Metrics
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithWarningPolicy sets the warning policy.
func WithWarningPolicy(p WarningPolicy) Option {
	return func(d *Dispatcher) { d.policy = p }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m observability.Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// NewDispatcher creates a dispatcher over the given handlers.
func NewDispatcher(handlers []Handler, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		handlers: handlers,
		policy:   WarningsManual,
		logger:   slog.Default(),
		metrics:  observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch runs the callback through its handler. Rule errors come back in the
// response; the returned error is reserved for programmer and infrastructure
// failures, which the platform retries.
func (d *Dispatcher) Dispatch(ctx context.Context, cb Callback) (Response, error) {
	ctx = observability.WithCase(ctx, cb.CaseDetails.ID, string(cb.Event))
	tags := []observability.Tag{observability.T("phase", string(cb.Phase)), observability.T("event", string(cb.Event))}

	handler, err := d.selectHandler(cb)
	if err != nil {
		d.logger.ErrorContext(ctx, "callback not routable", observability.PhaseKey, cb.Phase, observability.ErrorKey, err)
		return Response{}, err
	}

	outcome, err := observability.TimeOperationResult(ctx, d.logger, d.metrics, "callback."+string(cb.Phase),
		func() (Outcome, error) { return handler.Handle(ctx, cb) }, tags...)
	if err != nil {
		ruleErr, ok := sharedDomain.AsError(err)
		if !ok {
			return Response{}, fmt.Errorf("%s %s: %w", cb.Event, cb.Phase, err)
		}
		outcome = Fail(cb.CaseDetails, ruleErr)
	}

	resp := d.respond(ctx, cb, outcome, tags)
	d.metrics.Counter(observability.MetricCallbacksHandled, 1, tags...)
	return resp, nil
}

func (d *Dispatcher) selectHandler(cb Callback) (Handler, error) {
	var matched []Handler
	for _, h := range d.handlers {
		if h.CanHandle(cb.Phase, cb) {
			matched = append(matched, h)
		}
	}
	switch len(matched) {
	case 0:
		return nil, fmt.Errorf("%w: %s %s", ErrNoHandler, cb.Event, cb.Phase)
	case 1:
		return matched[0], nil
	default:
		return nil, fmt.Errorf("%w: %s %s (%d handlers)", ErrAmbiguousHandler, cb.Event, cb.Phase, len(matched))
	}
}

func (d *Dispatcher) respond(ctx context.Context, cb Callback, outcome Outcome, tags []observability.Tag) Response {
	resp := Response{
		Data:     outcome.Data.Data,
		Errors:   []string{},
		Warnings: []string{},
	}

	generic, userErrors := false, 0
	for _, e := range outcome.Errors {
		if e.Kind == sharedDomain.KindInvariant {
			d.logger.ErrorContext(ctx, "adjournment invariant violated",
				observability.PhaseKey, cb.Phase,
				"code", e.Code,
				observability.ErrorKey, e.Message,
			)
			d.metrics.Counter(observability.MetricInvariantViolations, 1, append(tags, observability.T("code", e.Code))...)
			if !generic {
				resp.Errors = append(resp.Errors, GenericErrorMessage)
				generic = true
			}
			continue
		}
		resp.Errors = append(resp.Errors, e.Message)
		userErrors++
	}
	if userErrors > 0 {
		d.metrics.Counter(observability.MetricCallbackErrors, int64(userErrors), tags...)
	}

	if len(outcome.Warnings) > 0 {
		d.metrics.Counter(observability.MetricCallbackWarnings, int64(len(outcome.Warnings)), tags...)
		if d.policy.Blocks(cb) {
			resp.Warnings = append(resp.Warnings, outcome.Warnings...)
		} else {
			resp.Notices = append(resp.Notices, outcome.Warnings...)
		}
	}
	return resp
}
