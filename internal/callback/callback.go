// Package callback implements the phase contract between the case-management
// platform and the rule handlers.
package callback

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/tribunal/internal/caserecord"
	sharedDomain "github.com/felixgeelhaar/tribunal/internal/shared/domain"
)

// Phase is the point in the event lifecycle a callback is invoked at.
type Phase string

const (
	AboutToStart  Phase = "aboutToStart"
	MidEvent      Phase = "midEvent"
	AboutToSubmit Phase = "aboutToSubmit"
	Submitted     Phase = "submitted"
)

// Phases lists every phase in lifecycle order.
var Phases = []Phase{AboutToStart, MidEvent, AboutToSubmit, Submitted}

// ParsePhase accepts the camel-case name or the URL form, e.g. "about-to-start".
func ParsePhase(s string) (Phase, error) {
	for _, p := range Phases {
		if s == string(p) || s == p.Slug() {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown callback phase %q", s)
}

// Slug is the phase as it appears in callback URLs.
func (p Phase) Slug() string {
	switch p {
	case AboutToStart:
		return "about-to-start"
	case MidEvent:
		return "mid-event"
	case AboutToSubmit:
		return "about-to-submit"
	case Submitted:
		return "submitted"
	default:
		return string(p)
	}
}

// EventType identifies the platform event being run.
type EventType string

const (
	EventAdjournCase            EventType = "adjournCase"
	EventIssueAdjournmentNotice EventType = "issueAdjournmentNotice"
)

// Callback is one invocation from the platform.
type Callback struct {
	Phase             Phase
	Event             EventType
	CaseDetails       caserecord.CaseDetails
	CaseDetailsBefore *caserecord.CaseDetails
	PageID            string
	IgnoreWarnings    bool
	Automated         bool
}

// Outcome is what a handler returns: the mutated case plus accumulated rule
// errors and warnings.
type Outcome struct {
	Data     caserecord.CaseDetails
	Errors   sharedDomain.Errors
	Warnings []string
}

// Ok returns an outcome with no errors.
func Ok(details caserecord.CaseDetails) Outcome {
	return Outcome{Data: details}
}

// Fail returns an outcome carrying the given errors.
func Fail(details caserecord.CaseDetails, errs ...*sharedDomain.Error) Outcome {
	out := Outcome{Data: details}
	out.Errors.Add(errs...)
	return out
}

// WithWarning appends a warning.
func (o Outcome) WithWarning(msg string) Outcome {
	o.Warnings = append(o.Warnings, msg)
	return o
}

// Handler handles one event in one phase.
type Handler interface {
	CanHandle(phase Phase, cb Callback) bool
	Handle(ctx context.Context, cb Callback) (Outcome, error)
}

// Response is returned to the platform. The platform refuses to save while
// Errors or Warnings are non-empty, so warnings the policy lets through are
// carried in Notices instead.
type Response struct {
	Data     caserecord.CaseData `json:"data"`
	Errors   []string            `json:"errors"`
	Warnings []string            `json:"warnings"`
	Notices  []string            `json:"notices,omitempty"`
}

// Blocking reports whether the response prevents the platform from saving.
func (r Response) Blocking() bool {
	return len(r.Errors) > 0 || len(r.Warnings) > 0
}
