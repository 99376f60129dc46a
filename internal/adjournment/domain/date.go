package domain

import (
	"fmt"

	"github.com/felixgeelhaar/tribunal/internal/caserecord"
)

// DateSpec is the resolved next hearing date choice.
type DateSpec interface {
	// Sentence renders the date for the notice.
	Sentence(today caserecord.Date) string
	// WindowStart is the earliest listing date, when there is one.
	WindowStart(today caserecord.Date) *caserecord.Date
	dateSpec()
}

type (
	// FirstAvailable lists on the first available date.
	FirstAvailable struct{}
	// AfterDate lists on the first available date after a fixed date.
	AfterDate struct{ Date caserecord.Date }
	// AfterPeriod lists on the first available date after today plus Days.
	AfterPeriod struct{ Days int }
	// ToBeFixed leaves the date to the listing office.
	ToBeFixed struct{}
)

const firstAvailablePhrase = "on the first available date"

func (FirstAvailable) Sentence(caserecord.Date) string { return firstAvailablePhrase }
func (s AfterDate) Sentence(caserecord.Date) string {
	return firstAvailablePhrase + " after " + s.Date.Display()
}
func (s AfterPeriod) Sentence(today caserecord.Date) string {
	return firstAvailablePhrase + " after " + today.AddDays(s.Days).Display()
}
func (ToBeFixed) Sentence(caserecord.Date) string { return "on a date to be fixed" }

func (FirstAvailable) WindowStart(caserecord.Date) *caserecord.Date { return nil }
func (s AfterDate) WindowStart(caserecord.Date) *caserecord.Date    { return s.Date.Ptr() }
func (s AfterPeriod) WindowStart(today caserecord.Date) *caserecord.Date {
	return today.AddDays(s.Days).Ptr()
}
func (ToBeFixed) WindowStart(caserecord.Date) *caserecord.Date { return nil }

func (FirstAvailable) dateSpec() {}
func (AfterDate) dateSpec()      {}
func (AfterPeriod) dateSpec()    {}
func (ToBeFixed) dateSpec()      {}

// ParseDateSpec resolves the date fields of the working data. An unanswered
// date type yields a nil spec, which the notice gate rejects.
func ParseDateSpec(adj caserecord.Adjournment) (DateSpec, error) {
	switch adj.NextHearingDateType {
	case "":
		return nil, nil
	case caserecord.DateTypeFirstAvailable:
		return FirstAvailable{}, nil
	case caserecord.DateTypeToBeFixed:
		return ToBeFixed{}, nil
	case caserecord.DateTypeFirstAvailableAfter:
		return parseAfter(adj)
	default:
		return nil, invariant(CodeUnknownDateType, fmt.Sprintf("next hearing date type %q", adj.NextHearingDateType))
	}
}

func parseAfter(adj caserecord.Adjournment) (DateSpec, error) {
	switch adj.DateOrPeriod {
	case caserecord.ProvideDate:
		if adj.FirstAvailableAfter == nil {
			return nil, invariant(CodeMissingAfterDate, "first available date after has no date")
		}
		return AfterDate{Date: *adj.FirstAvailableAfter}, nil
	case caserecord.ProvidePeriod:
		if adj.AfterPeriodDays == nil {
			return nil, invariant(CodeMissingAfterPeriod, "first available date after has no period")
		}
		return AfterPeriod{Days: *adj.AfterPeriodDays}, nil
	case "":
		return nil, invariant(CodeMissingDateOrPeriod, "first available date after has no date or period choice")
	default:
		return nil, invariant(CodeUnknownDateOrPeriod, fmt.Sprintf("date or period %q", adj.DateOrPeriod))
	}
}
