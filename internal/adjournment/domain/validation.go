package domain

import (
	"fmt"

	"github.com/felixgeelhaar/tribunal/internal/caserecord"
	sharedDomain "github.com/felixgeelhaar/tribunal/internal/shared/domain"
)

// ConstraintValidator checks the working data against its field constraints
// before the adjournment rules run.
type ConstraintValidator interface {
	Validate(adj caserecord.Adjournment) sharedDomain.Errors
}

// FieldConstraints is the default constraint set.
type FieldConstraints struct {
	MaxPanelMembers int
	MaxTextLength   int
}

// DefaultFieldConstraints returns the limits the platform enforces on the form.
func DefaultFieldConstraints() FieldConstraints {
	return FieldConstraints{MaxPanelMembers: 3, MaxTextLength: 5000}
}

func (c FieldConstraints) Validate(adj caserecord.Adjournment) sharedDomain.Errors {
	var errs sharedDomain.Errors

	if len(adj.PanelMembers) > c.MaxPanelMembers {
		errs.Add(sharedDomain.UserError(fmt.Sprintf("No more than %d panel members can be selected", c.MaxPanelMembers)))
	}
	seen := make(map[string]bool, len(adj.PanelMembers))
	for _, m := range adj.PanelMembers {
		if seen[m] {
			errs.Add(sharedDomain.UserError("The same panel member cannot be selected more than once"))
			break
		}
		seen[m] = true
	}

	if adj.ListingDuration != nil && *adj.ListingDuration <= 0 {
		errs.Add(sharedDomain.UserError("Listing duration must be greater than zero"))
	}
	if adj.AfterPeriodDays != nil && *adj.AfterPeriodDays <= 0 {
		errs.Add(sharedDomain.UserError("Period for first available date after must be greater than zero"))
	}
	if adj.DirectionsDueDaysOffset != nil && *adj.DirectionsDueDaysOffset < 0 {
		errs.Add(sharedDomain.UserError("Directions due days offset cannot be negative"))
	}

	lists := []struct {
		label string
		items []caserecord.CollectionItem[string]
	}{
		{"Reason", adj.Reasons},
		{"Additional direction", adj.AdditionalDirections},
	}
	for _, list := range lists {
		for _, item := range list.items {
			if len(item.Value) > c.MaxTextLength {
				errs.Add(sharedDomain.UserError(fmt.Sprintf("%s must be %d characters or fewer", list.label, c.MaxTextLength)))
				break
			}
		}
	}

	return errs
}

// Validate runs the constraint validator and every adjournment rule. Errors
// accumulate; no rule stops the others.
func Validate(adj caserecord.Adjournment, today caserecord.Date, constraints ConstraintValidator) sharedDomain.Errors {
	var errs sharedDomain.Errors
	if constraints != nil {
		errs = append(errs, constraints.Validate(adj)...)
	}
	errs.Add(
		checkDueDateInFuture(adj, today),
		checkDueDateExclusive(adj),
		checkFirstAvailableAfter(adj, today),
	)
	return errs
}

func checkDueDateInFuture(adj caserecord.Adjournment, today caserecord.Date) *sharedDomain.Error {
	if adj.DirectionsDueDate != nil && !adj.DirectionsDueDate.After(today) {
		return sharedDomain.UserError(MsgDirectionsDueDatePast)
	}
	return nil
}

func checkDueDateExclusive(adj caserecord.Adjournment) *sharedDomain.Error {
	if !adj.DirectionsBeingMade.IsYes() {
		return nil
	}
	if adj.DirectionsDueDate != nil {
		if adj.DirectionsDueDaysOffset != nil && *adj.DirectionsDueDaysOffset != 0 {
			return sharedDomain.UserError(MsgDirectionsBothSpecified)
		}
		return nil
	}
	if adj.DirectionsDueDaysOffset == nil {
		return sharedDomain.UserError(MsgDirectionsNoneSpecified)
	}
	return nil
}

func checkFirstAvailableAfter(adj caserecord.Adjournment, today caserecord.Date) *sharedDomain.Error {
	if adj.DateOrPeriod != caserecord.ProvideDate || adj.NextHearingDateType != caserecord.DateTypeFirstAvailableAfter {
		return nil
	}
	if adj.FirstAvailableAfter == nil {
		return invariant(CodeMissingAfterDate, "first available date after has no date")
	}
	if adj.FirstAvailableAfter.Before(today) {
		return sharedDomain.UserError(MsgFirstAvailableAfterInPast)
	}
	return nil
}
