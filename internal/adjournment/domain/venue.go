package domain

import (
	"fmt"

	"github.com/felixgeelhaar/tribunal/internal/caserecord"
)

// InChambers is the venue of a decision without an attended hearing.
const InChambers = "In chambers"

// VenueSpec is the resolved venue choice.
type VenueSpec interface {
	venueSpec()
}

type (
	// SameVenue reuses the venue of the most recent hearing.
	SameVenue struct{}
	// SomewhereElse moves the hearing to an explicit venue.
	SomewhereElse struct{ VenueID string }
	// Chambers is used for paper hearings.
	Chambers struct{}
)

func (SameVenue) venueSpec()     {}
func (SomewhereElse) venueSpec() {}
func (Chambers) venueSpec()      {}

// ParseVenueSpec resolves the venue choice for the given channel. Paper
// hearings are always in chambers; an unanswered choice counts as same venue.
func ParseVenueSpec(adj caserecord.Adjournment, channel Channel) (VenueSpec, error) {
	if _, ok := channel.(Paper); ok {
		return Chambers{}, nil
	}
	switch adj.NextHearingVenue {
	case caserecord.VenueSame, "":
		return SameVenue{}, nil
	case caserecord.VenueSomewhereElse:
		if adj.NextHearingVenueSelected == "" {
			return nil, invariant(CodeMissingVenue, "somewhere else chosen without a venue")
		}
		return SomewhereElse{VenueID: adj.NextHearingVenueSelected}, nil
	default:
		return nil, invariant(CodeUnknownVenueChoice, fmt.Sprintf("venue choice %q", adj.NextHearingVenue))
	}
}

// ResolvedVenue is where the next hearing is listed.
type ResolvedVenue struct {
	ID      string
	Name    string
	AtVenue bool
}

// PreviousHearing describes the hearing being adjourned.
type PreviousHearing struct {
	HeldAt  string
	HeldOn  caserecord.Date
	VenueID string
}

// LastHearing returns the most recent hearing, or in chambers today when the
// case has never been heard.
func LastHearing(data caserecord.CaseData, today caserecord.Date) PreviousHearing {
	h, ok := data.LatestHearing()
	if !ok {
		return PreviousHearing{HeldAt: InChambers, HeldOn: today}
	}
	prev := PreviousHearing{HeldAt: h.VenueName, HeldOn: today, VenueID: h.VenueID}
	if prev.HeldAt == "" {
		prev.HeldAt = InChambers
	}
	if h.HearingDate != nil {
		prev.HeldOn = *h.HearingDate
	}
	return prev
}

// VenueNamer looks up a venue name by id. A nil result means unknown.
type VenueNamer func(venueID string) (*string, error)

// ResolveVenue turns a venue spec into the listing venue.
func ResolveVenue(spec VenueSpec, channel Channel, prev PreviousHearing, lookup VenueNamer) (ResolvedVenue, error) {
	_, attended := channel.(FaceToFace)

	switch s := spec.(type) {
	case Chambers:
		return ResolvedVenue{Name: InChambers}, nil
	case SameVenue:
		if prev.VenueID == "" && prev.HeldAt == InChambers {
			return ResolvedVenue{Name: InChambers, AtVenue: false}, nil
		}
		return ResolvedVenue{ID: prev.VenueID, Name: prev.HeldAt, AtVenue: attended}, nil
	case SomewhereElse:
		name, err := lookup(s.VenueID)
		if err != nil {
			return ResolvedVenue{}, err
		}
		if name == nil || *name == "" {
			return ResolvedVenue{}, invariant(CodeUnknownVenue, fmt.Sprintf("venue %q not found", s.VenueID))
		}
		return ResolvedVenue{ID: s.VenueID, Name: *name, AtVenue: attended}, nil
	default:
		return ResolvedVenue{}, invariant(CodeUnknownVenueChoice, fmt.Sprintf("venue spec %T", spec))
	}
}
