// Package domain defines the reference data the adjournment workflow reads:
// venues, interpreter languages, panel rosters and scheduling locations.
package domain

import "context"

// Venue is a hearing venue.
type Venue struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Language is an interpreter language.
type Language struct {
	Key         string `json:"key"`
	Description string `json:"description"`
}

// MemberType is a panel roster.
type MemberType string

const (
	MemberJudge      MemberType = "judge"
	MemberMedical    MemberType = "medical"
	MemberDisability MemberType = "disability"
	MemberFinancial  MemberType = "financial"
)

// PanelMemberTypes lists the rosters that panel-member references are drawn from.
var PanelMemberTypes = []MemberType{MemberJudge, MemberMedical, MemberDisability, MemberFinancial}

// PanelMember is a person who can sit on a tribunal panel.
type PanelMember struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Type MemberType `json:"type"`
}

// SchedulingLocation is the scheduling system's identifier for a venue.
type SchedulingLocation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Finders return nil without error when the record is absent.

type VenueFinder interface {
	FindVenueByID(ctx context.Context, id string) (*Venue, error)
}

type LanguageFinder interface {
	FindLanguageByKey(ctx context.Context, key string) (*Language, error)
}

type PanelMemberFinder interface {
	FindPanelMembersByType(ctx context.Context, memberType MemberType) ([]PanelMember, error)
}

type SchedulingLocationFinder interface {
	FindSchedulingLocationByName(ctx context.Context, name string) (*SchedulingLocation, error)
}

// Store is every reference-data lookup behind one interface.
type Store interface {
	VenueFinder
	LanguageFinder
	PanelMemberFinder
	SchedulingLocationFinder
}
