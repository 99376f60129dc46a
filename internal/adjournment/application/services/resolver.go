// Package services resolves next-hearing parameters against reference data
// and renders adjournment notices.
package services

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/tribunal/internal/adjournment/domain"
	"github.com/felixgeelhaar/tribunal/internal/caserecord"
	refdomain "github.com/felixgeelhaar/tribunal/internal/referencedata/domain"
)

// Resolved is everything derived from the working data for one pass.
type Resolved struct {
	Resolution  domain.Resolution
	PanelNames  []string
	Interpreter *string
}

// Resolver runs the date, venue, channel, duration, panel and interpreter
// resolution chain for a case.
type Resolver struct {
	store  refdomain.Store
	policy domain.DurationPolicy
}

func NewResolver(store refdomain.Store, policy domain.DurationPolicy) *Resolver {
	return &Resolver{store: store, policy: policy}
}

// Resolve derives the next-hearing parameters. Rule failures come back as
// *sharedDomain.Error invariants; lookup failures are wrapped Go errors.
func (r *Resolver) Resolve(ctx context.Context, details caserecord.CaseDetails, today caserecord.Date) (Resolved, error) {
	adj := details.Data.Adjournment

	channel, err := domain.ParseChannel(adj.TypeOfNextHearing)
	if err != nil {
		return Resolved{}, err
	}

	date, err := domain.ParseDateSpec(adj)
	if err != nil {
		return Resolved{}, err
	}

	venueSpec, err := domain.ParseVenueSpec(adj, channel)
	if err != nil {
		return Resolved{}, err
	}
	prev := domain.LastHearing(details.Data, today)
	venue, err := domain.ResolveVenue(venueSpec, channel, prev, r.venueName(ctx))
	if err != nil {
		return Resolved{}, err
	}

	minutes, err := r.policy.Minutes(adj)
	if err != nil {
		return Resolved{}, err
	}

	panel, err := domain.PanelNames(adj.PanelMembers, r.panelMemberName(ctx))
	if err != nil {
		return Resolved{}, err
	}

	interpreter, err := domain.InterpreterDescription(adj, r.languageName(ctx))
	if err != nil {
		return Resolved{}, err
	}

	locationID, err := r.schedulingLocation(ctx, venue)
	if err != nil {
		return Resolved{}, err
	}

	return Resolved{
		Resolution: domain.Resolution{
			Date:                 date,
			Channel:              channel,
			Venue:                venue,
			Previous:             prev,
			DurationMinutes:      minutes,
			SchedulingLocationID: locationID,
		},
		PanelNames:  panel,
		Interpreter: interpreter,
	}, nil
}

func (r *Resolver) venueName(ctx context.Context) domain.VenueNamer {
	return func(id string) (*string, error) {
		v, err := r.store.FindVenueByID(ctx, id)
		if err != nil || v == nil {
			return nil, err
		}
		return &v.Name, nil
	}
}

func (r *Resolver) languageName(ctx context.Context) domain.NameLookup {
	return func(key string) (*string, error) {
		l, err := r.store.FindLanguageByKey(ctx, key)
		if err != nil || l == nil {
			return nil, err
		}
		return &l.Description, nil
	}
}

// panelMemberName loads the rosters once, on the first lookup.
func (r *Resolver) panelMemberName(ctx context.Context) domain.NameLookup {
	var names map[string]string
	return func(id string) (*string, error) {
		if names == nil {
			names = make(map[string]string)
			for _, t := range refdomain.PanelMemberTypes {
				members, err := r.store.FindPanelMembersByType(ctx, t)
				if err != nil {
					return nil, fmt.Errorf("load %s panel members: %w", t, err)
				}
				for _, m := range members {
					names[m.ID] = m.Name
				}
			}
		}
		if name, ok := names[id]; ok {
			return &name, nil
		}
		return nil, nil
	}
}

// schedulingLocation maps a named venue to the scheduling system's location.
// Chambers and unknown names have none.
func (r *Resolver) schedulingLocation(ctx context.Context, venue domain.ResolvedVenue) (string, error) {
	if venue.Name == "" || venue.Name == domain.InChambers {
		return "", nil
	}
	loc, err := r.store.FindSchedulingLocationByName(ctx, venue.Name)
	if err != nil {
		return "", err
	}
	if loc == nil {
		return "", nil
	}
	return loc.ID, nil
}
