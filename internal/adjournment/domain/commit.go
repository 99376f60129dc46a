package domain

import (
	"github.com/felixgeelhaar/tribunal/internal/caserecord"
)

// Resolution is the full set of values derived for the next hearing.
type Resolution struct {
	Date                 DateSpec
	Channel              Channel
	Venue                ResolvedVenue
	Previous             PreviousHearing
	DurationMinutes      int
	SchedulingLocationID string
}

// ScheduleOverride derives the scheduling fields merged into the case.
func (r Resolution) ScheduleOverride(today caserecord.Date) caserecord.ScheduleOverride {
	override := caserecord.ScheduleOverride{
		DurationMinutes:      r.DurationMinutes,
		VenueID:              r.Venue.ID,
		SchedulingLocationID: r.SchedulingLocationID,
	}
	if r.Channel != nil {
		override.HearingChannel = r.Channel.Key()
	}
	if r.Date != nil {
		override.HearingWindowStart = r.Date.WindowStart(today)
	}
	return override
}

// QualifiesForRelisting reports whether a new hearing can be requested straight
// away: the case is fast-track and either it can be listed now or no
// directions are waiting on the parties.
func QualifiesForRelisting(data caserecord.CaseData) bool {
	if !data.IsListAssist() {
		return false
	}
	adj := data.Adjournment
	return adj.CanBeListedRightAway.IsYes() || !adj.DirectionsBeingMade.IsYes()
}

// StampGeneratedDate sets the generated date. The primary adjourn event always
// stamps today; reissuing only fills a missing date.
func StampGeneratedDate(adj *caserecord.Adjournment, today caserecord.Date, primary bool) {
	if primary || adj.GeneratedDate == nil {
		adj.GeneratedDate = today.Ptr()
	}
}
