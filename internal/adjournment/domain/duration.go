package domain

import (
	"fmt"

	"github.com/felixgeelhaar/tribunal/internal/caserecord"
)

// DurationPolicy holds the listing duration constants.
type DurationPolicy struct {
	MinutesPerSession int
	FloorMinutes      int
	StandardMinutes   int
}

// Minutes normalises the listing duration of the working data. The standard
// kind ignores the entered value, as does an unanswered kind.
func (p DurationPolicy) Minutes(adj caserecord.Adjournment) (int, error) {
	if adj.ListingDurationType != caserecord.DurationNonStandard {
		return p.StandardMinutes, nil
	}
	if adj.ListingDuration == nil {
		return 0, invariant(CodeMissingDuration, "non-standard listing duration has no value")
	}

	var minutes int
	switch adj.ListingDurationUnits {
	case caserecord.UnitsSessions:
		minutes = *adj.ListingDuration * p.MinutesPerSession
	case caserecord.UnitsMinutes, "":
		minutes = *adj.ListingDuration
	default:
		return 0, invariant(CodeUnknownDurationUnits, fmt.Sprintf("listing duration units %q", adj.ListingDurationUnits))
	}

	if minutes < p.FloorMinutes {
		return p.FloorMinutes, nil
	}
	return minutes, nil
}

// DurationSentence describes the listing duration on the notice.
func DurationSentence(adj caserecord.Adjournment) string {
	if adj.ListingDurationType != caserecord.DurationNonStandard || adj.ListingDuration == nil {
		return "a standard time slot"
	}
	n := *adj.ListingDuration
	unit := "minutes"
	if adj.ListingDurationUnits == caserecord.UnitsSessions {
		unit = "sessions"
	}
	if n == 1 {
		unit = unit[:len(unit)-1]
	}
	return fmt.Sprintf("%d %s", n, unit)
}
