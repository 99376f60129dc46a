package domain_test

import (
	"testing"

	"github.com/felixgeelhaar/tribunal/internal/adjournment/domain"
	"github.com/felixgeelhaar/tribunal/internal/caserecord"
	sharedDomain "github.com/felixgeelhaar/tribunal/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var policy = domain.DurationPolicy{MinutesPerSession: 165, FloorMinutes: 30, StandardMinutes: 60}

func nonStandard(value int, units caserecord.DurationUnits) caserecord.Adjournment {
	return caserecord.Adjournment{
		ListingDurationType:  caserecord.DurationNonStandard,
		ListingDuration:      caserecord.IntPtr(value),
		ListingDurationUnits: units,
	}
}

func TestDurationPolicy_Minutes(t *testing.T) {
	tests := []struct {
		name string
		adj  caserecord.Adjournment
		want int
	}{
		{"one session", nonStandard(1, caserecord.UnitsSessions), 165},
		{"two sessions", nonStandard(2, caserecord.UnitsSessions), 330},
		{"below floor", nonStandard(10, caserecord.UnitsMinutes), 30},
		{"at floor", nonStandard(30, caserecord.UnitsMinutes), 30},
		{"above floor", nonStandard(95, caserecord.UnitsMinutes), 95},
		{"standard ignores value", caserecord.Adjournment{ListingDurationType: caserecord.DurationStandard, ListingDuration: caserecord.IntPtr(500)}, 60},
		{"unanswered kind is standard", caserecord.Adjournment{}, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.Minutes(tt.adj)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := policy.Minutes(tt.adj)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestDurationPolicy_MinutesFloorProperty(t *testing.T) {
	for m := 1; m <= 200; m++ {
		got, err := policy.Minutes(nonStandard(m, caserecord.UnitsMinutes))
		require.NoError(t, err)
		if m < policy.FloorMinutes {
			assert.Equal(t, policy.FloorMinutes, got)
		} else {
			assert.Equal(t, m, got)
		}
	}
}

func TestDurationPolicy_Invariants(t *testing.T) {
	_, err := policy.Minutes(caserecord.Adjournment{ListingDurationType: caserecord.DurationNonStandard})
	assert.True(t, sharedDomain.IsInvariant(err))

	_, err = policy.Minutes(nonStandard(2, "hours"))
	assert.True(t, sharedDomain.IsInvariant(err))
}

func TestDurationSentence(t *testing.T) {
	assert.Equal(t, "a standard time slot", domain.DurationSentence(caserecord.Adjournment{}))
	assert.Equal(t, "90 minutes", domain.DurationSentence(nonStandard(90, caserecord.UnitsMinutes)))
	assert.Equal(t, "1 session", domain.DurationSentence(nonStandard(1, caserecord.UnitsSessions)))
	assert.Equal(t, "2 sessions", domain.DurationSentence(nonStandard(2, caserecord.UnitsSessions)))
}
