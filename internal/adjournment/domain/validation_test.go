package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/felixgeelhaar/tribunal/internal/adjournment/domain"
	"github.com/felixgeelhaar/tribunal/internal/caserecord"
	sharedDomain "github.com/felixgeelhaar/tribunal/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = caserecord.MustParseDate("2026-10-14")

func TestValidate_DirectionsExclusivity(t *testing.T) {
	due := today.AddDays(7).Ptr()

	tests := []struct {
		name    string
		dueDate *caserecord.Date
		offset  *int
		want    []string
	}{
		{"date only", due, nil, nil},
		{"date and zero offset", due, caserecord.IntPtr(0), nil},
		{"date and offset", due, caserecord.IntPtr(14), []string{domain.MsgDirectionsBothSpecified}},
		{"offset only", nil, caserecord.IntPtr(14), nil},
		{"zero offset only", nil, caserecord.IntPtr(0), nil},
		{"neither", nil, nil, []string{domain.MsgDirectionsNoneSpecified}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj := caserecord.Adjournment{
				DirectionsBeingMade:     caserecord.Yes,
				DirectionsDueDate:       tt.dueDate,
				DirectionsDueDaysOffset: tt.offset,
			}

			errs := domain.Validate(adj, today, nil)

			assert.Equal(t, tt.want, errs.Messages())
		})
	}
}

func TestValidate_ClearedDueDateFromPlatform(t *testing.T) {
	var adj caserecord.Adjournment
	require.NoError(t, json.Unmarshal([]byte(`{
		"adjournCaseDirectionsDueDate": "",
		"adjournCaseDirectionsDueDateDaysOffset": 14,
		"adjournCaseAreDirectionsBeingMadeToParties": "Yes"
	}`), &adj))

	assert.Empty(t, domain.Validate(adj, today, nil).Messages())
}

func TestValidate_ExclusivityOnlyWhenDirectionsMade(t *testing.T) {
	for _, made := range []caserecord.YesNo{caserecord.No, ""} {
		adj := caserecord.Adjournment{DirectionsBeingMade: made}
		assert.Empty(t, domain.Validate(adj, today, nil))
	}
}

func TestValidate_DueDateMustBeInFuture(t *testing.T) {
	for offset := -30; offset <= 30; offset++ {
		adj := caserecord.Adjournment{DirectionsDueDate: today.AddDays(offset).Ptr()}

		msgs := domain.Validate(adj, today, nil).Messages()

		if offset <= 0 {
			assert.Contains(t, msgs, domain.MsgDirectionsDueDatePast, "offset %d", offset)
		} else {
			assert.NotContains(t, msgs, domain.MsgDirectionsDueDatePast, "offset %d", offset)
		}
	}
}

func TestValidate_FirstAvailableDateAfter(t *testing.T) {
	base := caserecord.Adjournment{
		NextHearingDateType: caserecord.DateTypeFirstAvailableAfter,
		DateOrPeriod:        caserecord.ProvideDate,
	}

	t.Run("past date", func(t *testing.T) {
		adj := base
		adj.FirstAvailableAfter = today.AddDays(-1).Ptr()
		assert.Equal(t, []string{domain.MsgFirstAvailableAfterInPast}, domain.Validate(adj, today, nil).Messages())
	})

	t.Run("today is allowed", func(t *testing.T) {
		adj := base
		adj.FirstAvailableAfter = today.Ptr()
		assert.Empty(t, domain.Validate(adj, today, nil))
	})

	t.Run("missing date is an invariant", func(t *testing.T) {
		errs := domain.Validate(base, today, nil)
		require.Len(t, errs, 1)
		assert.Equal(t, sharedDomain.KindInvariant, errs[0].Kind)
		assert.Equal(t, domain.CodeMissingAfterDate, errs[0].Code)
	})

	t.Run("not evaluated for period", func(t *testing.T) {
		adj := base
		adj.DateOrPeriod = caserecord.ProvidePeriod
		assert.Empty(t, domain.Validate(adj, today, nil))
	})

	t.Run("not evaluated for other date types", func(t *testing.T) {
		adj := base
		adj.NextHearingDateType = caserecord.DateTypeFirstAvailable
		assert.Empty(t, domain.Validate(adj, today, nil))
	})
}

func TestValidate_Accumulates(t *testing.T) {
	adj := caserecord.Adjournment{
		DirectionsBeingMade:     caserecord.Yes,
		DirectionsDueDate:       today.Ptr(),
		DirectionsDueDaysOffset: caserecord.IntPtr(7),
		NextHearingDateType:     caserecord.DateTypeFirstAvailableAfter,
		DateOrPeriod:            caserecord.ProvideDate,
		FirstAvailableAfter:     today.AddDays(-3).Ptr(),
		PanelMembers:            []string{"a", "b", "c", "d"},
	}

	msgs := domain.Validate(adj, today, domain.DefaultFieldConstraints()).Messages()

	assert.Equal(t, []string{
		"No more than 3 panel members can be selected",
		domain.MsgDirectionsDueDatePast,
		domain.MsgDirectionsBothSpecified,
		domain.MsgFirstAvailableAfterInPast,
	}, msgs)
}

func TestFieldConstraints(t *testing.T) {
	c := domain.FieldConstraints{MaxPanelMembers: 3, MaxTextLength: 5}

	tests := []struct {
		name string
		adj  caserecord.Adjournment
		want string
	}{
		{"duplicate panel member", caserecord.Adjournment{PanelMembers: []string{"a", "a"}}, "The same panel member cannot be selected more than once"},
		{"zero duration", caserecord.Adjournment{ListingDuration: caserecord.IntPtr(0)}, "Listing duration must be greater than zero"},
		{"zero period", caserecord.Adjournment{AfterPeriodDays: caserecord.IntPtr(0)}, "Period for first available date after must be greater than zero"},
		{"negative offset", caserecord.Adjournment{DirectionsDueDaysOffset: caserecord.IntPtr(-1)}, "Directions due days offset cannot be negative"},
		{"long reason", caserecord.Adjournment{Reasons: []caserecord.CollectionItem[string]{{Value: "too long"}}}, "Reason must be 5 characters or fewer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []string{tt.want}, c.Validate(tt.adj).Messages())
		})
	}

	assert.Empty(t, c.Validate(caserecord.Adjournment{PanelMembers: []string{"a", "b"}}))
}
