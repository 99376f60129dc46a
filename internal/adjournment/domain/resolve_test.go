package domain_test

import (
	"errors"
	"testing"

	"github.com/felixgeelhaar/tribunal/internal/adjournment/domain"
	"github.com/felixgeelhaar/tribunal/internal/caserecord"
	sharedDomain "github.com/felixgeelhaar/tribunal/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateSpec(t *testing.T) {
	after := today.AddDays(10)

	tests := []struct {
		name         string
		adj          caserecord.Adjournment
		wantSentence string
		wantWindow   *caserecord.Date
	}{
		{
			name:         "first available",
			adj:          caserecord.Adjournment{NextHearingDateType: caserecord.DateTypeFirstAvailable},
			wantSentence: "on the first available date",
		},
		{
			name: "after date",
			adj: caserecord.Adjournment{
				NextHearingDateType: caserecord.DateTypeFirstAvailableAfter,
				DateOrPeriod:        caserecord.ProvideDate,
				FirstAvailableAfter: after.Ptr(),
			},
			wantSentence: "on the first available date after 24/10/2026",
			wantWindow:   after.Ptr(),
		},
		{
			name: "after period of 28 days",
			adj: caserecord.Adjournment{
				NextHearingDateType: caserecord.DateTypeFirstAvailableAfter,
				DateOrPeriod:        caserecord.ProvidePeriod,
				AfterPeriodDays:     caserecord.IntPtr(28),
			},
			wantSentence: "on the first available date after 11/11/2026",
			wantWindow:   caserecord.MustParseDate("2026-11-11").Ptr(),
		},
		{
			name:         "to be fixed",
			adj:          caserecord.Adjournment{NextHearingDateType: caserecord.DateTypeToBeFixed},
			wantSentence: "on a date to be fixed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := domain.ParseDateSpec(tt.adj)
			require.NoError(t, err)

			assert.Equal(t, tt.wantSentence, spec.Sentence(today))
			assert.Equal(t, tt.wantWindow, spec.WindowStart(today))
		})
	}
}

func TestParseDateSpec_PeriodWindowIsTodayPlusDays(t *testing.T) {
	for _, days := range []int{1, 14, 28, 42, 365} {
		spec, err := domain.ParseDateSpec(caserecord.Adjournment{
			NextHearingDateType: caserecord.DateTypeFirstAvailableAfter,
			DateOrPeriod:        caserecord.ProvidePeriod,
			AfterPeriodDays:     caserecord.IntPtr(days),
		})
		require.NoError(t, err)

		want := today.AddDays(days)
		require.NotNil(t, spec.WindowStart(today))
		assert.True(t, want.Equal(*spec.WindowStart(today)))
		assert.Contains(t, spec.Sentence(today), "after "+want.Display())
	}
}

func TestParseDateSpec_Invariants(t *testing.T) {
	tests := []struct {
		name string
		adj  caserecord.Adjournment
		code string
	}{
		{"missing period", caserecord.Adjournment{NextHearingDateType: caserecord.DateTypeFirstAvailableAfter, DateOrPeriod: caserecord.ProvidePeriod}, domain.CodeMissingAfterPeriod},
		{"missing date", caserecord.Adjournment{NextHearingDateType: caserecord.DateTypeFirstAvailableAfter, DateOrPeriod: caserecord.ProvideDate}, domain.CodeMissingAfterDate},
		{"missing selector", caserecord.Adjournment{NextHearingDateType: caserecord.DateTypeFirstAvailableAfter}, domain.CodeMissingDateOrPeriod},
		{"unknown type", caserecord.Adjournment{NextHearingDateType: "someday"}, domain.CodeUnknownDateType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.ParseDateSpec(tt.adj)
			e, ok := sharedDomain.AsError(err)
			require.True(t, ok)
			assert.Equal(t, sharedDomain.KindInvariant, e.Kind)
			assert.Equal(t, tt.code, e.Code)
		})
	}

	spec, err := domain.ParseDateSpec(caserecord.Adjournment{})
	assert.NoError(t, err)
	assert.Nil(t, spec)
}

func TestParseChannel(t *testing.T) {
	tests := []struct {
		in   caserecord.NextHearingType
		want domain.Channel
	}{
		{"faceToFace", domain.FaceToFace{}},
		{"FACETOFACE", domain.FaceToFace{}},
		{"video", domain.Video{}},
		{"Telephone", domain.Telephone{}},
		{"paper", domain.Paper{}},
		{"vid", domain.Video{}},
		{"ONPPRS", domain.Paper{}},
	}
	for _, tt := range tests {
		got, err := domain.ParseChannel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := domain.ParseChannel("carrier pigeon")
	assert.True(t, sharedDomain.IsInvariant(err))
	_, err = domain.ParseChannel("")
	assert.True(t, sharedDomain.IsInvariant(err))
}

func venueNames(names map[string]string) domain.VenueNamer {
	return func(id string) (*string, error) {
		if n, ok := names[id]; ok {
			return &n, nil
		}
		return nil, nil
	}
}

func TestResolveVenue(t *testing.T) {
	withHearing := caserecord.CaseData{Hearings: []caserecord.CollectionItem[caserecord.Hearing]{
		caserecord.NewItem(caserecord.Hearing{VenueID: "1256", VenueName: "Leeds Magistrates", HearingDate: today.AddDays(-20).Ptr()}),
	}}
	lookup := venueNames(map[string]string{"987": "Bradford Tribunal Hearing Centre"})

	tests := []struct {
		name    string
		data    caserecord.CaseData
		adj     caserecord.Adjournment
		channel domain.Channel
		want    domain.ResolvedVenue
	}{
		{
			name:    "face to face same venue reuses last hearing",
			data:    withHearing,
			adj:     caserecord.Adjournment{NextHearingVenue: caserecord.VenueSame},
			channel: domain.FaceToFace{},
			want:    domain.ResolvedVenue{ID: "1256", Name: "Leeds Magistrates", AtVenue: true},
		},
		{
			name:    "face to face same venue without hearings is in chambers",
			adj:     caserecord.Adjournment{NextHearingVenue: caserecord.VenueSame},
			channel: domain.FaceToFace{},
			want:    domain.ResolvedVenue{Name: domain.InChambers},
		},
		{
			name:    "face to face somewhere else",
			data:    withHearing,
			adj:     caserecord.Adjournment{NextHearingVenue: caserecord.VenueSomewhereElse, NextHearingVenueSelected: "987"},
			channel: domain.FaceToFace{},
			want:    domain.ResolvedVenue{ID: "987", Name: "Bradford Tribunal Hearing Centre", AtVenue: true},
		},
		{
			name:    "video is listed at the venue but not attended",
			data:    withHearing,
			channel: domain.Video{},
			want:    domain.ResolvedVenue{ID: "1256", Name: "Leeds Magistrates"},
		},
		{
			name:    "paper is always in chambers",
			data:    withHearing,
			adj:     caserecord.Adjournment{NextHearingVenue: caserecord.VenueSomewhereElse, NextHearingVenueSelected: "987"},
			channel: domain.Paper{},
			want:    domain.ResolvedVenue{Name: domain.InChambers},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := domain.ParseVenueSpec(tt.adj, tt.channel)
			require.NoError(t, err)

			got, err := domain.ResolveVenue(spec, tt.channel, domain.LastHearing(tt.data, today), lookup)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveVenue_Failures(t *testing.T) {
	_, err := domain.ParseVenueSpec(caserecord.Adjournment{NextHearingVenue: caserecord.VenueSomewhereElse}, domain.FaceToFace{})
	assert.True(t, sharedDomain.IsInvariant(err))

	spec := domain.SomewhereElse{VenueID: "missing"}
	_, err = domain.ResolveVenue(spec, domain.FaceToFace{}, domain.PreviousHearing{}, venueNames(nil))
	assert.True(t, sharedDomain.IsInvariant(err))

	boom := errors.New("reference data down")
	_, err = domain.ResolveVenue(spec, domain.FaceToFace{}, domain.PreviousHearing{}, func(string) (*string, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, sharedDomain.IsInvariant(err))
}

func TestLastHearing(t *testing.T) {
	prev := domain.LastHearing(caserecord.CaseData{}, today)
	assert.Equal(t, domain.InChambers, prev.HeldAt)
	assert.Equal(t, today, prev.HeldOn)

	held := today.AddDays(-5)
	prev = domain.LastHearing(caserecord.CaseData{Hearings: []caserecord.CollectionItem[caserecord.Hearing]{
		caserecord.NewItem(caserecord.Hearing{VenueName: "Leeds", HearingDate: held.Ptr()}),
	}}, today)
	assert.Equal(t, "Leeds", prev.HeldAt)
	assert.Equal(t, held, prev.HeldOn)
}
