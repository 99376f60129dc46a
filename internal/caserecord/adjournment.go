package caserecord

import "encoding/json"

// NextHearingType is the channel the operator picked for the next hearing.
type NextHearingType string

const (
	NextHearingFaceToFace NextHearingType = "faceToFace"
	NextHearingVideo      NextHearingType = "video"
	NextHearingTelephone  NextHearingType = "telephone"
	NextHearingPaper      NextHearingType = "paper"
)

// NextHearingDateType selects how the next hearing date is expressed.
type NextHearingDateType string

const (
	DateTypeFirstAvailable      NextHearingDateType = "firstAvailableDate"
	DateTypeFirstAvailableAfter NextHearingDateType = "firstAvailableDateAfter"
	DateTypeToBeFixed           NextHearingDateType = "dateToBeFixed"
)

// DateOrPeriod selects between an explicit date and a period in days.
type DateOrPeriod string

const (
	ProvideDate   DateOrPeriod = "provideDate"
	ProvidePeriod DateOrPeriod = "providePeriod"
)

// DurationUnits of the listing duration.
type DurationUnits string

const (
	UnitsMinutes  DurationUnits = "minutes"
	UnitsSessions DurationUnits = "sessions"
)

// DurationType distinguishes the standard slot from an entered duration.
type DurationType string

const (
	DurationStandard    DurationType = "standard"
	DurationNonStandard DurationType = "nonStandard"
)

// VenueChoice selects whether the next hearing moves.
type VenueChoice string

const (
	VenueSame          VenueChoice = "sameVenue"
	VenueSomewhereElse VenueChoice = "somewhereElse"
)

// PanelExclusion controls how the listed panel members affect the next panel.
type PanelExclusion string

const (
	PanelExcluded    PanelExclusion = "yes"
	PanelNotExcluded PanelExclusion = "no"
	PanelReserved    PanelExclusion = "reserved"
)

// Adjournment is the working data of the adjournment workflow. It is carried
// whole in every callback and owned by the platform between calls.
type Adjournment struct {
	TypeOfHearing       string              `json:"adjournCaseTypeOfHearing,omitempty"`
	TypeOfNextHearing   NextHearingType     `json:"adjournCaseTypeOfNextHearing,omitempty"`
	NextHearingDateType NextHearingDateType `json:"adjournCaseNextHearingDateType,omitempty"`
	DateOrPeriod        DateOrPeriod        `json:"adjournCaseNextHearingDateOrPeriod,omitempty"`
	FirstAvailableAfter *Date               `json:"adjournCaseNextHearingFirstAvailableDateAfterDate,omitempty"`
	AfterPeriodDays     *int                `json:"adjournCaseNextHearingFirstAvailableDateAfterPeriod,omitempty"`

	ListingDuration      *int          `json:"adjournCaseNextHearingListingDuration,omitempty"`
	ListingDurationUnits DurationUnits `json:"adjournCaseNextHearingListingDurationUnits,omitempty"`
	ListingDurationType  DurationType  `json:"adjournCaseNextHearingListingDurationType,omitempty"`

	NextHearingVenue         VenueChoice `json:"adjournCaseNextHearingVenue,omitempty"`
	NextHearingVenueSelected string      `json:"adjournCaseNextHearingVenueSelected,omitempty"`

	InterpreterRequired YesNo  `json:"adjournCaseInterpreterRequired,omitempty"`
	InterpreterLanguage string `json:"adjournCaseInterpreterLanguage,omitempty"`

	PanelMembersExcluded PanelExclusion `json:"adjournCasePanelMembersExcluded,omitempty"`
	PanelMembers         []string       `json:"adjournCasePanelMembers,omitempty"`

	DirectionsBeingMade     YesNo `json:"adjournCaseAreDirectionsBeingMadeToParties,omitempty"`
	DirectionsDueDate       *Date `json:"adjournCaseDirectionsDueDate,omitempty"`
	DirectionsDueDaysOffset *int  `json:"adjournCaseDirectionsDueDateDaysOffset,omitempty"`

	Reasons              []CollectionItem[string] `json:"adjournCaseReasons,omitempty"`
	AdditionalDirections []CollectionItem[string] `json:"adjournCaseAdditionalDirections,omitempty"`

	SignedInJudgeName          string        `json:"adjournCaseSignedInJudgeName,omitempty"`
	PanelDescription           string        `json:"adjournCasePanelDescription,omitempty"`
	NextHearingTypeDescription string        `json:"adjournCaseNextHearingTypeDescription,omitempty"`
	GeneratedDate              *Date         `json:"adjournCaseGeneratedDate,omitempty"`
	PreviewDocument            *DocumentLink `json:"adjournCasePreviewDocument,omitempty"`
	InProgress                 YesNo         `json:"adjournmentInProgress,omitempty"`
	CanBeListedRightAway       YesNo         `json:"adjournCaseCanCaseBeListedRightAway,omitempty"`
}

func (a *Adjournment) UnmarshalJSON(data []byte) error {
	type plain Adjournment
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = Adjournment(p)
	a.FirstAvailableAfter = present(a.FirstAvailableAfter)
	a.DirectionsDueDate = present(a.DirectionsDueDate)
	a.GeneratedDate = present(a.GeneratedDate)
	return nil
}

// ScheduleOverride is the scheduling data derived on commit.
type ScheduleOverride struct {
	DurationMinutes      int    `json:"duration,omitempty"`
	HearingWindowStart   *Date  `json:"hearingWindowDateRangeStart,omitempty"`
	HearingChannel       string `json:"appellantHearingChannel,omitempty"`
	VenueID              string `json:"hearingVenueEpimsId,omitempty"`
	SchedulingLocationID string `json:"hearingVenueSchedulingLocationId,omitempty"`
}

// IntPtr is a convenience for optional integer fields.
func IntPtr(v int) *int { return &v }
