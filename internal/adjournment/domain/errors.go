// Package domain holds the adjournment rules. Every function is pure: the case
// snapshot and "today" come in, derived values and rule errors come out.
package domain

import (
	sharedDomain "github.com/felixgeelhaar/tribunal/internal/shared/domain"
)

// Operator-facing validation messages.
const (
	MsgDirectionsDueDatePast     = "Directions due date must be in the future"
	MsgDirectionsBothSpecified   = "Cannot specify both directions due date and directions due days offset"
	MsgDirectionsNoneSpecified   = "At least one of directions due date or directions due date offset must be specified"
	MsgFirstAvailableAfterInPast = "'First available date after' date cannot be in the past"
	MsgNoDraftNotice             = "There is no Draft Adjournment Notice on the case so adjournment cannot be issued"
	MsgNoticeAlreadyIssued       = "An adjournment notice has already been issued on this case. Issuing another will replace the listing request."
)

// Invariant violation codes.
const (
	CodeMissingAfterDate     = "missing_first_available_after_date"
	CodeMissingAfterPeriod   = "missing_first_available_after_period"
	CodeMissingDateOrPeriod  = "missing_date_or_period"
	CodeUnknownDateType      = "unknown_next_hearing_date_type"
	CodeUnknownDateOrPeriod  = "unknown_date_or_period"
	CodeUnknownChannel       = "unknown_hearing_channel"
	CodeMissingVenue         = "missing_next_hearing_venue"
	CodeUnknownVenue         = "unknown_next_hearing_venue"
	CodeUnknownVenueChoice   = "unknown_venue_choice"
	CodeMissingLanguage      = "missing_interpreter_language"
	CodeUnknownLanguage      = "unknown_interpreter_language"
	CodeUnknownPanelMember   = "unknown_panel_member"
	CodeMissingDuration      = "missing_listing_duration"
	CodeUnknownDurationUnits = "unknown_listing_duration_units"
	CodeGateDateMissing      = "notice_date_missing"
	CodeGateVenueMissing     = "notice_venue_missing"
	CodeGateBothMissing      = "notice_date_and_venue_missing"
)

func invariant(code, message string) *sharedDomain.Error {
	return sharedDomain.Invariant(code, message)
}
