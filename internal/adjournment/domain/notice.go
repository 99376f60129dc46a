package domain

import (
	"github.com/felixgeelhaar/tribunal/internal/caserecord"
)

// NoticeBody is the payload rendered into the adjournment notice.
type NoticeBody struct {
	Draft                  bool     `json:"is_draft"`
	CaseReference          string   `json:"case_reference"`
	AppellantName          string   `json:"appellant_name"`
	HeldBefore             string   `json:"held_before"`
	HeldAt                 string   `json:"held_at"`
	HeldOn                 string   `json:"held_on"`
	PanelExclusion         string   `json:"panel_exclusion,omitempty"`
	NextHearingDate        string   `json:"next_hearing_date"`
	NextHearingVenue       string   `json:"next_hearing_venue"`
	NextHearingAtVenue     bool     `json:"next_hearing_at_venue"`
	NextHearingType        string   `json:"next_hearing_type"`
	NextHearingTimeslot    string   `json:"next_hearing_timeslot"`
	InterpreterDescription *string  `json:"interpreter_description,omitempty"`
	Reasons                []string `json:"reasons_for_decision,omitempty"`
	AdditionalDirections   []string `json:"additional_directions,omitempty"`
	DirectionsDueDate      string   `json:"directions_due_date,omitempty"`
	GeneratedDate          string   `json:"generated_date"`
	IssueDate              string   `json:"issue_date,omitempty"`
}

// NoticeInput carries everything resolved for one notice.
type NoticeInput struct {
	Case          caserecord.CaseDetails
	Today         caserecord.Date
	Draft         bool
	ShowIssueDate bool

	Date        DateSpec
	Channel     Channel
	Venue       ResolvedVenue
	Previous    PreviousHearing
	PanelNames  []string
	Interpreter *string
}

// BuildNotice assembles the notice payload.
func BuildNotice(in NoticeInput) NoticeBody {
	adj := in.Case.Data.Adjournment
	generated := in.Today
	if adj.GeneratedDate != nil {
		generated = *adj.GeneratedDate
	}

	body := NoticeBody{
		Draft:                  in.Draft,
		CaseReference:          in.Case.Data.CaseReference,
		AppellantName:          in.Case.Data.Appellant.FullName(),
		HeldBefore:             PanelComposition(adj.SignedInJudgeName, in.PanelNames),
		HeldAt:                 in.Previous.HeldAt,
		HeldOn:                 in.Previous.HeldOn.Display(),
		PanelExclusion:         PanelExclusionSentence(adj.PanelMembersExcluded, in.PanelNames),
		NextHearingVenue:       in.Venue.Name,
		NextHearingAtVenue:     in.Venue.AtVenue,
		NextHearingTimeslot:    DurationSentence(adj),
		InterpreterDescription: in.Interpreter,
		Reasons:                caserecord.NonBlank(adj.Reasons),
		AdditionalDirections:   caserecord.NonBlank(adj.AdditionalDirections),
		DirectionsDueDate:      directionsDue(adj, generated),
		GeneratedDate:          generated.Display(),
	}
	if body.CaseReference == "" {
		body.CaseReference = in.Case.ID
	}
	if in.Date != nil {
		body.NextHearingDate = in.Date.Sentence(in.Today)
	}
	if in.Channel != nil {
		body.NextHearingType = in.Channel.Description()
	}
	if in.ShowIssueDate {
		body.IssueDate = in.Today.Display()
	}
	return body
}

func directionsDue(adj caserecord.Adjournment, generated caserecord.Date) string {
	if !adj.DirectionsBeingMade.IsYes() {
		return ""
	}
	if adj.DirectionsDueDate != nil {
		return adj.DirectionsDueDate.Display()
	}
	if adj.DirectionsDueDaysOffset != nil {
		return generated.AddDays(*adj.DirectionsDueDaysOffset).Display()
	}
	return ""
}

// InterpreterDescription resolves the interpreter language when one is
// required. It returns nil when no interpreter is needed.
func InterpreterDescription(adj caserecord.Adjournment, lookup NameLookup) (*string, error) {
	if !adj.InterpreterRequired.IsYes() {
		return nil, nil
	}
	if adj.InterpreterLanguage == "" {
		return nil, invariant(CodeMissingLanguage, "interpreter required without a language")
	}
	desc, err := lookup(adj.InterpreterLanguage)
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, invariant(CodeUnknownLanguage, "interpreter language "+adj.InterpreterLanguage+" not found")
	}
	return desc, nil
}

// CheckGate proves the notice can be rendered: both the hearing date sentence
// and the venue must be present.
func CheckGate(body NoticeBody) error {
	switch {
	case body.NextHearingDate == "" && body.NextHearingVenue == "":
		return invariant(CodeGateBothMissing, "notice has neither a next hearing date nor a venue")
	case body.NextHearingDate == "":
		return invariant(CodeGateDateMissing, "notice has no next hearing date")
	case body.NextHearingVenue == "":
		return invariant(CodeGateVenueMissing, "notice has no next hearing venue")
	}
	return nil
}

// NoticeFilename names the rendered notice.
func NoticeFilename(draft bool, date caserecord.Date) string {
	if draft {
		return "Draft Adjournment Notice generated on " + date.FileStamp() + ".pdf"
	}
	return "Adjournment Notice issued on " + date.FileStamp() + ".pdf"
}
