package domain

import (
	"github.com/felixgeelhaar/tribunal/internal/caserecord"
)

// HasDraftNotice reports whether a draft adjournment notice is on the case.
func HasDraftNotice(data caserecord.CaseData) bool {
	return data.HasDocument(caserecord.DocumentTypeDraftAdjournmentNotice)
}

// HasIssuedNotice reports whether an adjournment notice was already issued.
func HasIssuedNotice(data caserecord.CaseData) bool {
	return data.HasDocument(caserecord.DocumentTypeAdjournmentNotice)
}

// ResetDerived clears the derived fields so a fresh pass is not biased by the
// previous one.
func ResetDerived(adj caserecord.Adjournment) caserecord.Adjournment {
	adj.PanelDescription = ""
	adj.NextHearingTypeDescription = ""
	adj.PreviewDocument = nil
	return adj
}

// ClearAfterIssue returns the working data to its defaults. The in-progress
// flag is set to No rather than dropped so the platform overwrites it.
func ClearAfterIssue(caserecord.Adjournment) caserecord.Adjournment {
	return caserecord.Adjournment{InProgress: caserecord.No}
}
