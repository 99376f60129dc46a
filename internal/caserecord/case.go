// Package caserecord holds the case snapshot exchanged with the case-management
// platform on every callback.
package caserecord

import (
	"encoding/json"
	"strings"
)

// Hearing routes.
const (
	HearingRouteListAssist = "listAssist"
	HearingRouteGaps       = "gaps"
)

// Document types the adjournment workflow reads and writes.
const (
	DocumentTypeDraftAdjournmentNotice = "draftAdjournmentNotice"
	DocumentTypeAdjournmentNotice      = "adjournmentNotice"
)

// CaseDetails is the envelope the platform sends for a case.
type CaseDetails struct {
	ID    string   `json:"id"`
	State string   `json:"state"`
	Data  CaseData `json:"case_data"`
}

// CaseData is the mutable body of the case record.
type CaseData struct {
	CaseReference    string                         `json:"caseReference,omitempty"`
	HearingRoute     string                         `json:"hearingRoute,omitempty"`
	Appellant        Name                           `json:"appellant"`
	Hearings         []CollectionItem[Hearing]      `json:"hearings,omitempty"`
	Documents        []CollectionItem[CaseDocument] `json:"sscsDocument,omitempty"`
	Adjournment      Adjournment                    `json:"adjournment"`
	ScheduleOverride *ScheduleOverride              `json:"overrideFields,omitempty"`
}

// Name is a person's name.
type Name struct {
	Title     string `json:"title,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// FullName joins the non-empty parts.
func (n Name) FullName() string {
	var parts []string
	for _, p := range []string{n.Title, n.FirstName, n.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Hearing is one entry of the hearing history.
type Hearing struct {
	HearingID   string `json:"hearingId,omitempty"`
	HearingDate *Date  `json:"hearingDate,omitempty"`
	VenueID     string `json:"venueId,omitempty"`
	VenueName   string `json:"venueName,omitempty"`
}

func (h *Hearing) UnmarshalJSON(data []byte) error {
	type plain Hearing
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*h = Hearing(p)
	h.HearingDate = present(h.HearingDate)
	return nil
}

// DocumentLink references a rendered document held by the document store.
type DocumentLink struct {
	URL       string `json:"document_url"`
	BinaryURL string `json:"document_binary_url"`
	Filename  string `json:"document_filename"`
}

// CaseDocument is a document attached to the case.
type CaseDocument struct {
	Type      string       `json:"documentType"`
	FileName  string       `json:"documentFileName"`
	DateAdded *Date        `json:"documentDateAdded,omitempty"`
	Link      DocumentLink `json:"documentLink"`
}

// LatestHearing returns the most recent hearing by date. Undated hearings rank
// below dated ones; ties go to the later entry in the history.
func (c CaseData) LatestHearing() (Hearing, bool) {
	var (
		latest Hearing
		found  bool
	)
	for _, item := range c.Hearings {
		h := item.Value
		if !found {
			latest, found = h, true
			continue
		}
		switch {
		case h.HearingDate == nil:
			if latest.HearingDate == nil {
				latest = h
			}
		case latest.HearingDate == nil || !h.HearingDate.Before(*latest.HearingDate):
			latest = h
		}
	}
	return latest, found
}

// HasDocument reports whether a document of the given type is attached.
func (c CaseData) HasDocument(docType string) bool {
	_, ok := c.findDocument(docType)
	return ok
}

func (c CaseData) findDocument(docType string) (int, bool) {
	for i, item := range c.Documents {
		if item.Value.Type == docType {
			return i, true
		}
	}
	return -1, false
}

// RemoveDocuments drops every document of the given type.
func (c *CaseData) RemoveDocuments(docType string) {
	kept := c.Documents[:0:0]
	for _, item := range c.Documents {
		if item.Value.Type != docType {
			kept = append(kept, item)
		}
	}
	c.Documents = kept
}

// AddDocument appends a document to the case.
func (c *CaseData) AddDocument(doc CaseDocument) {
	c.Documents = append(c.Documents, NewItem(doc))
}

// IsListAssist reports whether the case follows the fast-track listing route.
func (c CaseData) IsListAssist() bool {
	return strings.EqualFold(c.HearingRoute, HearingRouteListAssist)
}
