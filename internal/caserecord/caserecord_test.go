package caserecord

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	var adj Adjournment
	err := json.Unmarshal([]byte(`{"adjournCaseDirectionsDueDate":"2026-11-02","adjournCaseGeneratedDate":""}`), &adj)
	require.NoError(t, err)

	require.NotNil(t, adj.DirectionsDueDate)
	assert.Equal(t, NewDate(2026, time.November, 2), *adj.DirectionsDueDate)
	assert.Equal(t, "02/11/2026", adj.DirectionsDueDate.Display())
	assert.Equal(t, "02-11-2026", adj.DirectionsDueDate.FileStamp())

	out, err := json.Marshal(adj)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"adjournCaseDirectionsDueDate":"2026-11-02"`)
}

func TestAdjournment_EmptyDatesAreAbsent(t *testing.T) {
	var adj Adjournment
	err := json.Unmarshal([]byte(`{
		"adjournCaseDirectionsDueDate": "",
		"adjournCaseNextHearingFirstAvailableDateAfterDate": null,
		"adjournCaseGeneratedDate": "",
		"adjournCaseDirectionsDueDateDaysOffset": 14,
		"adjournCaseAreDirectionsBeingMadeToParties": "Yes"
	}`), &adj)
	require.NoError(t, err)

	assert.Nil(t, adj.DirectionsDueDate)
	assert.Nil(t, adj.FirstAvailableAfter)
	assert.Nil(t, adj.GeneratedDate)
	require.NotNil(t, adj.DirectionsDueDaysOffset)
	assert.Equal(t, 14, *adj.DirectionsDueDaysOffset)
	assert.Equal(t, Yes, adj.DirectionsBeingMade)

	out, err := json.Marshal(adj)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "adjournCaseDirectionsDueDate\"")
	assert.NotContains(t, string(out), "adjournCaseGeneratedDate")
}

func TestHearing_EmptyDateIsAbsent(t *testing.T) {
	var h Hearing
	require.NoError(t, json.Unmarshal([]byte(`{"hearingId":"h1","hearingDate":""}`), &h))
	assert.Nil(t, h.HearingDate)
	assert.Equal(t, "h1", h.HearingID)
}

func TestDate_RejectsMalformed(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"02/11/2026"`), &d))
}

func TestCaseData_LatestHearing(t *testing.T) {
	data := CaseData{Hearings: []CollectionItem[Hearing]{
		NewItem(Hearing{VenueName: "Leeds", HearingDate: MustParseDate("2026-03-01").Ptr()}),
		NewItem(Hearing{VenueName: "Bradford", HearingDate: MustParseDate("2026-06-01").Ptr()}),
		NewItem(Hearing{VenueName: "Undated"}),
	}}

	latest, ok := data.LatestHearing()
	require.True(t, ok)
	assert.Equal(t, "Bradford", latest.VenueName)

	_, ok = CaseData{}.LatestHearing()
	assert.False(t, ok)
}

func TestCaseData_Documents(t *testing.T) {
	var data CaseData
	data.AddDocument(CaseDocument{Type: DocumentTypeDraftAdjournmentNotice})
	data.AddDocument(CaseDocument{Type: "appellantEvidence"})

	assert.True(t, data.HasDocument(DocumentTypeDraftAdjournmentNotice))

	data.RemoveDocuments(DocumentTypeDraftAdjournmentNotice)

	assert.False(t, data.HasDocument(DocumentTypeDraftAdjournmentNotice))
	assert.Len(t, data.Documents, 1)
}

func TestYesNo(t *testing.T) {
	assert.True(t, YesNo("yes").IsYes())
	assert.True(t, No.IsNo())
	assert.False(t, YesNo("").IsYes())
	assert.False(t, YesNo("").IsNo())
	assert.Equal(t, Yes, YesNoOf(true))
}

func TestNonBlank(t *testing.T) {
	items := []CollectionItem[string]{NewItem("first"), NewItem("  "), NewItem("second")}
	assert.Equal(t, []string{"first", "second"}, NonBlank(items))
	assert.Nil(t, NonBlank(nil))
}

func TestName_FullName(t *testing.T) {
	assert.Equal(t, "Mr Joe Bloggs", Name{Title: "Mr", FirstName: "Joe", LastName: "Bloggs"}.FullName())
	assert.Equal(t, "Bloggs", Name{LastName: "Bloggs"}.FullName())
}
