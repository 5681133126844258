package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelScores(t *testing.T) {
	assert.Equal(t, 5, Excellent.Score())
	assert.Equal(t, 4, Good.Score())
	assert.Equal(t, 3, Regular.Score())
	assert.Equal(t, 2, Poor.Score())
	assert.Equal(t, 1, VeryPoor.Score())
	assert.Equal(t, 0, Label("").Score())
	assert.Equal(t, 0, Label("Fantastic").Score())
}

func TestLabelPredicates(t *testing.T) {
	assert.True(t, Excellent.Positive())
	assert.True(t, Good.Positive())
	assert.False(t, Regular.Positive())

	assert.True(t, Poor.Negative())
	assert.True(t, VeryPoor.Negative())
	assert.False(t, Regular.Negative())
	assert.False(t, Label("").Negative())

	for _, l := range Labels {
		assert.True(t, l.Valid(), l)
	}
	assert.False(t, Label("").Valid())
}

func TestCategoriesCoverAllRatingFields(t *testing.T) {
	assert.Len(t, Categories, 17)

	seen := map[string]bool{}
	for _, cat := range Categories {
		assert.False(t, seen[cat.Key], "duplicate key %s", cat.Key)
		seen[cat.Key] = true
	}

	r := Response{}
	all := []*Label{
		&r.Cordiality, &r.Communication, &r.Responsiveness,
		&r.Cleanliness, &r.Restrooms, &r.Floors, &r.Materials, &r.SafetyProtocols,
		&r.ScheduleAdherence, &r.CleaningReinforcement, &r.StaffSubstitution,
		&r.Responsibility, &r.PersonalPresentation, &r.Conduct,
		&r.SupervisorFollowUp, &r.NonconformityCorrection, &r.ContractManagement,
	}
	for i, field := range all {
		*field = Excellent
		assert.Equal(t, Excellent, r.Rating(Categories[i].Key), Categories[i].Key)
		*field = ""
	}
}

func TestResponseValidate(t *testing.T) {
	valid := Response{
		Name:        "Ana",
		Email:       "ana@example.com",
		Location:    "Unit 12",
		ServiceDate: "2026-03-10",
		Overall:     Excellent,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Response)
		want   string
	}{
		{"blank name", func(r *Response) { r.Name = "  " }, "name is required"},
		{"missing email", func(r *Response) { r.Email = "" }, "email is required"},
		{"missing location", func(r *Response) { r.Location = "" }, "location is required"},
		{"missing service date", func(r *Response) { r.ServiceDate = "" }, "service date is required"},
		{"missing overall", func(r *Response) { r.Overall = "" }, "overall rating is required"},
		{"unknown overall", func(r *Response) { r.Overall = "Superb" }, `unknown overall rating "Superb"`},
		{"unknown category label", func(r *Response) { r.Floors = "Shiny" }, `unknown rating "Shiny" for floors`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := valid
			tc.mutate(&r)
			assert.EqualError(t, r.Validate(), tc.want)
		})
	}
}

func TestActionItemValidate(t *testing.T) {
	valid := ActionItem{Title: "Improve Floors and carpets", Priority: PriorityHigh}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.Title = ""
	assert.EqualError(t, missing.Validate(), "title is required")

	badPriority := valid
	badPriority.Priority = "urgent"
	assert.EqualError(t, badPriority.Validate(), `unknown priority "urgent"`)

	badStatus := valid
	badStatus.Status = "cancelled"
	assert.EqualError(t, badStatus.Validate(), `unknown status "cancelled"`)

	pending := valid
	pending.Status = StatusPending
	assert.NoError(t, pending.Validate())
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusInProgress))
	assert.True(t, ValidStatus(StatusDone))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("cancelled"))
}
