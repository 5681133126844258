package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadbrock/avalia-o/model"
)

func sampleResponse(id int, name string, overall model.Label) model.Response {
	return model.Response{
		ID:          id,
		Name:        name,
		Email:       strings.ToLower(name) + "@client.example",
		Location:    "Downtown branch",
		ServiceDate: "2026-03-10",
		Cleanliness: model.Good,
		Overall:     overall,
		SubmittedAt: time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC),
	}
}

func TestWriteCSVShape(t *testing.T) {
	responses := []model.Response{
		sampleResponse(1, "Ana", model.Excellent),
		sampleResponse(2, "Bruno", model.Poor),
		sampleResponse(3, "Clara", model.Good),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, responses))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\ufeff"), "missing UTF-8 BOM")

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff")))
	reader.Comma = ';'
	records, err := reader.ReadAll()
	require.NoError(t, err)

	// header + one line per record
	require.Len(t, records, len(responses)+1)
	for i, record := range records {
		assert.Len(t, record, len(records[0]), "line %d", i)
	}

	assert.Equal(t, "ID", records[0][0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "Ana", records[1][2])
	assert.Equal(t, "Excellent", records[1][7])
	assert.Equal(t, "12/03/2026", records[1][1])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 1) // header only
}

func TestFilterResponses(t *testing.T) {
	responses := []model.Response{
		sampleResponse(1, "Ana", model.Excellent),
		sampleResponse(2, "Bruno", model.Poor),
		sampleResponse(3, "Clara", model.Good),
	}

	assert.Len(t, FilterResponses(responses, "", ""), 3)

	byName := FilterResponses(responses, "bru", "")
	require.Len(t, byName, 1)
	assert.Equal(t, "Bruno", byName[0].Name)

	byRating := FilterResponses(responses, "", "Poor")
	require.Len(t, byRating, 1)
	assert.Equal(t, 2, byRating[0].ID)

	assert.Empty(t, FilterResponses(responses, "ana", "Poor"))
	// location matches every sample record
	assert.Len(t, FilterResponses(responses, "downtown", ""), 3)
}
