// Package report renders the admin exports: the semicolon-delimited CSV
// dump of the responses and the four PDF report kinds.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/deadbrock/avalia-o/model"
)

// csvHeader matches the full response field list, one column per rated
// category. Spreadsheet imports key on this order.
var csvHeader = []string{
	"ID",
	"Submitted At",
	"Name",
	"Email",
	"Phone",
	"Location",
	"Service Date",
	"Overall Rating",
	"Would Recommend",
	"Cordiality",
	"Communication",
	"Responsiveness",
	"Cleanliness/Organization",
	"Restrooms/Changing Rooms",
	"Floors",
	"Materials/Equipment",
	"Safety Protocols",
	"Schedule Adherence",
	"Cleaning Reinforcement",
	"Staff Substitution",
	"Responsibility",
	"Personal Presentation",
	"Conduct",
	"Supervisor Follow-up",
	"Nonconformity Correction",
	"Contract Management",
	"Improvement Area",
	"Improvement Description",
	"Praise",
}

// WriteCSV renders the responses as semicolon-delimited, UTF-8 CSV with a
// leading BOM so spreadsheet tools pick the encoding up.
func WriteCSV(w io.Writer, responses []model.Response) error {
	if _, err := w.Write([]byte("\ufeff")); err != nil {
		return fmt.Errorf("report.csv.bom: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("report.csv.header: %w", err)
	}

	for _, r := range responses {
		row := []string{
			fmt.Sprintf("%d", r.ID),
			r.SubmittedAt.Format("02/01/2006"),
			r.Name,
			r.Email,
			r.Phone,
			r.Location,
			r.ServiceDate,
			string(r.Overall),
			r.WouldRecommend,
		}
		for _, cat := range model.Categories {
			row = append(row, string(r.Rating(cat.Key)))
		}
		row = append(row, r.ImprovementArea, r.ImprovementDescription, r.Praise)

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report.csv.row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// FilterResponses narrows the list with the export query parameters: q
// matches name, email or location case-insensitively, rating matches the
// overall label exactly. Empty parameters match everything.
func FilterResponses(responses []model.Response, q, rating string) []model.Response {
	q = strings.ToLower(strings.TrimSpace(q))

	filtered := make([]model.Response, 0, len(responses))
	for _, r := range responses {
		if rating != "" && string(r.Overall) != rating {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(r.Name), q) &&
			!strings.Contains(strings.ToLower(r.Email), q) &&
			!strings.Contains(strings.ToLower(r.Location), q) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}
