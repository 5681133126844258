package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/deadbrock/avalia-o/analysis"
	"github.com/deadbrock/avalia-o/model"
)

const (
	KindActionPlan   = "action-plan"
	KindMonthly      = "monthly"
	KindSatisfaction = "satisfaction"
	KindDetailed     = "detailed"
)

func ValidKind(kind string) bool {
	switch kind {
	case KindActionPlan, KindMonthly, KindSatisfaction, KindDetailed:
		return true
	}
	return false
}

// brand is the FG Services header band color.
var brand = [3]int{162, 18, 42}

func priorityColor(priority string) (int, int, int) {
	switch priority {
	case model.PriorityHigh:
		return 220, 38, 38
	case model.PriorityMedium:
		return 234, 179, 8
	}
	return 34, 197, 94
}

// WritePDF renders one of the four report kinds to w.
func WritePDF(w io.Writer, kind string, snap analysis.Snapshot, responses []model.Response, items []model.ActionItem, now time.Time) error {
	var title string
	switch kind {
	case KindActionPlan:
		title = "Action Plan Report"
	case KindMonthly:
		title = "Monthly Report"
	case KindSatisfaction:
		title = "Satisfaction Report"
	case KindDetailed:
		title = "Detailed Report"
	default:
		return fmt.Errorf("unknown report kind %q", kind)
	}

	pdf := newDoc(title, now)

	switch kind {
	case KindActionPlan:
		actionPlanPages(pdf, items)
	case KindMonthly:
		monthlyPage(pdf, snap, responses, now)
	case KindSatisfaction:
		satisfactionPage(pdf, snap)
	case KindDetailed:
		detailedPages(pdf, responses)
	}

	return pdf.Output(w)
}

func newDoc(title string, now time.Time) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 6,
			fmt.Sprintf("Page %d of {nb} | (c) %d FG Services - All rights reserved", pdf.PageNo(), now.Year()),
			"", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	headerBand(pdf, 30)

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetXY(0, 8)
	pdf.CellFormat(210, 10, "FG SERVICES", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(210, 8, title, "", 1, "C", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(14, 36)
	pdf.CellFormat(0, 6, "Generated on "+now.Format("02/01/2006 15:04"), "", 1, "", false, 0, "")

	return pdf
}

func headerBand(pdf *gofpdf.Fpdf, height float64) {
	pdf.SetFillColor(brand[0], brand[1], brand[2])
	pdf.Rect(0, 0, 210, height, "F")
}

func sectionTitle(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetX(14)
	pdf.CellFormat(0, 8, text, "", 1, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}

func statLine(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetX(14)
	pdf.CellFormat(60, 6, label, "", 0, "", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, value, "", 1, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}

// tableRow lays out one striped table row; widths and cells run in lockstep.
func tableRow(pdf *gofpdf.Fpdf, widths []float64, cells []string, fill bool) {
	pdf.SetX(14)
	for i, cell := range cells {
		pdf.CellFormat(widths[i], 7, cell, "1", 0, "", fill, 0, "")
	}
	pdf.Ln(-1)
}

func tableHead(pdf *gofpdf.Fpdf, widths []float64, cells []string) {
	pdf.SetFillColor(brand[0], brand[1], brand[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	tableRow(pdf, widths, cells, true)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetFillColor(245, 245, 245)
}

func actionPlanPages(pdf *gofpdf.Fpdf, items []model.ActionItem) {
	pending, inProgress, done := 0, 0, 0
	for _, item := range items {
		switch item.Status {
		case model.StatusInProgress:
			inProgress++
		case model.StatusDone:
			done++
		default:
			pending++
		}
	}

	pdf.SetY(48)
	sectionTitle(pdf, "Executive Summary")
	statLine(pdf, "Total action items:", fmt.Sprintf("%d", len(items)))
	statLine(pdf, "Pending:", fmt.Sprintf("%d", pending))
	statLine(pdf, "In progress:", fmt.Sprintf("%d", inProgress))
	statLine(pdf, "Done:", fmt.Sprintf("%d", done))

	pdf.Ln(4)
	widths := []float64{50, 26, 22, 26, 33, 25}
	tableHead(pdf, widths, []string{"Title", "Category", "Priority", "Status", "Owner", "Due"})
	for i, item := range items {
		if pdf.GetY() > 260 {
			pdf.AddPage()
			pdf.SetY(20)
			tableHead(pdf, widths, []string{"Title", "Category", "Priority", "Status", "Owner", "Due"})
		}
		tableRow(pdf, widths, []string{
			clip(item.Title, 32), item.Category, item.Priority, item.Status,
			clip(item.Owner, 20), item.DueDate,
		}, i%2 == 1)
	}

	// per-item detail boxes
	pdf.AddPage()
	headerBand(pdf, 20)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(0, 6)
	pdf.CellFormat(210, 8, "Action Item Details", "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	y := 30.0
	for i, item := range items {
		if y > 235 {
			pdf.AddPage()
			y = 20
		}

		pdf.SetDrawColor(brand[0], brand[1], brand[2])
		pdf.SetLineWidth(0.5)
		pdf.Rect(14, y, 182, 50, "D")

		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(16, y+2)
		pdf.CellFormat(0, 6, fmt.Sprintf("%d. %s", i+1, item.Title), "", 1, "", false, 0, "")

		r, g, b := priorityColor(item.Priority)
		pdf.SetFillColor(r, g, b)
		pdf.RoundedRect(16, y+10, 22, 5, 1, "1234", "F")
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 7)
		pdf.SetXY(16, y+10)
		pdf.CellFormat(22, 5, item.Priority, "", 0, "C", false, 0, "")

		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetXY(42, y+10)
		pdf.CellFormat(0, 5, "Category: "+item.Category, "", 1, "", false, 0, "")

		pdf.SetXY(16, y+18)
		pdf.MultiCell(178, 4.5, item.Description, "", "", false)

		pdf.SetXY(16, y+40)
		pdf.CellFormat(84, 5, "Owner: "+item.Owner, "", 0, "", false, 0, "")
		pdf.CellFormat(0, 5, "Due: "+item.DueDate, "", 1, "", false, 0, "")
		pdf.SetXY(16, y+45)
		pdf.CellFormat(0, 5, "Status: "+item.Status, "", 1, "", false, 0, "")

		y += 55
	}
}

func monthlyPage(pdf *gofpdf.Fpdf, snap analysis.Snapshot, responses []model.Response, now time.Time) {
	pdf.SetY(48)
	sectionTitle(pdf, "Summary - "+now.Format("January 2006"))
	statLine(pdf, "Evaluations this month:", fmt.Sprintf("%d", snap.CurrentMonthCount))
	statLine(pdf, "Evaluations overall:", fmt.Sprintf("%d", snap.Total))
	statLine(pdf, "Satisfaction:", fmt.Sprintf("%.1f%%", snap.SatisfactionPct))
	statLine(pdf, "Average overall rating:", fmt.Sprintf("%.1f / 5.0", snap.AverageOverall))
	statLine(pdf, "Would recommend:", fmt.Sprintf("%.0f%%", snap.RecommendPct))

	pdf.Ln(4)
	widths := []float64{50, 50, 30, 30, 22}
	tableHead(pdf, widths, []string{"Name", "Location", "Service Date", "Submitted", "Overall"})
	row := 0
	for _, r := range responses {
		if r.SubmittedAt.Month() != now.Month() || r.SubmittedAt.Year() != now.Year() {
			continue
		}
		if pdf.GetY() > 260 {
			pdf.AddPage()
			pdf.SetY(20)
			tableHead(pdf, widths, []string{"Name", "Location", "Service Date", "Submitted", "Overall"})
		}
		tableRow(pdf, widths, []string{
			clip(r.Name, 32), clip(r.Location, 32), r.ServiceDate,
			r.SubmittedAt.Format("02/01/2006"), string(r.Overall),
		}, row%2 == 1)
		row++
	}
}

func satisfactionPage(pdf *gofpdf.Fpdf, snap analysis.Snapshot) {
	pdf.SetY(48)
	sectionTitle(pdf, "Overall Rating Distribution")
	widths := []float64{60, 40, 40}
	tableHead(pdf, widths, []string{"Rating", "Count", "Share"})
	for i, label := range model.Labels {
		stat := snap.LabelDistribution[label]
		tableRow(pdf, widths, []string{
			string(label), fmt.Sprintf("%d", stat.Count), fmt.Sprintf("%.1f%%", stat.Pct),
		}, i%2 == 1)
	}

	pdf.Ln(6)
	sectionTitle(pdf, "Average Score per Category")
	widths = []float64{100, 40}
	tableHead(pdf, widths, []string{"Category", "Average (0-5)"})
	for i, cat := range model.Categories {
		if pdf.GetY() > 260 {
			pdf.AddPage()
			pdf.SetY(20)
			tableHead(pdf, widths, []string{"Category", "Average (0-5)"})
		}
		tableRow(pdf, widths, []string{
			cat.Name, fmt.Sprintf("%.1f", snap.CategoryAverages[cat.Key]),
		}, i%2 == 1)
	}
}

func detailedPages(pdf *gofpdf.Fpdf, responses []model.Response) {
	y := 48.0
	for i, r := range responses {
		if y > 210 {
			pdf.AddPage()
			y = 20
		}

		pdf.SetDrawColor(brand[0], brand[1], brand[2])
		pdf.SetLineWidth(0.5)
		pdf.Rect(14, y, 182, 72, "D")

		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetXY(16, y+2)
		pdf.CellFormat(0, 6, fmt.Sprintf("%d. %s - %s", i+1, r.Name, r.Location), "", 1, "", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetXY(16, y+9)
		pdf.CellFormat(90, 5, "Email: "+r.Email, "", 0, "", false, 0, "")
		pdf.CellFormat(0, 5, "Service date: "+r.ServiceDate, "", 1, "", false, 0, "")
		pdf.SetXY(16, y+14)
		pdf.CellFormat(90, 5, "Overall: "+string(r.Overall), "", 0, "", false, 0, "")
		pdf.CellFormat(0, 5, "Would recommend: "+r.WouldRecommend, "", 1, "", false, 0, "")

		// two columns of category ratings
		col, line := 0, 0.0
		for _, cat := range model.Categories {
			label := r.Rating(cat.Key)
			if label == "" {
				label = "-"
			}
			x := 16.0
			if col == 1 {
				x = 106
			}
			pdf.SetXY(x, y+21+line*4.5)
			pdf.CellFormat(88, 4.5, fmt.Sprintf("%s: %s", cat.Name, label), "", 0, "", false, 0, "")
			if col == 1 {
				line++
			}
			col = 1 - col
		}

		pdf.SetXY(16, y+62)
		if r.ImprovementDescription != "" {
			pdf.CellFormat(0, 5, "Improvement: "+clip(r.ImprovementDescription, 110), "", 1, "", false, 0, "")
		} else if r.Praise != "" {
			pdf.CellFormat(0, 5, "Praise: "+clip(r.Praise, 110), "", 1, "", false, 0, "")
		}

		y += 77
	}

	if len(responses) == 0 {
		pdf.SetY(60)
		pdf.SetX(14)
		pdf.CellFormat(0, 8, "No evaluations recorded.", "", 1, "", false, 0, "")
	}
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
