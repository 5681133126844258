package routes

import (
	"net/http"
	"time"

	"github.com/deadbrock/avalia-o/analysis"
	"github.com/deadbrock/avalia-o/app"
	"github.com/deadbrock/avalia-o/httpx"
	"github.com/deadbrock/avalia-o/report"
)

// ExportCSV streams the (optionally filtered) responses as a CSV download.
// ?q= matches name/email/location, ?rating= matches the overall label.
func ExportCSV(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses, err := app.Responses.List(r.Context())
		if err != nil {
			httpx.LogInternalError(w, r, "store.get_responses", err)
			return
		}

		q := r.URL.Query()
		filtered := report.FilterResponses(responses, q.Get("q"), q.Get("rating"))

		filename := "responses-fg-services-" + time.Now().Format("2006-01-02") + ".csv"
		w.Header().Set("content-type", "text/csv; charset=utf-8")
		w.Header().Set("content-disposition", `attachment; filename="`+filename+`"`)

		if err := report.WriteCSV(w, filtered); err != nil {
			// headers are gone at this point, just log
			httpx.LogInternalError(w, r, "report.write_csv", err)
		}
	}
}

// ExportPDF renders one of the four report kinds as a PDF download.
func ExportPDF(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := r.URL.Query().Get("kind")
		if !report.ValidKind(kind) {
			httpx.Fail(w, r, http.StatusBadRequest, "request.get_query_param.kind",
				"kind must be one of action-plan, monthly, satisfaction, detailed")
			return
		}

		responses, err := app.Responses.List(r.Context())
		if err != nil {
			httpx.LogInternalError(w, r, "store.get_responses", err)
			return
		}
		items, err := app.ActionItems.List(r.Context())
		if err != nil {
			httpx.LogInternalError(w, r, "store.get_action_items", err)
			return
		}

		now := time.Now()
		snap := analysis.Aggregate(responses, now, analysis.Options{})

		filename := kind + "-fg-services-" + now.Format("2006-01-02") + ".pdf"
		w.Header().Set("content-type", "application/pdf")
		w.Header().Set("content-disposition", `attachment; filename="`+filename+`"`)

		if err := report.WritePDF(w, kind, snap, responses, items, now); err != nil {
			httpx.LogInternalError(w, r, "report.write_pdf", err)
		}
	}
}
