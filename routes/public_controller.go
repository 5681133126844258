package routes

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/deadbrock/avalia-o/app"
	"github.com/deadbrock/avalia-o/httpx"
	"github.com/deadbrock/avalia-o/model"
)

// ListResponses serves the public evaluation listing, newest first.
func ListResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses, err := app.Responses.List(r.Context())
		if err != nil {
			httpx.LogInternalError(w, r, "store.get_responses", err)
			return
		}
		if responses == nil {
			responses = []model.Response{}
		}

		httpx.OKTotal(w, r, responses, len(responses))
	}
}

// SubmitResponse accepts a completed feedback form. The id and submission
// timestamp are assigned server-side.
func SubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var response model.Response
		if err := render.DecodeJSON(r.Body, &response); err != nil {
			httpx.Fail(w, r, http.StatusBadRequest, "request.parse_body", "malformed request body")
			return
		}

		if err := response.Validate(); err != nil {
			httpx.Fail(w, r, http.StatusBadRequest, "request.validate_response", err.Error())
			return
		}

		created, err := app.Responses.Create(r.Context(), response)
		if err != nil {
			httpx.LogInternalError(w, r, "store.insert_response", err)
			return
		}

		httpx.Created(w, r, created)
	}
}
