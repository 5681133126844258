package routes

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/deadbrock/avalia-o/analysis"
	"github.com/deadbrock/avalia-o/app"
	"github.com/deadbrock/avalia-o/httpx"
	"github.com/deadbrock/avalia-o/model"
	"github.com/deadbrock/avalia-o/store"
)

// DeleteResponses removes one record (?id=N) or empties the whole
// collection (?deleteAll=true).
func DeleteResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("deleteAll") == "true" {
			if err := app.Responses.DeleteAll(r.Context()); err != nil {
				httpx.LogInternalError(w, r, "store.delete_responses", err)
				return
			}
			httpx.OK(w, r, nil)
			return
		}

		id, err := strconv.Atoi(r.URL.Query().Get("id"))
		if err != nil {
			httpx.Fail(w, r, http.StatusBadRequest, "request.get_query_param.id", "missing or invalid id")
			return
		}

		err = app.Responses.DeleteByID(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, r, "delete_response", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "store.delete_response", err)
			return
		}

		httpx.OK(w, r, nil)
	}
}

// GetStats computes the aggregate snapshot from the current response list.
func GetStats(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses, err := app.Responses.List(r.Context())
		if err != nil {
			httpx.LogInternalError(w, r, "store.get_responses", err)
			return
		}

		excludeMissing := r.URL.Query().Get("excludeMissing") == "true"
		snap := analysis.Aggregate(responses, time.Now(), analysis.Options{ExcludeMissing: excludeMissing})
		httpx.OK(w, r, snap)
	}
}

// GetRecommendations runs the proposal generator over the current
// responses. Nothing is persisted; the client confirms selected proposals
// through the bulk action-item endpoint.
func GetRecommendations(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses, err := app.Responses.List(r.Context())
		if err != nil {
			httpx.LogInternalError(w, r, "store.get_responses", err)
			return
		}

		proposals := analysis.Recommend(responses, analysis.Config{})
		httpx.OKTotal(w, r, proposals, len(proposals))
	}
}

func ListActionItems(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := app.ActionItems.List(r.Context())
		if err != nil {
			httpx.LogInternalError(w, r, "store.get_action_items", err)
			return
		}
		if items == nil {
			items = []model.ActionItem{}
		}

		httpx.OKTotal(w, r, items, len(items))
	}
}

func CreateActionItem(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item model.ActionItem
		if err := render.DecodeJSON(r.Body, &item); err != nil {
			httpx.Fail(w, r, http.StatusBadRequest, "request.parse_body", "malformed request body")
			return
		}
		if err := item.Validate(); err != nil {
			httpx.Fail(w, r, http.StatusBadRequest, "request.validate_action_item", err.Error())
			return
		}

		created, err := app.ActionItems.Create(r.Context(), item)
		if err != nil {
			httpx.LogInternalError(w, r, "store.insert_action_item", err)
			return
		}

		httpx.Created(w, r, created)
	}
}

// CreateActionItemsBulk persists a confirmed batch of generator proposals.
func CreateActionItemsBulk(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var items []model.ActionItem
		if err := render.DecodeJSON(r.Body, &items); err != nil {
			httpx.Fail(w, r, http.StatusBadRequest, "request.parse_body", "malformed request body")
			return
		}
		if len(items) == 0 {
			httpx.Fail(w, r, http.StatusBadRequest, "request.validate_action_items", "empty batch")
			return
		}
		for _, item := range items {
			if err := item.Validate(); err != nil {
				httpx.Fail(w, r, http.StatusBadRequest, "request.validate_action_items", err.Error())
				return
			}
		}

		created, err := app.ActionItems.CreateBatch(r.Context(), items)
		if err != nil {
			httpx.LogInternalError(w, r, "store.insert_action_items", err)
			return
		}

		httpx.Created(w, r, created)
	}
}

func UpdateActionItemStatus(app app.App) http.HandlerFunc {
	type statusBody struct {
		Status string `json:"status"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			httpx.Fail(w, r, http.StatusBadRequest, "request.get_url_param.id", "invalid id")
			return
		}

		var body statusBody
		if err := render.DecodeJSON(r.Body, &body); err != nil {
			httpx.Fail(w, r, http.StatusBadRequest, "request.parse_body", "malformed request body")
			return
		}
		if !model.ValidStatus(body.Status) {
			httpx.Fail(w, r, http.StatusBadRequest, "request.validate_status", "unknown status "+strconv.Quote(body.Status))
			return
		}

		item, err := app.ActionItems.UpdateStatus(r.Context(), id, body.Status)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, r, "update_action_item", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "store.update_action_item", err)
			return
		}

		httpx.OK(w, r, item)
	}
}

func DeleteActionItem(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			httpx.Fail(w, r, http.StatusBadRequest, "request.get_url_param.id", "invalid id")
			return
		}

		err = app.ActionItems.DeleteByID(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, r, "delete_action_item", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "store.delete_action_item", err)
			return
		}

		httpx.OK(w, r, nil)
	}
}
