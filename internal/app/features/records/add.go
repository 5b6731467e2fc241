package records

import (
	"context"
	"net/http"

	uierrors "github.com/ellarises/ellahub/internal/app/features/errors"
	"github.com/ellarises/ellahub/internal/app/system/formutil"
	"github.com/ellarises/ellahub/internal/app/system/registry"
	"github.com/ellarises/ellahub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// prefillColumn is the column GET /add/{table}/{id} fills in: adding a survey
// for a known registration, or a donation/milestone/registration for a known
// user.
var prefillColumn = map[string]string{
	"survey_results":      "event_registration_id",
	"event_registrations": "user_id",
	"donations":           "user_id",
	"milestones":          "user_id",
}

// ServeAdd renders the add form for a registered table. An unknown table is a
// 404, not an error page with a hint.
func (h *Handler) ServeAdd(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	if _, ok := registry.Lookup(table); !ok {
		uierrors.RenderNotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	values := map[string]string{}
	if id := chi.URLParam(r, "id"); id != "" {
		if col := prefillColumn[table]; col != "" {
			values[col] = id
		}
	}

	fields, err := h.buildFields(ctx, table, values)
	if err != nil {
		h.Log.Error("build add form", zap.String("table", table), zap.Error(err))
		uierrors.RenderServerError(w, r)
		return
	}

	var data formData
	formutil.SetBase(&data.Base, r, "Add "+tableLabels[table], listPath(table))
	data.Table = table
	data.TableLabel = tableLabels[table]
	data.Action = "/add/" + table
	data.ReturnURL = data.BackURL
	data.Fields = fields

	templates.Render(w, r, "record_form", data)
}

// HandleAdd inserts a row from the submitted form. Fields not in the
// registry's allow-list reject the whole request. Survey inserts go through
// the upsert so a second survey for the same registration updates in place.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	entity, ok := registry.Lookup(table)
	if !ok {
		uierrors.RenderNotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	fields, err := entity.Fields(r.PostForm)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if table == "survey_results" {
		_, err = h.Records.Upsert(ctx, entity, fields, "event_registration_id")
	} else {
		_, err = h.Records.Insert(ctx, entity, fields)
	}
	if err != nil {
		h.Log.Error("insert record", zap.String("table", table), zap.Error(err))
		h.SessionMgr.SetFlash(w, r, "Could not save the record.", "danger")
		http.Redirect(w, r, returnOr(r, listPath(table)), http.StatusSeeOther)
		return
	}

	h.SessionMgr.SetFlash(w, r, tableLabels[table]+" added.", "success")
	http.Redirect(w, r, returnOr(r, entity.ListPath), http.StatusSeeOther)
}
