package records

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	uierrors "github.com/ellarises/ellahub/internal/app/features/errors"
	"github.com/ellarises/ellahub/internal/app/system/formutil"
	"github.com/ellarises/ellahub/internal/app/system/registry"
	"github.com/ellarises/ellahub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeEdit renders the edit form with the row's current values.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	entity, ok := registry.Lookup(table)
	if !ok {
		uierrors.RenderNotFound(w, r)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		uierrors.RenderNotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	values, err := h.Records.Get(ctx, entity, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			uierrors.RenderNotFound(w, r)
			return
		}
		h.Log.Error("load record for edit", zap.String("table", table), zap.Error(err))
		uierrors.RenderServerError(w, r)
		return
	}

	fields, err := h.buildFields(ctx, table, values)
	if err != nil {
		h.Log.Error("build edit form", zap.String("table", table), zap.Error(err))
		uierrors.RenderServerError(w, r)
		return
	}

	var data formData
	formutil.SetBase(&data.Base, r, "Edit "+tableLabels[table], entity.ListPath)
	data.Table = table
	data.TableLabel = tableLabels[table]
	data.Action = "/edit/" + table + "/" + strconv.FormatInt(id, 10)
	data.ReturnURL = data.BackURL
	data.Fields = fields

	templates.Render(w, r, "record_form", data)
}

// HandleEdit updates a row from the submitted form, with the same allow-list
// rejection as add.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	entity, ok := registry.Lookup(table)
	if !ok {
		uierrors.RenderNotFound(w, r)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
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

	if err := h.Records.Update(ctx, entity, id, fields); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			uierrors.RenderNotFound(w, r)
			return
		}
		h.Log.Error("update record", zap.String("table", table),
			zap.Int64("id", id), zap.Error(err))
		h.SessionMgr.SetFlash(w, r, "Could not save the changes.", "danger")
		http.Redirect(w, r, returnOr(r, entity.ListPath), http.StatusSeeOther)
		return
	}

	h.SessionMgr.SetFlash(w, r, tableLabels[table]+" updated.", "success")
	http.Redirect(w, r, returnOr(r, entity.ListPath), http.StatusSeeOther)
}
