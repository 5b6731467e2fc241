package records

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	uierrors "github.com/ellarises/ellahub/internal/app/features/errors"
	"github.com/ellarises/ellahub/internal/app/system/auth"
	"github.com/ellarises/ellahub/internal/app/system/formutil"
	"github.com/ellarises/ellahub/internal/app/system/registry"
	"github.com/ellarises/ellahub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ownsRow reports whether the signed-in user may touch this row through the
// profile routes: their own users row, or a row whose user_id column is
// theirs. Admins pass regardless.
func (h *Handler) ownsRow(ctx context.Context, r *http.Request, entity registry.Entity, table string, id int64) (bool, error) {
	role, _, userID, ok := auth.UserCtx(r)
	if !ok {
		return false, nil
	}
	if role == "admin" {
		return true, nil
	}
	if entity.Table == "users" {
		return id == userID, nil
	}
	values, err := h.Records.Get(ctx, entity, id)
	if err != nil {
		return false, err
	}
	return values["user_id"] == strconv.FormatInt(userID, 10), nil
}

// ServeProfileEdit renders the edit form for a row the user owns.
func (h *Handler) ServeProfileEdit(w http.ResponseWriter, r *http.Request) {
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

	owns, err := h.ownsRow(ctx, r, entity, table, id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		h.Log.Error("check row ownership", zap.String("table", table), zap.Error(err))
		uierrors.RenderServerError(w, r)
		return
	}
	if !owns {
		uierrors.RenderForbidden(w, r, "You can only edit your own records.", "/profile")
		return
	}

	values, err := h.Records.Get(ctx, entity, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			uierrors.RenderNotFound(w, r)
			return
		}
		h.Log.Error("load record for profile edit", zap.String("table", table), zap.Error(err))
		uierrors.RenderServerError(w, r)
		return
	}

	fields, err := h.buildFields(ctx, table, values)
	if err != nil {
		h.Log.Error("build profile edit form", zap.String("table", table), zap.Error(err))
		uierrors.RenderServerError(w, r)
		return
	}
	// Role is not self-service.
	if entity.Table == "users" {
		trimmed := fields[:0]
		for _, f := range fields {
			if f.Name != "participant_role" {
				trimmed = append(trimmed, f)
			}
		}
		fields = trimmed
	}

	var data formData
	formutil.SetBase(&data.Base, r, "Edit "+tableLabels[table], "/profile")
	data.Table = table
	data.TableLabel = tableLabels[table]
	data.Action = "/profile-edit/" + table + "/" + strconv.FormatInt(id, 10)
	data.ReturnURL = "/profile"
	data.Fields = fields

	templates.Render(w, r, "record_form", data)
}

// HandleProfileEdit updates a row the user owns and returns to the profile.
func (h *Handler) HandleProfileEdit(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	owns, err := h.ownsRow(ctx, r, entity, table, id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		h.Log.Error("check row ownership", zap.String("table", table), zap.Error(err))
		uierrors.RenderServerError(w, r)
		return
	}
	if !owns {
		uierrors.RenderForbidden(w, r, "You can only edit your own records.", "/profile")
		return
	}

	fields, err := entity.Fields(r.PostForm)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// Participants cannot promote themselves or reassign a row to someone else.
	if !auth.IsAdmin(r) {
		delete(fields, "participant_role")
		delete(fields, "user_id")
	}
	if len(fields) == 0 {
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	if err := h.Records.Update(ctx, entity, id, fields); err != nil {
		h.Log.Error("profile edit record", zap.String("table", table),
			zap.Int64("id", id), zap.Error(err))
		h.SessionMgr.SetFlash(w, r, "Could not save the changes.", "danger")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	h.SessionMgr.SetFlash(w, r, tableLabels[table]+" updated.", "success")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// HandleProfileDelete removes a row the user owns. Deleting their own users
// row also signs them out; the JSON tells the page where to go next.
func (h *Handler) HandleProfileDelete(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	entity, ok := registry.Lookup(table)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false, "error": "unknown table",
		})
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "error": "invalid id",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	owns, err := h.ownsRow(ctx, r, entity, table, id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		h.Log.Error("check row ownership", zap.String("table", table), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false, "error": "delete failed",
		})
		return
	}
	if !owns {
		writeJSON(w, http.StatusForbidden, map[string]any{
			"success": false, "error": "you can only delete your own records",
		})
		return
	}

	_, _, userID, _ := auth.UserCtx(r)
	selfDelete := entity.Table == "users" && id == userID

	if err := h.Records.Delete(ctx, entity, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"success": false, "error": "record not found",
			})
			return
		}
		h.Log.Error("profile delete record", zap.String("table", table),
			zap.Int64("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false, "error": "delete failed",
		})
		return
	}

	if selfDelete {
		if err := h.SessionMgr.SignOut(w, r); err != nil {
			h.Log.Warn("sign out after account delete", zap.Error(err))
		}
		h.Log.Info("account self-deleted", zap.Int64("user_id", userID))
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "redirect": "/"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
