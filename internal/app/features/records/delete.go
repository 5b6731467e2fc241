package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ellarises/ellahub/internal/app/system/registry"
	"github.com/ellarises/ellahub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleDelete removes a row and answers JSON, since the list pages call it
// from script.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Records.Delete(ctx, entity, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"success": false, "error": "record not found",
			})
			return
		}
		h.Log.Error("delete record", zap.String("table", table),
			zap.Int64("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false, "error": "delete failed",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
