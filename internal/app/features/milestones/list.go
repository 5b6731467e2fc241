package milestones

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	milestonestore "github.com/ellarises/ellahub/internal/app/store/milestones"
	"github.com/ellarises/ellahub/internal/app/system/formutil"
	"github.com/ellarises/ellahub/internal/app/system/listquery"
	"github.com/ellarises/ellahub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type milestoneRow struct {
	ID        int64
	FirstName string
	LastName  string
	Title     string
	Date      string
	Category  string
}

type listData struct {
	formutil.Base

	SearchColumn string
	SearchValue  string

	Titles     []formutil.Option
	Categories []formutil.Option
	Months     []formutil.Option
	Years      []formutil.Option

	SortColumn string
	SortOrder  string

	Rows  []milestoneRow
	Shown int
}

// ServeList renders the milestones maintenance screen, newest first by
// default. Query failures render the page with an empty result set and a
// danger message.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := r.URL.Query()
	filters := milestonestore.ListFilters{
		SearchColumn: query.Get(r, "search_column"),
		SearchValue:  query.Search(r, "search_value"),
		Titles:       listquery.ParamToArray(q["title"]),
		Categories:   listquery.ParamToArray(q["category"]),
		Months:       listquery.ParamToArray(q["month"]),
		Years:        listquery.ParamToArray(q["year"]),
		SortColumn:   query.Get(r, "sort_column"),
		SortOrder:    query.Get(r, "sort_order"),
	}

	var data listData
	formutil.SetBase(&data.Base, r, "Milestones", "/")
	if msg, typ := h.SessionMgr.PopFlash(w, r); msg != "" {
		data.SetFlash(msg, typ)
	}
	data.SearchColumn = filters.SearchColumn
	data.SearchValue = filters.SearchValue
	data.SortColumn = filters.SortColumn
	data.SortOrder = filters.SortOrder

	milestones, err := h.Milestones.List(ctx, filters)
	if err != nil {
		h.Log.Error("list milestones", zap.Error(err))
		data.SetError("Could not load milestones. Please try again.")
		milestones = nil
	}

	titles, err := h.Milestones.DistinctTitles(ctx)
	if err != nil {
		h.Log.Error("load milestone title options", zap.Error(err))
	}
	categories, err := h.Milestones.DistinctCategories(ctx)
	if err != nil {
		h.Log.Error("load milestone category options", zap.Error(err))
	}
	years, err := h.Milestones.DistinctYears(ctx)
	if err != nil {
		h.Log.Error("load milestone year options", zap.Error(err))
	}
	data.Titles = formutil.Options(titles, filters.Titles)
	data.Categories = formutil.Options(categories, filters.Categories)
	data.Months = formutil.MonthOptions(filters.Months)
	data.Years = formutil.IntOptions(years, filters.Years)

	for _, m := range milestones {
		row := milestoneRow{
			ID:        m.ID,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Title:     m.Title,
			Category:  m.Category,
		}
		if m.Date.Valid {
			row.Date = m.Date.Time.Format("Jan 2, 2006")
		}
		data.Rows = append(data.Rows, row)
	}
	data.Shown = len(data.Rows)

	templates.Render(w, r, "milestones_list", data)
}
