package donations

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	donationstore "github.com/ellarises/ellahub/internal/app/store/donations"
	"github.com/ellarises/ellahub/internal/app/system/formutil"
	"github.com/ellarises/ellahub/internal/app/system/listquery"
	"github.com/ellarises/ellahub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type donationRow struct {
	ID        int64
	FirstName string
	LastName  string
	Date      string
	Amount    string
}

type listData struct {
	formutil.Base

	SearchColumn string
	SearchValue  string

	Months []formutil.Option
	Years  []formutil.Option

	SortColumn string
	SortOrder  string

	Rows  []donationRow
	Total string
	Shown int
}

// ServeList renders the donations maintenance screen, newest first by
// default, with a total for the filtered set. Query failures render the page
// with an empty result set and a danger message.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := r.URL.Query()
	filters := donationstore.ListFilters{
		SearchColumn: query.Get(r, "search_column"),
		SearchValue:  query.Search(r, "search_value"),
		Months:       listquery.ParamToArray(q["month"]),
		Years:        listquery.ParamToArray(q["year"]),
		SortColumn:   query.Get(r, "sort_column"),
		SortOrder:    query.Get(r, "sort_order"),
	}

	var data listData
	formutil.SetBase(&data.Base, r, "Donations", "/")
	if msg, typ := h.SessionMgr.PopFlash(w, r); msg != "" {
		data.SetFlash(msg, typ)
	}
	data.SearchColumn = filters.SearchColumn
	data.SearchValue = filters.SearchValue
	data.SortColumn = filters.SortColumn
	data.SortOrder = filters.SortOrder

	donations, err := h.Donations.List(ctx, filters)
	if err != nil {
		h.Log.Error("list donations", zap.Error(err))
		data.SetError("Could not load donations. Please try again.")
		donations = nil
	}

	years, err := h.Donations.DistinctYears(ctx)
	if err != nil {
		h.Log.Error("load donation year options", zap.Error(err))
	}
	data.Months = formutil.MonthOptions(filters.Months)
	data.Years = formutil.IntOptions(years, filters.Years)

	var total float64
	for _, d := range donations {
		row := donationRow{
			ID:        d.ID,
			FirstName: d.FirstName,
			LastName:  d.LastName,
		}
		if d.Date.Valid {
			row.Date = d.Date.Time.Format("Jan 2, 2006")
		}
		if d.Amount.Valid {
			row.Amount = fmt.Sprintf("$%.2f", d.Amount.Float64)
			total += d.Amount.Float64
		}
		data.Rows = append(data.Rows, row)
	}
	data.Total = fmt.Sprintf("$%.2f", total)
	data.Shown = len(data.Rows)

	templates.Render(w, r, "donations_list", data)
}
