package events

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	eventstore "github.com/ellarises/ellahub/internal/app/store/events"
	"github.com/ellarises/ellahub/internal/app/system/formutil"
	"github.com/ellarises/ellahub/internal/app/system/listquery"
	"github.com/ellarises/ellahub/internal/app/system/timeformat"
	"github.com/ellarises/ellahub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeList renders the events maintenance screen with its filters. Query
// failures render the page with an empty result set and a danger message.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := r.URL.Query()
	filters := eventstore.ListFilters{
		SearchColumn: query.Get(r, "search_column"),
		SearchValue:  query.Search(r, "search_value"),
		Types:        listquery.ParamToArray(q["event_type"]),
		Locations:    listquery.ParamToArray(q["location"]),
		Months:       listquery.ParamToArray(q["month"]),
		Years:        listquery.ParamToArray(q["year"]),
		SortColumn:   query.Get(r, "sort_column"),
		SortOrder:    query.Get(r, "sort_order"),
	}

	var data listData
	formutil.SetBase(&data.Base, r, "Events", "/")
	if msg, typ := h.SessionMgr.PopFlash(w, r); msg != "" {
		data.SetFlash(msg, typ)
	}
	data.SearchColumn = filters.SearchColumn
	data.SearchValue = filters.SearchValue
	data.SortColumn = filters.SortColumn
	data.SortOrder = filters.SortOrder

	events, err := h.Events.List(ctx, filters)
	if err != nil {
		h.Log.Error("list events", zap.Error(err))
		data.SetError("Could not load events. Please try again.")
		events = nil
	}

	types, err := h.Types.ListAll(ctx)
	if err != nil {
		h.Log.Error("load event type options", zap.Error(err))
	}
	locations, err := h.Events.DistinctLocations(ctx)
	if err != nil {
		h.Log.Error("load location options", zap.Error(err))
	}
	years, err := h.Events.DistinctYears(ctx)
	if err != nil {
		h.Log.Error("load event year options", zap.Error(err))
	}
	data.Locations = formutil.Options(locations, filters.Locations)
	data.Months = formutil.MonthOptions(filters.Months)
	data.Years = formutil.IntOptions(years, filters.Years)

	chosen := make(map[string]bool, len(filters.Types))
	for _, t := range filters.Types {
		chosen[t] = true
	}
	for _, t := range types {
		v := strconv.FormatInt(t.ID, 10)
		data.Types = append(data.Types, formutil.Option{
			Value: v, Label: t.Name, Selected: chosen[v],
		})
	}

	for _, e := range events {
		row := eventRow{
			ID:       e.ID,
			Name:     e.Name,
			TypeName: e.TypeName,
			Time:     timeformat.Range(e.StartTime, e.EndTime),
			Location: e.Location,
		}
		if e.Date.Valid {
			row.Date = e.Date.Time.Format("Jan 2, 2006")
		}
		if e.Capacity.Valid {
			row.Capacity = strconv.FormatInt(e.Capacity.Int64, 10)
		}
		if e.DeadlineDate.Valid {
			row.Deadline = e.DeadlineDate.Time.Format("Jan 2, 2006")
			if t := timeformat.To12Hour(e.DeadlineTime); t != "" {
				row.Deadline = fmt.Sprintf("%s %s", row.Deadline, t)
			}
		}
		data.Rows = append(data.Rows, row)
	}
	data.Shown = len(data.Rows)

	templates.Render(w, r, "events_list", data)
}
