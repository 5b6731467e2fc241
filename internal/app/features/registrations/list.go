package registrations

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	registrationstore "github.com/ellarises/ellahub/internal/app/store/registrations"
	"github.com/ellarises/ellahub/internal/app/system/formutil"
	"github.com/ellarises/ellahub/internal/app/system/listquery"
	"github.com/ellarises/ellahub/internal/app/system/timeformat"
	"github.com/ellarises/ellahub/internal/app/system/timeouts"
	"github.com/ellarises/ellahub/internal/domain/models"
	"go.uber.org/zap"
)

type registrationRow struct {
	ID         int64
	FirstName  string
	LastName   string
	EventName  string
	EventDate  string
	Status     string
	Attended   bool
	Registered string
	CheckIn    string
}

type listData struct {
	formutil.Base

	SearchColumn string
	SearchValue  string

	Events   []formutil.Option
	Statuses []formutil.Option
	Months   []formutil.Option
	Years    []formutil.Option

	SortColumn string
	SortOrder  string

	Rows  []registrationRow
	Shown int
}

// ServeList renders the registrations maintenance screen. Query failures
// render the page with an empty result set and a danger message.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := r.URL.Query()
	filters := registrationstore.ListFilters{
		SearchColumn: query.Get(r, "search_column"),
		SearchValue:  query.Search(r, "search_value"),
		Events:       listquery.ParamToArray(q["event"]),
		Statuses:     listquery.ParamToArray(q["status"]),
		Months:       listquery.ParamToArray(q["month"]),
		Years:        listquery.ParamToArray(q["year"]),
		SortColumn:   query.Get(r, "sort_column"),
		SortOrder:    query.Get(r, "sort_order"),
	}

	var data listData
	formutil.SetBase(&data.Base, r, "Registrations", "/")
	if msg, typ := h.SessionMgr.PopFlash(w, r); msg != "" {
		data.SetFlash(msg, typ)
	}
	data.SearchColumn = filters.SearchColumn
	data.SearchValue = filters.SearchValue
	data.SortColumn = filters.SortColumn
	data.SortOrder = filters.SortOrder

	regs, err := h.Registrations.List(ctx, filters)
	if err != nil {
		h.Log.Error("list registrations", zap.Error(err))
		data.SetError("Could not load registrations. Please try again.")
		regs = nil
	}

	events, err := h.Events.ListOptions(ctx)
	if err != nil {
		h.Log.Error("load event options", zap.Error(err))
	}
	years, err := h.Events.DistinctYears(ctx)
	if err != nil {
		h.Log.Error("load event year options", zap.Error(err))
	}
	data.Statuses = formutil.Options(
		[]string{models.StatusRegistered, models.StatusAttended, models.StatusCancelled},
		filters.Statuses)
	data.Months = formutil.MonthOptions(filters.Months)
	data.Years = formutil.IntOptions(years, filters.Years)

	chosen := make(map[string]bool, len(filters.Events))
	for _, e := range filters.Events {
		chosen[e] = true
	}
	for _, e := range events {
		v := strconv.FormatInt(e.ID, 10)
		data.Events = append(data.Events, formutil.Option{
			Value: v, Label: e.Name, Selected: chosen[v],
		})
	}

	for _, reg := range regs {
		row := registrationRow{
			ID:        reg.ID,
			FirstName: reg.FirstName,
			LastName:  reg.LastName,
			EventName: reg.EventName,
			Status:    reg.Status,
			Attended:  reg.AttendedFlag,
		}
		if reg.EventDate.Valid {
			row.EventDate = reg.EventDate.Time.Format("Jan 2, 2006")
		}
		if reg.CreatedDate.Valid {
			row.Registered = reg.CreatedDate.Time.Format("Jan 2, 2006")
			if t := timeformat.To12Hour(reg.CreatedTime); t != "" {
				row.Registered += " " + t
			}
		}
		if reg.CheckInDate.Valid {
			row.CheckIn = reg.CheckInDate.Time.Format("Jan 2, 2006")
			if t := timeformat.To12Hour(reg.CheckInTime); t != "" {
				row.CheckIn += " " + t
			}
		}
		data.Rows = append(data.Rows, row)
	}
	data.Shown = len(data.Rows)

	templates.Render(w, r, "registrations_list", data)
}
