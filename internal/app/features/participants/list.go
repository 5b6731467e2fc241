package participants

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	userstore "github.com/ellarises/ellahub/internal/app/store/users"
	"github.com/ellarises/ellahub/internal/app/system/formutil"
	"github.com/ellarises/ellahub/internal/app/system/listquery"
	"github.com/ellarises/ellahub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeList renders the participants maintenance screen with its filters.
// Dropdown options always come from the full table so narrowing one filter
// does not shrink the others' choices. Query failures render the page with
// an empty result set and a danger message instead of an error page.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := r.URL.Query()
	filters := userstore.ListFilters{
		SearchColumn: query.Get(r, "search_column"),
		SearchValue:  query.Search(r, "search_value"),
		Cities:       listquery.ParamToArray(q["city"]),
		Schools:      listquery.ParamToArray(q["school_or_employer"]),
		Interests:    listquery.ParamToArray(q["field_of_interest"]),
		Donations:    listquery.ParamToArray(q["donations"]),
		SortColumn:   query.Get(r, "sort_column"),
		SortOrder:    query.Get(r, "sort_order"),
	}

	var data listData
	formutil.SetBase(&data.Base, r, "Participants", "/")
	if msg, typ := h.SessionMgr.PopFlash(w, r); msg != "" {
		data.SetFlash(msg, typ)
	}
	data.SearchColumn = filters.SearchColumn
	data.SearchValue = filters.SearchValue
	data.SortColumn = filters.SortColumn
	data.SortOrder = filters.SortOrder

	users, err := h.Users.List(ctx, filters)
	if err != nil {
		h.Log.Error("list participants", zap.Error(err))
		data.SetError("Could not load participants. Please try again.")
		users = nil
	}

	cities, err := h.Users.DistinctCities(ctx)
	if err != nil {
		h.Log.Error("load city options", zap.Error(err))
	}
	schools, err := h.Users.DistinctSchools(ctx)
	if err != nil {
		h.Log.Error("load school options", zap.Error(err))
	}
	interests, err := h.Users.DistinctInterests(ctx)
	if err != nil {
		h.Log.Error("load interest options", zap.Error(err))
	}
	data.Cities = formutil.Options(cities, filters.Cities)
	data.Schools = formutil.Options(schools, filters.Schools)
	data.Interests = formutil.Options(interests, filters.Interests)
	data.Donations = formutil.Options([]string{"Yes", "No"}, filters.Donations)

	for _, u := range users {
		row := userRow{
			ID:               u.ID,
			FirstName:        u.FirstName,
			LastName:         u.LastName,
			Email:            u.Email,
			City:             u.City,
			SchoolOrEmployer: u.SchoolOrEmployer,
			FieldOfInterest:  u.FieldOfInterest,
		}
		if u.TotalDonations.Valid {
			row.TotalDonations = fmt.Sprintf("$%.2f", u.TotalDonations.Float64)
		}
		data.Rows = append(data.Rows, row)
	}
	data.Shown = len(data.Rows)

	templates.Render(w, r, "users_list", data)
}
