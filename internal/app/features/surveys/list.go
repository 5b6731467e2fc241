package surveys

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	surveystore "github.com/ellarises/ellahub/internal/app/store/surveys"
	"github.com/ellarises/ellahub/internal/app/system/formutil"
	"github.com/ellarises/ellahub/internal/app/system/listquery"
	"github.com/ellarises/ellahub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type surveyRow struct {
	ID           int64
	FirstName    string
	LastName     string
	EventName    string
	EventDate    string
	Satisfaction string
	Usefulness   string
	Instructor   string
	Recommend    string
	Overall      string
	NPSBucket    string
	Comments     string
	Submitted    string
}

type listData struct {
	formutil.Base

	SearchColumn string
	SearchValue  string

	Events     []formutil.Option
	NPSBuckets []formutil.Option
	Months     []formutil.Option
	Years      []formutil.Option

	SortColumn string
	SortOrder  string

	Rows  []surveyRow
	Shown int
}

// ServeList renders the surveys maintenance screen. Query failures render
// the page with an empty result set and a danger message.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := r.URL.Query()
	filters := surveystore.ListFilters{
		SearchColumn: query.Get(r, "search_column"),
		SearchValue:  query.Search(r, "search_value"),
		Events:       listquery.ParamToArray(q["event"]),
		NPSBuckets:   listquery.ParamToArray(q["nps"]),
		Months:       listquery.ParamToArray(q["month"]),
		Years:        listquery.ParamToArray(q["year"]),
		SortColumn:   query.Get(r, "sort_column"),
		SortOrder:    query.Get(r, "sort_order"),
	}

	var data listData
	formutil.SetBase(&data.Base, r, "Surveys", "/")
	if msg, typ := h.SessionMgr.PopFlash(w, r); msg != "" {
		data.SetFlash(msg, typ)
	}
	data.SearchColumn = filters.SearchColumn
	data.SearchValue = filters.SearchValue
	data.SortColumn = filters.SortColumn
	data.SortOrder = filters.SortOrder

	surveys, err := h.Surveys.List(ctx, filters)
	if err != nil {
		h.Log.Error("list surveys", zap.Error(err))
		data.SetError("Could not load surveys. Please try again.")
		surveys = nil
	}

	events, err := h.Events.ListOptions(ctx)
	if err != nil {
		h.Log.Error("load event options", zap.Error(err))
	}
	buckets, err := h.Surveys.DistinctNPSBuckets(ctx)
	if err != nil {
		h.Log.Error("load nps options", zap.Error(err))
	}
	years, err := h.Events.DistinctYears(ctx)
	if err != nil {
		h.Log.Error("load event year options", zap.Error(err))
	}
	data.NPSBuckets = formutil.Options(buckets, filters.NPSBuckets)
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

	for _, sv := range surveys {
		row := surveyRow{
			ID:           sv.ID,
			FirstName:    sv.FirstName,
			LastName:     sv.LastName,
			EventName:    sv.EventName,
			Satisfaction: scoreText(sv.SatisfactionScore.Int64, sv.SatisfactionScore.Valid),
			Usefulness:   scoreText(sv.UsefulnessScore.Int64, sv.UsefulnessScore.Valid),
			Instructor:   scoreText(sv.InstructorScore.Int64, sv.InstructorScore.Valid),
			Recommend:    scoreText(sv.RecommendationScore.Int64, sv.RecommendationScore.Valid),
			Overall:      scoreText(sv.OverallScore.Int64, sv.OverallScore.Valid),
			NPSBucket:    sv.NPSBucket,
			Comments:     sv.Comments,
		}
		if sv.EventDate.Valid {
			row.EventDate = sv.EventDate.Time.Format("Jan 2, 2006")
		}
		if sv.SubmissionDate.Valid {
			row.Submitted = sv.SubmissionDate.Time.Format("Jan 2, 2006")
		}
		data.Rows = append(data.Rows, row)
	}
	data.Shown = len(data.Rows)

	templates.Render(w, r, "surveys_list", data)
}

func scoreText(v int64, valid bool) string {
	if !valid {
		return ""
	}
	return strconv.FormatInt(v, 10)
}
