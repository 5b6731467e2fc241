package surveystore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ellarises/ellahub/internal/app/system/listquery"
	"github.com/ellarises/ellahub/internal/domain/models"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectSurvey = `SELECT s.survey_id, s.event_registration_id,
	s.survey_satisfaction_score, s.survey_usefulness_score,
	s.survey_instructor_score, s.survey_recommendation_score,
	s.survey_overall_score, COALESCE(s.survey_nps_bucket, ''),
	COALESCE(s.survey_comments, ''), s.submission_date,
	COALESCE(s.submission_time, ''),
	COALESCE(u.participant_first_name, ''), COALESCE(u.participant_last_name, ''),
	COALESCE(e.event_name, ''), e.event_date
FROM survey_results s
LEFT JOIN event_registrations r ON r.event_registration_id = s.event_registration_id
LEFT JOIN users u ON u.user_id = r.user_id
LEFT JOIN events e ON e.event_id = r.event_id`

var searchColumns = map[string]string{
	"event_name":      "e.event_name",
	"survey_comments": "s.survey_comments",
}

var sortColumns = map[string]string{
	"participant_last_name": "u.participant_last_name",
	"event_name":            "e.event_name",
	"event_date":            "e.event_date",
	"survey_overall_score":  "s.survey_overall_score",
	"submission_date":       "s.submission_date",
}

// ListFilters carries the surveys list page's query parameters.
type ListFilters struct {
	SearchColumn string
	SearchValue  string
	Events       []string
	NPSBuckets   []string
	Months       []string
	Years        []string
	SortColumn   string
	SortOrder    string
}

// List returns surveys with the registration's participant and event joined in.
func (s *Store) List(ctx context.Context, f ListFilters) ([]models.SurveyResult, error) {
	b := listquery.New()

	if term := strings.TrimSpace(f.SearchValue); term != "" {
		if col, ok := searchColumns[f.SearchColumn]; ok {
			b.TextSearch(col, term)
		} else {
			b.FullNameSearch(listquery.NameColumns{
				First: "u.participant_first_name",
				Last:  "u.participant_last_name",
			}, term)
		}
	}
	b.InInts("r.event_id", f.Events)
	b.In("s.survey_nps_bucket", f.NPSBuckets)
	b.MonthIn("e.event_date", f.Months)
	b.YearIn("e.event_date", f.Years)

	if col, ok := sortColumns[f.SortColumn]; ok {
		b.OrderBy(col, f.SortOrder)
	} else {
		b.OrderByNullsLast("s.submission_date", "desc")
	}

	query, args := b.SQL(selectSurvey)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	defer rows.Close()
	return scanSurveys(rows)
}

// GetByID loads one survey with display names.
func (s *Store) GetByID(ctx context.Context, id int64) (*models.SurveyResult, error) {
	row := s.db.QueryRowContext(ctx, selectSurvey+" WHERE s.survey_id = $1", id)
	var sv models.SurveyResult
	if err := row.Scan(&sv.ID, &sv.EventRegistrationID,
		&sv.SatisfactionScore, &sv.UsefulnessScore, &sv.InstructorScore,
		&sv.RecommendationScore, &sv.OverallScore, &sv.NPSBucket,
		&sv.Comments, &sv.SubmissionDate, &sv.SubmissionTime,
		&sv.FirstName, &sv.LastName, &sv.EventName, &sv.EventDate); err != nil {
		return nil, err
	}
	return &sv, nil
}

// Upsert writes a survey for a registration. A registration holds at most one
// survey, so a resubmission replaces the scores instead of adding a duplicate
// row. The submission moment is stamped server-side.
func (s *Store) Upsert(ctx context.Context, sv models.SurveyResult, now time.Time) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO survey_results (event_registration_id,
			survey_satisfaction_score, survey_usefulness_score,
			survey_instructor_score, survey_recommendation_score,
			survey_overall_score, survey_nps_bucket, survey_comments,
			submission_date, submission_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (event_registration_id) DO UPDATE SET
			survey_satisfaction_score = EXCLUDED.survey_satisfaction_score,
			survey_usefulness_score = EXCLUDED.survey_usefulness_score,
			survey_instructor_score = EXCLUDED.survey_instructor_score,
			survey_recommendation_score = EXCLUDED.survey_recommendation_score,
			survey_overall_score = EXCLUDED.survey_overall_score,
			survey_nps_bucket = EXCLUDED.survey_nps_bucket,
			survey_comments = EXCLUDED.survey_comments,
			submission_date = EXCLUDED.submission_date,
			submission_time = EXCLUDED.submission_time
		RETURNING survey_id`,
		sv.EventRegistrationID, sv.SatisfactionScore, sv.UsefulnessScore,
		sv.InstructorScore, sv.RecommendationScore, sv.OverallScore,
		nullIfEmpty(sv.NPSBucket), nullIfEmpty(sv.Comments),
		now.Format("2006-01-02"), now.Format("15:04:05"),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert survey: %w", err)
	}
	return id, nil
}

// DistinctNPSBuckets returns the NPS dropdown options.
func (s *Store) DistinctNPSBuckets(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT survey_nps_bucket FROM survey_results
		WHERE survey_nps_bucket IS NOT NULL AND survey_nps_bucket <> ''
		ORDER BY survey_nps_bucket`)
	if err != nil {
		return nil, fmt.Errorf("distinct nps buckets: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func scanSurveys(rows *sql.Rows) ([]models.SurveyResult, error) {
	var out []models.SurveyResult
	for rows.Next() {
		var sv models.SurveyResult
		if err := rows.Scan(&sv.ID, &sv.EventRegistrationID,
			&sv.SatisfactionScore, &sv.UsefulnessScore, &sv.InstructorScore,
			&sv.RecommendationScore, &sv.OverallScore, &sv.NPSBucket,
			&sv.Comments, &sv.SubmissionDate, &sv.SubmissionTime,
			&sv.FirstName, &sv.LastName, &sv.EventName, &sv.EventDate); err != nil {
			return nil, err
		}
		out = append(out, sv)
	}
	return out, rows.Err()
}
