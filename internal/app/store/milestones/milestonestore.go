package milestonestore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ellarises/ellahub/internal/app/system/listquery"
	"github.com/ellarises/ellahub/internal/domain/models"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectMilestone = `SELECT m.milestone_id, m.user_id, COALESCE(m.milestone_title, ''),
	m.milestone_date, COALESCE(m.milestone_category, ''),
	COALESCE(u.participant_first_name, ''), COALESCE(u.participant_last_name, '')
FROM milestones m
LEFT JOIN users u ON u.user_id = m.user_id`

var searchColumns = map[string]string{
	"milestone_title":    "m.milestone_title",
	"milestone_category": "m.milestone_category",
}

var sortColumns = map[string]string{
	"participant_last_name": "u.participant_last_name",
	"milestone_title":       "m.milestone_title",
	"milestone_date":        "m.milestone_date",
	"milestone_category":    "m.milestone_category",
}

// ListFilters carries the milestones list page's query parameters.
type ListFilters struct {
	SearchColumn string
	SearchValue  string
	Titles       []string
	Categories   []string
	Months       []string
	Years        []string
	SortColumn   string
	SortOrder    string
}

// List returns milestones with the achiever's name joined in, newest first by
// default.
func (s *Store) List(ctx context.Context, f ListFilters) ([]models.Milestone, error) {
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
	b.In("m.milestone_title", f.Titles)
	b.In("m.milestone_category", f.Categories)
	b.MonthIn("m.milestone_date", f.Months)
	b.YearIn("m.milestone_date", f.Years)

	if col, ok := sortColumns[f.SortColumn]; ok {
		b.OrderBy(col, f.SortOrder)
	} else {
		b.OrderByNullsLast("m.milestone_date", "desc")
	}

	query, args := b.SQL(selectMilestone)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	defer rows.Close()
	return scanMilestones(rows)
}

// GetByID loads one milestone with the achiever's name.
func (s *Store) GetByID(ctx context.Context, id int64) (*models.Milestone, error) {
	row := s.db.QueryRowContext(ctx, selectMilestone+" WHERE m.milestone_id = $1", id)
	var m models.Milestone
	if err := row.Scan(&m.ID, &m.UserID, &m.Title, &m.Date, &m.Category,
		&m.FirstName, &m.LastName); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByUser returns a user's milestones for the profile page, newest first.
func (s *Store) ListByUser(ctx context.Context, userID int64) ([]models.Milestone, error) {
	rows, err := s.db.QueryContext(ctx,
		selectMilestone+` WHERE m.user_id = $1
		ORDER BY m.milestone_date DESC NULLS LAST`, userID)
	if err != nil {
		return nil, fmt.Errorf("list milestones by user: %w", err)
	}
	defer rows.Close()
	return scanMilestones(rows)
}

// DistinctYears returns the years with at least one milestone, newest first.
func (s *Store) DistinctYears(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT EXTRACT(YEAR FROM milestone_date)::int AS y FROM milestones
		WHERE milestone_date IS NOT NULL
		ORDER BY y DESC`)
	if err != nil {
		return nil, fmt.Errorf("distinct milestone years: %w", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		out = append(out, y)
	}
	return out, rows.Err()
}

// DistinctTitles returns the title dropdown options.
func (s *Store) DistinctTitles(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "milestone_title")
}

// DistinctCategories returns the category dropdown options.
func (s *Store) DistinctCategories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "milestone_category")
}

func (s *Store) distinct(ctx context.Context, col string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT DISTINCT %s FROM milestones WHERE %s IS NOT NULL AND %s <> '' ORDER BY %s`,
		col, col, col, col))
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", col, err)
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

func scanMilestones(rows *sql.Rows) ([]models.Milestone, error) {
	var out []models.Milestone
	for rows.Next() {
		var m models.Milestone
		if err := rows.Scan(&m.ID, &m.UserID, &m.Title, &m.Date, &m.Category,
			&m.FirstName, &m.LastName); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
