package eventstore

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

const selectEvent = `SELECT e.event_id, e.event_type_id, COALESCE(t.event_type_name, ''),
	e.event_name, e.event_date, COALESCE(e.event_start_time, ''),
	COALESCE(e.event_end_time, ''), COALESCE(e.event_location, ''),
	e.event_capacity, e.registration_deadline_date,
	COALESCE(e.registration_deadline_time, '')
FROM events e
LEFT JOIN event_types t ON t.event_type_id = e.event_type_id`

var searchColumns = map[string]string{
	"event_name":     "e.event_name",
	"event_location": "e.event_location",
	"event_date":     "e.event_date",
}

var sortColumns = map[string]string{
	"event_name":     "e.event_name",
	"event_date":     "e.event_date",
	"event_location": "e.event_location",
	"event_capacity": "e.event_capacity",
}

// ListFilters carries the events list page's query parameters.
type ListFilters struct {
	SearchColumn string
	SearchValue  string
	Types        []string
	Locations    []string
	Months       []string
	Years        []string
	SortColumn   string
	SortOrder    string
}

// List returns events matching the filters, soonest first by default.
func (s *Store) List(ctx context.Context, f ListFilters) ([]models.Event, error) {
	b := listquery.New()

	if term := strings.TrimSpace(f.SearchValue); term != "" {
		col, ok := searchColumns[f.SearchColumn]
		if !ok {
			col = "e.event_name"
		}
		b.TextSearch(col, term)
	}
	b.InInts("e.event_type_id", f.Types)
	b.In("e.event_location", f.Locations)
	b.MonthIn("e.event_date", f.Months)
	b.YearIn("e.event_date", f.Years)

	if col, ok := sortColumns[f.SortColumn]; ok {
		b.OrderBy(col, f.SortOrder)
	} else {
		b.OrderBy("e.event_date", "asc")
	}

	query, args := b.SQL(selectEvent)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// GetByID loads one event with its type name.
func (s *Store) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	row := s.db.QueryRowContext(ctx, selectEvent+" WHERE e.event_id = $1", id)
	var e models.Event
	if err := row.Scan(&e.ID, &e.TypeID, &e.TypeName, &e.Name, &e.Date,
		&e.StartTime, &e.EndTime, &e.Location, &e.Capacity,
		&e.DeadlineDate, &e.DeadlineTime); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListWindow returns events whose date falls in [from, to), ordered by date
// then start time. The calendar uses a three-month window.
func (s *Store) ListWindow(ctx context.Context, from, to time.Time) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		selectEvent+` WHERE e.event_date >= $1 AND e.event_date < $2
		ORDER BY e.event_date ASC, e.event_start_time ASC`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("list events in window: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListOptions returns all events for form dropdowns, newest first.
func (s *Store) ListOptions(ctx context.Context) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx, selectEvent+" ORDER BY e.event_date DESC, e.event_name ASC")
	if err != nil {
		return nil, fmt.Errorf("list event options: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// DistinctLocations returns the location dropdown options.
func (s *Store) DistinctLocations(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT event_location FROM events
		WHERE event_location IS NOT NULL AND event_location <> ''
		ORDER BY event_location`)
	if err != nil {
		return nil, fmt.Errorf("distinct locations: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

// DistinctYears returns the years with at least one event, newest first.
func (s *Store) DistinctYears(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT EXTRACT(YEAR FROM event_date)::int AS y FROM events
		WHERE event_date IS NOT NULL
		ORDER BY y DESC`)
	if err != nil {
		return nil, fmt.Errorf("distinct event years: %w", err)
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

func scanStrings(rows *sql.Rows) ([]string, error) {
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

func scanEvents(rows *sql.Rows) ([]models.Event, error) {
	var out []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.TypeID, &e.TypeName, &e.Name, &e.Date,
			&e.StartTime, &e.EndTime, &e.Location, &e.Capacity,
			&e.DeadlineDate, &e.DeadlineTime); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
