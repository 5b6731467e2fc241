package registrationstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ellarises/ellahub/internal/app/system/listquery"
	"github.com/ellarises/ellahub/internal/domain/models"
)

// ErrAlreadyRegistered is returned when a user registers twice for the same
// event without cancelling in between.
var ErrAlreadyRegistered = errors.New("already registered for this event")

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectRegistration = `SELECT r.event_registration_id, r.user_id, r.event_id,
	COALESCE(r.registration_status, ''), COALESCE(r.registration_attended_flag, FALSE),
	r.registration_created_at_date, COALESCE(r.registration_created_at_time, ''),
	r.registration_check_in_date, COALESCE(r.registration_check_in_time, ''),
	COALESCE(u.participant_first_name, ''), COALESCE(u.participant_last_name, ''),
	COALESCE(e.event_name, ''), e.event_date
FROM event_registrations r
LEFT JOIN users u ON u.user_id = r.user_id
LEFT JOIN events e ON e.event_id = r.event_id`

var searchColumns = map[string]string{
	"event_name":          "e.event_name",
	"registration_status": "r.registration_status",
}

var sortColumns = map[string]string{
	"participant_last_name": "u.participant_last_name",
	"event_name":            "e.event_name",
	"event_date":            "e.event_date",
	"registration_status":   "r.registration_status",
}

// ListFilters carries the registrations list page's query parameters.
type ListFilters struct {
	SearchColumn string
	SearchValue  string
	Events       []string
	Statuses     []string
	Months       []string
	Years        []string
	SortColumn   string
	SortOrder    string
}

// List returns registrations with participant and event names joined in.
func (s *Store) List(ctx context.Context, f ListFilters) ([]models.EventRegistration, error) {
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
	b.In("r.registration_status", f.Statuses)
	b.MonthIn("e.event_date", f.Months)
	b.YearIn("e.event_date", f.Years)

	if col, ok := sortColumns[f.SortColumn]; ok {
		b.OrderBy(col, f.SortOrder)
	} else {
		b.OrderByNullsLast("e.event_date", "desc")
	}

	query, args := b.SQL(selectRegistration)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

// GetByID loads one registration with display names.
func (s *Store) GetByID(ctx context.Context, id int64) (*models.EventRegistration, error) {
	row := s.db.QueryRowContext(ctx, selectRegistration+" WHERE r.event_registration_id = $1", id)
	var reg models.EventRegistration
	if err := row.Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.Status,
		&reg.AttendedFlag, &reg.CreatedDate, &reg.CreatedTime,
		&reg.CheckInDate, &reg.CheckInTime,
		&reg.FirstName, &reg.LastName, &reg.EventName, &reg.EventDate); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Register creates a registration for the user, stamped with the current date
// and time. A second active registration for the same event is rejected; a
// cancelled one does not block re-registering.
func (s *Store) Register(ctx context.Context, userID, eventID int64, now time.Time) (int64, error) {
	var existing int64
	err := s.db.QueryRowContext(ctx, `
		SELECT event_registration_id FROM event_registrations
		WHERE user_id = $1 AND event_id = $2 AND registration_status <> $3`,
		userID, eventID, models.StatusCancelled).Scan(&existing)
	if err == nil {
		return 0, ErrAlreadyRegistered
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("check existing registration: %w", err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO event_registrations (user_id, event_id, registration_status,
			registration_attended_flag, registration_created_at_date,
			registration_created_at_time)
		VALUES ($1, $2, $3, FALSE, $4, $5)
		RETURNING event_registration_id`,
		userID, eventID, models.StatusRegistered,
		now.Format("2006-01-02"), now.Format("15:04:05"),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert registration: %w", err)
	}
	return id, nil
}

// Cancel flips the user's active registration for the event to cancelled. The
// row stays so history survives.
func (s *Store) Cancel(ctx context.Context, userID, eventID int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE event_registrations SET registration_status = $1
		WHERE user_id = $2 AND event_id = $3 AND registration_status <> $1`,
		models.StatusCancelled, userID, eventID)
	if err != nil {
		return fmt.Errorf("cancel registration: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CheckIn marks a registration attended and stamps the check-in moment.
func (s *Store) CheckIn(ctx context.Context, id int64, now time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE event_registrations
		SET registration_status = $1, registration_attended_flag = TRUE,
			registration_check_in_date = $2, registration_check_in_time = $3
		WHERE event_registration_id = $4`,
		models.StatusAttended, now.Format("2006-01-02"), now.Format("15:04:05"), id)
	if err != nil {
		return fmt.Errorf("check in registration: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountsByEvent returns registered-or-attended counts per event for events in
// [from, to). Cancelled rows are excluded; a set attended flag counts even if
// the status text disagrees.
func (s *Store) CountsByEvent(ctx context.Context, from, to time.Time) (map[int64]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.event_id, COUNT(*)
		FROM event_registrations r
		JOIN events e ON e.event_id = r.event_id
		WHERE e.event_date >= $1 AND e.event_date < $2
		  AND (r.registration_status IN ($3, $4) OR r.registration_attended_flag = TRUE)
		GROUP BY r.event_id`,
		from, to, models.StatusRegistered, models.StatusAttended)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var eventID int64
		var n int
		if err := rows.Scan(&eventID, &n); err != nil {
			return nil, err
		}
		counts[eventID] = n
	}
	return counts, rows.Err()
}

// ActiveEventIDs returns the IDs of events the user holds a non-cancelled
// registration for, so the calendar can mark them.
func (s *Store) ActiveEventIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT event_id FROM event_registrations
		WHERE user_id = $1 AND registration_status <> $2`,
		userID, models.StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("list active event ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// ListByUser returns a user's registrations for the profile page, newest
// event first.
func (s *Store) ListByUser(ctx context.Context, userID int64) ([]models.EventRegistration, error) {
	rows, err := s.db.QueryContext(ctx,
		selectRegistration+` WHERE r.user_id = $1
		ORDER BY e.event_date DESC NULLS LAST`, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations by user: %w", err)
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

// ListOptions returns registrations labeled for the survey form dropdown,
// newest event first.
func (s *Store) ListOptions(ctx context.Context) ([]models.EventRegistration, error) {
	rows, err := s.db.QueryContext(ctx,
		selectRegistration+" ORDER BY e.event_date DESC NULLS LAST, u.participant_last_name ASC")
	if err != nil {
		return nil, fmt.Errorf("list registration options: %w", err)
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

func scanRegistrations(rows *sql.Rows) ([]models.EventRegistration, error) {
	var out []models.EventRegistration
	for rows.Next() {
		var reg models.EventRegistration
		if err := rows.Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.Status,
			&reg.AttendedFlag, &reg.CreatedDate, &reg.CreatedTime,
			&reg.CheckInDate, &reg.CheckInTime,
			&reg.FirstName, &reg.LastName, &reg.EventName, &reg.EventDate); err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}
