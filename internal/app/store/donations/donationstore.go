package donationstore

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

const selectDonation = `SELECT d.donation_id, d.user_id, d.donation_date, d.donation_amount,
	COALESCE(u.participant_first_name, ''), COALESCE(u.participant_last_name, '')
FROM donations d
LEFT JOIN users u ON u.user_id = d.user_id`

var sortColumns = map[string]string{
	"participant_last_name": "u.participant_last_name",
	"donation_date":         "d.donation_date",
	"donation_amount":       "d.donation_amount",
}

// ListFilters carries the donations list page's query parameters.
type ListFilters struct {
	SearchColumn string
	SearchValue  string
	Months       []string
	Years        []string
	SortColumn   string
	SortOrder    string
}

// List returns donations with the donor's name joined in, newest first by
// default.
func (s *Store) List(ctx context.Context, f ListFilters) ([]models.Donation, error) {
	b := listquery.New()

	if term := strings.TrimSpace(f.SearchValue); term != "" {
		if f.SearchColumn == "donation_amount" {
			b.TextSearch("d.donation_amount", term)
		} else {
			b.FullNameSearch(listquery.NameColumns{
				First: "u.participant_first_name",
				Last:  "u.participant_last_name",
			}, term)
		}
	}
	b.MonthIn("d.donation_date", f.Months)
	b.YearIn("d.donation_date", f.Years)

	if col, ok := sortColumns[f.SortColumn]; ok {
		b.OrderBy(col, f.SortOrder)
	} else {
		b.OrderByNullsLast("d.donation_date", "desc")
	}

	query, args := b.SQL(selectDonation)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()
	return scanDonations(rows)
}

// GetByID loads one donation with the donor's name.
func (s *Store) GetByID(ctx context.Context, id int64) (*models.Donation, error) {
	row := s.db.QueryRowContext(ctx, selectDonation+" WHERE d.donation_id = $1", id)
	var d models.Donation
	if err := row.Scan(&d.ID, &d.UserID, &d.Date, &d.Amount,
		&d.FirstName, &d.LastName); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByUser returns a user's donations for the profile page, newest first.
func (s *Store) ListByUser(ctx context.Context, userID int64) ([]models.Donation, error) {
	rows, err := s.db.QueryContext(ctx,
		selectDonation+` WHERE d.user_id = $1
		ORDER BY d.donation_date DESC NULLS LAST`, userID)
	if err != nil {
		return nil, fmt.Errorf("list donations by user: %w", err)
	}
	defer rows.Close()
	return scanDonations(rows)
}

// DistinctYears returns the years with at least one donation, newest first.
func (s *Store) DistinctYears(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT EXTRACT(YEAR FROM donation_date)::int AS y FROM donations
		WHERE donation_date IS NOT NULL
		ORDER BY y DESC`)
	if err != nil {
		return nil, fmt.Errorf("distinct donation years: %w", err)
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

func scanDonations(rows *sql.Rows) ([]models.Donation, error) {
	var out []models.Donation
	for rows.Next() {
		var d models.Donation
		if err := rows.Scan(&d.ID, &d.UserID, &d.Date, &d.Amount,
			&d.FirstName, &d.LastName); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
