package userstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ellarises/ellahub/internal/app/system/listquery"
	"github.com/ellarises/ellahub/internal/app/system/normalize"
	"github.com/ellarises/ellahub/internal/domain/models"
)

// ErrDuplicateEmail is returned when creating a user with an email that
// already exists.
var ErrDuplicateEmail = errors.New("a user with this email already exists")

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectUser = `SELECT user_id, participant_first_name, participant_last_name,
	participant_email, participant_password_hash, participant_city,
	participant_school_or_employer, participant_field_of_interest,
	participant_role, total_donations, created_at
FROM users`

// searchColumns maps the UI search-column names to real columns. full_name is
// special-cased by the builder.
var searchColumns = map[string]string{
	"participant_first_name":         "participant_first_name",
	"participant_last_name":          "participant_last_name",
	"participant_email":              "participant_email",
	"participant_city":               "participant_city",
	"participant_school_or_employer": "participant_school_or_employer",
	"participant_field_of_interest":  "participant_field_of_interest",
}

// sortColumns are the columns the list page may order by.
var sortColumns = map[string]string{
	"participant_first_name":         "participant_first_name",
	"participant_last_name":          "participant_last_name",
	"participant_city":               "participant_city",
	"participant_school_or_employer": "participant_school_or_employer",
	"participant_field_of_interest":  "participant_field_of_interest",
	"total_donations":                "total_donations",
}

// ListFilters carries the participants list page's query parameters.
type ListFilters struct {
	SearchColumn string
	SearchValue  string
	Cities       []string
	Schools      []string
	Interests    []string
	Donations    []string
	SortColumn   string
	SortOrder    string
}

// List returns participants matching the filters. Only rows with the
// participant role appear on the maintenance page.
func (s *Store) List(ctx context.Context, f ListFilters) ([]models.User, error) {
	b := listquery.New()
	b.Where("participant_role = ?", "participant")

	if term := strings.TrimSpace(f.SearchValue); term != "" {
		if col, ok := searchColumns[f.SearchColumn]; ok {
			b.TextSearch(col, term)
		} else {
			b.FullNameSearch(listquery.NameColumns{
				First: "participant_first_name",
				Last:  "participant_last_name",
			}, term)
		}
	}
	b.In("participant_city", f.Cities)
	b.In("participant_school_or_employer", f.Schools)
	b.In("participant_field_of_interest", f.Interests)
	b.DonationPresence("total_donations", f.Donations)

	if col, ok := sortColumns[f.SortColumn]; ok {
		b.OrderBy(col, f.SortOrder)
	} else {
		b.OrderBy("participant_last_name", "asc")
	}

	query, args := b.SQL(selectUser)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

// GetByID loads one user.
func (s *Store) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, selectUser+" WHERE user_id = $1", id)
	u, err := scanUser(row)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByEmail loads a user by case-insensitive email. Returns sql.ErrNoRows
// when not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		selectUser+" WHERE participant_email = $1", normalize.Email(email))
	u, err := scanUser(row)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a signup as a participant and returns the new ID.
func (s *Store) Create(ctx context.Context, u models.User) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (participant_first_name, participant_last_name,
			participant_email, participant_password_hash, participant_city,
			participant_school_or_employer, participant_field_of_interest,
			participant_role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING user_id`,
		normalize.Name(u.FirstName), normalize.Name(u.LastName),
		normalize.Email(u.Email), u.PasswordHash, u.City,
		u.SchoolOrEmployer, u.FieldOfInterest, normalize.Role(u.Role),
	).Scan(&id)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// Delete removes a user row. Related rows cascade via foreign keys.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// DistinctCities returns the city dropdown options, ignoring current filters.
func (s *Store) DistinctCities(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "participant_city")
}

// DistinctSchools returns the school/employer dropdown options.
func (s *Store) DistinctSchools(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "participant_school_or_employer")
}

// DistinctInterests returns the field-of-interest dropdown options.
func (s *Store) DistinctInterests(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "participant_field_of_interest")
}

func (s *Store) distinct(ctx context.Context, col string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT DISTINCT %s FROM users WHERE %s IS NOT NULL AND %s <> '' ORDER BY %s`,
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

func scanUsers(rows *sql.Rows) ([]models.User, error) {
	var out []models.User
	for rows.Next() {
		var u models.User
		var email, hash, city, school, interest, role sql.NullString
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &email, &hash,
			&city, &school, &interest, &role, &u.TotalDonations, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Email, u.PasswordHash = email.String, hash.String
		u.City, u.SchoolOrEmployer = city.String, school.String
		u.FieldOfInterest, u.Role = interest.String, role.String
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var email, hash, city, school, interest, role sql.NullString
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &email, &hash,
		&city, &school, &interest, &role, &u.TotalDonations, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Email, u.PasswordHash = email.String, hash.String
	u.City, u.SchoolOrEmployer = city.String, school.String
	u.FieldOfInterest, u.Role = interest.String, role.String
	return &u, nil
}
