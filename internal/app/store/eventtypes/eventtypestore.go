package eventtypestore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ellarises/ellahub/internal/domain/models"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListAll returns every event type, for filter and form dropdowns.
func (s *Store) ListAll(ctx context.Context) ([]models.EventType, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT event_type_id, event_type_name
		FROM event_types
		ORDER BY event_type_name`)
	if err != nil {
		return nil, fmt.Errorf("list event types: %w", err)
	}
	defer rows.Close()

	var out []models.EventType
	for rows.Next() {
		var t models.EventType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
