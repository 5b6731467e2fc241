// Package recordstore executes the generic add/edit/delete writes behind the
// record-maintenance routes. Column names come exclusively from the entity
// registry's allow-lists, never from user input, so building SQL by
// concatenation here is safe.
package recordstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ellarises/ellahub/internal/app/system/registry"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Insert adds a row built from allow-listed form fields and returns the new
// primary key.
func (s *Store) Insert(ctx context.Context, e registry.Entity, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, fmt.Errorf("insert into %s: no fields", e.Table)
	}
	query, args := buildInsert(e, fields, "")
	var id int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert into %s: %w", e.Table, err)
	}
	return id, nil
}

// Upsert is Insert with ON CONFLICT on the given column: an existing row with
// the same value is updated in place. Survey results use this so one
// registration never collects two surveys.
func (s *Store) Upsert(ctx context.Context, e registry.Entity, fields map[string]any, conflictCol string) (int64, error) {
	if len(fields) == 0 {
		return 0, fmt.Errorf("upsert into %s: no fields", e.Table)
	}
	query, args := buildInsert(e, fields, conflictCol)
	var id int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("upsert into %s: %w", e.Table, err)
	}
	return id, nil
}

// Update rewrites the allow-listed fields of one row.
func (s *Store) Update(ctx context.Context, e registry.Entity, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return fmt.Errorf("update %s: no fields", e.Table)
	}
	query, args := buildUpdate(e, id, fields)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", e.Table, err)
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

// Delete removes one row by primary key.
func (s *Store) Delete(ctx context.Context, e registry.Entity, id int64) error {
	res, err := s.db.ExecContext(ctx, fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1", e.Table, e.PrimaryKey), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", e.Table, err)
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

// Get loads one row's allow-listed columns as strings for the edit form.
func (s *Store) Get(ctx context.Context, e registry.Entity, id int64) (map[string]string, error) {
	cols := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		// Dates render as yyyy-mm-dd so <input type=date> accepts them.
		cols[i] = fmt.Sprintf("COALESCE(CAST(%s AS TEXT), '')", c)
		if strings.HasSuffix(c, "_date") {
			cols[i] = fmt.Sprintf("COALESCE(TO_CHAR(%s, 'YYYY-MM-DD'), '')", c)
		}
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		strings.Join(cols, ", "), e.Table, e.PrimaryKey)

	vals := make([]string, len(e.Columns))
	dest := make([]any, len(e.Columns))
	for i := range vals {
		dest[i] = &vals[i]
	}
	if err := s.db.QueryRowContext(ctx, query, id).Scan(dest...); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(e.Columns))
	for i, c := range e.Columns {
		out[c] = vals[i]
	}
	return out, nil
}

func buildInsert(e registry.Entity, fields map[string]any, conflictCol string) (string, []any) {
	cols := registry.SortedColumns(fields)
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = fields[c]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES (%s)",
		e.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	if conflictCol != "" {
		sets := make([]string, 0, len(cols))
		for _, c := range cols {
			if c == conflictCol {
				continue
			}
			sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
		}
		fmt.Fprintf(&sb, " ON CONFLICT (%s) DO UPDATE SET %s",
			conflictCol, strings.Join(sets, ", "))
	}
	fmt.Fprintf(&sb, " RETURNING %s", e.PrimaryKey)
	return sb.String(), args
}

func buildUpdate(e registry.Entity, id int64, fields map[string]any) (string, []any) {
	cols := registry.SortedColumns(fields)
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
		args = append(args, fields[c])
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		e.Table, strings.Join(sets, ", "), e.PrimaryKey, len(cols)+1)
	return query, args
}
