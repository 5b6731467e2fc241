package recordstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/ellarises/ellahub/internal/app/system/registry"
)

// The stub driver enforces the placeholder count the way a real driver
// does, so argument-binding mistakes fail here instead of in production.

func init() { sql.Register("stubsql", stubDriver{}) }

var stubQueryArgs []driver.Value

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return stubConn{}, nil }

type stubConn struct{}

func (stubConn) Prepare(query string) (driver.Stmt, error) {
	return stubStmt{query: query}, nil
}
func (stubConn) Close() error              { return nil }
func (stubConn) Begin() (driver.Tx, error) { return nil, errors.New("transactions not supported") }

type stubStmt struct{ query string }

func (s stubStmt) Close() error  { return nil }
func (s stubStmt) NumInput() int { return strings.Count(s.query, "$") }
func (s stubStmt) Exec([]driver.Value) (driver.Result, error) {
	return driver.RowsAffected(1), nil
}
func (s stubStmt) Query(args []driver.Value) (driver.Rows, error) {
	stubQueryArgs = args
	return &stubRows{cols: selectWidth(s.query)}, nil
}

// selectWidth counts the top-level select-list entries so the stub row has
// the right number of columns.
func selectWidth(query string) []string {
	inner := query
	if i := strings.Index(inner, "SELECT "); i >= 0 {
		inner = inner[i+len("SELECT "):]
	}
	if i := strings.Index(inner, " FROM "); i >= 0 {
		inner = inner[:i]
	}
	depth, n := 0, 1
	for _, r := range inner {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				n++
			}
		}
	}
	cols := make([]string, n)
	for i := range cols {
		cols[i] = fmt.Sprintf("c%d", i)
	}
	return cols
}

type stubRows struct {
	cols []string
	done bool
}

func (r *stubRows) Columns() []string { return r.cols }
func (r *stubRows) Close() error      { return nil }
func (r *stubRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	r.done = true
	for i := range dest {
		dest[i] = ""
	}
	return nil
}

func TestBuildInsert(t *testing.T) {
	e, _ := registry.Lookup("milestones")
	query, args := buildInsert(e, map[string]any{
		"user_id":         "3",
		"milestone_title": "First Job",
		"milestone_date":  nil,
	}, "")

	want := "INSERT INTO milestones (milestone_date, milestone_title, user_id) " +
		"VALUES ($1, $2, $3) RETURNING milestone_id"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	if !reflect.DeepEqual(args, []any{nil, "First Job", "3"}) {
		t.Errorf("args = %v", args)
	}
}

func TestBuildInsert_Upsert(t *testing.T) {
	e, _ := registry.Lookup("survey_results")
	query, _ := buildInsert(e, map[string]any{
		"event_registration_id": "7",
		"survey_overall_score":  "9",
	}, "event_registration_id")

	want := "INSERT INTO survey_results (event_registration_id, survey_overall_score) " +
		"VALUES ($1, $2) " +
		"ON CONFLICT (event_registration_id) DO UPDATE SET " +
		"survey_overall_score = EXCLUDED.survey_overall_score " +
		"RETURNING survey_id"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
}

func TestGet_BindsPrimaryKey(t *testing.T) {
	db, err := sql.Open("stubsql", "")
	if err != nil {
		t.Fatalf("open stub db: %v", err)
	}
	defer db.Close()

	e, _ := registry.Lookup("milestones")
	values, err := New(db).Get(context.Background(), e, 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(stubQueryArgs) != 1 {
		t.Fatalf("query args = %v, want just the id", stubQueryArgs)
	}
	if id, ok := stubQueryArgs[0].(int64); !ok || id != 7 {
		t.Errorf("bound id = %v, want 7", stubQueryArgs[0])
	}
	for _, c := range e.Columns {
		if _, ok := values[c]; !ok {
			t.Errorf("column %s missing from result", c)
		}
	}
}

func TestBuildUpdate(t *testing.T) {
	e, _ := registry.Lookup("donations")
	query, args := buildUpdate(e, 42, map[string]any{
		"donation_amount": "25.00",
		"donation_date":   "2025-03-01",
	})

	want := "UPDATE donations SET donation_amount = $1, donation_date = $2 " +
		"WHERE donation_id = $3"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	if !reflect.DeepEqual(args, []any{"25.00", "2025-03-01", int64(42)}) {
		t.Errorf("args = %v", args)
	}
}
