package listquery

import (
	"reflect"
	"testing"
)

func TestParamToArray(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"missing", nil, []string{"all"}},
		{"empty", []string{}, []string{"all"}},
		{"scalar", []string{"Provo"}, []string{"Provo"}},
		{"array", []string{"Provo", "Orem"}, []string{"Provo", "Orem"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParamToArray(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParamToArray(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAllSelectionAddsNoCondition(t *testing.T) {
	// ["all"] (or omitting the parameter) must produce the same query as no
	// filter at all.
	base := "SELECT * FROM users"

	plain := New()
	plainSQL, plainArgs := plain.SQL(base)

	filtered := New()
	filtered.In("participant_city", ParamToArray(nil))
	filtered.In("participant_school_or_employer", []string{"all"})
	filtered.In("participant_field_of_interest", []string{"all", "STEM"})
	filtered.DonationPresence("total_donations", []string{"all"})
	filtered.MonthIn("event_date", []string{"all"})
	gotSQL, gotArgs := filtered.SQL(base)

	if gotSQL != plainSQL {
		t.Errorf("SQL with all-filters = %q, want %q", gotSQL, plainSQL)
	}
	if len(gotArgs) != len(plainArgs) {
		t.Errorf("args with all-filters = %v, want %v", gotArgs, plainArgs)
	}
}

func TestFullNameSearch_SingleToken(t *testing.T) {
	b := New()
	b.FullNameSearch(NameColumns{First: "participant_first_name", Last: "participant_last_name"}, "jane")
	sql, args := b.SQL("SELECT * FROM users")

	want := "SELECT * FROM users WHERE (participant_first_name ILIKE $1 OR participant_last_name ILIKE $2)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"%jane%", "%jane%"}) {
		t.Errorf("args = %v", args)
	}
}

func TestFullNameSearch_MultipleTokens(t *testing.T) {
	b := New()
	b.FullNameSearch(NameColumns{First: "p.participant_first_name", Last: "p.participant_last_name"}, "  jane  doe smith ")
	sql, args := b.SQL("SELECT * FROM users AS p")

	want := "SELECT * FROM users AS p WHERE (p.participant_first_name ILIKE $1 AND p.participant_last_name ILIKE $2)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	// Middle tokens are ignored: first token vs first name, last vs last.
	if !reflect.DeepEqual(args, []any{"%jane%", "%smith%"}) {
		t.Errorf("args = %v", args)
	}
}

func TestFullNameSearch_BlankTerm(t *testing.T) {
	b := New()
	b.FullNameSearch(NameColumns{First: "f", Last: "l"}, "   ")
	sql, _ := b.SQL("SELECT 1")
	if sql != "SELECT 1" {
		t.Errorf("blank term added a condition: %q", sql)
	}
}

func TestTextSearch(t *testing.T) {
	b := New()
	b.TextSearch("e.event_location", "library")
	sql, args := b.SQL("SELECT * FROM events AS e")

	want := "SELECT * FROM events AS e WHERE CAST(e.event_location AS TEXT) ILIKE $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"%library%"}) {
		t.Errorf("args = %v", args)
	}
}

func TestDonationPresence(t *testing.T) {
	tests := []struct {
		name     string
		vals     []string
		wantCond string
	}{
		{"yes only", []string{"Yes"}, " WHERE total_donations > 0"},
		{"no only", []string{"No"}, " WHERE (total_donations = 0 OR total_donations IS NULL)"},
		{"both", []string{"Yes", "No"}, ""},
		{"neither", []string{"all"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			b.DonationPresence("total_donations", tt.vals)
			sql, _ := b.SQL("SELECT * FROM users")
			want := "SELECT * FROM users" + tt.wantCond
			if sql != want {
				t.Errorf("sql = %q, want %q", sql, want)
			}
		})
	}
}

func TestMonthYearFilters(t *testing.T) {
	b := New()
	b.MonthIn("e.event_date", []string{"3"})
	b.YearIn("e.event_date", []string{"2025"})
	sql, args := b.SQL("SELECT * FROM events AS e")

	want := "SELECT * FROM events AS e WHERE EXTRACT(MONTH FROM e.event_date) IN ($1) AND EXTRACT(YEAR FROM e.event_date) IN ($2)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{3, 2025}) {
		t.Errorf("args = %v", args)
	}
}

func TestMonthIn_InvalidValuesDropped(t *testing.T) {
	b := New()
	b.MonthIn("event_date", []string{"abc", "4", ""})
	sql, args := b.SQL("SELECT * FROM events")

	want := "SELECT * FROM events WHERE EXTRACT(MONTH FROM event_date) IN ($1)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{4}) {
		t.Errorf("args = %v", args)
	}
}

func TestMonthIn_AllInvalidSkipsFilter(t *testing.T) {
	b := New()
	b.MonthIn("event_date", []string{"abc", "xyz"})
	sql, _ := b.SQL("SELECT * FROM events")
	if sql != "SELECT * FROM events" {
		t.Errorf("invalid-only months added a condition: %q", sql)
	}
}

func TestIn(t *testing.T) {
	b := New()
	b.In("participant_city", []string{"Provo", "Orem"})
	sql, args := b.SQL("SELECT * FROM users")

	want := "SELECT * FROM users WHERE participant_city IN ($1, $2)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"Provo", "Orem"}) {
		t.Errorf("args = %v", args)
	}
}

func TestInInts(t *testing.T) {
	b := New()
	b.InInts("er.registration_attended_flag", []string{"1", "bogus"})
	sql, args := b.SQL("SELECT * FROM event_registrations AS er")

	want := "SELECT * FROM event_registrations AS er WHERE er.registration_attended_flag IN ($1)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{1}) {
		t.Errorf("args = %v", args)
	}
}

func TestSortOrder(t *testing.T) {
	if got := SortOrder("desc"); got != "desc" {
		t.Errorf("SortOrder(desc) = %q", got)
	}
	if got := SortOrder("asc"); got != "asc" {
		t.Errorf("SortOrder(asc) = %q", got)
	}
	if got := SortOrder("DROP TABLE"); got != "asc" {
		t.Errorf("SortOrder clamps unknown input, got %q", got)
	}
}

func TestOrderBy(t *testing.T) {
	b := New()
	b.Where("participant_role = ?", "participant")
	b.OrderBy("participant_last_name", "desc")
	sql, args := b.SQL("SELECT * FROM users")

	want := "SELECT * FROM users WHERE participant_role = $1 ORDER BY participant_last_name desc"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"participant"}) {
		t.Errorf("args = %v", args)
	}
}

func TestOrderByNullsLast(t *testing.T) {
	b := New()
	b.OrderByNullsLast("d.donation_date", "desc")
	sql, _ := b.SQL("SELECT * FROM donations AS d")
	want := "SELECT * FROM donations AS d ORDER BY d.donation_date desc NULLS LAST"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}
