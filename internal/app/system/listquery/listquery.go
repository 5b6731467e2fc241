// Package listquery builds the WHERE/ORDER BY portion of the maintenance-page
// list queries. Every list screen (participants, events, donations, milestones,
// surveys, event registrations) feeds its query-string parameters through the
// same builder so the filter semantics stay identical across entities.
//
// Conditions are written with "?" placeholders and rewritten to Postgres $n
// placeholders when the final SQL is assembled.
package listquery

import (
	"fmt"
	"strconv"
	"strings"
)

// Builder accumulates filter conditions and a sort clause for one list query.
type Builder struct {
	conds []string
	args  []any
	order string
}

func New() *Builder {
	return &Builder{}
}

// ParamToArray normalizes a multi-select query parameter. A missing parameter
// becomes ["all"]; a scalar becomes a one-element slice; a slice passes
// through unchanged.
func ParamToArray(vals []string) []string {
	if len(vals) == 0 {
		return []string{"all"}
	}
	return vals
}

// HasAll reports whether the selection disables its filter dimension.
func HasAll(vals []string) bool {
	for _, v := range vals {
		if v == "all" {
			return true
		}
	}
	return len(vals) == 0
}

// NameColumns names the first/last-name columns for full-name search,
// including any table alias ("p.participant_first_name").
type NameColumns struct {
	First string
	Last  string
}

// FullNameSearch adds the virtual full_name search condition. A single token
// matches first OR last name case-insensitively; with multiple tokens the
// first token must match the first name AND the last token the last name.
// Middle tokens are ignored.
func (b *Builder) FullNameSearch(cols NameColumns, term string) {
	parts := strings.Fields(strings.TrimSpace(term))
	if len(parts) == 0 {
		return
	}
	if len(parts) == 1 {
		like := "%" + parts[0] + "%"
		b.conds = append(b.conds, fmt.Sprintf("(%s ILIKE ? OR %s ILIKE ?)", cols.First, cols.Last))
		b.args = append(b.args, like, like)
		return
	}
	firstLike := "%" + parts[0] + "%"
	lastLike := "%" + parts[len(parts)-1] + "%"
	b.conds = append(b.conds, fmt.Sprintf("(%s ILIKE ? AND %s ILIKE ?)", cols.First, cols.Last))
	b.args = append(b.args, firstLike, lastLike)
}

// TextSearch adds a case-insensitive substring match against a single column,
// casting it to text so date and numeric columns are searchable too.
func (b *Builder) TextSearch(col, term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	b.conds = append(b.conds, fmt.Sprintf("CAST(%s AS TEXT) ILIKE ?", col))
	b.args = append(b.args, "%"+term+"%")
}

// In restricts the column to the selected values. A selection containing
// "all" means no restriction.
func (b *Builder) In(col string, vals []string) {
	if HasAll(vals) {
		return
	}
	marks := make([]string, len(vals))
	for i, v := range vals {
		marks[i] = "?"
		b.args = append(b.args, v)
	}
	b.conds = append(b.conds, fmt.Sprintf("%s IN (%s)", col, strings.Join(marks, ", ")))
}

// InInts is In for integer-valued columns: values that do not parse as
// integers are dropped, and if none remain the filter is skipped.
func (b *Builder) InInts(col string, vals []string) {
	if HasAll(vals) {
		return
	}
	nums := parseInts(vals)
	if len(nums) == 0 {
		return
	}
	marks := make([]string, len(nums))
	for i, n := range nums {
		marks[i] = "?"
		b.args = append(b.args, n)
	}
	b.conds = append(b.conds, fmt.Sprintf("%s IN (%s)", col, strings.Join(marks, ", ")))
}

// MonthIn filters by EXTRACT(MONTH FROM col). Invalid month strings are
// dropped without raising.
func (b *Builder) MonthIn(col string, vals []string) {
	b.datePartIn("MONTH", col, vals)
}

// YearIn filters by EXTRACT(YEAR FROM col).
func (b *Builder) YearIn(col string, vals []string) {
	b.datePartIn("YEAR", col, vals)
}

func (b *Builder) datePartIn(part, col string, vals []string) {
	if HasAll(vals) {
		return
	}
	nums := parseInts(vals)
	if len(nums) == 0 {
		return
	}
	marks := make([]string, len(nums))
	for i, n := range nums {
		marks[i] = "?"
		b.args = append(b.args, n)
	}
	b.conds = append(b.conds, fmt.Sprintf("EXTRACT(%s FROM %s) IN (%s)", part, col, strings.Join(marks, ", ")))
}

// DonationPresence applies the yes/no/both policy for the donations filter:
// "Yes" alone restricts to amount > 0, "No" alone to zero or null, and both
// or neither selected means no restriction.
func (b *Builder) DonationPresence(col string, vals []string) {
	if HasAll(vals) {
		return
	}
	yes, no := false, false
	for _, v := range vals {
		switch v {
		case "Yes":
			yes = true
		case "No":
			no = true
		}
	}
	switch {
	case yes && !no:
		b.conds = append(b.conds, fmt.Sprintf("%s > 0", col))
	case no && !yes:
		b.conds = append(b.conds, fmt.Sprintf("(%s = 0 OR %s IS NULL)", col, col))
	}
}

// Where adds a raw condition with "?" placeholders.
func (b *Builder) Where(cond string, args ...any) {
	b.conds = append(b.conds, cond)
	b.args = append(b.args, args...)
}

// SortOrder clamps a requested direction to "asc"/"desc", defaulting to asc.
func SortOrder(dir string) string {
	if dir == "desc" {
		return "desc"
	}
	return "asc"
}

// OrderBy sets the sort clause. The column must already be mapped to its
// table alias by the caller; dir is clamped via SortOrder.
func (b *Builder) OrderBy(col, dir string) {
	b.order = col + " " + SortOrder(dir)
}

// OrderByNullsLast is OrderBy with NULLS LAST, used by the date-descending
// defaults where null dates would otherwise sort first.
func (b *Builder) OrderByNullsLast(col, dir string) {
	b.order = col + " " + SortOrder(dir) + " NULLS LAST"
}

// SQL appends the accumulated WHERE and ORDER BY clauses to a base SELECT
// and rewrites "?" placeholders to $1..$n.
func (b *Builder) SQL(base string) (string, []any) {
	var sb strings.Builder
	sb.WriteString(base)
	if len(b.conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.conds, " AND "))
	}
	if b.order != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.order)
	}
	return numberPlaceholders(sb.String()), b.args
}

func parseInts(vals []string) []int {
	nums := make([]int, 0, len(vals))
	for _, v := range vals {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			nums = append(nums, n)
		}
	}
	return nums
}

func numberPlaceholders(sql string) string {
	var sb strings.Builder
	n := 0
	for _, r := range sql {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
