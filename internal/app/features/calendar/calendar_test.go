package calendar

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ellarises/ellahub/internal/domain/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestQueryWindow(t *testing.T) {
	from, to := queryWindow(date(2025, time.January, 10))
	if !from.Equal(date(2025, time.January, 10)) {
		t.Errorf("from = %v, want Jan 10 2025", from)
	}
	if !to.Equal(date(2025, time.April, 10)) {
		t.Errorf("to = %v, want Apr 10 2025", to)
	}
}

func TestQueryWindow_YearRollover(t *testing.T) {
	from, to := queryWindow(date(2025, time.November, 30))
	if !from.Equal(date(2025, time.November, 30)) {
		t.Errorf("from = %v, want Nov 30 2025", from)
	}
	// AddDate normalizes Feb 30 to Mar 2 in a non-leap year.
	if !to.Equal(date(2026, time.March, 2)) {
		t.Errorf("to = %v, want Mar 2 2026", to)
	}
}

func TestGridStart(t *testing.T) {
	if got := gridStart(date(2025, time.January, 10)); !got.Equal(date(2025, time.January, 1)) {
		t.Errorf("gridStart = %v, want Jan 1 2025", got)
	}
}

func TestBuildMonths(t *testing.T) {
	from := date(2025, time.January, 1)
	events := []models.Event{
		{
			ID:        1,
			Name:      "Coding Camp",
			Date:      sql.NullTime{Time: date(2025, time.January, 15), Valid: true},
			StartTime: "14:30:00",
			EndTime:   "16:00:00",
			Capacity:  sql.NullInt64{Int64: 2, Valid: true},
		},
		{
			ID:   2,
			Name: "Mentor Mixer",
			Date: sql.NullTime{Time: date(2025, time.March, 3), Valid: true},
		},
		{
			ID:   3,
			Name: "No Date Workshop", // skipped: no date to place it on
		},
	}
	counts := map[int64]int{1: 2}
	mine := map[int64]bool{2: true}

	months := buildMonths(from, 3, events, counts, mine, date(2025, time.January, 15))
	if len(months) != 3 {
		t.Fatalf("months = %d, want 3", len(months))
	}
	if months[0].Label != "January 2025" || months[2].Label != "March 2025" {
		t.Errorf("labels = %q, %q", months[0].Label, months[2].Label)
	}

	var camp *calendarEvent
	var campToday bool
	for _, week := range months[0].Weeks {
		for _, cell := range week {
			if cell.Day == 15 {
				campToday = cell.IsToday
				if len(cell.Events) == 1 {
					camp = &cell.Events[0]
				}
			}
		}
	}
	if camp == nil {
		t.Fatal("event not placed on Jan 15")
	}
	if !campToday {
		t.Error("Jan 15 should be marked today")
	}
	if camp.Time != "2:30 PM to 4:00 PM" {
		t.Errorf("time = %q", camp.Time)
	}
	if camp.Taken != 2 || !camp.Full {
		t.Errorf("taken = %d full = %v, want 2 and full", camp.Taken, camp.Full)
	}
	if camp.Registered {
		t.Error("camp should not be marked registered")
	}

	var mixer *calendarEvent
	for _, week := range months[2].Weeks {
		for _, cell := range week {
			if cell.Day == 3 && len(cell.Events) == 1 {
				mixer = &cell.Events[0]
			}
		}
	}
	if mixer == nil {
		t.Fatal("event not placed on Mar 3")
	}
	if !mixer.Registered {
		t.Error("mixer should be marked registered")
	}
	if mixer.Full {
		t.Error("mixer has no capacity so it is never full")
	}
}

func TestBuildMonth_GridShape(t *testing.T) {
	// January 2025 starts on a Wednesday and has 31 days: 5 week rows.
	grid := buildMonth(date(2025, time.January, 1), nil, date(2024, time.June, 1))
	if len(grid.Weeks) != 5 {
		t.Fatalf("weeks = %d, want 5", len(grid.Weeks))
	}
	for i, week := range grid.Weeks {
		if len(week) != 7 {
			t.Errorf("week %d has %d cells, want 7", i, len(week))
		}
	}
	if grid.Weeks[0][2].Day != 0 || grid.Weeks[0][3].Day != 1 {
		t.Errorf("first week = %v", grid.Weeks[0])
	}
	last := grid.Weeks[4]
	if last[6].Day != 0 || last[5].Day != 31 {
		t.Errorf("last week = %v", last)
	}
}
