// Package calendar renders the public three-month event calendar. Visitors
// see event details and spots taken; signed-in participants can register and
// cancel in place.
package calendar

import (
	"time"

	"github.com/ellarises/ellahub/internal/app/system/timeformat"
	"github.com/ellarises/ellahub/internal/domain/models"
)

// queryWindow returns the [from, to) range of events fetched: today through
// three months out. Events earlier in the current month have already passed
// and are left off the grid.
func queryWindow(now time.Time) (from, to time.Time) {
	from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to = from.AddDate(0, 3, 0)
	return from, to
}

// gridStart anchors the month grids at the first of the current month.
func gridStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

type calendarEvent struct {
	ID         int64
	Name       string
	TypeName   string
	Time       string
	Location   string
	Capacity   int64 // 0 = unlimited
	Taken      int
	Registered bool // the current user holds an active registration
	Full       bool
}

type dayCell struct {
	Day     int // 0 = filler cell outside the month
	Events  []calendarEvent
	IsToday bool
}

type monthGrid struct {
	Label string // "March 2025"
	Weeks [][]dayCell
}

// buildMonths lays the window's events onto week-row grids, one per month.
// counts holds spots taken per event; mine marks events the current user is
// registered for.
func buildMonths(from time.Time, months int, events []models.Event, counts map[int64]int, mine map[int64]bool, today time.Time) []monthGrid {
	byDay := make(map[string][]calendarEvent)
	for _, e := range events {
		if !e.Date.Valid {
			continue
		}
		ce := calendarEvent{
			ID:         e.ID,
			Name:       e.Name,
			TypeName:   e.TypeName,
			Time:       timeformat.Range(e.StartTime, e.EndTime),
			Location:   e.Location,
			Taken:      counts[e.ID],
			Registered: mine[e.ID],
		}
		if e.Capacity.Valid {
			ce.Capacity = e.Capacity.Int64
			ce.Full = int64(ce.Taken) >= ce.Capacity
		}
		key := e.Date.Time.Format("2006-01-02")
		byDay[key] = append(byDay[key], ce)
	}

	grids := make([]monthGrid, 0, months)
	for m := 0; m < months; m++ {
		first := from.AddDate(0, m, 0)
		grids = append(grids, buildMonth(first, byDay, today))
	}
	return grids
}

func buildMonth(first time.Time, byDay map[string][]calendarEvent, today time.Time) monthGrid {
	grid := monthGrid{Label: first.Format("January 2006")}
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var week []dayCell
	for i := 0; i < int(first.Weekday()); i++ {
		week = append(week, dayCell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, first.Location())
		cell := dayCell{
			Day:     day,
			Events:  byDay[date.Format("2006-01-02")],
			IsToday: sameDay(date, today),
		}
		week = append(week, cell)
		if len(week) == 7 {
			grid.Weeks = append(grid.Weeks, week)
			week = nil
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, dayCell{})
		}
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
