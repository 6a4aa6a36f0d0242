// Package calendar provides pure date-grid and grouping helpers for the
// month/week calendar and availability views. Every function takes its
// reference dates as arguments; nothing here reads the wall clock.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the ISO date key used across calendar queries and grids.
const DateLayout = "2006-01-02"

var (
	ErrWeekCount = errors.New("week count must be positive")
	ErrSlotRange = errors.New("slot hours must satisfy 0 <= start <= end <= 23")
	ErrSlotStep  = errors.New("slot step must be a positive number of minutes")
)

// Day is one cell of a calendar grid.
type Day struct {
	Date           time.Time `json:"date"`
	DateString     string    `json:"dateString"`
	DayOfMonth     int       `json:"dayOfMonth"`
	IsCurrentMonth bool      `json:"isCurrentMonth"`
	IsToday        bool      `json:"isToday"`
	IsWeekend      bool      `json:"isWeekend"`
}

// Item is a render-ready projection of a match, event, or activity.
type Item struct {
	ID                 string `json:"id"`
	Type               string `json:"type"`
	Date               string `json:"date"`
	Time               string `json:"time"`
	TeamID             string `json:"teamId"`
	TeamName           string `json:"teamName"`
	Name               string `json:"name"`
	AvailabilityStatus string `json:"availabilityStatus,omitempty"`
	Subtype            string `json:"subtype,omitempty"`
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Sunday on or before t, at midnight.
func startOfWeek(t time.Time) time.Time {
	t = truncateDate(t)
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// endOfWeek returns the Saturday on or after t, at midnight.
func endOfWeek(t time.Time) time.Time {
	t = truncateDate(t)
	return t.AddDate(0, 0, int(time.Saturday-t.Weekday()))
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func newDay(date, today time.Time, currentMonth time.Month) Day {
	wd := date.Weekday()
	return Day{
		Date:           date,
		DateString:     date.Format(DateLayout),
		DayOfMonth:     date.Day(),
		IsCurrentMonth: date.Month() == currentMonth,
		IsToday:        sameDate(date, today),
		IsWeekend:      wd == time.Sunday || wd == time.Saturday,
	}
}

// MonthGrid returns every day needed to render ref's month as whole
// Sunday-through-Saturday rows, including leading and trailing days from
// adjacent months. today drives the IsToday flag.
func MonthGrid(ref, today time.Time) []Day {
	monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	gridStart := startOfWeek(monthStart)
	gridEnd := endOfWeek(monthEnd)

	days := make([]Day, 0, 42)
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		days = append(days, newDay(d, today, ref.Month()))
	}
	return days
}

// WeekGrid returns numWeeks*7 consecutive days starting from the Sunday on
// or before ref. Week-view days are always flagged as the current month.
func WeekGrid(ref, today time.Time, numWeeks int) ([]Day, error) {
	if numWeeks <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrWeekCount, numWeeks)
	}

	start := startOfWeek(ref)
	days := make([]Day, 0, numWeeks*7)
	for i := 0; i < numWeeks*7; i++ {
		d := start.AddDate(0, 0, i)
		day := newDay(d, today, d.Month())
		day.IsCurrentMonth = true
		days = append(days, day)
	}
	return days, nil
}

// MonthDateRange returns the data-loading window for a month view: the grid
// bounds padded by a week on each side so adjacent-month cells have data.
func MonthDateRange(ref time.Time) (string, string) {
	monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	start := startOfWeek(monthStart).AddDate(0, 0, -7)
	end := endOfWeek(monthEnd).AddDate(0, 0, 7)
	return start.Format(DateLayout), end.Format(DateLayout)
}

// WeekDateRange returns the exact window covered by WeekGrid.
func WeekDateRange(ref time.Time, numWeeks int) (string, string, error) {
	if numWeeks <= 0 {
		return "", "", fmt.Errorf("%w: %d", ErrWeekCount, numWeeks)
	}
	start := startOfWeek(ref)
	end := start.AddDate(0, 0, numWeeks*7-1)
	return start.Format(DateLayout), end.Format(DateLayout), nil
}

// GroupByDate partitions items by their ISO date key. Within a group the
// original order is preserved; callers sort by time where they need to.
func GroupByDate(items []Item) map[string][]Item {
	grouped := make(map[string][]Item, len(items))
	for _, item := range items {
		grouped[item.Date] = append(grouped[item.Date], item)
	}
	return grouped
}

// TimeSlots generates "HH:MM" strings from startHour:00 through endHour:00
// inclusive, stepMinutes apart. The sequence is deterministic for a given
// input, so callers may regenerate it freely.
func TimeSlots(startHour, endHour, stepMinutes int) ([]string, error) {
	if startHour < 0 || endHour > 23 || startHour > endHour {
		return nil, fmt.Errorf("%w: start %d end %d", ErrSlotRange, startHour, endHour)
	}
	if stepMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSlotStep, stepMinutes)
	}

	slots := make([]string, 0, (endHour-startHour+1)*60/stepMinutes+1)
	for minutes := startHour * 60; minutes <= endHour*60; minutes += stepMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
	}
	return slots, nil
}

// NextMonth returns the first day of the month after ref.
func NextMonth(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month()+1, 1, 0, 0, 0, 0, ref.Location())
}

// PreviousMonth returns the first day of the month before ref.
func PreviousMonth(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month()-1, 1, 0, 0, 0, 0, ref.Location())
}

// NextWeek returns ref advanced by seven days.
func NextWeek(ref time.Time) time.Time {
	return truncateDate(ref).AddDate(0, 0, 7)
}

// PreviousWeek returns ref moved back by seven days.
func PreviousWeek(ref time.Time) time.Time {
	return truncateDate(ref).AddDate(0, 0, -7)
}

// WeekdayNames returns Sunday-first weekday labels for grid headers.
func WeekdayNames(short bool) []string {
	if short {
		return []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	}
	return []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
}
