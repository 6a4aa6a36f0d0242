package calendar

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthGrid_WholeWeeks(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		wantFirst string
		wantLast  string
	}{
		// Feb 2024: Feb 1 is a Thursday, Feb 29 is a Thursday (leap year).
		{"leap february", date(2024, time.February, 15), "2024-01-28", "2024-03-02"},
		// Sep 2024: Sep 1 is a Sunday, Sep 30 is a Monday.
		{"month starting sunday", date(2024, time.September, 10), "2024-09-01", "2024-10-05"},
		// Jun 2025: Jun 1 Sunday, Jun 30 Monday.
		{"june 2025", date(2025, time.June, 1), "2025-06-01", "2025-07-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := MonthGrid(tt.ref, date(2020, time.January, 1))
			if len(days)%7 != 0 {
				t.Fatalf("grid length %d is not a multiple of 7", len(days))
			}
			if days[0].DateString != tt.wantFirst {
				t.Errorf("first day = %s, want %s", days[0].DateString, tt.wantFirst)
			}
			if days[len(days)-1].DateString != tt.wantLast {
				t.Errorf("last day = %s, want %s", days[len(days)-1].DateString, tt.wantLast)
			}

			// No duplicates or gaps.
			for i := 1; i < len(days); i++ {
				if !days[i].Date.Equal(days[i-1].Date.AddDate(0, 0, 1)) {
					t.Fatalf("gap between %s and %s", days[i-1].DateString, days[i].DateString)
				}
			}

			// Every day of the reference month is present and flagged current.
			current := 0
			for _, day := range days {
				if day.IsCurrentMonth {
					current++
					if day.Date.Month() != tt.ref.Month() {
						t.Errorf("day %s flagged current but is %s", day.DateString, day.Date.Month())
					}
				}
			}
			monthStart := time.Date(tt.ref.Year(), tt.ref.Month(), 1, 0, 0, 0, 0, time.UTC)
			daysInMonth := monthStart.AddDate(0, 1, -1).Day()
			if current != daysInMonth {
				t.Errorf("current-month days = %d, want %d", current, daysInMonth)
			}
		})
	}
}

func TestMonthGrid_TodayAndWeekend(t *testing.T) {
	today := date(2024, time.February, 14)
	days := MonthGrid(date(2024, time.February, 1), today)

	var todays int
	for _, day := range days {
		if day.IsToday {
			todays++
			if day.DateString != "2024-02-14" {
				t.Errorf("IsToday set on %s", day.DateString)
			}
		}
		isWeekend := day.Date.Weekday() == time.Sunday || day.Date.Weekday() == time.Saturday
		if day.IsWeekend != isWeekend {
			t.Errorf("weekend flag for %s = %v", day.DateString, day.IsWeekend)
		}
	}
	if todays != 1 {
		t.Errorf("IsToday set on %d days, want 1", todays)
	}
}

func TestWeekGrid_Length(t *testing.T) {
	for _, n := range []int{1, 2, 4, 9} {
		days, err := WeekGrid(date(2024, time.February, 14), date(2024, time.February, 14), n)
		if err != nil {
			t.Fatalf("WeekGrid(%d): %v", n, err)
		}
		if len(days) != 7*n {
			t.Errorf("WeekGrid(%d) length = %d, want %d", n, len(days), 7*n)
		}
		if days[0].Date.Weekday() != time.Sunday {
			t.Errorf("WeekGrid(%d) starts on %s", n, days[0].Date.Weekday())
		}
		// Week view always renders as the current month.
		for _, day := range days {
			if !day.IsCurrentMonth {
				t.Errorf("week day %s not flagged current month", day.DateString)
			}
		}
	}
}

func TestWeekGrid_InvalidWeekCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := WeekGrid(date(2024, time.February, 14), time.Now(), n); !errors.Is(err, ErrWeekCount) {
			t.Errorf("WeekGrid(%d) error = %v, want ErrWeekCount", n, err)
		}
	}
}

func TestMonthDateRange_PadsOneWeek(t *testing.T) {
	start, end := MonthDateRange(date(2024, time.February, 15))
	if start != "2024-01-21" {
		t.Errorf("start = %s, want 2024-01-21", start)
	}
	if end != "2024-03-09" {
		t.Errorf("end = %s, want 2024-03-09", end)
	}
}

func TestWeekDateRange_MatchesGrid(t *testing.T) {
	ref := date(2024, time.February, 14)
	start, end, err := WeekDateRange(ref, 2)
	if err != nil {
		t.Fatal(err)
	}

	days, err := WeekGrid(ref, ref, 2)
	if err != nil {
		t.Fatal(err)
	}
	if start != days[0].DateString || end != days[len(days)-1].DateString {
		t.Errorf("range %s..%s does not match grid %s..%s", start, end, days[0].DateString, days[len(days)-1].DateString)
	}
}

func TestGroupByDate_PreservesInsertionOrder(t *testing.T) {
	items := []Item{
		{ID: "a", Date: "2024-02-14", Time: "18:00"},
		{ID: "b", Date: "2024-02-15", Time: "09:00"},
		{ID: "c", Date: "2024-02-14", Time: "08:00"},
	}

	grouped := GroupByDate(items)
	if len(grouped) != 2 {
		t.Fatalf("group count = %d, want 2", len(grouped))
	}
	got := []string{grouped["2024-02-14"][0].ID, grouped["2024-02-14"][1].ID}
	if !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("2024-02-14 order = %v, want [a c]", got)
	}
}

func TestTimeSlots(t *testing.T) {
	slots, err := TimeSlots(6, 8, 30)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"06:00", "06:30", "07:00", "07:30", "08:00"}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("slots = %v, want %v", slots, want)
	}

	// Deterministic across calls.
	again, err := TimeSlots(6, 8, 30)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(slots, again) {
		t.Errorf("second call differs: %v vs %v", slots, again)
	}
}

func TestTimeSlots_Invalid(t *testing.T) {
	if _, err := TimeSlots(9, 8, 30); !errors.Is(err, ErrSlotRange) {
		t.Errorf("start after end: error = %v, want ErrSlotRange", err)
	}
	if _, err := TimeSlots(6, 8, 0); !errors.Is(err, ErrSlotStep) {
		t.Errorf("zero step: error = %v, want ErrSlotStep", err)
	}
}

func TestNavigationHelpers(t *testing.T) {
	ref := date(2024, time.January, 31)
	if got := NextMonth(ref); got.Month() != time.February || got.Day() != 1 {
		t.Errorf("NextMonth = %v", got)
	}
	if got := PreviousMonth(ref); got.Month() != time.December || got.Year() != 2023 {
		t.Errorf("PreviousMonth = %v", got)
	}
	if got := NextWeek(ref); got.Day() != 7 || got.Month() != time.February {
		t.Errorf("NextWeek = %v", got)
	}
	if got := PreviousWeek(ref); got.Day() != 24 || got.Month() != time.January {
		t.Errorf("PreviousWeek = %v", got)
	}
}
