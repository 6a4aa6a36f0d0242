package calendar

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	cal "github.com/tennisnav/tennisnav/internal/calendar"
)

func dayClasses(day cal.Day) string {
	classes := []string{"calendar-day"}
	if !day.IsCurrentMonth {
		classes = append(classes, "calendar-day-outside")
	}
	if day.IsToday {
		classes = append(classes, "calendar-day-today")
	}
	if day.IsWeekend {
		classes = append(classes, "calendar-day-weekend")
	}
	return strings.Join(classes, " ")
}

func renderItem(w io.Writer, item cal.Item) error {
	_, err := fmt.Fprintf(w,
		`<div class="calendar-item calendar-item-%s" data-item-id="%s">`+
			`<span class="calendar-item-time">%s</span> `+
			`<span class="calendar-item-name">%s</span>`+
			`</div>`,
		templ.EscapeString(item.Type),
		templ.EscapeString(item.ID),
		templ.EscapeString(item.Time),
		templ.EscapeString(item.Name),
	)
	return err
}

func renderGrid(w io.Writer, days []cal.Day, items map[string][]cal.Item) error {
	if _, err := io.WriteString(w, `<div class="calendar-weekdays">`); err != nil {
		return err
	}
	for _, name := range cal.WeekdayNames(true) {
		if _, err := fmt.Fprintf(w, `<div class="calendar-weekday">%s</div>`, templ.EscapeString(name)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `</div><div class="calendar-grid">`); err != nil {
		return err
	}

	for _, day := range days {
		if _, err := fmt.Fprintf(w,
			`<div class="%s" data-date="%s"><span class="calendar-day-number">%d</span>`,
			dayClasses(day), templ.EscapeString(day.DateString), day.DayOfMonth,
		); err != nil {
			return err
		}
		for _, item := range items[day.DateString] {
			if err := renderItem(w, item); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, `</div>`)
	return err
}

func renderNav(w io.Writer, view, label, prev, next string) error {
	_, err := fmt.Fprintf(w,
		`<div class="calendar-nav">`+
			`<button hx-get="/calendar?view=%[1]s&ref=%[2]s" hx-target="#calendar" hx-swap="outerHTML">&larr;</button>`+
			`<h2 class="calendar-label">%[3]s</h2>`+
			`<button hx-get="/calendar?view=%[1]s&ref=%[4]s" hx-target="#calendar" hx-swap="outerHTML">&rarr;</button>`+
			`</div>`,
		templ.EscapeString(view),
		templ.EscapeString(prev),
		templ.EscapeString(label),
		templ.EscapeString(next),
	)
	return err
}

// Month renders the whole-weeks month grid with items placed on their days.
// prev and next are the reference dates the navigation arrows target.
func Month(label, prev, next string, days []cal.Day, items map[string][]cal.Item) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="calendar" class="calendar calendar-month">`); err != nil {
			return err
		}
		if err := renderNav(w, "month", label, prev, next); err != nil {
			return err
		}
		if err := renderGrid(w, days, items); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// Week renders a rolling multi-week grid in the same shell as Month.
func Week(label, prev, next string, days []cal.Day, items map[string][]cal.Item) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="calendar" class="calendar calendar-week">`); err != nil {
			return err
		}
		if err := renderNav(w, "week", label, prev, next); err != nil {
			return err
		}
		if err := renderGrid(w, days, items); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
