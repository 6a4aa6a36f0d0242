// internal/api/calendarpage/handlers.go
package calendarpage

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tennisnav/tennisnav/internal/api/apiutil"
	"github.com/tennisnav/tennisnav/internal/api/authz"
	"github.com/tennisnav/tennisnav/internal/api/htmx"
	"github.com/tennisnav/tennisnav/internal/calendar"
	dbgen "github.com/tennisnav/tennisnav/internal/db/generated"
	"github.com/tennisnav/tennisnav/internal/request"
	calendarview "github.com/tennisnav/tennisnav/internal/templates/components/calendar"
	"github.com/tennisnav/tennisnav/internal/templates/layouts"
)

var (
	queries     *dbgen.Queries
	queriesOnce sync.Once
)

const calendarQueryTimeout = 10 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *dbgen.Queries) {
	if q == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = q
	})
}

type viewParams struct {
	view   string
	ref    time.Time
	weeks  int
	teamID string
}

func parseViewParams(r *http.Request) viewParams {
	params := viewParams{view: "month", ref: time.Now(), weeks: 2}

	if v := r.URL.Query().Get("view"); v == "week" {
		params.view = "week"
	}
	if ref, err := time.Parse(calendar.DateLayout, r.URL.Query().Get("ref")); err == nil {
		params.ref = ref
	}
	if weeks, err := strconv.Atoi(r.URL.Query().Get("weeks")); err == nil && weeks > 0 {
		params.weeks = weeks
	}
	if teamID, ok := request.TeamIDFromRequest(r); ok {
		params.teamID = teamID
	}
	return params
}

// collectItems gathers matches and events across every team the user belongs
// to, annotated with the caller's availability mark where one exists. A
// non-empty teamID narrows the calendar to that team.
func collectItems(ctx context.Context, user *authz.AuthUser, start, end, teamID string) ([]calendar.Item, error) {
	teams, err := queries.ListTeamsForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	var items []calendar.Item
	for _, team := range teams {
		if teamID != "" && team.ID != teamID {
			continue
		}
		member, memberErr := queries.GetRosterMemberForUser(ctx, dbgen.GetRosterMemberForUserParams{
			TeamID: team.ID,
			UserID: sql.NullString{String: user.ID, Valid: true},
		})
		hasMember := memberErr == nil
		if memberErr != nil && !errors.Is(memberErr, sql.ErrNoRows) {
			return nil, memberErr
		}

		matches, err := queries.ListMatchesForTeamBetween(ctx, dbgen.ListMatchesForTeamBetweenParams{
			TeamID:    team.ID,
			StartDate: start,
			EndDate:   end,
		})
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			item := calendar.Item{
				ID:       match.ID,
				Type:     "match",
				Date:     match.MatchDate,
				Time:     match.MatchTime,
				TeamID:   team.ID,
				TeamName: team.Name,
				Name:     "vs " + match.OpponentName,
			}
			if hasMember {
				item.AvailabilityStatus = availabilityStatus(ctx, member.ID, match.ID)
			}
			items = append(items, item)
		}

		events, err := queries.ListEventsForTeamBetween(ctx, dbgen.ListEventsForTeamBetweenParams{
			TeamID:    team.ID,
			StartDate: start,
			EndDate:   end,
		})
		if err != nil {
			return nil, err
		}
		for _, event := range events {
			item := calendar.Item{
				ID:       event.ID,
				Type:     "event",
				Date:     event.EventDate,
				Time:     event.EventTime,
				TeamID:   team.ID,
				TeamName: team.Name,
				Name:     event.Name,
				Subtype:  event.EventType,
			}
			if hasMember {
				item.AvailabilityStatus = availabilityStatus(ctx, member.ID, event.ID)
			}
			items = append(items, item)
		}
	}
	return items, nil
}

func availabilityStatus(ctx context.Context, memberID, itemID string) string {
	mark, err := queries.GetAvailabilityForMember(ctx, dbgen.GetAvailabilityForMemberParams{
		RosterMemberID: memberID,
		ItemID:         itemID,
	})
	if err != nil {
		return ""
	}
	return mark.Status
}

func buildGrid(params viewParams, today time.Time) ([]calendar.Day, string, string, string, error) {
	if params.view == "week" {
		days, err := calendar.WeekGrid(params.ref, today, params.weeks)
		if err != nil {
			return nil, "", "", "", err
		}
		prev := calendar.PreviousWeek(params.ref).Format(calendar.DateLayout)
		next := calendar.NextWeek(params.ref).Format(calendar.DateLayout)
		label := "Week of " + days[0].DateString
		return days, label, prev, next, nil
	}

	days := calendar.MonthGrid(params.ref, today)
	prev := calendar.PreviousMonth(params.ref).Format(calendar.DateLayout)
	next := calendar.NextMonth(params.ref).Format(calendar.DateLayout)
	label := params.ref.Format("January 2006")
	return days, label, prev, next, nil
}

func gridRange(params viewParams) (string, string, error) {
	if params.view == "week" {
		return calendar.WeekDateRange(params.ref, params.weeks)
	}
	start, end := calendar.MonthDateRange(params.ref)
	return start, end, nil
}

// GET /calendar?view=month|week&ref=YYYY-MM-DD&weeks=N
//
// Full requests get the page shell; htmx requests get just the grid so the
// navigation arrows swap in place.
func HandleCalendarPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user := authz.UserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	params := parseViewParams(r)
	days, label, prev, next, err := buildGrid(params, time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start, end, err := gridRange(params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), calendarQueryTimeout)
	defer cancel()

	items, err := collectItems(ctx, user, start, end, params.teamID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load calendar items")
		http.Error(w, "Failed to load calendar", http.StatusInternalServerError)
		return
	}
	grouped := calendar.GroupByDate(items)

	grid := calendarview.Month(label, prev, next, days, grouped)
	if params.view == "week" {
		grid = calendarview.Week(label, prev, next, days, grouped)
	}

	if htmx.IsRequest(r) {
		if err := grid.Render(r.Context(), w); err != nil {
			logger.Error().Err(err).Msg("Failed to render calendar grid")
		}
		return
	}

	page := layouts.Base("TennisNav Calendar", grid)
	if err := page.Render(r.Context(), w); err != nil {
		logger.Error().Err(err).Msg("Failed to render calendar page")
	}
}

type calendarData struct {
	View  string                     `json:"view"`
	Start string                     `json:"start"`
	End   string                     `json:"end"`
	Days  []calendar.Day             `json:"days"`
	Items map[string][]calendar.Item `json:"items"`
}

// GET /api/v1/calendar?view=month|week&ref=YYYY-MM-DD&weeks=N
func HandleCalendarData(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user := authz.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	params := parseViewParams(r)
	days, _, _, _, err := buildGrid(params, time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start, end, err := gridRange(params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), calendarQueryTimeout)
	defer cancel()

	items, err := collectItems(ctx, user, start, end, params.teamID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load calendar items")
		http.Error(w, "Failed to load calendar", http.StatusInternalServerError)
		return
	}

	payload := calendarData{
		View:  params.view,
		Start: start,
		End:   end,
		Days:  days,
		Items: calendar.GroupByDate(items),
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, payload); err != nil {
		logger.Error().Err(err).Msg("Failed to write calendar response")
	}
}
