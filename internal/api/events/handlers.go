// internal/api/events/handlers.go
package events

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tennisnav/tennisnav/internal/api/apiutil"
	"github.com/tennisnav/tennisnav/internal/calendar"
	dbgen "github.com/tennisnav/tennisnav/internal/db/generated"
)

var (
	queries     *dbgen.Queries
	queriesOnce sync.Once
)

const eventsQueryTimeout = 5 * time.Second

var eventTypes = map[string]bool{
	"practice": true,
	"social":   true,
	"meeting":  true,
	"other":    true,
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *dbgen.Queries) {
	if q == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = q
	})
}

type eventView struct {
	ID        string  `json:"id"`
	TeamID    string  `json:"teamId"`
	Name      string  `json:"name"`
	EventType string  `json:"eventType"`
	EventDate string  `json:"eventDate"`
	EventTime string  `json:"eventTime"`
	Location  *string `json:"location"`
}

func toEventView(e dbgen.Event) eventView {
	return eventView{
		ID:        e.ID,
		TeamID:    e.TeamID,
		Name:      e.Name,
		EventType: e.EventType,
		EventDate: e.EventDate,
		EventTime: e.EventTime,
		Location:  apiutil.FromNullString(e.Location),
	}
}

type eventRequest struct {
	Name      string  `json:"name"`
	EventType string  `json:"eventType"`
	EventDate string  `json:"eventDate"`
	EventTime string  `json:"eventTime"`
	Location  *string `json:"location"`
}

func (req *eventRequest) validate() error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return apiutil.FieldError{Field: "name", Reason: "event name is required"}
	}
	if req.EventType == "" {
		req.EventType = "other"
	}
	if !eventTypes[req.EventType] {
		return apiutil.FieldError{Field: "eventType", Reason: "unknown event type: " + req.EventType}
	}
	if _, err := time.Parse(calendar.DateLayout, req.EventDate); err != nil {
		return apiutil.FieldError{Field: "eventDate", Reason: "event date must be YYYY-MM-DD"}
	}
	if _, err := time.Parse("15:04", req.EventTime); err != nil {
		return apiutil.FieldError{Field: "eventTime", Reason: "event time must be HH:MM"}
	}
	return nil
}

// POST /api/v1/teams/{id}/events
func HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	teamID := r.PathValue("id")
	if !apiutil.RequireTeamCaptain(w, r, queries, teamID) {
		return
	}

	var req eventRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), eventsQueryTimeout)
	defer cancel()

	event, err := queries.CreateEvent(ctx, dbgen.CreateEventParams{
		ID:        uuid.New().String(),
		TeamID:    teamID,
		Name:      req.Name,
		EventType: req.EventType,
		EventDate: req.EventDate,
		EventTime: req.EventTime,
		Location:  apiutil.ToNullString(req.Location),
	})
	if err != nil {
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to create event")
		http.Error(w, "Failed to create event", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, toEventView(event)); err != nil {
		logger.Error().Err(err).Msg("Failed to write event response")
	}
}

// GET /api/v1/teams/{id}/events?from=YYYY-MM-DD&to=YYYY-MM-DD
func HandleListEvents(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	teamID := r.PathValue("id")
	if !apiutil.RequireTeamMember(w, r, queries, teamID) {
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		http.Error(w, "from and to query parameters are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), eventsQueryTimeout)
	defer cancel()

	list, err := queries.ListEventsForTeamBetween(ctx, dbgen.ListEventsForTeamBetweenParams{
		TeamID:    teamID,
		StartDate: from,
		EndDate:   to,
	})
	if err != nil {
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to list events")
		http.Error(w, "Failed to list events", http.StatusInternalServerError)
		return
	}

	views := make([]eventView, 0, len(list))
	for _, e := range list {
		views = append(views, toEventView(e))
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, views); err != nil {
		logger.Error().Err(err).Msg("Failed to write events response")
	}
}

// DELETE /api/v1/events/{id}
func HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	eventID := r.PathValue("id")

	ctx, cancel := context.WithTimeout(r.Context(), eventsQueryTimeout)
	defer cancel()

	event, err := queries.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("event_id", eventID).Msg("Failed to load event")
		http.Error(w, "Failed to load event", http.StatusInternalServerError)
		return
	}

	if !apiutil.RequireTeamCaptain(w, r, queries, event.TeamID) {
		return
	}

	if err := queries.DeleteEvent(ctx, eventID); err != nil {
		logger.Error().Err(err).Str("event_id", eventID).Msg("Failed to delete event")
		http.Error(w, "Failed to delete event", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
