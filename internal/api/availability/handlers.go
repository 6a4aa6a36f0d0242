// internal/api/availability/handlers.go
package availability

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tennisnav/tennisnav/internal/api/apiutil"
	"github.com/tennisnav/tennisnav/internal/api/authz"
	"github.com/tennisnav/tennisnav/internal/calendar"
	dbgen "github.com/tennisnav/tennisnav/internal/db/generated"
	"github.com/tennisnav/tennisnav/internal/lineup"
)

var (
	queries     *dbgen.Queries
	queriesOnce sync.Once
)

const availabilityQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *dbgen.Queries) {
	if q == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = q
	})
}

func validStatus(status string) bool {
	switch lineup.Status(status) {
	case lineup.StatusAvailable, lineup.StatusUnavailable, lineup.StatusMaybe,
		lineup.StatusLate, lineup.StatusLastResort:
		return true
	}
	return false
}

// resolveItemTeam maps an availability item to its owning team.
func resolveItemTeam(ctx context.Context, itemID, itemType string) (string, error) {
	switch itemType {
	case "match":
		match, err := queries.GetMatch(ctx, itemID)
		if err != nil {
			return "", err
		}
		return match.TeamID, nil
	case "event":
		event, err := queries.GetEvent(ctx, itemID)
		if err != nil {
			return "", err
		}
		return event.TeamID, nil
	}
	return "", apiutil.FieldError{Field: "itemType", Reason: "item type must be match or event"}
}

type markRequest struct {
	ItemID   string `json:"itemId"`
	ItemType string `json:"itemType"`
	Status   string `json:"status"`
}

type markView struct {
	ID             string    `json:"id"`
	RosterMemberID string    `json:"rosterMemberId"`
	ItemID         string    `json:"itemId"`
	ItemType       string    `json:"itemType"`
	Status         string    `json:"status"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toMarkView(a dbgen.Availability) markView {
	return markView{
		ID:             a.ID,
		RosterMemberID: a.RosterMemberID,
		ItemID:         a.ItemID,
		ItemType:       a.ItemType,
		Status:         a.Status,
		UpdatedAt:      a.UpdatedAt,
	}
}

// PUT /api/v1/availability
//
// Upserts the caller's mark for a match or event. Re-marking replaces the
// previous status.
func HandleUpsertMark(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user := authz.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req markRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ItemID == "" {
		http.Error(w, "Item id is required", http.StatusBadRequest)
		return
	}
	if !validStatus(req.Status) {
		http.Error(w, "Unknown availability status: "+req.Status, http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), availabilityQueryTimeout)
	defer cancel()

	teamID, err := resolveItemTeam(ctx, req.ItemID, req.ItemType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		var fieldErr apiutil.FieldError
		if errors.As(err, &fieldErr) {
			http.Error(w, fieldErr.Error(), http.StatusBadRequest)
			return
		}
		logger.Error().Err(err).Str("item_id", req.ItemID).Msg("Failed to resolve availability item")
		http.Error(w, "Failed to save availability", http.StatusInternalServerError)
		return
	}

	member, err := queries.GetRosterMemberForUser(ctx, dbgen.GetRosterMemberForUserParams{
		TeamID: teamID,
		UserID: sql.NullString{String: user.ID, Valid: true},
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "You are not on this team's roster", http.StatusForbidden)
			return
		}
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to resolve roster member")
		http.Error(w, "Failed to save availability", http.StatusInternalServerError)
		return
	}

	mark, err := queries.UpsertAvailability(ctx, dbgen.UpsertAvailabilityParams{
		ID:             uuid.New().String(),
		RosterMemberID: member.ID,
		ItemID:         req.ItemID,
		ItemType:       req.ItemType,
		Status:         req.Status,
	})
	if err != nil {
		logger.Error().Err(err).Str("item_id", req.ItemID).Msg("Failed to upsert availability")
		http.Error(w, "Failed to save availability", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, toMarkView(mark)); err != nil {
		logger.Error().Err(err).Msg("Failed to write availability response")
	}
}

// DELETE /api/v1/availability?item_id=...&item_type=...
//
// Clears the caller's mark so the player goes back to "not set".
func HandleClearMark(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user := authz.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	itemID := r.URL.Query().Get("item_id")
	itemType := r.URL.Query().Get("item_type")
	if itemID == "" {
		http.Error(w, "item_id is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), availabilityQueryTimeout)
	defer cancel()

	teamID, err := resolveItemTeam(ctx, itemID, itemType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		var fieldErr apiutil.FieldError
		if errors.As(err, &fieldErr) {
			http.Error(w, fieldErr.Error(), http.StatusBadRequest)
			return
		}
		logger.Error().Err(err).Str("item_id", itemID).Msg("Failed to resolve availability item")
		http.Error(w, "Failed to clear availability", http.StatusInternalServerError)
		return
	}

	member, err := queries.GetRosterMemberForUser(ctx, dbgen.GetRosterMemberForUserParams{
		TeamID: teamID,
		UserID: sql.NullString{String: user.ID, Valid: true},
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "You are not on this team's roster", http.StatusForbidden)
			return
		}
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to resolve roster member")
		http.Error(w, "Failed to clear availability", http.StatusInternalServerError)
		return
	}

	if err := queries.DeleteAvailability(ctx, dbgen.DeleteAvailabilityParams{
		RosterMemberID: member.ID,
		ItemID:         itemID,
	}); err != nil {
		logger.Error().Err(err).Str("item_id", itemID).Msg("Failed to clear availability")
		http.Error(w, "Failed to clear availability", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/items/{id}/availability?item_type=match
//
// Lists every mark for an item alongside the roster so captains see who has
// not responded.
func HandleListItemAvailability(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	itemID := r.PathValue("id")
	itemType := r.URL.Query().Get("item_type")
	if itemType == "" {
		itemType = "match"
	}

	ctx, cancel := context.WithTimeout(r.Context(), availabilityQueryTimeout)
	defer cancel()

	teamID, err := resolveItemTeam(ctx, itemID, itemType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		var fieldErr apiutil.FieldError
		if errors.As(err, &fieldErr) {
			http.Error(w, fieldErr.Error(), http.StatusBadRequest)
			return
		}
		logger.Error().Err(err).Str("item_id", itemID).Msg("Failed to resolve availability item")
		http.Error(w, "Failed to list availability", http.StatusInternalServerError)
		return
	}

	if !apiutil.RequireTeamMember(w, r, queries, teamID) {
		return
	}

	marks, err := queries.ListAvailabilityForItem(ctx, itemID)
	if err != nil {
		logger.Error().Err(err).Str("item_id", itemID).Msg("Failed to list availability")
		http.Error(w, "Failed to list availability", http.StatusInternalServerError)
		return
	}

	views := make([]markView, 0, len(marks))
	for _, mark := range marks {
		views = append(views, toMarkView(mark))
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, views); err != nil {
		logger.Error().Err(err).Msg("Failed to write availability response")
	}
}

// GET /api/v1/availability/slots?start_hour=6&end_hour=22&step=30
//
// Returns the HH:MM slot labels the availability grid renders.
func HandleTimeSlots(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	startHour := intQueryParam(r, "start_hour", 6)
	endHour := intQueryParam(r, "end_hour", 22)
	step := intQueryParam(r, "step", 30)

	slots, err := calendar.TimeSlots(startHour, endHour, step)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"slots": slots}); err != nil {
		logger.Error().Err(err).Msg("Failed to write time slots response")
	}
}

func intQueryParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
