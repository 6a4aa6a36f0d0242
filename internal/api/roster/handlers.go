// internal/api/roster/handlers.go
package roster

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"github.com/rs/zerolog/log"

	"github.com/tennisnav/tennisnav/internal/api/apiutil"
	dbgen "github.com/tennisnav/tennisnav/internal/db/generated"
	"github.com/tennisnav/tennisnav/internal/email"
)

var (
	queries     *dbgen.Queries
	mailer      email.EmailSender
	appBaseURL  string
	queriesOnce sync.Once
)

const rosterQueryTimeout = 5 * time.Second

// defaultPhoneRegion applies when members enter a national number with no
// country prefix.
const defaultPhoneRegion = "US"

// InitHandlers must be called during server startup before handling requests.
// The mailer may be nil; invitation emails are skipped in that case.
func InitHandlers(q *dbgen.Queries, sender email.EmailSender, baseURL string) {
	if q == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = q
		mailer = sender
		appBaseURL = strings.TrimRight(baseURL, "/")
	})
}

// normalizePhone formats a raw phone entry as E.164 so roster exports and
// group texts get a consistent shape. Empty input stays empty.
func normalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	parsed, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil {
		return "", err
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", errors.New("invalid phone number")
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

type memberView struct {
	ID         string   `json:"id"`
	TeamID     string   `json:"teamId"`
	UserID     *string  `json:"userId"`
	FullName   string   `json:"fullName"`
	Email      *string  `json:"email"`
	Phone      *string  `json:"phone"`
	NTRPRating *float64 `json:"ntrpRating"`
	IsActive   bool     `json:"isActive"`
}

func toMemberView(m dbgen.RosterMember) memberView {
	return memberView{
		ID:         m.ID,
		TeamID:     m.TeamID,
		UserID:     apiutil.FromNullString(m.UserID),
		FullName:   m.FullName,
		Email:      apiutil.FromNullString(m.Email),
		Phone:      apiutil.FromNullString(m.Phone),
		NTRPRating: apiutil.FromNullFloat64(m.NtrpRating),
		IsActive:   m.IsActive,
	}
}

// GET /api/v1/teams/{id}/roster
func HandleListRoster(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	teamID := r.PathValue("id")
	if !apiutil.RequireTeamMember(w, r, queries, teamID) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), rosterQueryTimeout)
	defer cancel()

	var (
		members []dbgen.RosterMember
		err     error
	)
	if r.URL.Query().Get("include_inactive") == "true" {
		members, err = queries.ListRosterMembers(ctx, teamID)
	} else {
		members, err = queries.ListActiveRosterMembers(ctx, teamID)
	}
	if err != nil {
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to list roster")
		http.Error(w, "Failed to list roster", http.StatusInternalServerError)
		return
	}

	views := make([]memberView, 0, len(members))
	for _, m := range members {
		views = append(views, toMemberView(m))
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, views); err != nil {
		logger.Error().Err(err).Msg("Failed to write roster response")
	}
}

type memberRequest struct {
	FullName   string   `json:"fullName"`
	Email      *string  `json:"email"`
	Phone      *string  `json:"phone"`
	NTRPRating *float64 `json:"ntrpRating"`
}

func (req *memberRequest) validate() error {
	req.FullName = strings.TrimSpace(req.FullName)
	if req.FullName == "" {
		return apiutil.FieldError{Field: "fullName", Reason: "full name is required"}
	}
	if req.NTRPRating != nil && (*req.NTRPRating < 1.0 || *req.NTRPRating > 7.0) {
		return apiutil.FieldError{Field: "ntrpRating", Reason: "NTRP rating must be between 1.0 and 7.0"}
	}
	if req.Phone != nil {
		normalized, err := normalizePhone(*req.Phone)
		if err != nil {
			return apiutil.FieldError{Field: "phone", Reason: "invalid phone number"}
		}
		if normalized == "" {
			req.Phone = nil
		} else {
			req.Phone = &normalized
		}
	}
	if req.Email != nil {
		trimmed := strings.ToLower(strings.TrimSpace(*req.Email))
		if trimmed == "" {
			req.Email = nil
		} else {
			req.Email = &trimmed
		}
	}
	return nil
}

// POST /api/v1/teams/{id}/roster
func HandleAddMember(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	teamID := r.PathValue("id")
	if !apiutil.RequireTeamCaptain(w, r, queries, teamID) {
		return
	}

	var req memberRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), rosterQueryTimeout)
	defer cancel()

	member, err := queries.CreateRosterMember(ctx, dbgen.CreateRosterMemberParams{
		ID:         uuid.New().String(),
		TeamID:     teamID,
		FullName:   req.FullName,
		Email:      apiutil.ToNullString(req.Email),
		Phone:      apiutil.ToNullString(req.Phone),
		NtrpRating: apiutil.ToNullFloat64(req.NTRPRating),
	})
	if err != nil {
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to add roster member")
		http.Error(w, "Failed to add roster member", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, toMemberView(member)); err != nil {
		logger.Error().Err(err).Msg("Failed to write member response")
	}
}

// PUT /api/v1/roster/{id}
func HandleUpdateMember(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	memberID := r.PathValue("id")
	member, ok := loadMemberForCaptain(w, r, memberID)
	if !ok {
		return
	}

	var req memberRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), rosterQueryTimeout)
	defer cancel()

	updated, err := queries.UpdateRosterMember(ctx, dbgen.UpdateRosterMemberParams{
		FullName:   req.FullName,
		Email:      apiutil.ToNullString(req.Email),
		Phone:      apiutil.ToNullString(req.Phone),
		NtrpRating: apiutil.ToNullFloat64(req.NTRPRating),
		ID:         member.ID,
	})
	if err != nil {
		logger.Error().Err(err).Str("member_id", memberID).Msg("Failed to update roster member")
		http.Error(w, "Failed to update roster member", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, toMemberView(updated)); err != nil {
		logger.Error().Err(err).Msg("Failed to write member response")
	}
}

// DELETE /api/v1/roster/{id}
//
// Members are deactivated rather than deleted so historical lineups keep
// their player references.
func HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	memberID := r.PathValue("id")
	member, ok := loadMemberForCaptain(w, r, memberID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), rosterQueryTimeout)
	defer cancel()

	if err := queries.DeactivateRosterMember(ctx, member.ID); err != nil {
		logger.Error().Err(err).Str("member_id", memberID).Msg("Failed to deactivate roster member")
		http.Error(w, "Failed to remove roster member", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// loadMemberForCaptain resolves a roster member and enforces that the caller
// captains the member's team.
func loadMemberForCaptain(w http.ResponseWriter, r *http.Request, memberID string) (dbgen.RosterMember, bool) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), rosterQueryTimeout)
	defer cancel()

	member, err := queries.GetRosterMember(ctx, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Roster member not found", http.StatusNotFound)
			return dbgen.RosterMember{}, false
		}
		logger.Error().Err(err).Str("member_id", memberID).Msg("Failed to load roster member")
		http.Error(w, "Failed to load roster member", http.StatusInternalServerError)
		return dbgen.RosterMember{}, false
	}

	if !apiutil.RequireTeamCaptain(w, r, queries, member.TeamID) {
		return dbgen.RosterMember{}, false
	}
	return member, true
}
