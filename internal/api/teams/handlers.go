// internal/api/teams/handlers.go
package teams

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tennisnav/tennisnav/internal/api/apiutil"
	"github.com/tennisnav/tennisnav/internal/api/authz"
	dbgen "github.com/tennisnav/tennisnav/internal/db/generated"
	"github.com/tennisnav/tennisnav/internal/lineup"
)

var (
	queries     *dbgen.Queries
	queriesOnce sync.Once
)

const teamsQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *dbgen.Queries) {
	if q == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = q
	})
}

type teamView struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	CaptainUserID  string   `json:"captainUserId"`
	RatingLimit    *float64 `json:"ratingLimit"`
	TotalLines     int64    `json:"totalLines"`
	LineMatchTypes []string `json:"lineMatchTypes"`
	IsCaptain      bool     `json:"isCaptain"`
}

func toTeamView(team dbgen.Team, user *authz.AuthUser) teamView {
	return teamView{
		ID:             team.ID,
		Name:           team.Name,
		CaptainUserID:  team.CaptainUserID,
		RatingLimit:    apiutil.FromNullFloat64(team.RatingLimit),
		TotalLines:     team.TotalLines,
		LineMatchTypes: DecodeLineTypes(team.LineMatchTypes, int(team.TotalLines)),
		IsCaptain:      authz.IsTeamCaptain(user, team),
	}
}

// DecodeLineTypes parses the stored line type JSON, padding or truncating
// to totalLines so callers always see one entry per court slot.
func DecodeLineTypes(stored string, totalLines int) []string {
	var raw []string
	if stored != "" {
		if err := json.Unmarshal([]byte(stored), &raw); err != nil {
			raw = nil
		}
	}

	config := lineup.LineConfig{TotalLines: totalLines}
	for _, t := range raw {
		config.LineTypes = append(config.LineTypes, lineup.LineType(t))
	}
	normalized := config.Normalized()

	types := make([]string, 0, len(normalized.LineTypes))
	for _, t := range normalized.LineTypes {
		types = append(types, string(t))
	}
	return types
}

func encodeLineTypes(types []string) (string, error) {
	for _, t := range types {
		switch lineup.LineType(t) {
		case lineup.LineSingles, lineup.LineDoubles, lineup.LineMixed:
		default:
			return "", apiutil.FieldError{Field: "lineMatchTypes", Reason: "unknown line type: " + t}
		}
	}
	encoded, err := json.Marshal(types)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

type createTeamRequest struct {
	Name           string   `json:"name"`
	RatingLimit    *float64 `json:"ratingLimit"`
	TotalLines     int64    `json:"totalLines"`
	LineMatchTypes []string `json:"lineMatchTypes"`
}

// POST /api/v1/teams
func HandleCreateTeam(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user := authz.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createTeamRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "Team name is required", http.StatusBadRequest)
		return
	}
	if req.TotalLines <= 0 {
		req.TotalLines = int64(len(req.LineMatchTypes))
	}
	if req.TotalLines <= 0 {
		http.Error(w, "Total lines must be positive", http.StatusBadRequest)
		return
	}
	if req.RatingLimit != nil && *req.RatingLimit <= 0 {
		http.Error(w, "Rating limit must be positive", http.StatusBadRequest)
		return
	}

	lineTypes := DecodeLineTypes("", int(req.TotalLines))
	copy(lineTypes, req.LineMatchTypes)
	encoded, err := encodeLineTypes(lineTypes)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamsQueryTimeout)
	defer cancel()

	team, err := queries.CreateTeam(ctx, dbgen.CreateTeamParams{
		ID:             uuid.New().String(),
		Name:           req.Name,
		CaptainUserID:  user.ID,
		RatingLimit:    apiutil.ToNullFloat64(req.RatingLimit),
		TotalLines:     req.TotalLines,
		LineMatchTypes: encoded,
	})
	if err != nil {
		logger.Error().Err(err).Str("name", req.Name).Msg("Failed to create team")
		http.Error(w, "Failed to create team", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, toTeamView(team, user)); err != nil {
		logger.Error().Err(err).Msg("Failed to write team response")
	}
}

// GET /api/v1/teams
func HandleListTeams(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user := authz.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamsQueryTimeout)
	defer cancel()

	teams, err := queries.ListTeamsForUser(ctx, user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list teams")
		http.Error(w, "Failed to list teams", http.StatusInternalServerError)
		return
	}

	views := make([]teamView, 0, len(teams))
	for _, team := range teams {
		views = append(views, toTeamView(team, user))
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, views); err != nil {
		logger.Error().Err(err).Msg("Failed to write teams response")
	}
}

// GET /api/v1/teams/{id}
func HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	teamID := r.PathValue("id")
	if !apiutil.RequireTeamMember(w, r, queries, teamID) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamsQueryTimeout)
	defer cancel()

	team, err := queries.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Team not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to load team")
		http.Error(w, "Failed to load team", http.StatusInternalServerError)
		return
	}

	user := authz.UserFromContext(r.Context())
	if err := apiutil.WriteJSON(w, http.StatusOK, toTeamView(team, user)); err != nil {
		logger.Error().Err(err).Msg("Failed to write team response")
	}
}

type lineupSettingsRequest struct {
	RatingLimit    *float64 `json:"ratingLimit"`
	TotalLines     int64    `json:"totalLines"`
	LineMatchTypes []string `json:"lineMatchTypes"`
}

// PUT /api/v1/teams/{id}/lineup-settings
func HandleUpdateLineupSettings(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	teamID := r.PathValue("id")
	if !apiutil.RequireTeamCaptain(w, r, queries, teamID) {
		return
	}

	var req lineupSettingsRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.TotalLines <= 0 {
		http.Error(w, "Total lines must be positive", http.StatusBadRequest)
		return
	}
	if req.RatingLimit != nil && *req.RatingLimit <= 0 {
		http.Error(w, "Rating limit must be positive", http.StatusBadRequest)
		return
	}

	lineTypes := DecodeLineTypes("", int(req.TotalLines))
	copy(lineTypes, req.LineMatchTypes)
	encoded, err := encodeLineTypes(lineTypes)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamsQueryTimeout)
	defer cancel()

	team, err := queries.UpdateTeamLineupSettings(ctx, dbgen.UpdateTeamLineupSettingsParams{
		RatingLimit:    apiutil.ToNullFloat64(req.RatingLimit),
		TotalLines:     req.TotalLines,
		LineMatchTypes: encoded,
		ID:             teamID,
	})
	if err != nil {
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to update lineup settings")
		http.Error(w, "Failed to update lineup settings", http.StatusInternalServerError)
		return
	}

	user := authz.UserFromContext(r.Context())
	if err := apiutil.WriteJSON(w, http.StatusOK, toTeamView(team, user)); err != nil {
		logger.Error().Err(err).Msg("Failed to write team response")
	}
}

// DELETE /api/v1/teams/{id}
func HandleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	teamID := r.PathValue("id")
	if !apiutil.RequireTeamCaptain(w, r, queries, teamID) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamsQueryTimeout)
	defer cancel()

	if err := queries.DeleteTeam(ctx, teamID); err != nil {
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to delete team")
		http.Error(w, "Failed to delete team", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
