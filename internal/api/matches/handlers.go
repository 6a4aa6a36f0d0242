// internal/api/matches/handlers.go
package matches

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
	"github.com/tennisnav/tennisnav/internal/db"
	dbgen "github.com/tennisnav/tennisnav/internal/db/generated"
)

var (
	database    *db.DB
	queries     *dbgen.Queries
	queriesOnce sync.Once
)

const matchesQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(d *db.DB) {
	if d == nil {
		return
	}
	queriesOnce.Do(func() {
		database = d
		queries = d.Queries
	})
}

type matchView struct {
	ID           string  `json:"id"`
	TeamID       string  `json:"teamId"`
	OpponentName string  `json:"opponentName"`
	MatchDate    string  `json:"matchDate"`
	MatchTime    string  `json:"matchTime"`
	Location     *string `json:"location"`
	IsHome       bool    `json:"isHome"`
}

func toMatchView(m dbgen.Match) matchView {
	return matchView{
		ID:           m.ID,
		TeamID:       m.TeamID,
		OpponentName: m.OpponentName,
		MatchDate:    m.MatchDate,
		MatchTime:    m.MatchTime,
		Location:     apiutil.FromNullString(m.Location),
		IsHome:       m.IsHome,
	}
}

type matchRequest struct {
	OpponentName string  `json:"opponentName"`
	MatchDate    string  `json:"matchDate"`
	MatchTime    string  `json:"matchTime"`
	Location     *string `json:"location"`
	IsHome       bool    `json:"isHome"`
}

func (req *matchRequest) validate() error {
	req.OpponentName = strings.TrimSpace(req.OpponentName)
	if req.OpponentName == "" {
		return apiutil.FieldError{Field: "opponentName", Reason: "opponent name is required"}
	}
	if _, err := time.Parse(calendar.DateLayout, req.MatchDate); err != nil {
		return apiutil.FieldError{Field: "matchDate", Reason: "match date must be YYYY-MM-DD"}
	}
	if _, err := time.Parse("15:04", req.MatchTime); err != nil {
		return apiutil.FieldError{Field: "matchTime", Reason: "match time must be HH:MM"}
	}
	return nil
}

// POST /api/v1/teams/{id}/matches
func HandleCreateMatch(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	teamID := r.PathValue("id")
	if !apiutil.RequireTeamCaptain(w, r, queries, teamID) {
		return
	}

	var req matchRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchesQueryTimeout)
	defer cancel()

	match, err := queries.CreateMatch(ctx, dbgen.CreateMatchParams{
		ID:           uuid.New().String(),
		TeamID:       teamID,
		OpponentName: req.OpponentName,
		MatchDate:    req.MatchDate,
		MatchTime:    req.MatchTime,
		Location:     apiutil.ToNullString(req.Location),
		IsHome:       req.IsHome,
	})
	if err != nil {
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to create match")
		http.Error(w, "Failed to create match", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, toMatchView(match)); err != nil {
		logger.Error().Err(err).Msg("Failed to write match response")
	}
}

// GET /api/v1/teams/{id}/matches?from=YYYY-MM-DD&to=YYYY-MM-DD
func HandleListMatches(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	teamID := r.PathValue("id")
	if !apiutil.RequireTeamMember(w, r, queries, teamID) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchesQueryTimeout)
	defer cancel()

	var (
		list []dbgen.Match
		err  error
	)
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from != "" && to != "" {
		list, err = queries.ListMatchesForTeamBetween(ctx, dbgen.ListMatchesForTeamBetweenParams{
			TeamID:    teamID,
			StartDate: from,
			EndDate:   to,
		})
	} else {
		list, err = queries.ListMatchesForTeam(ctx, teamID)
	}
	if err != nil {
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to list matches")
		http.Error(w, "Failed to list matches", http.StatusInternalServerError)
		return
	}

	views := make([]matchView, 0, len(list))
	for _, m := range list {
		views = append(views, toMatchView(m))
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, views); err != nil {
		logger.Error().Err(err).Msg("Failed to write matches response")
	}
}

// GET /api/v1/matches/{id}
func HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	match, ok := loadMatchForMember(w, r, r.PathValue("id"))
	if !ok {
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, toMatchView(match)); err != nil {
		logger.Error().Err(err).Msg("Failed to write match response")
	}
}

// DELETE /api/v1/matches/{id}
func HandleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	matchID := r.PathValue("id")
	match, ok := loadMatch(w, r, matchID)
	if !ok {
		return
	}
	if !apiutil.RequireTeamCaptain(w, r, queries, match.TeamID) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchesQueryTimeout)
	defer cancel()

	err := database.RunInTx(ctx, func(tx *dbgen.Queries) error {
		if err := tx.DeleteLineupsForMatch(ctx, matchID); err != nil {
			return err
		}
		return tx.DeleteMatch(ctx, matchID)
	})
	if err != nil {
		logger.Error().Err(err).Str("match_id", matchID).Msg("Failed to delete match")
		http.Error(w, "Failed to delete match", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func loadMatch(w http.ResponseWriter, r *http.Request, matchID string) (dbgen.Match, bool) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), matchesQueryTimeout)
	defer cancel()

	match, err := queries.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Match not found", http.StatusNotFound)
			return dbgen.Match{}, false
		}
		logger.Error().Err(err).Str("match_id", matchID).Msg("Failed to load match")
		http.Error(w, "Failed to load match", http.StatusInternalServerError)
		return dbgen.Match{}, false
	}
	return match, true
}

// LoadMatchForMember is shared with the lineup and availability handlers,
// which address matches directly by id.
func LoadMatchForMember(w http.ResponseWriter, r *http.Request, q *dbgen.Queries, matchID string) (dbgen.Match, bool) {
	queriesOnce.Do(func() { queries = q })
	return loadMatchForMember(w, r, matchID)
}

func loadMatchForMember(w http.ResponseWriter, r *http.Request, matchID string) (dbgen.Match, bool) {
	match, ok := loadMatch(w, r, matchID)
	if !ok {
		return dbgen.Match{}, false
	}
	if !apiutil.RequireTeamMember(w, r, queries, match.TeamID) {
		return dbgen.Match{}, false
	}
	return match, true
}
