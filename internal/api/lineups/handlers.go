// internal/api/lineups/handlers.go
package lineups

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tennisnav/tennisnav/internal/api/apiutil"
	"github.com/tennisnav/tennisnav/internal/api/matches"
	"github.com/tennisnav/tennisnav/internal/api/teams"
	"github.com/tennisnav/tennisnav/internal/db"
	dbgen "github.com/tennisnav/tennisnav/internal/db/generated"
	"github.com/tennisnav/tennisnav/internal/email"
	"github.com/tennisnav/tennisnav/internal/lineup"
)

var (
	database    *db.DB
	queries     *dbgen.Queries
	mailer      email.EmailSender
	queriesOnce sync.Once
)

const lineupsQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
// The mailer may be nil; publish notifications are skipped in that case.
func InitHandlers(d *db.DB, sender email.EmailSender) {
	if d == nil {
		return
	}
	queriesOnce.Do(func() {
		database = d
		queries = d.Queries
		mailer = sender
	})
}

type slotView struct {
	Court          int         `json:"court"`
	LineType       string      `json:"lineType"`
	Player1        *playerView `json:"player1"`
	Player2        *playerView `json:"player2"`
	CombinedRating float64     `json:"combinedRating"`
	OverLimit      bool        `json:"overLimit"`
}

type playerView struct {
	ID         string   `json:"id"`
	FullName   string   `json:"fullName"`
	NTRPRating *float64 `json:"ntrpRating"`
	Status     string   `json:"status"`
}

type stateView struct {
	MatchID     string           `json:"matchId"`
	IsPublished bool             `json:"isPublished"`
	RatingLimit *float64         `json:"ratingLimit"`
	Slots       []slotView       `json:"slots"`
	Buckets     bucketsView      `json:"buckets"`
	Unassigned  []playerView     `json:"unassigned"`
}

type bucketsView struct {
	Available   []playerView `json:"available"`
	Unavailable []playerView `json:"unavailable"`
	NotSet      []playerView `json:"notSet"`
}

// loadEngineState assembles the lineup engine inputs for a match: the team's
// court configuration, the active roster, the availability marks for the
// match, and any saved lineup rows.
func loadEngineState(ctx context.Context, match dbgen.Match) (lineup.State, dbgen.Team, []dbgen.Lineup, error) {
	team, err := queries.GetTeam(ctx, match.TeamID)
	if err != nil {
		return lineup.State{}, dbgen.Team{}, nil, fmt.Errorf("load team: %w", err)
	}

	roster, err := queries.ListActiveRosterMembers(ctx, team.ID)
	if err != nil {
		return lineup.State{}, dbgen.Team{}, nil, fmt.Errorf("load roster: %w", err)
	}

	marks, err := queries.ListAvailabilityForItem(ctx, match.ID)
	if err != nil {
		return lineup.State{}, dbgen.Team{}, nil, fmt.Errorf("load availability: %w", err)
	}

	rows, err := queries.ListLineupsForMatch(ctx, match.ID)
	if err != nil {
		return lineup.State{}, dbgen.Team{}, nil, fmt.Errorf("load lineups: %w", err)
	}

	cfg := lineup.LineConfig{TotalLines: int(team.TotalLines)}
	for _, t := range teams.DecodeLineTypes(team.LineMatchTypes, int(team.TotalLines)) {
		cfg.LineTypes = append(cfg.LineTypes, lineup.LineType(t))
	}

	players := make([]lineup.Player, 0, len(roster))
	for _, m := range roster {
		players = append(players, lineup.Player{
			ID:         m.ID,
			FullName:   m.FullName,
			NTRPRating: apiutil.FromNullFloat64(m.NtrpRating),
			IsActive:   m.IsActive,
		})
	}

	engineMarks := make([]lineup.Mark, 0, len(marks))
	for _, mark := range marks {
		engineMarks = append(engineMarks, lineup.Mark{
			RosterMemberID: mark.RosterMemberID,
			Status:         lineup.Status(mark.Status),
		})
	}

	engineRows := make([]lineup.Row, 0, len(rows))
	for _, row := range rows {
		engineRows = append(engineRows, lineup.Row{
			LineupID:  row.ID,
			CourtSlot: int(row.CourtSlot),
			Player1ID: apiutil.FromNullString(row.Player1ID),
			Player2ID: apiutil.FromNullString(row.Player2ID),
		})
	}

	return lineup.NewState(cfg, players, engineMarks, engineRows), team, rows, nil
}

func toPlayerView(state lineup.State, p *lineup.Player) *playerView {
	if p == nil {
		return nil
	}
	status := "not_set"
	if mark, ok := state.MarkFor(p.ID); ok {
		status = string(mark)
	}
	return &playerView{
		ID:         p.ID,
		FullName:   p.FullName,
		NTRPRating: p.NTRPRating,
		Status:     status,
	}
}

func toPlayerViews(state lineup.State, players []lineup.Player) []playerView {
	views := make([]playerView, 0, len(players))
	for i := range players {
		views = append(views, *toPlayerView(state, &players[i]))
	}
	return views
}

func toStateView(state lineup.State, match dbgen.Match, team dbgen.Team, rows []dbgen.Lineup) stateView {
	cfg := state.Config()
	ratingLimit := apiutil.FromNullFloat64(team.RatingLimit)

	published := false
	for _, row := range rows {
		if row.IsPublished {
			published = true
			break
		}
	}

	slots := state.Slots()
	slotViews := make([]slotView, 0, len(slots))
	for i, slot := range slots {
		isSingles := cfg.IsSingles(i)
		slotViews = append(slotViews, slotView{
			Court:          slot.Court,
			LineType:       string(cfg.LineTypes[i]),
			Player1:        toPlayerView(state, slot.Player1),
			Player2:        toPlayerView(state, slot.Player2),
			CombinedRating: lineup.CombinedRating(slot, isSingles),
			OverLimit:      lineup.OverLimit(slot, isSingles, ratingLimit),
		})
	}

	buckets := state.Classify()
	return stateView{
		MatchID:     match.ID,
		IsPublished: published,
		RatingLimit: ratingLimit,
		Slots:       slotViews,
		Buckets: bucketsView{
			Available:   toPlayerViews(state, buckets.Available),
			Unavailable: toPlayerViews(state, buckets.Unavailable),
			NotSet:      toPlayerViews(state, buckets.NotSet),
		},
		Unassigned: toPlayerViews(state, state.Unassigned()),
	}
}

// GET /api/v1/matches/{id}/lineup
func HandleGetLineup(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	match, ok := matches.LoadMatchForMember(w, r, queries, r.PathValue("id"))
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), lineupsQueryTimeout)
	defer cancel()

	state, team, rows, err := loadEngineState(ctx, match)
	if err != nil {
		logger.Error().Err(err).Str("match_id", match.ID).Msg("Failed to load lineup state")
		http.Error(w, "Failed to load lineup", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, toStateView(state, match, team, rows)); err != nil {
		logger.Error().Err(err).Msg("Failed to write lineup response")
	}
}

type savePlanRequest struct {
	Rows []planRowRequest `json:"rows"`
}

type planRowRequest struct {
	CourtNumber int     `json:"courtNumber"`
	Player1ID   *string `json:"player1Id"`
	Player2ID   *string `json:"player2Id"`
}

// PUT /api/v1/matches/{id}/lineup
//
// Replaces the saved lineup plan. The rows are rebuilt through the engine so
// unknown players and singles second slots never reach storage.
func HandleSavePlan(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	match, ok := matches.LoadMatchForMember(w, r, queries, r.PathValue("id"))
	if !ok {
		return
	}
	if !apiutil.RequireTeamCaptain(w, r, queries, match.TeamID) {
		return
	}

	var req savePlanRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), lineupsQueryTimeout)
	defer cancel()

	state, team, rows, err := loadEngineState(ctx, match)
	if err != nil {
		logger.Error().Err(err).Str("match_id", match.ID).Msg("Failed to load lineup state")
		http.Error(w, "Failed to save lineup", http.StatusInternalServerError)
		return
	}

	submitted := make([]lineup.Row, 0, len(req.Rows))
	for _, row := range req.Rows {
		submitted = append(submitted, lineup.Row{
			CourtSlot: row.CourtNumber,
			Player1ID: row.Player1ID,
			Player2ID: row.Player2ID,
		})
	}
	next := lineup.NewState(state.Config(), rosterFromState(state), marksFromState(state), submitted)
	plan := next.Plan()

	published := false
	for _, row := range rows {
		if row.IsPublished {
			published = true
			break
		}
	}

	err = database.RunInTx(ctx, func(tx *dbgen.Queries) error {
		if err := tx.DeleteLineupsForMatch(ctx, match.ID); err != nil {
			return err
		}
		for _, row := range plan {
			if _, err := tx.UpsertLineup(ctx, dbgen.UpsertLineupParams{
				ID:          uuid.New().String(),
				MatchID:     match.ID,
				CourtSlot:   int64(row.CourtNumber),
				Player1ID:   apiutil.ToNullString(row.Player1ID),
				Player2ID:   apiutil.ToNullString(row.Player2ID),
				IsPublished: published,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Str("match_id", match.ID).Msg("Failed to save lineup rows")
		http.Error(w, "Failed to save lineup", http.StatusInternalServerError)
		return
	}

	saved, err := queries.ListLineupsForMatch(ctx, match.ID)
	if err != nil {
		logger.Error().Err(err).Str("match_id", match.ID).Msg("Failed to reload lineup rows")
		http.Error(w, "Failed to save lineup", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, toStateView(next, match, team, saved)); err != nil {
		logger.Error().Err(err).Msg("Failed to write lineup response")
	}
}

// rosterFromState reconstructs the roster slice the engine was built with.
func rosterFromState(state lineup.State) []lineup.Player {
	players := state.Unassigned()
	for _, slot := range state.Slots() {
		if slot.Player1 != nil {
			players = append(players, *slot.Player1)
		}
		if slot.Player2 != nil {
			players = append(players, *slot.Player2)
		}
	}
	return players
}

func marksFromState(state lineup.State) []lineup.Mark {
	var marks []lineup.Mark
	for _, p := range rosterFromState(state) {
		if status, ok := state.MarkFor(p.ID); ok {
			marks = append(marks, lineup.Mark{RosterMemberID: p.ID, Status: status})
		}
	}
	return marks
}

// POST /api/v1/matches/{id}/lineup/publish
//
// Marks the saved plan published and notifies assigned players by email.
func HandlePublish(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	match, ok := matches.LoadMatchForMember(w, r, queries, r.PathValue("id"))
	if !ok {
		return
	}
	if !apiutil.RequireTeamCaptain(w, r, queries, match.TeamID) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), lineupsQueryTimeout)
	defer cancel()

	rows, err := queries.ListLineupsForMatch(ctx, match.ID)
	if err != nil {
		logger.Error().Err(err).Str("match_id", match.ID).Msg("Failed to load lineup rows")
		http.Error(w, "Failed to publish lineup", http.StatusInternalServerError)
		return
	}
	if len(rows) == 0 {
		http.Error(w, "No saved lineup to publish", http.StatusConflict)
		return
	}

	if err := queries.PublishLineupsForMatch(ctx, match.ID); err != nil {
		logger.Error().Err(err).Str("match_id", match.ID).Msg("Failed to publish lineup")
		http.Error(w, "Failed to publish lineup", http.StatusInternalServerError)
		return
	}

	team, err := queries.GetTeam(ctx, match.TeamID)
	if err != nil {
		logger.Error().Err(err).Str("team_id", match.TeamID).Msg("Failed to load team for publish notifications")
		http.Error(w, "Failed to publish lineup", http.StatusInternalServerError)
		return
	}

	notifyAssignedPlayers(ctx, team, match, rows, logger)

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"matchId":     match.ID,
		"isPublished": true,
	}); err != nil {
		logger.Error().Err(err).Msg("Failed to write publish response")
	}
}

func notifyAssignedPlayers(ctx context.Context, team dbgen.Team, match dbgen.Match, rows []dbgen.Lineup, logger *zerolog.Logger) {
	if mailer == nil {
		return
	}

	lineTypes := teams.DecodeLineTypes(team.LineMatchTypes, int(team.TotalLines))
	for _, row := range rows {
		assignment := fmt.Sprintf("Court %d", row.CourtSlot)
		if idx := int(row.CourtSlot) - 1; idx >= 0 && idx < len(lineTypes) {
			assignment = fmt.Sprintf("Court %d, %s", row.CourtSlot, lineTypes[idx])
		}
		for _, playerID := range []sql.NullString{row.Player1ID, row.Player2ID} {
			if !playerID.Valid {
				continue
			}
			member, err := queries.GetRosterMember(ctx, playerID.String)
			if err != nil || !member.Email.Valid {
				continue
			}
			msg := email.LineupPublishedMessage(team.Name, match.OpponentName, match.MatchDate, match.MatchTime, assignment)
			email.SendAsync(ctx, mailer, member.Email.String, msg, logger)
		}
	}
}
