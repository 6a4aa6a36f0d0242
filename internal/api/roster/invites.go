// internal/api/roster/invites.go
package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tennisnav/tennisnav/internal/api/apiutil"
	"github.com/tennisnav/tennisnav/internal/api/auth"
	"github.com/tennisnav/tennisnav/internal/api/authz"
	dbgen "github.com/tennisnav/tennisnav/internal/db/generated"
	"github.com/tennisnav/tennisnav/internal/email"
	"github.com/tennisnav/tennisnav/internal/ratelimit"
)

// acceptLimiter throttles token verification per invitation and per IP.
var acceptLimiter = ratelimit.New(nil)

type inviteRequest struct {
	Email      string   `json:"email"`
	FullName   string   `json:"fullName"`
	NTRPRating *float64 `json:"ntrpRating"`
}

type inviteView struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"teamId"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// POST /api/v1/teams/{id}/invitations
//
// Creates a pending invitation and an email-only roster row. The roster row
// is linked to a user account when the invitee signs in with the same email.
func HandleInviteMember(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	teamID := r.PathValue("id")
	if !apiutil.RequireTeamCaptain(w, r, queries, teamID) {
		return
	}
	user := authz.UserFromContext(r.Context())

	var req inviteRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(req.Email); err != nil {
		http.Error(w, "A valid email address is required", http.StatusBadRequest)
		return
	}
	req.FullName = strings.TrimSpace(req.FullName)
	if req.FullName == "" {
		req.FullName = req.Email
	}

	token, tokenHash, err := auth.NewInviteToken()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate invite token")
		http.Error(w, "Failed to create invitation", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), rosterQueryTimeout)
	defer cancel()

	invitation, err := queries.CreateInvitation(ctx, dbgen.CreateInvitationParams{
		ID:        uuid.New().String(),
		TeamID:    teamID,
		Email:     req.Email,
		TokenHash: tokenHash,
		InvitedBy: user.ID,
	})
	if err != nil {
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to create invitation")
		http.Error(w, "Failed to create invitation", http.StatusInternalServerError)
		return
	}

	if _, err := queries.CreateRosterMember(ctx, dbgen.CreateRosterMemberParams{
		ID:         uuid.New().String(),
		TeamID:     teamID,
		FullName:   req.FullName,
		Email:      sql.NullString{String: req.Email, Valid: true},
		NtrpRating: apiutil.ToNullFloat64(req.NTRPRating),
	}); err != nil {
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to create roster row for invite")
		http.Error(w, "Failed to create invitation", http.StatusInternalServerError)
		return
	}

	team, err := queries.GetTeam(ctx, teamID)
	if err != nil {
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to load team for invite email")
		http.Error(w, "Failed to create invitation", http.StatusInternalServerError)
		return
	}

	acceptURL := fmt.Sprintf("%s/invites/accept?id=%s&token=%s", appBaseURL, invitation.ID, token)
	msg := email.InvitationMessage(team.Name, user.FullName, acceptURL)
	email.SendAsync(r.Context(), mailer, req.Email, msg, logger)

	view := inviteView{
		ID:        invitation.ID,
		TeamID:    invitation.TeamID,
		Email:     invitation.Email,
		Status:    invitation.Status,
		CreatedAt: invitation.CreatedAt,
	}
	if err := apiutil.WriteJSON(w, http.StatusCreated, view); err != nil {
		logger.Error().Err(err).Msg("Failed to write invitation response")
	}
}

type acceptInviteRequest struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// POST /api/v1/invitations/accept
//
// The caller must already be signed in; accepting links their account to the
// roster rows created under the invited email.
func HandleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
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

	var req acceptInviteRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ID == "" || req.Token == "" {
		http.Error(w, "Invitation id and token are required", http.StatusBadRequest)
		return
	}

	clientIP := ratelimit.ClientIP(r)
	if limit := acceptLimiter.Check(req.ID, clientIP); !limit.Allowed {
		logger.Warn().
			Str("invitation_id", req.ID).
			Str("reason", limit.Reason).
			Msg("Invitation accept throttled")
		w.Header().Set("Retry-After", strconv.Itoa(int(limit.RetryAfter.Seconds())))
		http.Error(w, "Too many attempts, try again later", http.StatusTooManyRequests)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), rosterQueryTimeout)
	defer cancel()

	invitation, err := queries.GetInvitation(ctx, req.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Invitation not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("invitation_id", req.ID).Msg("Failed to load invitation")
		http.Error(w, "Failed to accept invitation", http.StatusInternalServerError)
		return
	}

	if invitation.Status != "pending" {
		http.Error(w, "Invitation is no longer pending", http.StatusConflict)
		return
	}
	if !auth.VerifyInviteToken(invitation.TokenHash, req.Token) {
		if lockedOut := acceptLimiter.RecordFailure(req.ID, clientIP); lockedOut {
			logger.Warn().Str("invitation_id", req.ID).Msg("Invitation locked after repeated token mismatches")
		} else {
			logger.Warn().Str("invitation_id", req.ID).Msg("Invite token mismatch")
		}
		http.Error(w, "Invalid invitation token", http.StatusForbidden)
		return
	}
	acceptLimiter.Reset(req.ID)

	if err := queries.AcceptInvitation(ctx, invitation.ID); err != nil {
		logger.Error().Err(err).Str("invitation_id", req.ID).Msg("Failed to accept invitation")
		http.Error(w, "Failed to accept invitation", http.StatusInternalServerError)
		return
	}

	if err := queries.LinkRosterMembersByEmail(ctx, dbgen.LinkRosterMembersByEmailParams{
		UserID: sql.NullString{String: user.ID, Valid: true},
		Email:  sql.NullString{String: invitation.Email, Valid: true},
	}); err != nil {
		// The invitation is accepted; linking retries on next sign-in.
		logger.Warn().Err(err).Str("invitation_id", req.ID).Msg("Failed to link roster rows on accept")
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]string{
		"teamId": invitation.TeamID,
		"status": "accepted",
	}); err != nil {
		logger.Error().Err(err).Msg("Failed to write accept response")
	}
}

// GET /api/v1/invitations/pending
func HandleListPendingInvitations(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user := authz.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), rosterQueryTimeout)
	defer cancel()

	invitations, err := queries.ListPendingInvitationsByEmail(ctx, strings.ToLower(user.Email))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list pending invitations")
		http.Error(w, "Failed to list invitations", http.StatusInternalServerError)
		return
	}

	views := make([]inviteView, 0, len(invitations))
	for _, inv := range invitations {
		views = append(views, inviteView{
			ID:        inv.ID,
			TeamID:    inv.TeamID,
			Email:     inv.Email,
			Status:    inv.Status,
			CreatedAt: inv.CreatedAt,
		})
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, views); err != nil {
		logger.Error().Err(err).Msg("Failed to write invitations response")
	}
}
