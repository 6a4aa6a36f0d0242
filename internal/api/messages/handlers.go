// internal/api/messages/handlers.go
package messages

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tennisnav/tennisnav/internal/api/apiutil"
	"github.com/tennisnav/tennisnav/internal/api/authz"
	dbgen "github.com/tennisnav/tennisnav/internal/db/generated"
)

var (
	queries     *dbgen.Queries
	queriesOnce sync.Once
)

const messagesQueryTimeout = 5 * time.Second

const maxMessageLength = 4000

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *dbgen.Queries) {
	if q == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = q
	})
}

type messageView struct {
	ID          string     `json:"id"`
	TeamID      *string    `json:"teamId"`
	SenderID    string     `json:"senderId"`
	RecipientID *string    `json:"recipientId"`
	Body        string     `json:"body"`
	CreatedAt   time.Time  `json:"createdAt"`
	ReadAt      *time.Time `json:"readAt"`
}

func toMessageView(m dbgen.Message) messageView {
	view := messageView{
		ID:          m.ID,
		TeamID:      apiutil.FromNullString(m.TeamID),
		SenderID:    m.SenderID,
		RecipientID: apiutil.FromNullString(m.RecipientID),
		Body:        m.Body,
		CreatedAt:   m.CreatedAt,
	}
	if m.ReadAt.Valid {
		readAt := m.ReadAt.Time
		view.ReadAt = &readAt
	}
	return view
}

type sendMessageRequest struct {
	TeamID      *string `json:"teamId"`
	RecipientID *string `json:"recipientId"`
	Body        string  `json:"body"`
}

// POST /api/v1/messages
//
// A message goes to a team board or directly to one user, never both.
func HandleSendMessage(w http.ResponseWriter, r *http.Request) {
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

	var req sendMessageRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req.Body = strings.TrimSpace(req.Body)
	if req.Body == "" {
		http.Error(w, "Message body is required", http.StatusBadRequest)
		return
	}
	if len(req.Body) > maxMessageLength {
		http.Error(w, "Message body is too long", http.StatusBadRequest)
		return
	}
	if (req.TeamID == nil) == (req.RecipientID == nil) {
		http.Error(w, "Exactly one of teamId or recipientId is required", http.StatusBadRequest)
		return
	}

	if req.TeamID != nil {
		if !apiutil.RequireTeamMember(w, r, queries, *req.TeamID) {
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), messagesQueryTimeout)
	defer cancel()

	message, err := queries.CreateMessage(ctx, dbgen.CreateMessageParams{
		ID:          uuid.New().String(),
		TeamID:      apiutil.ToNullString(req.TeamID),
		SenderID:    user.ID,
		RecipientID: apiutil.ToNullString(req.RecipientID),
		Body:        req.Body,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to send message")
		http.Error(w, "Failed to send message", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, toMessageView(message)); err != nil {
		logger.Error().Err(err).Msg("Failed to write message response")
	}
}

// GET /api/v1/teams/{id}/messages
func HandleListTeamMessages(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	teamID := r.PathValue("id")
	if !apiutil.RequireTeamMember(w, r, queries, teamID) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), messagesQueryTimeout)
	defer cancel()

	list, err := queries.ListTeamMessages(ctx, sql.NullString{String: teamID, Valid: true})
	if err != nil {
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to list team messages")
		http.Error(w, "Failed to list messages", http.StatusInternalServerError)
		return
	}

	views := make([]messageView, 0, len(list))
	for _, m := range list {
		views = append(views, toMessageView(m))
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, views); err != nil {
		logger.Error().Err(err).Msg("Failed to write messages response")
	}
}

// GET /api/v1/messages/direct?with=<user-id>
func HandleListDirectMessages(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user := authz.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	otherID := r.URL.Query().Get("with")
	if otherID == "" {
		http.Error(w, "with query parameter is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), messagesQueryTimeout)
	defer cancel()

	list, err := queries.ListDirectMessages(ctx, dbgen.ListDirectMessagesParams{
		UserID:  user.ID,
		OtherID: otherID,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list direct messages")
		http.Error(w, "Failed to list messages", http.StatusInternalServerError)
		return
	}

	views := make([]messageView, 0, len(list))
	for _, m := range list {
		views = append(views, toMessageView(m))
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, views); err != nil {
		logger.Error().Err(err).Msg("Failed to write messages response")
	}
}

// POST /api/v1/messages/{id}/read
//
// Marking only touches messages addressed to the caller; anything else is a
// silent no-op.
func HandleMarkRead(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), messagesQueryTimeout)
	defer cancel()

	if err := queries.MarkMessageRead(ctx, dbgen.MarkMessageReadParams{
		ID:          r.PathValue("id"),
		RecipientID: sql.NullString{String: user.ID, Valid: true},
	}); err != nil {
		logger.Error().Err(err).Msg("Failed to mark message read")
		http.Error(w, "Failed to mark message read", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/messages/unread-count
func HandleUnreadCount(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user := authz.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), messagesQueryTimeout)
	defer cancel()

	count, err := queries.CountUnreadMessages(ctx, sql.NullString{String: user.ID, Valid: true})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to count unread messages")
		http.Error(w, "Failed to count unread messages", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]int64{"unread": count}); err != nil {
		logger.Error().Err(err).Msg("Failed to write unread count response")
	}
}
