package apiutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/tennisnav/tennisnav/internal/api/authz"
	dbgen "github.com/tennisnav/tennisnav/internal/db/generated"
)

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

func writeAccessError(w http.ResponseWriter, r *http.Request, teamID string, err error) {
	logger := log.Ctx(r.Context())
	user := authz.UserFromContext(r.Context())
	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		logger.Warn().Str("team_id", teamID).Msg("Team access denied: unauthenticated")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	case errors.Is(err, authz.ErrForbidden):
		logEvent := logger.Warn().Str("team_id", teamID)
		if user != nil {
			logEvent = logEvent.Str("user_id", user.ID)
		}
		logEvent.Msg("Team access denied: forbidden")
		http.Error(w, "Forbidden", http.StatusForbidden)
	default:
		logger.Error().Str("team_id", teamID).Err(err).Msg("Team access denied: error")
		http.Error(w, "Failed to authorize request", http.StatusInternalServerError)
	}
}

// RequireTeamMember authorizes read access to a team's rows, writing the
// HTTP error itself and returning false when access is denied.
func RequireTeamMember(w http.ResponseWriter, r *http.Request, q *dbgen.Queries, teamID string) bool {
	if err := authz.RequireTeamMember(r.Context(), q, teamID); err != nil {
		writeAccessError(w, r, teamID, err)
		return false
	}
	return true
}

// RequireTeamCaptain authorizes write access to a team, writing the HTTP
// error itself and returning false when access is denied.
func RequireTeamCaptain(w http.ResponseWriter, r *http.Request, q *dbgen.Queries, teamID string) bool {
	if err := authz.RequireTeamCaptain(r.Context(), q, teamID); err != nil {
		writeAccessError(w, r, teamID, err)
		return false
	}
	return true
}
