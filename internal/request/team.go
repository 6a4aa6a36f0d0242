package request

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ParseTeamID validates a team ID query value as a UUID string.
func ParseTeamID(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	if _, err := uuid.Parse(value); err != nil {
		return "", false
	}
	return value, true
}

// TeamIDFromRequest parses team_id from the query or HX-Current-URL header.
func TeamIDFromRequest(r *http.Request) (string, bool) {
	if teamID, ok := ParseTeamID(r.URL.Query().Get("team_id")); ok {
		return teamID, true
	}

	currentURL := strings.TrimSpace(r.Header.Get("HX-Current-URL"))
	if currentURL == "" {
		return "", false
	}

	parsed, err := url.Parse(currentURL)
	if err != nil {
		log.Ctx(r.Context()).
			Debug().
			Err(err).
			Str("hx_current_url", currentURL).
			Msg("Failed to parse HX-Current-URL")
		return "", false
	}

	return ParseTeamID(parsed.Query().Get("team_id"))
}
