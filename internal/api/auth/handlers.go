package auth

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/tennisnav/tennisnav/internal/api/apiutil"
	"github.com/tennisnav/tennisnav/internal/api/authz"
)

// POST /api/v1/auth/logout
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/auth/me
func HandleMe(w http.ResponseWriter, r *http.Request) {
	user := authz.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	payload := map[string]string{
		"id":       user.ID,
		"email":    user.Email,
		"fullName": user.FullName,
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, payload); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write auth payload")
	}
}
