// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tennisnav/tennisnav/internal/api"
	"github.com/tennisnav/tennisnav/internal/api/auth"
	"github.com/tennisnav/tennisnav/internal/api/availability"
	"github.com/tennisnav/tennisnav/internal/api/calendarpage"
	"github.com/tennisnav/tennisnav/internal/api/events"
	"github.com/tennisnav/tennisnav/internal/api/lineups"
	"github.com/tennisnav/tennisnav/internal/api/matches"
	"github.com/tennisnav/tennisnav/internal/api/messages"
	"github.com/tennisnav/tennisnav/internal/api/roster"
	"github.com/tennisnav/tennisnav/internal/api/teams"
	"github.com/tennisnav/tennisnav/internal/config"
	"github.com/tennisnav/tennisnav/internal/db"
	"github.com/tennisnav/tennisnav/internal/email"
)

func newServer(cfg *config.Config, database *db.DB, mailer email.EmailSender) *http.Server {
	teams.InitHandlers(database.Queries)
	roster.InitHandlers(database.Queries, mailer, cfg.App.BaseURL)
	matches.InitHandlers(database)
	events.InitHandlers(database.Queries)
	availability.InitHandlers(database.Queries)
	lineups.InitHandlers(database, mailer)
	messages.InitHandlers(database.Queries)
	calendarpage.InitHandlers(database.Queries)

	router := http.NewServeMux()
	registerRoutes(router)

	handler := api.ChainMiddleware(
		router,
		api.WithAuth,
		api.WithContentType,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/calendar", http.StatusFound)
	})

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth
	mux.Handle("/auth/callback", auth.WithClerkSession(http.HandlerFunc(auth.HandleClerkCallback)))
	mux.HandleFunc("/api/v1/auth/logout", auth.HandleLogout)
	mux.HandleFunc("/api/v1/auth/me", auth.HandleMe)

	// Calendar
	mux.HandleFunc("/calendar", calendarpage.HandleCalendarPage)
	mux.HandleFunc("/api/v1/calendar", calendarpage.HandleCalendarData)

	// Teams
	mux.HandleFunc("POST /api/v1/teams", teams.HandleCreateTeam)
	mux.HandleFunc("GET /api/v1/teams", teams.HandleListTeams)
	mux.HandleFunc("GET /api/v1/teams/{id}", teams.HandleGetTeam)
	mux.HandleFunc("PUT /api/v1/teams/{id}/lineup-settings", teams.HandleUpdateLineupSettings)
	mux.HandleFunc("DELETE /api/v1/teams/{id}", teams.HandleDeleteTeam)

	// Roster and invitations
	mux.HandleFunc("GET /api/v1/teams/{id}/roster", roster.HandleListRoster)
	mux.HandleFunc("POST /api/v1/teams/{id}/roster", roster.HandleAddMember)
	mux.HandleFunc("PUT /api/v1/roster/{id}", roster.HandleUpdateMember)
	mux.HandleFunc("DELETE /api/v1/roster/{id}", roster.HandleRemoveMember)
	mux.HandleFunc("POST /api/v1/teams/{id}/invitations", roster.HandleInviteMember)
	mux.HandleFunc("POST /api/v1/invitations/accept", roster.HandleAcceptInvitation)
	mux.HandleFunc("GET /api/v1/invitations/pending", roster.HandleListPendingInvitations)

	// Matches and events
	mux.HandleFunc("POST /api/v1/teams/{id}/matches", matches.HandleCreateMatch)
	mux.HandleFunc("GET /api/v1/teams/{id}/matches", matches.HandleListMatches)
	mux.HandleFunc("GET /api/v1/matches/{id}", matches.HandleGetMatch)
	mux.HandleFunc("DELETE /api/v1/matches/{id}", matches.HandleDeleteMatch)
	mux.HandleFunc("POST /api/v1/teams/{id}/events", events.HandleCreateEvent)
	mux.HandleFunc("GET /api/v1/teams/{id}/events", events.HandleListEvents)
	mux.HandleFunc("DELETE /api/v1/events/{id}", events.HandleDeleteEvent)

	// Availability
	mux.HandleFunc("PUT /api/v1/availability", availability.HandleUpsertMark)
	mux.HandleFunc("DELETE /api/v1/availability", availability.HandleClearMark)
	mux.HandleFunc("GET /api/v1/items/{id}/availability", availability.HandleListItemAvailability)
	mux.HandleFunc("GET /api/v1/availability/slots", availability.HandleTimeSlots)

	// Lineups
	mux.HandleFunc("GET /api/v1/matches/{id}/lineup", lineups.HandleGetLineup)
	mux.HandleFunc("PUT /api/v1/matches/{id}/lineup", lineups.HandleSavePlan)
	mux.HandleFunc("POST /api/v1/matches/{id}/lineup/publish", lineups.HandlePublish)

	// Messages
	mux.HandleFunc("POST /api/v1/messages", messages.HandleSendMessage)
	mux.HandleFunc("GET /api/v1/teams/{id}/messages", messages.HandleListTeamMessages)
	mux.HandleFunc("GET /api/v1/messages/direct", messages.HandleListDirectMessages)
	mux.HandleFunc("POST /api/v1/messages/{id}/read", messages.HandleMarkRead)
	mux.HandleFunc("GET /api/v1/messages/unread-count", messages.HandleUnreadCount)

	// Static file handling with logging and environment awareness
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "build/bin/static"
	}
	fs := http.FileServer(http.Dir(staticDir))

	mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info().
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
