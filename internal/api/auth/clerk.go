package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/clerk/clerk-sdk-go/v2/user"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tennisnav/tennisnav/internal/api/authz"
	dbgen "github.com/tennisnav/tennisnav/internal/db/generated"
)

// clerkInitialized indicates whether the Clerk SDK has been initialized
var clerkInitialized bool

// InitClerk initializes Clerk SDK with the secret key
func InitClerk(secretKey string) {
	if secretKey == "" {
		log.Warn().Msg("Clerk secret key not configured")
		return
	}
	clerk.SetKey(secretKey)
	clerkInitialized = true
	log.Info().Msg("Clerk SDK initialized")
}

// WithClerkSession wraps a handler with Clerk session verification so the
// callback can read session claims from the request context.
func WithClerkSession(next http.Handler) http.Handler {
	if !clerkInitialized {
		return next
	}
	return clerkhttp.WithHeaderAuthorization()(next)
}

// HandleClerkCallback handles the redirect after Clerk authentication. It
// validates the Clerk session, finds or creates the local user, links any
// roster rows and pending invitations carrying the same email, and issues
// the local session cookie.
func HandleClerkCallback(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !clerkInitialized {
		logger.Error().Msg("Clerk not configured")
		http.Error(w, "Authentication service not available", http.StatusServiceUnavailable)
		return
	}

	claims, ok := clerk.SessionClaimsFromContext(r.Context())
	if !ok {
		logger.Warn().Msg("No Clerk session claims in context")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	clerkUser, err := user.Get(r.Context(), claims.Subject)
	if err != nil {
		logger.Error().Err(err).Str("clerk_user_id", claims.Subject).Msg("Failed to get Clerk user")
		http.Error(w, "Failed to verify user", http.StatusInternalServerError)
		return
	}

	localUser, err := findOrCreateLocalUser(r.Context(), clerkUser)
	if err != nil {
		logger.Error().Err(err).Str("clerk_user_id", claims.Subject).Msg("Failed to resolve local user")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := linkRosterIdentity(r.Context(), localUser); err != nil {
		// Linking is best effort; the user can still use the app.
		logger.Warn().Err(err).Str("user_id", localUser.ID).Msg("Failed to link roster members to user")
	}

	authUser := &authz.AuthUser{
		ID:       localUser.ID,
		Email:    localUser.Email,
		FullName: localUser.FullName,
	}
	if err := SetAuthCookie(w, authUser); err != nil {
		logger.Error().Err(err).Msg("Failed to create session")
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func primaryEmail(clerkUser *clerk.User) string {
	if clerkUser == nil {
		return ""
	}
	for _, address := range clerkUser.EmailAddresses {
		if clerkUser.PrimaryEmailAddressID != nil && address.ID == *clerkUser.PrimaryEmailAddressID {
			return address.EmailAddress
		}
	}
	if len(clerkUser.EmailAddresses) > 0 {
		return clerkUser.EmailAddresses[0].EmailAddress
	}
	return ""
}

func displayName(clerkUser *clerk.User) string {
	name := ""
	if clerkUser.FirstName != nil {
		name = *clerkUser.FirstName
	}
	if clerkUser.LastName != nil {
		if name != "" {
			name += " "
		}
		name += *clerkUser.LastName
	}
	return name
}

// findOrCreateLocalUser looks up the local user by Clerk ID, then by email,
// creating one on first sign-in.
func findOrCreateLocalUser(ctx context.Context, clerkUser *clerk.User) (dbgen.User, error) {
	if queries == nil {
		return dbgen.User{}, errors.New("auth queries not initialized")
	}

	clerkID := sql.NullString{String: clerkUser.ID, Valid: true}
	localUser, err := queries.GetUserByClerkID(ctx, clerkID)
	if err == nil {
		return localUser, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return dbgen.User{}, err
	}

	email := primaryEmail(clerkUser)
	if email == "" {
		return dbgen.User{}, errors.New("clerk user has no email address")
	}

	localUser, err = queries.GetUserByEmail(ctx, email)
	if err == nil {
		// Existing account from an invitation; attach the Clerk identity.
		if linkErr := queries.LinkUserClerkID(ctx, dbgen.LinkUserClerkIDParams{
			ClerkUserID: clerkID,
			ID:          localUser.ID,
		}); linkErr != nil {
			return dbgen.User{}, linkErr
		}
		localUser.ClerkUserID = clerkID
		return localUser, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return dbgen.User{}, err
	}

	return queries.CreateUser(ctx, dbgen.CreateUserParams{
		ID:          uuid.New().String(),
		ClerkUserID: clerkID,
		Email:       email,
		FullName:    displayName(clerkUser),
	})
}

// linkRosterIdentity attaches roster rows that were created by email (invites
// and imports) to the signed-in user's account.
func linkRosterIdentity(ctx context.Context, localUser dbgen.User) error {
	return queries.LinkRosterMembersByEmail(ctx, dbgen.LinkRosterMembersByEmailParams{
		UserID: sql.NullString{String: localUser.ID, Valid: true},
		Email:  sql.NullString{String: localUser.Email, Valid: true},
	})
}
