// Package authz carries the authenticated user through request contexts and
// re-expresses the hosted row-level security model as explicit team
// membership checks: a user may read a team's rows if they captain it or
// appear on its active roster, and may write team configuration only as
// captain.
package authz

import (
	"context"
	"database/sql"
	"errors"

	dbgen "github.com/tennisnav/tennisnav/internal/db/generated"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// AuthUser is the identity resolved by the auth layer for one request.
type AuthUser struct {
	ID       string
	Email    string
	FullName string
}

type userContextKey struct{}

func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext retrieves the AuthUser stored in ctx. It returns nil if
// ctx is nil, if no user is stored, or if the stored value has a different
// type.
func UserFromContext(ctx context.Context) *AuthUser {
	if ctx == nil {
		return nil
	}

	user, ok := ctx.Value(userContextKey{}).(*AuthUser)
	if !ok {
		return nil
	}

	return user
}

// IsTeamCaptain reports whether user captains the given team.
func IsTeamCaptain(user *AuthUser, team dbgen.Team) bool {
	return user != nil && team.CaptainUserID == user.ID
}

// RequireTeamMember checks that the context's user may read teamID's rows:
// either as captain or as an active roster member.
func RequireTeamMember(ctx context.Context, q *dbgen.Queries, teamID string) error {
	user := UserFromContext(ctx)
	if user == nil {
		return ErrUnauthenticated
	}
	if q == nil {
		return errors.New("queries are required")
	}

	team, err := q.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrForbidden
		}
		return err
	}
	if IsTeamCaptain(user, team) {
		return nil
	}

	_, err = q.GetRosterMemberForUser(ctx, dbgen.GetRosterMemberForUserParams{
		TeamID: teamID,
		UserID: sql.NullString{String: user.ID, Valid: true},
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrForbidden
		}
		return err
	}
	return nil
}

// RequireTeamCaptain checks that the context's user may write teamID's
// configuration, roster, and lineups.
func RequireTeamCaptain(ctx context.Context, q *dbgen.Queries, teamID string) error {
	user := UserFromContext(ctx)
	if user == nil {
		return ErrUnauthenticated
	}
	if q == nil {
		return errors.New("queries are required")
	}

	team, err := q.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrForbidden
		}
		return err
	}
	if !IsTeamCaptain(user, team) {
		return ErrForbidden
	}
	return nil
}
