package authz

import (
	"context"
	"testing"

	dbgen "github.com/tennisnav/tennisnav/internal/db/generated"
)

func TestUserFromContext(t *testing.T) {
	if got := UserFromContext(nil); got != nil {
		t.Errorf("nil context returned %+v", got)
	}
	if got := UserFromContext(context.Background()); got != nil {
		t.Errorf("empty context returned %+v", got)
	}

	user := &AuthUser{ID: "u1", Email: "cap@example.com"}
	ctx := ContextWithUser(context.Background(), user)
	if got := UserFromContext(ctx); got == nil || got.ID != "u1" {
		t.Errorf("round-trip returned %+v", got)
	}
}

func TestIsTeamCaptain(t *testing.T) {
	team := dbgen.Team{ID: "t1", CaptainUserID: "u1"}

	if !IsTeamCaptain(&AuthUser{ID: "u1"}, team) {
		t.Error("captain not recognized")
	}
	if IsTeamCaptain(&AuthUser{ID: "u2"}, team) {
		t.Error("non-captain recognized as captain")
	}
	if IsTeamCaptain(nil, team) {
		t.Error("nil user recognized as captain")
	}
}
