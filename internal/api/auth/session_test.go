package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tennisnav/tennisnav/internal/api/authz"
	"github.com/tennisnav/tennisnav/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "TennisNav"
	cfg.App.Environment = "development"
	cfg.App.SecretKey = "test-secret-key"
	return cfg
}

func TestSessionCookieRoundTrip(t *testing.T) {
	Init(testConfig(), nil)

	rec := httptest.NewRecorder()
	user := &authz.AuthUser{ID: "u1", Email: "cap@example.com", FullName: "Casey Captain"}
	if err := SetAuthCookie(rec, user); err != nil {
		t.Fatalf("SetAuthCookie: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}

	got, err := UserFromRequest(req)
	if err != nil {
		t.Fatalf("UserFromRequest: %v", err)
	}
	if got == nil || got.ID != "u1" || got.Email != "cap@example.com" {
		t.Errorf("round-trip user = %+v", got)
	}
}

func TestTamperedCookieRejected(t *testing.T) {
	Init(testConfig(), nil)

	rec := httptest.NewRecorder()
	if err := SetAuthCookie(rec, &authz.AuthUser{ID: "u1", Email: "cap@example.com"}); err != nil {
		t.Fatalf("SetAuthCookie: %v", err)
	}

	cookie := rec.Result().Cookies()[0]
	cookie.Value += "x"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	got, err := UserFromRequest(req)
	if err != nil {
		t.Fatalf("UserFromRequest: %v", err)
	}
	if got != nil {
		t.Errorf("tampered cookie yielded user %+v", got)
	}
}

func TestMissingCookieYieldsNoUser(t *testing.T) {
	Init(testConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	got, err := UserFromRequest(req)
	if err != nil {
		t.Fatalf("UserFromRequest: %v", err)
	}
	if got != nil {
		t.Errorf("no cookie yielded user %+v", got)
	}
}

func TestInviteTokenRoundTrip(t *testing.T) {
	token, hash, err := NewInviteToken()
	if err != nil {
		t.Fatalf("NewInviteToken: %v", err)
	}
	if token == "" || hash == "" {
		t.Fatal("empty token or hash")
	}
	if !VerifyInviteToken(hash, token) {
		t.Error("valid token rejected")
	}
	if VerifyInviteToken(hash, token+"x") {
		t.Error("invalid token accepted")
	}
}
