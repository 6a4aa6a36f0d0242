package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tennisnav/tennisnav/internal/api/authz"
	"github.com/tennisnav/tennisnav/internal/config"
	dbgen "github.com/tennisnav/tennisnav/internal/db/generated"
)

const (
	authCookieName = "tennisnav_auth"
	authSessionTTL = 8 * time.Hour
)

var errAuthConfigMissing = errors.New("auth configuration missing")

var (
	appConfig *config.Config
	queries   *dbgen.Queries
)

// Init wires the auth package to configuration and the query layer. Must be
// called during server startup before handling requests.
func Init(cfg *config.Config, q *dbgen.Queries) {
	appConfig = cfg
	queries = q
}

type authSession struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	ExpiresAt int64  `json:"exp"`
}

func isSecureCookie() bool {
	return appConfig == nil || appConfig.App.Environment != "development"
}

func signPayload(payload string) (string, error) {
	if appConfig == nil || appConfig.App.SecretKey == "" {
		return "", errAuthConfigMissing
	}
	mac := hmac.New(sha256.New, []byte(appConfig.App.SecretKey))
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}

// SetAuthCookie issues the signed session cookie for user.
func SetAuthCookie(w http.ResponseWriter, user *authz.AuthUser) error {
	if w == nil || user == nil {
		return errors.New("auth session requires response and user")
	}
	if appConfig == nil || appConfig.App.SecretKey == "" {
		return errAuthConfigMissing
	}

	expiresAt := time.Now().Add(authSessionTTL).Unix()
	session := authSession{
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		ExpiresAt: expiresAt,
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	encodedPayload := base64.RawURLEncoding.EncodeToString(payload)
	signature, err := signPayload(encodedPayload)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    encodedPayload + "." + signature,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(expiresAt, 0),
		MaxAge:   int(authSessionTTL.Seconds()),
	})

	return nil
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	if w == nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

func parseAuthCookie(r *http.Request) (*authSession, error) {
	if r == nil {
		return nil, nil
	}

	cookie, err := r.Cookie(authCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}

	parts := strings.SplitN(cookie.Value, ".", 2)
	if len(parts) != 2 {
		return nil, nil
	}

	expected, err := signPayload(parts[0])
	if err != nil {
		return nil, err
	}
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return nil, nil
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, nil
	}

	var session authSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, nil
	}
	if session.ExpiresAt < time.Now().Unix() {
		return nil, nil
	}

	return &session, nil
}

// UserFromRequest resolves the authenticated user for a request, or nil if
// the request carries no valid session.
func UserFromRequest(r *http.Request) (*authz.AuthUser, error) {
	session, err := parseAuthCookie(r)
	if err != nil || session == nil {
		return nil, err
	}

	return &authz.AuthUser{
		ID:       session.UserID,
		Email:    session.Email,
		FullName: session.FullName,
	}, nil
}
