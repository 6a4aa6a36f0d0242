package auth

import (
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

const inviteTokenBytes = 32

// NewInviteToken returns a random invitation token and its bcrypt hash.
// Only the hash is stored; the token itself travels in the invite email.
func NewInviteToken() (token string, hash string, err error) {
	raw := make([]byte, inviteTokenBytes)
	if _, err = rand.Read(raw); err != nil {
		return "", "", err
	}
	token = base64.RawURLEncoding.EncodeToString(raw)

	hashed, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return token, string(hashed), nil
}

// VerifyInviteToken wraps bcrypt.CompareHashAndPassword for invite checks.
func VerifyInviteToken(hash, token string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}
