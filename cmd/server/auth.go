package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"
)

const sessionCookieName = "quotecalc_session"

// authService gates the rates admin behind the configured operator
// password. There is no user table: the tool is single-operator.
type authService struct {
	adminPassword string
	sessionSecret []byte
}

func newAuthService(adminPassword, sessionSecret string) *authService {
	return &authService{
		adminPassword: adminPassword,
		sessionSecret: []byte(sessionSecret),
	}
}

// enabled reports whether an admin password is configured at all.
func (a *authService) enabled() bool {
	return a.adminPassword != ""
}

func (a *authService) validatePassword(password string) bool {
	if !a.enabled() {
		return false
	}
	stored := sha256.Sum256([]byte(a.adminPassword))
	provided := sha256.Sum256([]byte(password))
	return subtle.ConstantTimeCompare(stored[:], provided[:]) == 1
}

func (a *authService) createSessionValue(subject string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(subject))
	mac := hmac.New(sha256.New, a.sessionSecret)
	_, _ = mac.Write([]byte(payload))
	signature := hex.EncodeToString(mac.Sum(nil))
	return payload + "." + signature
}

func (a *authService) verifySessionValue(value string) (string, bool) {
	payload, signature, ok := strings.Cut(value, ".")
	if !ok {
		return "", false
	}

	mac := hmac.New(sha256.New, a.sessionSecret)
	_, _ = mac.Write([]byte(payload))
	expected := mac.Sum(nil)

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return "", false
	}
	if !hmac.Equal(provided, expected) {
		return "", false
	}

	decoded, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil || len(decoded) == 0 {
		return "", false
	}

	return string(decoded), true
}

func (a *authService) setSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    a.createSessionValue("operator"),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *authService) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func isAuthenticated(r *http.Request, auth *authService) bool {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return false
	}

	_, ok := auth.verifySessionValue(cookie.Value)
	return ok
}
