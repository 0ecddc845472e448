package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	auth := newAuthService("hunter2", "secret")

	if !auth.validatePassword("hunter2") {
		t.Fatalf("expected correct password to validate")
	}
	if auth.validatePassword("wrong") {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestValidatePasswordDisabledWithoutAdminPassword(t *testing.T) {
	auth := newAuthService("", "secret")

	if auth.enabled() {
		t.Fatalf("expected auth disabled without admin password")
	}
	if auth.validatePassword("") {
		t.Fatalf("empty password must never validate")
	}
}

func TestSessionValueRoundTrip(t *testing.T) {
	auth := newAuthService("hunter2", "secret")

	value := auth.createSessionValue("operator")
	subject, ok := auth.verifySessionValue(value)
	if !ok {
		t.Fatalf("expected valid session value to verify")
	}
	if subject != "operator" {
		t.Fatalf("unexpected subject %q", subject)
	}
}

func TestSessionValueRejectsTampering(t *testing.T) {
	auth := newAuthService("hunter2", "secret")

	value := auth.createSessionValue("operator")

	if _, ok := auth.verifySessionValue(value + "00"); ok {
		t.Fatalf("expected tampered signature to fail")
	}
	if _, ok := auth.verifySessionValue("no-dot-separator"); ok {
		t.Fatalf("expected malformed value to fail")
	}

	other := newAuthService("hunter2", "different-secret")
	if _, ok := other.verifySessionValue(value); ok {
		t.Fatalf("expected value signed with another secret to fail")
	}
}

func TestIsAuthenticatedReadsCookie(t *testing.T) {
	auth := newAuthService("hunter2", "secret")

	rec := httptest.NewRecorder()
	auth.setSessionCookie(rec)

	req := httptest.NewRequest("GET", "/admin/rates", nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}

	if !isAuthenticated(req, auth) {
		t.Fatalf("expected request with session cookie to authenticate")
	}

	bare := httptest.NewRequest("GET", "/admin/rates", nil)
	if isAuthenticated(bare, auth) {
		t.Fatalf("expected request without cookie to fail")
	}
}

func TestAdminOnlyForbiddenWhenDisabled(t *testing.T) {
	srv := newTestServer() // no admin password configured

	handler := srv.adminOnly(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler must not run")
	}))

	req := httptest.NewRequest("GET", "/admin/rates", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when admin password unset, got %d", rec.Code)
	}
}

func TestAdminOnlyRedirectsAnonymousToLogin(t *testing.T) {
	srv := newTestServer()
	srv.auth = newAuthService("hunter2", "secret")

	handler := srv.adminOnly(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler must not run")
	}))

	req := httptest.NewRequest("GET", "/admin/rates", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect to login, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected /login redirect, got %q", loc)
	}
}

func TestAdminOnlyAllowsAuthenticated(t *testing.T) {
	srv := newTestServer()
	srv.auth = newAuthService("hunter2", "secret")

	called := false
	handler := srv.adminOnly(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	srv.auth.setSessionCookie(rec)

	req := httptest.NewRequest("GET", "/admin/rates", nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}

	out := httptest.NewRecorder()
	handler.ServeHTTP(out, req)

	if !called {
		t.Fatalf("expected next handler to run for authenticated request")
	}
	if out.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", out.Code)
	}
}
