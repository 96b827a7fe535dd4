package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

// admin passwords are stored as bcrypt hashes
func TestPasswordsStoredHashed(t *testing.T) {
	_, db, deps := newTestApp(t)
	if _, err := deps.Auth.CreateAdmin(context.Background(), "owner", "Str0ngPass"); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	var hashes []string
	if err := db.Select(&hashes, `SELECT password_hash FROM admins`); err != nil {
		t.Fatalf("select hashes: %v", err)
	}
	if len(hashes) != 1 {
		t.Fatalf("expected one admin, got %d", len(hashes))
	}
	if strings.Contains(hashes[0], "Str0ngPass") || !strings.HasPrefix(hashes[0], "$2") {
		t.Fatalf("unexpected hash format: %s", hashes[0])
	}
}

func TestLoginSuccessFailAndThrottle(t *testing.T) {
	app, _, deps := newTestApp(t)
	if _, err := deps.Auth.CreateAdmin(context.Background(), "owner", "Str0ngPass"); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	bad := do(t, app, jsonReq("POST", "/api/auth/login", `{"username":"owner","password":"wrong"}`))
	if bad.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad creds, got %d", bad.StatusCode)
	}
	if extractCookie(bad, "session") != nil {
		t.Fatal("session cookie set on failed login")
	}

	good := do(t, app, jsonReq("POST", "/api/auth/login", `{"username":"owner","password":"Str0ngPass"}`))
	if good.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on success, got %d", good.StatusCode)
	}
	session := extractCookie(good, "session")
	if session == nil || session.Value == "" || !session.HttpOnly {
		t.Fatalf("expected HttpOnly session cookie, got %+v", session)
	}

	me := do(t, app, jsonReq("GET", "/api/auth/me", "", &http.Cookie{Name: "session", Value: session.Value}))
	var who struct {
		Username string `json:"username"`
	}
	decode(t, me, &who)
	if who.Username != "owner" {
		t.Fatalf("me returned %q", who.Username)
	}

	// five attempts per window; two are used
	for i := 0; i < 3; i++ {
		_ = do(t, app, jsonReq("POST", "/api/auth/login", `{"username":"owner","password":"wrong"}`))
	}
	third := do(t, app, jsonReq("POST", "/api/auth/login", `{"username":"owner","password":"Str0ngPass"}`))
	if third.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after throttle, got %d", third.StatusCode)
	}
}

func TestLogoutExpiresSession(t *testing.T) {
	app, _, _ := newTestApp(t)
	resp := do(t, app, jsonReq("POST", "/api/auth/logout", ""))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	c := extractCookie(resp, "session")
	if c == nil || c.Value != "" {
		t.Fatalf("expected cleared session cookie, got %+v", c)
	}
}
