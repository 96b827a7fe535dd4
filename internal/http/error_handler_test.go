package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/http/handlers"
	"github.com/MattStellino/JnRGamesWebsite-sub000/web"
)

// internal errors surface as a friendly message without details
func TestErrorHandlerFriendlyMessage(t *testing.T) {
	app := fiber.New(fiber.Config{Views: web.Engine(), ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	app.Get("/err", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "db timeout: secret trace")
	})
	app.Get("/api/err", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "db timeout: secret trace")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/err", nil))
	if err != nil {
		t.Fatalf("test request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	if !strings.Contains(s, "Something went wrong") {
		t.Fatalf("friendly message missing; body=%s", s)
	}
	if strings.Contains(s, "db timeout") || strings.Contains(s, "secret") {
		t.Fatalf("internal details leaked to user; body=%s", s)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/err", nil))
	if err != nil {
		t.Fatalf("test request failed: %v", err)
	}
	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("api error is not json: %v", err)
	}
	if strings.Contains(out["error"], "secret") || out["error"] == "" {
		t.Fatalf("unexpected api error body: %v", out)
	}
}

func TestNotFoundFallback(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := do(t, app, jsonReq("GET", "/no/such/page", ""))
	if resp.StatusCode != http.StatusNotFound || !strings.Contains(readBody(resp), "Page not found") {
		t.Fatalf("expected page 404, got %d", resp.StatusCode)
	}
	resp = do(t, app, jsonReq("GET", "/api/nope", ""))
	if resp.StatusCode != http.StatusNotFound || !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		t.Fatalf("expected json 404, got %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
}
