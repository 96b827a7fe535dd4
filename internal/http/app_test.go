package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/config"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/domain"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/http/handlers"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/repos"
	"github.com/MattStellino/JnRGamesWebsite-sub000/web"
)

const testSecret = "test-secret"

// newTestApp builds the full server over an in-memory database.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB, *handlers.Deps) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	cfg := config.Config{AuthSecret: testSecret, CSVDir: t.TempDir()}
	deps := handlers.NewDeps(db, cfg, nil)
	return handlers.NewApp(deps, web.Engine()), db, deps
}

// adminCookie creates an admin and returns a valid session cookie for it.
func adminCookie(t *testing.T, deps *handlers.Deps) *http.Cookie {
	t.Helper()
	a, err := deps.Auth.CreateAdmin(context.Background(), "owner", "Str0ngPass")
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	tok, err := deps.Auth.Issue(a)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return &http.Cookie{Name: "session", Value: tok}
}

// seedGame adds a Nintendo 64 game at 45 complete, 30 box and game, 12.50 disc only.
func seedGame(t *testing.T, db *sqlx.DB, name string) int64 {
	t.Helper()
	ctx := context.Background()
	cons := repos.NewConsoleRepo(db)
	typ, err := cons.FindOrCreateType(ctx, domain.ConsoleTypeNintendo)
	if err != nil {
		t.Fatalf("console type: %v", err)
	}
	co, err := cons.FindOrCreateConsole(ctx, "Nintendo 64", typ.ID)
	if err != nil {
		t.Fatalf("console: %v", err)
	}
	cat, err := repos.NewCategoryRepo(db).ByName(ctx, domain.CategoryGames)
	if err != nil {
		t.Fatalf("category: %v", err)
	}
	good, acceptable := 30.0, 12.5
	it := domain.Item{Name: name, Price: 45, GoodPrice: &good, AcceptablePrice: &acceptable, CategoryID: cat.ID, ConsoleID: co.ID}
	if err := repos.NewItemRepo(db).Create(ctx, &it); err != nil {
		t.Fatalf("create item: %v", err)
	}
	return it.ID
}

func jsonReq(method, path, body string, cookies ...*http.Cookie) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func readBody(resp *http.Response) string {
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}

func extractCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

type logEntry struct {
	Level  string                 `json:"level"`
	Action string                 `json:"action"`
	Admin  string                 `json:"admin"`
	Fields map[string]interface{} `json:"fields"`
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

// captureLogs collects the JSON log lines written while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedWriter{w: &buf, mu: &mu})
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
