package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/repos"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/services"
)

var adminRoutes = []struct{ method, path string }{
	{"POST", "/api/items"},
	{"PUT", "/api/items/1"},
	{"DELETE", "/api/items/1"},
	{"GET", "/api/items/barcode/045496960018"},
	{"POST", "/api/categories"},
	{"PUT", "/api/categories/1"},
	{"DELETE", "/api/categories/1"},
	{"POST", "/api/console-types"},
	{"POST", "/api/consoles"},
	{"GET", "/api/auth/me"},
	{"POST", "/api/admin/import"},
	{"POST", "/api/admin/replace"},
	{"POST", "/api/admin/add-games"},
	{"POST", "/api/admin/delete-duplicate-games"},
	{"POST", "/api/admin/delete-other-console-games"},
	{"POST", "/api/admin/migrate-handhelds"},
	{"GET", "/api/admin/quotes"},
	{"PUT", "/api/admin/quotes/abc/status"},
}

func TestAdminRoutesRequireSession(t *testing.T) {
	app, db, _ := newTestApp(t)

	// a token signed with another secret
	forger := services.NewAuthService(repos.NewAdminRepo(db), "not-the-secret")
	a, err := forger.CreateAdmin(context.Background(), "intruder", "Str0ngPass")
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	forged, err := forger.Issue(a)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for _, r := range adminRoutes {
		resp := do(t, app, jsonReq(r.method, r.path, ""))
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s %s anonymous: expected 401, got %d", r.method, r.path, resp.StatusCode)
		}
		resp = do(t, app, jsonReq(r.method, r.path, "", &http.Cookie{Name: "session", Value: forged}))
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s %s forged: expected 401, got %d", r.method, r.path, resp.StatusCode)
		}
	}

	for _, path := range []string{"/api/items", "/api/categories", "/api/console-types", "/api/consoles", "/"} {
		resp := do(t, app, jsonReq("GET", path, ""))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("public %s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}

func TestAdminSessionAllowsMaintenance(t *testing.T) {
	app, db, deps := newTestApp(t)
	cookie := adminCookie(t, deps)
	seedGame(t, db, "Super Mario 64")

	resp := do(t, app, jsonReq("POST", "/api/admin/delete-duplicate-games?dryRun=true", "", cookie))
	var res services.DedupeResult
	decode(t, resp, &res)
	if resp.StatusCode != http.StatusOK || !res.DryRun {
		t.Fatalf("expected dry run result, got %d %+v", resp.StatusCode, res)
	}

	// CSV_DIR is empty, so the replace is refused and nothing changes
	resp = do(t, app, jsonReq("POST", "/api/admin/replace", "", cookie))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("replace without sheets: expected 400, got %d", resp.StatusCode)
	}
	n, err := repos.NewItemRepo(db).Count(context.Background(), repos.ItemFilter{})
	if err != nil || n != 1 {
		t.Fatalf("catalog changed by failed replace: n=%d err=%v", n, err)
	}

	resp = do(t, app, jsonReq("POST", "/api/admin/add-games", `{"games":[{"name":"Halo 2","console":"Xbox","boxAndGame":8}]}`, cookie))
	var added services.AddGamesResult
	decode(t, resp, &added)
	if added.Added != 1 {
		t.Fatalf("add-games: %+v", added)
	}
}
