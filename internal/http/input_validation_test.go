package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/domain"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/repos"
)

// malformed input is rejected before it reaches the database
func TestValidationBadInputs(t *testing.T) {
	app, db, deps := newTestApp(t)
	cookie := adminCookie(t, deps)
	id := seedGame(t, db, "Super Mario 64")

	cases := []struct {
		name string
		req  *http.Request
		want int
	}{
		{"item id", jsonReq("GET", "/api/items/abc", ""), http.StatusBadRequest},
		{"missing item", jsonReq("GET", "/api/items/99999", ""), http.StatusNotFound},
		{"contact email", jsonReq("POST", "/api/contact", `{"name":"Jo","email":"nope","message":"hi"}`), http.StatusBadRequest},
		{"contact empty", jsonReq("POST", "/api/contact", `{"name":"Jo","email":"jo@example.com"}`), http.StatusBadRequest},
		{"sell list item", jsonReq("PUT", "/api/sell-list", `{"items":[{"itemId":99999,"quantity":1}]}`), http.StatusBadRequest},
		{"sell list condition", jsonReq("PUT", "/api/sell-list", fmt.Sprintf(`{"items":[{"itemId":%d,"condition":"mint","quantity":1}]}`, id)), http.StatusBadRequest},
		{"sell list body", jsonReq("PUT", "/api/sell-list", `{"items":`), http.StatusBadRequest},
		{"item name", jsonReq("POST", "/api/items", `{"name":"","categoryId":1,"consoleId":1,"price":5}`, cookie), http.StatusBadRequest},
		{"item category", jsonReq("POST", "/api/items", `{"name":"Thing","categoryId":999,"consoleId":1,"price":5}`, cookie), http.StatusBadRequest},
		{"negative price", jsonReq("PUT", fmt.Sprintf("/api/items/%d", id), `{"name":"Thing","categoryId":1,"consoleId":1,"price":-1}`, cookie), http.StatusBadRequest},
		{"barcode", jsonReq("GET", "/api/items/barcode/"+strings.Repeat("9", 65), "", cookie), http.StatusBadRequest},
		{"unknown barcode", jsonReq("GET", "/api/items/barcode/000000000000", "", cookie), http.StatusNotFound},
		{"quote status", jsonReq("PUT", "/api/admin/quotes/x/status", `{"status":"archived"}`, cookie), http.StatusBadRequest},
		{"console type id", jsonReq("GET", "/api/console-types/0/consoles", ""), http.StatusBadRequest},
		{"missing console type", jsonReq("GET", "/api/console-types/999/consoles", ""), http.StatusNotFound},
	}
	for _, tc := range cases {
		resp := do(t, app, tc.req)
		if resp.StatusCode != tc.want {
			t.Fatalf("%s: expected %d, got %d body=%s", tc.name, tc.want, resp.StatusCode, readBody(resp))
		}
	}
}

// templates auto-escape untrusted text
func TestTemplateAutoEscape(t *testing.T) {
	app, db, _ := newTestApp(t)
	id := seedGame(t, db, "<script>alert(1)</script>")

	resp := do(t, app, jsonReq("GET", fmt.Sprintf("/item/%d", id), ""))
	s := readBody(resp)
	if strings.Contains(s, "<script>alert(1)</script>") {
		t.Fatalf("found unescaped script tag in output")
	}
	if !strings.Contains(s, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Fatalf("escaped script not found; output=%s", s)
	}
}

func TestCatalogPages(t *testing.T) {
	app, db, _ := newTestApp(t)
	seedGame(t, db, "Super Mario 64")
	seedGame(t, db, "Banjo-Kazooie")

	resp := do(t, app, jsonReq("GET", "/?search=mario", ""))
	s := readBody(resp)
	if resp.StatusCode != http.StatusOK || !strings.Contains(s, "Super Mario 64") || strings.Contains(s, "Banjo") {
		t.Fatalf("catalog search page: %d %s", resp.StatusCode, s)
	}

	resp = do(t, app, jsonReq("GET", "/category/games", ""))
	s = readBody(resp)
	if resp.StatusCode != http.StatusOK || !strings.Contains(s, "Banjo-Kazooie") {
		t.Fatalf("category page: %d %s", resp.StatusCode, s)
	}

	resp = do(t, app, jsonReq("GET", "/category/consoles", ""))
	s = readBody(resp)
	if resp.StatusCode != http.StatusOK || strings.Contains(s, "Banjo-Kazooie") {
		t.Fatalf("consoles page lists games: %d", resp.StatusCode)
	}

	for _, path := range []string{"/category/no-such-thing", "/item/abc", "/item/99999"} {
		resp = do(t, app, jsonReq("GET", path, ""))
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, resp.StatusCode)
		}
	}
}

func TestItemsAPIListAndCRUD(t *testing.T) {
	app, db, deps := newTestApp(t)
	cookie := adminCookie(t, deps)
	seedGame(t, db, "Super Mario 64")

	ctx := context.Background()
	cat, err := repos.NewCategoryRepo(db).ByName(ctx, domain.CategoryGames)
	if err != nil {
		t.Fatalf("category: %v", err)
	}
	co, err := repos.NewConsoleRepo(db).ConsoleByName(ctx, "Nintendo 64")
	if err != nil {
		t.Fatalf("console: %v", err)
	}

	body := fmt.Sprintf(`{"name":"GoldenEye 007","categoryId":%d,"consoleId":%d,"goodPrice":20,"acceptablePrice":9,"barcode":"045496870058"}`, cat.ID, co.ID)
	resp := do(t, app, jsonReq("POST", "/api/items", body, cookie))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d body=%s", resp.StatusCode, readBody(resp))
	}
	var item domain.ItemDetail
	decode(t, resp, &item)
	if item.Price != 20 || item.CategoryName != domain.CategoryGames {
		t.Fatalf("created item: %+v", item)
	}

	resp = do(t, app, jsonReq("GET", "/api/items/barcode/045496870058", "", cookie))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("barcode lookup: %d", resp.StatusCode)
	}

	resp = do(t, app, jsonReq("GET", "/api/items?category=games&console=all&limit=1&page=2", ""))
	var page struct {
		Items      []domain.ItemDetail `json:"items"`
		Pagination struct {
			CurrentPage int  `json:"currentPage"`
			TotalItems  int  `json:"totalItems"`
			TotalPages  int  `json:"totalPages"`
			HasPrevPage bool `json:"hasPrevPage"`
			HasNextPage bool `json:"hasNextPage"`
		} `json:"pagination"`
	}
	decode(t, resp, &page)
	if len(page.Items) != 1 || page.Pagination.TotalItems != 2 || page.Pagination.TotalPages != 2 ||
		!page.Pagination.HasPrevPage || page.Pagination.HasNextPage {
		t.Fatalf("list page: %+v", page.Pagination)
	}

	resp = do(t, app, jsonReq("DELETE", fmt.Sprintf("/api/items/%d", item.ID), "", cookie))
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: %d", resp.StatusCode)
	}
	resp = do(t, app, jsonReq("DELETE", fmt.Sprintf("/api/items/%d", item.ID), "", cookie))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", resp.StatusCode)
	}
}
