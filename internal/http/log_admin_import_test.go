package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

func importRequest(t *testing.T, csv string, cookie *http.Cookie) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "games.csv")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := fw.Write([]byte(csv)); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if err := mw.WriteField("updateExisting", "true"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest("POST", "/api/admin/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(cookie)
	return req
}

// catalog imports are audit logged with the acting admin
func TestAdminImportLogs(t *testing.T) {
	app, _, deps := newTestApp(t)
	cookie := adminCookie(t, deps)

	csv := "name,price,consoleType,console,category\n" +
		"Star Fox 64,30,Nintendo,Nintendo 64,Games\n" +
		",12,Nintendo,Nintendo 64,Games\n"

	var res struct {
		Imported int      `json:"imported"`
		Errors   []string `json:"errors"`
	}
	entries := captureLogs(t, func() {
		resp := do(t, app, importRequest(t, csv, cookie))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("import: %d %s", resp.StatusCode, readBody(resp))
		}
		decode(t, resp, &res)
	})
	if res.Imported != 1 || len(res.Errors) != 1 {
		t.Fatalf("import result: %+v", res)
	}

	e, ok := findLog(entries, "admin.import")
	if !ok {
		t.Fatalf("no admin.import entry in %+v", entries)
	}
	if e.Admin != "owner" {
		t.Fatalf("import logged for admin %q", e.Admin)
	}
	if n, _ := e.Fields["imported"].(float64); n != 1 {
		t.Fatalf("import fields: %+v", e.Fields)
	}

	// the same row again updates in place
	resp := do(t, app, importRequest(t, "name,price,consoleType,console,category\nStar Fox 64,35,Nintendo,Nintendo 64,Games\n", cookie))
	var again struct {
		Imported int `json:"imported"`
		Updated  int `json:"updated"`
	}
	decode(t, resp, &again)
	if again.Imported != 0 || again.Updated != 1 {
		t.Fatalf("re-import: %+v", again)
	}
}

func TestAdminImportBadHeader(t *testing.T) {
	app, _, deps := newTestApp(t)
	cookie := adminCookie(t, deps)

	resp := do(t, app, importRequest(t, "title,cost\nStar Fox 64,30\n", cookie))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad header, got %d", resp.StatusCode)
	}
}
