package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"notepress/internal/store"
	"notepress/internal/tree"
)

func seededServer(t *testing.T) (*Server, *tree.Snapshot) {
	t.Helper()
	t.Setenv("NOTEPRESS_STORAGE", "json")
	t.Setenv("ADMIN_USER", "editor")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	dir := t.TempDir()
	snap := store.Store{Dir: dir}.Load()
	s, err := NewServer(ServerConfig{Addr: "127.0.0.1:0", Dir: dir})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return s, snap
}

func adminPost(t *testing.T, h http.Handler, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("editor", "s3cret")
	res, _ := doRequest(t, h, req)
	return res
}

func TestHomeListsSeededNotebook(t *testing.T) {
	s, _ := seededServer(t)

	res, body := doRequest(t, s.Handler(), httptest.NewRequest("GET", "/", nil))
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if !strings.Contains(body, "Site") {
		t.Fatalf("expected seeded notebook in home page, got:\n%s", body)
	}
}

func TestSectionPageShowsSeededPage(t *testing.T) {
	s, snap := seededServer(t)
	secID := snap.UI.ActiveSectionID

	res, body := doRequest(t, s.Handler(), httptest.NewRequest("GET", "/sections/"+secID, nil))
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if !strings.Contains(body, "Welcome") {
		t.Fatalf("expected seeded page in section listing, got:\n%s", body)
	}
}

func TestSectionSearchStreamsFilteredList(t *testing.T) {
	s, snap := seededServer(t)
	secID := snap.UI.ActiveSectionID

	res, body := doRequest(t, s.Handler(), httptest.NewRequest("GET", "/sections/"+secID+"/search?q=hello", nil))
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if !strings.Contains(res.Header.Get("Content-Type"), "text/event-stream") {
		t.Fatalf("expected SSE content type, got %q", res.Header.Get("Content-Type"))
	}
	if !strings.Contains(body, "Welcome") {
		t.Fatalf("expected content match for %q, got:\n%s", "hello", body)
	}

	_, miss := doRequest(t, s.Handler(), httptest.NewRequest("GET", "/sections/"+secID+"/search?q=zebra", nil))
	if strings.Contains(miss, "Welcome") {
		t.Fatalf("expected no match for %q, got:\n%s", "zebra", miss)
	}
}

func TestPageRendersContentAsHTML(t *testing.T) {
	s, snap := seededServer(t)
	pageID := snap.UI.ActivePageID

	res, body := doRequest(t, s.Handler(), httptest.NewRequest("GET", "/pages/"+pageID, nil))
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if !strings.Contains(body, "<h1>Hello!</h1>") {
		t.Fatalf("expected rendered heading, got:\n%s", body)
	}
}

func TestAdminCreateNotebookPersists(t *testing.T) {
	s, _ := seededServer(t)
	h := s.Handler()

	res := adminPost(t, h, "/admin/notebooks", url.Values{"title": {"Work"}})
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", res.StatusCode)
	}

	_, body := doRequest(t, h, httptest.NewRequest("GET", "/", nil))
	if !strings.Contains(body, "Work") {
		t.Fatalf("expected created notebook on home page, got:\n%s", body)
	}
}

func TestAdminTrashRequiresConfirmation(t *testing.T) {
	s, snap := seededServer(t)
	h := s.Handler()
	pageID := snap.UI.ActivePageID
	secID := snap.UI.ActiveSectionID

	// No confirm field: the page stays.
	adminPost(t, h, "/admin/pages/"+pageID+"/trash", url.Values{})
	_, body := doRequest(t, h, httptest.NewRequest("GET", "/sections/"+secID, nil))
	if !strings.Contains(body, "Welcome") {
		t.Fatalf("unconfirmed trash should be a no-op, got:\n%s", body)
	}

	adminPost(t, h, "/admin/pages/"+pageID+"/trash", url.Values{"confirm": {"yes"}})
	_, body = doRequest(t, h, httptest.NewRequest("GET", "/sections/"+secID, nil))
	if strings.Contains(body, "Welcome") {
		t.Fatalf("trashed page should leave public listings, got:\n%s", body)
	}

	res, _ := doRequest(t, h, httptest.NewRequest("GET", "/pages/"+pageID, nil))
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("trashed page view should 404, got %d", res.StatusCode)
	}
}

func TestReadOnlyServerRejectsAuthoring(t *testing.T) {
	t.Setenv("NOTEPRESS_STORAGE", "json")
	t.Setenv("ADMIN_USER", "editor")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	s, err := NewServer(ServerConfig{Addr: "127.0.0.1:0", Dir: t.TempDir(), ReadOnly: true})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	res := adminPost(t, s.Handler(), "/admin/notebooks", url.Values{"title": {"Work"}})
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.StatusCode)
	}
}

func TestAdminPageEditUpdatesTitleAndContent(t *testing.T) {
	s, snap := seededServer(t)
	h := s.Handler()
	pageID := snap.UI.ActivePageID

	res := adminPost(t, h, "/admin/pages/"+pageID, url.Values{
		"title":   {"Renamed"},
		"content": {`{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"fresh body"}]}]}`},
	})
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", res.StatusCode)
	}

	_, body := doRequest(t, h, httptest.NewRequest("GET", "/pages/"+pageID, nil))
	if !strings.Contains(body, "Renamed") || !strings.Contains(body, "fresh body") {
		t.Fatalf("expected updated title and content, got:\n%s", body)
	}
}
