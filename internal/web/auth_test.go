package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("NOTEPRESS_STORAGE", "json")
	s, err := NewServer(ServerConfig{Addr: "127.0.0.1:0", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return s
}

func doRequest(t *testing.T, h http.Handler, req *http.Request) (*http.Response, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	res := rec.Result()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	_ = res.Body.Close()
	return res, string(body)
}

func TestAdminGate_MissingHeaderChallenges(t *testing.T) {
	t.Setenv("ADMIN_USER", "")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	s := newTestServer(t)

	res, body := doRequest(t, s.Handler(), httptest.NewRequest("GET", "/admin", nil))
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
	if got := res.Header.Get("WWW-Authenticate"); got != `Basic realm="Admin"` {
		t.Fatalf("unexpected challenge header %q", got)
	}
	if body != "Authentication required." {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestAdminGate_WrongSchemeAndBadEncoding(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	s := newTestServer(t)

	for _, header := range []string{
		"Bearer abcdef",
		"Basic ",
		"Basic not-base64!!!",
	} {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", header)
		res, body := doRequest(t, s.Handler(), req)
		if res.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%q: expected 401, got %d", header, res.StatusCode)
		}
		if body != "Invalid auth." {
			t.Fatalf("%q: unexpected body %q", header, body)
		}
		if res.Header.Get("WWW-Authenticate") == "" {
			t.Fatalf("%q: missing challenge header", header)
		}
	}
}

func TestAdminGate_WrongCredentials(t *testing.T) {
	t.Setenv("ADMIN_USER", "editor")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.SetBasicAuth("editor", "wrong")
	res, body := doRequest(t, s.Handler(), req)
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
	if body != "Unauthorized." {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestAdminGate_CorrectCredentialsPassThrough(t *testing.T) {
	t.Setenv("ADMIN_USER", "editor")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.SetBasicAuth("editor", "s3cret")
	res, _ := doRequest(t, s.Handler(), req)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
}

func TestAdminGate_DefaultsToAdminWithEmptyPassword(t *testing.T) {
	t.Setenv("ADMIN_USER", "")
	t.Setenv("ADMIN_PASSWORD", "")
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.SetBasicAuth("admin", "")
	res, _ := doRequest(t, s.Handler(), req)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with default credentials, got %d", res.StatusCode)
	}
}

func TestAdminGate_NonAdminPathsAreUntouched(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	s := newTestServer(t)

	res, body := doRequest(t, s.Handler(), httptest.NewRequest("GET", "/health", nil))
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if body != "ok\n" {
		t.Fatalf("unexpected body %q", body)
	}
	if res.Header.Get("WWW-Authenticate") != "" {
		t.Fatalf("public path should not carry a challenge")
	}
}
