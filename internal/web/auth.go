package web

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"os"
	"strings"
)

const (
	envAdminUser     = "ADMIN_USER"
	envAdminPassword = "ADMIN_PASSWORD"

	adminPathPrefix = "/admin"
)

func adminUser() string {
	if v := strings.TrimSpace(os.Getenv(envAdminUser)); v != "" {
		return v
	}
	return "admin"
}

func adminPassword() string {
	return os.Getenv(envAdminPassword)
}

func challenge(w http.ResponseWriter, body string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="Admin"`)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(body))
}

func credentialsMatch(user, pass string) bool {
	// Both halves are compared unconditionally so a rejected username does
	// not return faster than a rejected password.
	u := subtle.ConstantTimeCompare([]byte(user), []byte(adminUser()))
	p := subtle.ConstantTimeCompare([]byte(pass), []byte(adminPassword()))
	return u&p == 1
}

// adminGate guards every path under /admin with HTTP Basic auth. Paths
// outside the prefix pass through untouched. There is no session: each
// request re-authenticates from its Authorization header.
func adminGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, adminPathPrefix) {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			challenge(w, "Authentication required.")
			return
		}
		scheme, encoded, _ := strings.Cut(header, " ")
		if scheme != "Basic" || strings.TrimSpace(encoded) == "" {
			challenge(w, "Invalid auth.")
			return
		}
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
		if err != nil {
			challenge(w, "Invalid auth.")
			return
		}
		user, pass, _ := strings.Cut(string(decoded), ":")
		if !credentialsMatch(user, pass) {
			challenge(w, "Unauthorized.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
