package middleware

import (
	"context"
	"net/http"
	"strings"
)

type sessionChecker interface {
	Valid(ctx context.Context) bool
}

// publicPaths are reachable without a session.
var publicPaths = []string{"/login", "/health", "/static/", "/settings/api-base"}

// RequireSession sends requests without a stored, unexpired token to the
// login view. The websocket gets a plain 401 since it cannot follow a
// redirect.
func RequireSession(sessions sessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r.URL.Path) || sessions.Valid(r.Context()) {
				next.ServeHTTP(w, r)
				return
			}

			if r.URL.Path == "/ws" {
				http.Error(w, "not authenticated", http.StatusUnauthorized)
				return
			}

			http.Redirect(w, r, "/login", http.StatusSeeOther)
		})
	}
}

func isPublic(path string) bool {
	for _, prefix := range publicPaths {
		if path == prefix || (strings.HasSuffix(prefix, "/") && strings.HasPrefix(path, prefix)) {
			return true
		}
	}
	return false
}
