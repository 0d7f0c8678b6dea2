package middleware

import (
	"log/slog"
	"net/http"
	"net/url"
)

// SameOrigin rejects state-changing requests sent by other sites. The
// console holds the backend token itself, so a forged form post would
// otherwise run with the admin's authority. publicURL is trusted in
// addition to the request's own host, for consoles behind a proxy.
func SameOrigin(publicURL string) func(http.Handler) http.Handler {
	protection := http.NewCrossOriginProtection()

	if origin := originOf(publicURL); origin != "" {
		if err := protection.AddTrustedOrigin(origin); err != nil {
			slog.Warn("ignoring console public url for origin checks", "url", publicURL, "error", err)
		}
	}

	protection.SetDenyHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Warn("cross-origin request rejected",
			"method", r.Method,
			"path", r.URL.Path,
			"origin", r.Header.Get("Origin"),
			"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
		)
		http.Error(w, "Cross-origin request rejected", http.StatusForbidden)
	}))

	return protection.Handler
}

func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
