package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

const internalErrorPage = `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Error · Ardena Admin</title></head>` +
	`<body><div class="error-message show">Unexpected server error. Please try again.</div><a href="/">Back to dashboard</a></body></html>`

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}

			slog.Error("panic recovered", "path", r.URL.Path, "error", fmt.Sprintf("%v", recovered), "stack", string(debug.Stack()))
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(internalErrorPage))
		}()

		next.ServeHTTP(w, r)
	})
}
