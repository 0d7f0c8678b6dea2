package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS only matters for the health probe and the websocket when the
// console is embedded elsewhere; pages and forms are same-origin.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	handler := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		MaxAge:           600,
		AllowCredentials: false,
	})

	return handler.Handler
}
