package gateway

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS wraps next with the host's cross-origin policy. Screens are public, so
// every origin is allowed.
func CORS(next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodOptions,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
		MaxAge:         86400,
	})
	return c.Handler(next)
}
