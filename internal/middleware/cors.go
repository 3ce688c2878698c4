package middleware

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

// allowedMethods covers every method the router serves.
const allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"

// Cors allows browser requests from the given origins. Requests without an Origin
// header (curl, the seeding tool, server to server) are not subject to CORS.
func Cors(allowedOrigins []string) func(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimSuffix(o, "/")] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !allowed[origin] && !allowed["*"] {
				log.Warnf("CORS: origin not allowed for path [%s] and origin [%s]", r.URL.Path, origin)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Headers",
				"Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, "+TokenHeader,
			)
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Add("Vary", "Origin")

			next.ServeHTTP(w, r)
		})
	}
}
