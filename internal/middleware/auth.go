package middleware

import (
	"net/http"
	"strings"
	"sync"

	"github.com/2beens/gymlogger/internal/telemetry/tracing"
	"github.com/2beens/gymlogger/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const TokenHeader = "X-GYMLOG-TOKEN"

// AuthMiddlewareHandler lets a request through when it carries the API token,
// either in the X-GYMLOG-TOKEN header or as an Authorization bearer token.
// The token is checked against its bcrypt hash.
type AuthMiddlewareHandler struct {
	tokenHash    string
	allowedPaths map[string]bool
	// tokens that already passed the bcrypt check
	verified sync.Map
}

func NewAuthMiddlewareHandler(tokenHash string, allowedPaths ...string) *AuthMiddlewareHandler {
	if tokenHash == "" {
		log.Warnln("auth middleware: no API token hash set, all requests are allowed")
	}
	h := &AuthMiddlewareHandler{
		tokenHash:    tokenHash,
		allowedPaths: map[string]bool{},
	}
	for _, p := range allowedPaths {
		h.allowedPaths[p] = true
	}
	return h
}

func requestToken(r *http.Request) string {
	if token := r.Header.Get(TokenHeader); token != "" {
		return token
	}
	if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(bearer)
	}
	return ""
}

func (h *AuthMiddlewareHandler) tokenValid(token string) bool {
	if _, ok := h.verified.Load(token); ok {
		return true
	}
	if !pkg.TokenMatchesHash(token, h.tokenHash) {
		return false
	}
	h.verified.Store(token, struct{}{})
	return true
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", allowedMethods)
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.tokenHash == "" || h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			authToken := requestToken(r)
			if authToken == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			if !h.tokenValid(authToken) {
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-token")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
