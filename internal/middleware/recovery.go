package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/2beens/gymlogger/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a handler panic into a 500 and counts it.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			defer func() {
				if r := recover(); r != nil {
					if r == http.ErrAbortHandler {
						panic(r)
					}
					log.Errorf("http: panic serving %s %s: %v\n%s", req.Method, req.URL.Path, r, debug.Stack())
					if metricsManager != nil {
						metricsManager.CounterHandleRequestPanic.Inc()
					}
					http.Error(respWriter, "internal error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(respWriter, req)
		})
	}
}
