package middleware

import (
	"net/http"
	"time"

	"github.com/dtroode/eventopia-server/internal/metrics"
)

// Metrics records request count, latency and response size.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			done := m.InFlight()
			defer done()

			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			m.ObserveRequest(r.Method, routePattern(r), rec.status, rec.bytesWritten, time.Since(start))
		})
	}
}
