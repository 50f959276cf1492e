package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dtroode/eventopia-server/internal/logger"
	"github.com/dtroode/eventopia-server/internal/model"
)

const (
	rootGreeting       = "Hello from eventopia server"
	healthCheckTimeout = 2 * time.Second
)

// Health serves the root greeting and the health check.
type Health struct {
	pingers map[string]model.Pinger
	logger  *logger.Logger
}

// NewHealth creates a Health handler checking every named dependency.
func NewHealth(pingers map[string]model.Pinger, logger *logger.Logger) *Health {
	return &Health{pingers: pingers, logger: logger}
}

func (h *Health) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(rootGreeting))
}

// Check pings every dependency and answers 503 if any of them fails.
func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	for name, p := range h.pingers {
		if err := p.Ping(ctx); err != nil {
			h.logger.Error("Health handler: dependency unavailable",
				"dependency", name,
				"error", err.Error())
			writeError(w, model.NewErrStoreUnavailable())
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}
