package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dtroode/eventopia-server/internal/api/http/response"
	"github.com/dtroode/eventopia-server/internal/logger"
	"github.com/dtroode/eventopia-server/internal/model"
)

const unauthorizedMessage = "unauthorized access"

// TokenService resolves the principal behind a bearer token.
type TokenService interface {
	Verify(ctx context.Context, token string) (model.Principal, error)
}

// FailureRecorder counts rejected authentication attempts.
type FailureRecorder interface {
	AuthFailure(reason string)
}

// Authenticate validates bearer tokens and injects the principal into the context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	recorder       FailureRecorder
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance. recorder may be nil.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, recorder FailureRecorder, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		tokenService:   tokenService,
		contextManager: contextManager,
		recorder:       recorder,
		logger:         logger,
	}
}

// Stage rejects the request with 401 unless it carries a valid bearer token.
// Every failure kind gets the same response.
func (m *Authenticate) Stage(r *http.Request) Outcome {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return m.reject(r, model.ErrTokenMissing)
	}

	principal, err := m.tokenService.Verify(r.Context(), token)
	if err != nil {
		return m.reject(r, err)
	}

	return Continue(m.contextManager.SetPrincipalToContext(r.Context(), principal))
}

// Handler wraps next with the authentication stage.
func (m *Authenticate) Handler(next http.Handler) http.Handler {
	return Chain(m.Stage)(next)
}

func (m *Authenticate) reject(r *http.Request, err error) Outcome {
	reason := failureReason(err)
	m.logger.Debug("Authenticate middleware: request rejected",
		"method", r.Method,
		"path", r.URL.Path,
		"reason", reason)
	if m.recorder != nil {
		m.recorder.AuthFailure(reason)
	}
	return Respond(http.StatusUnauthorized, response.Message{Message: unauthorizedMessage})
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, model.ErrTokenMissing):
		return "missing"
	case errors.Is(err, model.ErrTokenExpired):
		return "expired"
	default:
		return "invalid"
	}
}
