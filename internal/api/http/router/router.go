package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/eventopia-server/internal/api/http/handler"
	"github.com/dtroode/eventopia-server/internal/api/http/middleware"
	"github.com/dtroode/eventopia-server/internal/logger"
	"github.com/dtroode/eventopia-server/internal/metrics"
	"github.com/dtroode/eventopia-server/internal/model"
	"github.com/dtroode/eventopia-server/internal/policy"
)

// Router represents the HTTP router for eventopia operations.
// It wires handlers to routes and decides which routes are gated by
// the authentication stage.
type Router struct {
	tokenService   TokenService
	userService    handler.UserService
	eventService   handler.EventService
	policy         *policy.Policy
	contextManager model.ContextManager
	metrics        *metrics.Metrics
	pingers        map[string]model.Pinger
	corsOrigins    []string
	logger         *logger.Logger
}

// TokenService issues and verifies access tokens.
type TokenService interface {
	handler.TokenIssuer
	middleware.TokenService
}

// Dependencies groups everything the router needs to build its handlers.
type Dependencies struct {
	TokenService   TokenService
	UserService    handler.UserService
	EventService   handler.EventService
	Policy         *policy.Policy
	ContextManager model.ContextManager
	// Metrics may be nil, in which case no collectors are registered and /metrics is not served.
	Metrics *metrics.Metrics
	// Pingers are checked by /healthz, keyed by dependency name.
	Pingers     map[string]model.Pinger
	CORSOrigins []string
	Logger      *logger.Logger
}

// New creates new HTTP Router instance.
func New(deps Dependencies) *Router {
	return &Router{
		tokenService:   deps.TokenService,
		userService:    deps.UserService,
		eventService:   deps.EventService,
		policy:         deps.Policy,
		contextManager: deps.ContextManager,
		metrics:        deps.Metrics,
		pingers:        deps.Pingers,
		corsOrigins:    deps.CORSOrigins,
		logger:         deps.Logger,
	}
}

// Register builds the handler tree. Every route whose operation requires a
// verified principal under the active policy is wrapped in the
// authentication stage, so its handler never runs for a rejected request.
func (r *Router) Register() http.Handler {
	mux := chi.NewRouter()

	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(middleware.NewLogging(r.logger).Handler)
	mux.Use(chimiddleware.Recoverer)
	if r.metrics != nil {
		mux.Use(middleware.Metrics(r.metrics))
	}
	mux.Use(middleware.CORS(r.corsOrigins, r.logger))

	r.registerServiceRoutes(mux)
	r.registerAuthRoutes(mux)
	r.registerEventRoutes(mux)

	return mux
}

func (r *Router) registerServiceRoutes(mux chi.Router) {
	health := handler.NewHealth(r.pingers, r.logger)
	mux.Get("/", health.Root)
	mux.Get("/healthz", health.Check)
	if r.metrics != nil {
		mux.Method(http.MethodGet, "/metrics", r.metrics.Handler())
	}
}

func (r *Router) registerAuthRoutes(mux chi.Router) {
	validator := handler.NewValidator()

	tokenHandler := handler.NewToken(r.tokenService, validator, r.logger)
	mux.Post("/jwt", tokenHandler.Issue)

	userHandler := handler.NewUser(r.userService, validator, r.logger)
	mux.Post("/users", userHandler.Register)
}

func (r *Router) registerEventRoutes(mux chi.Router) {
	var recorder middleware.FailureRecorder
	if r.metrics != nil {
		recorder = r.metrics
	}
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, recorder, r.logger)
	guard := func(op policy.Operation) chi.Router {
		if r.policy.RequiresAuth(op) {
			return mux.With(authenticate.Handler)
		}
		return mux
	}

	eventHandler := handler.NewEvent(r.eventService, r.policy, r.contextManager, handler.NewValidator(), r.logger)

	guard(policy.ListEvents).Get("/events", eventHandler.ListEvents)
	guard(policy.CreateEvent).Post("/events", eventHandler.CreateEvent)
	guard(policy.ListOrganizerEvents).Get("/events/{"+handler.ParamEmail+"}", eventHandler.ListOrganizerEvents)
	guard(policy.UpdateEvent).Patch("/events/{"+handler.ParamID+"}", eventHandler.UpdateEvent)
	guard(policy.DeleteEvent).Delete("/events/{"+handler.ParamID+"}", eventHandler.DeleteEvent)
	guard(policy.UploadEventImage).Put("/events/{"+handler.ParamID+"}/image", eventHandler.UploadImage)
	guard(policy.GetEvent).Get("/event/{"+handler.ParamID+"}", eventHandler.GetEvent)
	guard(policy.DownloadEventImage).Get("/event/{"+handler.ParamID+"}/image", eventHandler.DownloadImage)
}
