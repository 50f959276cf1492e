package middleware

import (
	"context"
	"net/http"

	"github.com/dtroode/eventopia-server/internal/api/http/response"
)

// Outcome is what a Stage decided: either continue with a possibly enriched
// context, or stop and respond.
type Outcome struct {
	ctx     context.Context
	respond bool
	status  int
	body    any
}

// Continue passes the request on with ctx.
func Continue(ctx context.Context) Outcome {
	return Outcome{ctx: ctx}
}

// Respond stops the pipeline and writes body as JSON with status.
func Respond(status int, body any) Outcome {
	return Outcome{respond: true, status: status, body: body}
}

// Responded reports whether the outcome stops the pipeline.
func (o Outcome) Responded() bool {
	return o.respond
}

// Status returns the response status of a stopping outcome.
func (o Outcome) Status() int {
	return o.status
}

// Context returns the context to continue with.
func (o Outcome) Context() context.Context {
	return o.ctx
}

// Stage inspects a request and decides its Outcome.
type Stage func(r *http.Request) Outcome

// Chain composes stages into a middleware. Stages run in order, each seeing
// the context produced by the previous one. The first stage that responds
// ends the request and next is never called.
func Chain(stages ...Stage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, stage := range stages {
				outcome := stage(r)
				if outcome.Responded() {
					response.JSON(w, outcome.status, outcome.body)
					return
				}
				if outcome.ctx != nil {
					r = r.WithContext(outcome.ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
