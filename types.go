package pathrouter

import (
	"log/slog"
	"sync/atomic"

	"github.com/fasthttp/pathrouter/radix"
	"github.com/valyala/fasthttp"
)

// Router dispatches fasthttp requests to the handler registered for the
// matching path pattern.
//
// Routes are registered with Handle, compiled once with Build and then
// served by Handler, which is safe for concurrent use.
type Router struct {
	routes  *radix.Router[fasthttp.RequestHandler]
	pending []pendingRoute
	opts    []radix.Option

	registeredPaths []string

	before []Middleware
	after  []Middleware

	// metrics that already hold the compiled route count
	reported atomic.Pointer[Metrics]

	// If enabled, adds the matched route path onto the ctx.UserValue context
	// before invoking the handler.
	// The matched route path is only added to handlers of routes that were
	// registered when this option was enabled.
	SaveMatchedRoutePath bool

	// Configurable http handler which is called when no matching route is
	// found. If it is not set, default NotFound is used.
	NotFound fasthttp.RequestHandler

	// Function to handle panics recovered from http handlers.
	// It should be used to generate a error page and return the http error code
	// 500 (Internal Server Error).
	// The handler can be used to keep your server from crashing because of
	// unrecovered panics.
	PanicHandler func(*fasthttp.RequestCtx, interface{})

	// Metrics counts lookups by result and reports the number of compiled
	// routes. It may be set before or after Build. Nil disables it.
	Metrics *Metrics

	// Logger receives the route compilation summary.
	Logger *slog.Logger
}

// Group is a sub-router to group paths
type Group struct {
	router     *Router
	prefix     string
	middleware []func(fasthttp.RequestHandler) fasthttp.RequestHandler
}

type pendingRoute struct {
	pattern string
	handler fasthttp.RequestHandler
}
