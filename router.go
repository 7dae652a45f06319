package pathrouter

import (
	"errors"
	"fmt"
	"io"

	"github.com/fasthttp/pathrouter/radix"
	"github.com/savsgio/gotils"
	"github.com/valyala/fasthttp"
)

var errNotBuilt = errors.New("routes are not built, call Build before serving")

var (
	// MatchedRoutePathParam is the param name under which the path of the matched
	// route is stored, if Router.SaveMatchedRoutePath is set.
	MatchedRoutePathParam = fmt.Sprintf("__matchedRoutePath::%s__", gotils.RandBytes(make([]byte, 15)))
)

// New returns a new initialized Router.
// The options are applied when the routes are compiled by Build.
func New(opts ...radix.Option) *Router {
	return &Router{
		opts: opts,
	}
}

// Group returns a new group.
// Routes registered in the group are prefixed with path.
func (r *Router) Group(path string) *Group {
	validatePath(path)

	if len(path) > 1 && path[len(path)-1] == '/' {
		panic("group path must not end with a trailing slash in path '" + path + "'")
	}

	if path == "/" {
		path = ""
	}

	return &Group{
		router: r,
		prefix: path,
	}
}

// Before registers middleware that runs before the matched handler.
func (r *Router) Before(middleware ...Middleware) {
	r.before = append(r.before, middleware...)
}

// After registers middleware that runs after the matched handler.
func (r *Router) After(middleware ...Middleware) {
	r.after = append(r.after, middleware...)
}

func (r *Router) saveMatchedRoutePath(path string, handler fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		ctx.SetUserValue(MatchedRoutePathParam, path)
		handler(ctx)
	}
}

// Handle registers a new request handler with the given path.
//
// Variables are written {name} and a trailing capture {*name}. A segment
// written {name?} is optional: the path is registered with and without it.
// Pattern errors are reported by Build.
func (r *Router) Handle(path string, handler fasthttp.RequestHandler) {
	switch {
	case len(path) < 1 || path[0] != '/':
		panic("path must begin with '/' in path '" + path + "'")
	case handler == nil:
		panic("handler must not be nil")
	case r.routes != nil:
		panic("routes already built, cannot register path '" + path + "'")
	}

	r.registeredPaths = append(r.registeredPaths, path)

	if r.SaveMatchedRoutePath {
		handler = r.saveMatchedRoutePath(path, handler)
	}

	optionalPaths := getOptionalPaths(path)

	// if not has optional paths, adds the original
	if len(optionalPaths) == 0 {
		r.pending = append(r.pending, pendingRoute{pattern: path, handler: handler})
	} else {
		for _, p := range optionalPaths {
			r.pending = append(r.pending, pendingRoute{pattern: p, handler: handler})
		}
	}
}

// Build compiles the registered routes. It must be called once, after every
// route is registered and before the router serves requests.
func (r *Router) Build() error {
	if r.routes != nil {
		return nil
	}

	opts := r.opts
	if r.Logger != nil {
		opts = append(opts[:len(opts):len(opts)], radix.WithLogger(r.Logger))
	}

	setup := radix.NewSetup[fasthttp.RequestHandler](opts...)
	for _, p := range r.pending {
		setup.Add(p.pattern, p.handler)
	}

	routes, err := setup.Build()
	if err != nil {
		return err
	}

	r.routes = routes
	r.pending = nil
	r.reportRoutes()

	return nil
}

// reportRoutes sets the route gauge of the current metrics once.
func (r *Router) reportRoutes() {
	m := r.Metrics
	if m == nil || r.reported.Load() == m {
		return
	}

	m.setRoutes(r.routes.Len())
	r.reported.Store(m)
}

// MustBuild is like Build but panics if the routes cannot be compiled.
func (r *Router) MustBuild() {
	if err := r.Build(); err != nil {
		panic(err)
	}
}

func (r *Router) recv(ctx *fasthttp.RequestCtx) {
	if rcv := recover(); rcv != nil {
		r.PanicHandler(ctx, rcv)
	}
}

// Lookup allows the manual lookup of a path.
// This is e.g. useful to build a framework around this router.
// If the path was found, it returns the handler function and stores the path
// variables as user values of ctx, if ctx is not nil. Otherwise it returns nil.
func (r *Router) Lookup(path string, ctx *fasthttp.RequestCtx) fasthttp.RequestHandler {
	if r.routes == nil {
		return nil
	}

	m, ok := r.routes.Lookup(path)
	if !ok {
		return nil
	}

	if ctx != nil {
		for name, value := range m.Vars {
			ctx.SetUserValue(name, value)
		}
	}

	return m.Tag
}

// Handler makes the router implement the fasthttp.RequestHandler interface.
func (r *Router) Handler(ctx *fasthttp.RequestCtx) {
	if r.routes == nil {
		panic(errNotBuilt)
	}

	r.reportRoutes()

	if r.PanicHandler != nil {
		defer r.recv(ctx)
	}

	path := gotils.B2S(ctx.Path())

	if handler := r.Lookup(path, ctx); handler != nil {
		r.Metrics.observeLookup(resultMatched)

		for _, m := range r.before {
			m.Handle(ctx)
		}

		handler(ctx)

		for _, m := range r.after {
			m.Handle(ctx)
		}

		return
	}

	r.Metrics.observeLookup(resultNotFound)

	// Handle 404
	if r.NotFound != nil {
		r.NotFound(ctx)
	} else {
		ctx.Error(fasthttp.StatusMessage(fasthttp.StatusNotFound), fasthttp.StatusNotFound)
	}
}

// List returns all registered paths in registration order.
func (r *Router) List() []string {
	return r.registeredPaths
}

// Dump writes the compiled route tree to w. It returns an error if the
// routes are not built yet.
func (r *Router) Dump(w io.Writer) error {
	if r.routes == nil {
		return errNotBuilt
	}

	return r.routes.Dump(w)
}
