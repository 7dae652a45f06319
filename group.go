package pathrouter

import (
	"github.com/valyala/fasthttp"
)

// Group returns a new group nested under g.
func (g *Group) Group(path string) *Group {
	validatePath(path)

	if len(g.prefix) > 0 && path == "/" {
		return g
	}

	sub := g.router.Group(g.prefix + path)
	sub.middleware = append(sub.middleware, g.middleware...)

	return sub
}

// Handle registers a new request handler with the given path, prefixed
// with the group path and wrapped by the group middleware.
func (g *Group) Handle(path string, handler fasthttp.RequestHandler) {
	validatePath(path)

	if handler == nil {
		panic("handler must not be nil")
	}

	handler = g.applyMiddleware(handler)
	g.router.Handle(g.prefix+path, handler)
}

// AddMiddleware wraps every handler registered afterwards in the group.
// Middleware added first runs first.
func (g *Group) AddMiddleware(h func(fasthttp.RequestHandler) fasthttp.RequestHandler) {
	g.middleware = append(g.middleware, h)
}

func (g *Group) applyMiddleware(handler fasthttp.RequestHandler) fasthttp.RequestHandler {
	if len(g.middleware) == 0 {
		return handler
	}

	for i := len(g.middleware) - 1; i >= 0; i-- {
		handler = g.middleware[i](handler)
	}

	return handler
}
