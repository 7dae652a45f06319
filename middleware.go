package pathrouter

import "github.com/valyala/fasthttp"

// Middleware runs before or after the matched handler.
type Middleware interface {
	Handle(*fasthttp.RequestCtx)
}

// MiddlewareFunc adapts a function to the Middleware interface.
type MiddlewareFunc func(*fasthttp.RequestCtx)

// Handle calls fn(ctx).
func (fn MiddlewareFunc) Handle(ctx *fasthttp.RequestCtx) {
	fn(ctx)
}
