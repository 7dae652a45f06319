package pathrouter

import (
	"bufio"
	"bytes"
	"errors"
	"log/slog"
	"net"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/fasthttp/pathrouter/radix"
	"github.com/valyala/fasthttp"
)

type readWriter struct {
	net.Conn
	r bytes.Buffer
	w bytes.Buffer
}

var zeroTCPAddr = &net.TCPAddr{
	IP: net.IPv4zero,
}

func (rw *readWriter) Close() error {
	return nil
}

func (rw *readWriter) Read(b []byte) (int, error) {
	return rw.r.Read(b)
}

func (rw *readWriter) Write(b []byte) (int, error) {
	return rw.w.Write(b)
}

func (rw *readWriter) RemoteAddr() net.Addr {
	return zeroTCPAddr
}

func (rw *readWriter) LocalAddr() net.Addr {
	return zeroTCPAddr
}

func (rw *readWriter) SetReadDeadline(t time.Time) error {
	return nil
}

func (rw *readWriter) SetWriteDeadline(t time.Time) error {
	return nil
}

type assertFn func(rw *readWriter)

func assertWithTestServer(t *testing.T, uri string, handler fasthttp.RequestHandler, fn assertFn) {
	s := &fasthttp.Server{
		Handler: handler,
	}

	rw := &readWriter{}
	ch := make(chan error)

	rw.r.WriteString(uri)
	go func() {
		ch <- s.ServeConn(rw)
	}()
	select {
	case err := <-ch:
		if err != nil {
			t.Fatalf("return error %s", err)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timeout")
	}

	fn(rw)
}

func catchPanic(testFunc func()) (recv interface{}) {
	defer func() {
		recv = recover()
	}()

	testFunc()
	return
}

func TestRouter(t *testing.T) {
	router := New()

	routed := false
	router.Handle("/user/{name}", func(ctx *fasthttp.RequestCtx) {
		routed = true
		want := "gopher"

		param, ok := ctx.UserValue("name").(string)

		if !ok {
			t.Fatalf("wrong wildcard values: param value is nil")
		}

		if param != want {
			t.Fatalf("wrong wildcard values: want %s, got %s", want, param)
		}
	})

	router.MustBuild()

	ctx := new(fasthttp.RequestCtx)
	ctx.Request.SetRequestURI("/user/gopher")

	router.Handler(ctx)

	if !routed {
		t.Fatal("routing failed")
	}
}

func TestRouterVariables(t *testing.T) {
	router := New()

	var got map[string]string
	router.Handle("/{first}/{last}/{*rest}", func(ctx *fasthttp.RequestCtx) {
		got = map[string]string{}
		ctx.VisitUserValues(func(key []byte, value interface{}) {
			got[string(key)] = value.(string)
		})
	})

	router.MustBuild()

	ctx := new(fasthttp.RequestCtx)
	ctx.Request.SetRequestURI("/john/doe/a/b/c?x=1")

	router.Handler(ctx)

	want := map[string]string{"first": "john", "last": "doe", "rest": "a/b/c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("user values == %v, want %v", got, want)
	}
}

func TestRouterInvalidInput(t *testing.T) {
	router := New()

	handle := func(_ *fasthttp.RequestCtx) {}

	recv := catchPanic(func() {
		router.Handle("/", nil)
	})
	if recv == nil {
		t.Fatal("registering nil handler did not panic")
	}

	recv = catchPanic(func() {
		router.Handle("", handle)
	})
	if recv == nil {
		t.Fatal("registering empty path did not panic")
	}

	recv = catchPanic(func() {
		router.Handle("noSlashRoot", handle)
	})
	if recv == nil {
		t.Fatal("registering path not beginning with '/' did not panic")
	}

	recv = catchPanic(func() {
		router.Handler(new(fasthttp.RequestCtx))
	})
	if recv == nil {
		t.Fatal("serving before build did not panic")
	}

	router.MustBuild()

	recv = catchPanic(func() {
		router.Handle("/late", handle)
	})
	if recv == nil {
		t.Fatal("registering after build did not panic")
	}
}

func TestRouterBuildErrors(t *testing.T) {
	handle := func(_ *fasthttp.RequestCtx) {}

	router := New()
	router.Handle("/users/{id}", handle)
	router.Handle("/users/{name}/posts", handle)

	err := router.Build()
	if !errors.Is(err, radix.ErrAmbiguousVariable) {
		t.Fatalf("expected an ambiguous variable error, got %v", err)
	}

	var berr *radix.BuildError
	if !errors.As(err, &berr) {
		t.Fatalf("expected a *radix.BuildError, got %T", err)
	}
	if berr.Conflict != "/users/{id}" {
		t.Errorf("conflict == %q, want %q", berr.Conflict, "/users/{id}")
	}

	router = New()
	router.Handle("/users/{id", handle)
	router.Handle("/files/{*path}/raw", handle)

	err = router.Build()
	if !errors.Is(err, radix.ErrUnbalancedBraces) {
		t.Errorf("expected an unbalanced braces error, got %v", err)
	}
	if !errors.Is(err, radix.ErrWildcardNotLast) {
		t.Errorf("expected a wildcard position error, got %v", err)
	}

	recv := catchPanic(router.MustBuild)
	if recv == nil {
		t.Error("MustBuild did not panic with invalid routes")
	}

	router = New()
	router.Handle("/dup", handle)
	router.Handle("/dup", handle)

	if err := router.Build(); !errors.Is(err, radix.ErrDuplicateRule) {
		t.Errorf("expected a duplicate rule error, got %v", err)
	}
}

func TestRouterChaining(t *testing.T) {
	router1 := New()
	router2 := New()
	router1.NotFound = router2.Handler

	fooHit := false
	router1.Handle("/foo", func(ctx *fasthttp.RequestCtx) {
		fooHit = true
		ctx.SetStatusCode(fasthttp.StatusOK)
	})

	barHit := false
	router2.Handle("/bar", func(ctx *fasthttp.RequestCtx) {
		barHit = true
		ctx.SetStatusCode(fasthttp.StatusOK)
	})

	router1.MustBuild()
	router2.MustBuild()

	ctx := new(fasthttp.RequestCtx)

	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.SetRequestURI("/foo")
	router1.Handler(ctx)

	if !(ctx.Response.StatusCode() == fasthttp.StatusOK && fooHit) {
		t.Errorf("Regular routing failed with router chaining.")
		t.FailNow()
	}

	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.SetRequestURI("/bar")
	router1.Handler(ctx)

	if !(ctx.Response.StatusCode() == fasthttp.StatusOK && barHit) {
		t.Errorf("Chained routing failed with router chaining.")
		t.FailNow()
	}

	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.SetRequestURI("/qax")
	router1.Handler(ctx)

	if !(ctx.Response.StatusCode() == fasthttp.StatusNotFound) {
		t.Errorf("NotFound behavior failed with router chaining.")
		t.FailNow()
	}
}

func TestRouterNotFound(t *testing.T) {
	handlerFunc := func(_ *fasthttp.RequestCtx) {}

	router := New()
	router.Handle("/path", handlerFunc)
	router.Handle("/dir/", handlerFunc)
	router.Handle("/", handlerFunc)
	router.Handle("/{proc}/StaTus", handlerFunc)
	router.Handle("/static/{*filepath}", handlerFunc)
	router.MustBuild()

	testRoutes := []struct {
		route string
		code  int
	}{
		{"/path/", fasthttp.StatusNotFound},         // trailing slash is significant
		{"/dir", fasthttp.StatusNotFound},           // trailing slash is significant
		{"", fasthttp.StatusOK},                     // cleaned by fasthttp `ctx.Path()`
		{"/PATH", fasthttp.StatusNotFound},          // matching is case sensitive
		{"/../path", fasthttp.StatusOK},             // cleaned by fasthttp `ctx.Path()`
		{"/nope", fasthttp.StatusNotFound},          // NotFound
		{"/sergio/StaTus", fasthttp.StatusOK},       // variable
		{"/sergio/status", fasthttp.StatusNotFound}, // matching is case sensitive
		{"/static/", fasthttp.StatusOK},             // empty trailing capture
		{"/static/test.go", fasthttp.StatusOK},      // trailing capture
	}

	for _, tr := range testRoutes {
		ctx := new(fasthttp.RequestCtx)

		ctx.Request.Header.SetMethod(fasthttp.MethodGet)
		ctx.Request.SetRequestURI(tr.route)

		router.Handler(ctx)

		statusCode := ctx.Response.StatusCode()
		if statusCode != tr.code {
			t.Errorf("NotFound handling route %s failed: Code=%d, want=%d", tr.route, statusCode, tr.code)
		}
	}

	// Test custom not found handler
	var notFound bool
	router.NotFound = func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		notFound = true
	}

	ctx := new(fasthttp.RequestCtx)
	ctx.Request.Header.SetMethod(fasthttp.MethodGet)
	ctx.Request.SetRequestURI("/nope")
	router.Handler(ctx)

	if !(ctx.Response.StatusCode() == fasthttp.StatusNotFound && notFound) {
		t.Errorf(
			"Custom NotFound handler failed: Code=%d, Header=%v",
			ctx.Response.StatusCode(),
			ctx.Response.Header.String(),
		)
	}
}

func TestRouterPanicHandler(t *testing.T) {
	router := New()
	panicHandled := false

	router.PanicHandler = func(ctx *fasthttp.RequestCtx, p interface{}) {
		panicHandled = true
	}

	router.Handle("/user/{name}", func(ctx *fasthttp.RequestCtx) {
		panic("oops!")
	})

	router.MustBuild()

	ctx := new(fasthttp.RequestCtx)
	ctx.Request.Header.SetMethod(fasthttp.MethodPut)
	ctx.Request.SetRequestURI("/user/gopher")

	defer func() {
		if rcv := recover(); rcv != nil {
			t.Fatal("handling panic failed")
		}
	}()

	router.Handler(ctx)

	if !panicHandled {
		t.Fatal("simulating failed")
	}
}

func TestRouterLookup(t *testing.T) {
	routed := false
	wantHandle := func(_ *fasthttp.RequestCtx) {
		routed = true
	}
	wantParams := map[string]string{"name": "gopher"}

	ctx := new(fasthttp.RequestCtx)
	router := New()

	// try a router which is not built first
	if handle := router.Lookup("/nope", ctx); handle != nil {
		t.Fatalf("Got handle for unregistered pattern: %v", handle)
	}

	router.Handle("/user/{name}", wantHandle)
	router.Handle("/user", wantHandle)
	router.MustBuild()

	handle := router.Lookup("/user/gopher", ctx)
	if handle == nil {
		t.Fatal("Got no handle!")
	} else {
		handle(nil)
		if !routed {
			t.Fatal("Routing failed!")
		}
	}

	for expectedKey, expectedVal := range wantParams {
		if ctx.UserValue(expectedKey) != expectedVal {
			t.Errorf("The values %s = %s is not save in context", expectedKey, expectedVal)
		}
	}

	routed = false

	// route without param
	handle = router.Lookup("/user", ctx)
	if handle == nil {
		t.Fatal("Got no handle!")
	} else {
		handle(nil)
		if !routed {
			t.Fatal("Routing failed!")
		}
	}

	if handle := router.Lookup("/user/gopher/", ctx); handle != nil {
		t.Fatalf("Got handle for unregistered pattern: %v", handle)
	}

	if handle := router.Lookup("/nope", ctx); handle != nil {
		t.Fatalf("Got handle for unregistered pattern: %v", handle)
	}

	// a nil ctx only skips the user values
	if handle := router.Lookup("/user/gopher", nil); handle == nil {
		t.Fatal("Got no handle with a nil ctx!")
	}
}

func TestRouterMatchedRoutePath(t *testing.T) {
	route1 := "/user/{name}"
	routed1 := false
	handle1 := func(ctx *fasthttp.RequestCtx) {
		route := ctx.UserValue(MatchedRoutePathParam)
		if route != route1 {
			t.Fatalf("Wrong matched route: want %s, got %s", route1, route)
		}
		routed1 = true
	}

	route2 := "/user/{name}/details"
	routed2 := false
	handle2 := func(ctx *fasthttp.RequestCtx) {
		route := ctx.UserValue(MatchedRoutePathParam)
		if route != route2 {
			t.Fatalf("Wrong matched route: want %s, got %s", route2, route)
		}
		routed2 = true
	}

	route3 := "/show/{name?}"
	routed3 := 0
	handle3 := func(ctx *fasthttp.RequestCtx) {
		route := ctx.UserValue(MatchedRoutePathParam)
		if route != route3 {
			t.Fatalf("Wrong matched route: want %s, got %s", route3, route)
		}
		routed3++
	}

	router := New()
	router.SaveMatchedRoutePath = true
	router.Handle(route1, handle1)
	router.Handle(route2, handle2)
	router.Handle(route3, handle3)
	router.MustBuild()

	ctx := new(fasthttp.RequestCtx)

	ctx.Request.SetRequestURI("/user/gopher")
	router.Handler(ctx)
	if !routed1 || routed2 || routed3 > 0 {
		t.Fatal("Routing failed!")
	}

	ctx.Request.SetRequestURI("/user/gopher/details")
	router.Handler(ctx)
	if !routed2 || routed3 > 0 {
		t.Fatal("Routing failed!")
	}

	ctx.Request.SetRequestURI("/show")
	router.Handler(ctx)
	ctx.Request.SetRequestURI("/show/gopher")
	router.Handler(ctx)
	if routed3 != 2 {
		t.Fatal("Routing failed!")
	}
}

func TestRouterOptionalPaths(t *testing.T) {
	var got string
	handler := func(ctx *fasthttp.RequestCtx) {
		name, _ := ctx.UserValue("name").(string)
		surname, _ := ctx.UserValue("surname").(string)
		got = name + "|" + surname
	}

	router := New()
	router.Handle("/users/{name}/{surname?}", handler)
	router.MustBuild()

	tests := []struct {
		path string
		want string
	}{
		{"/users/john", "john|"},
		{"/users/john/doe", "john|doe"},
	}

	for _, tt := range tests {
		got = ""

		ctx := new(fasthttp.RequestCtx)
		ctx.Request.SetRequestURI(tt.path)
		router.Handler(ctx)

		if got != tt.want {
			t.Errorf("path %s: got %q, want %q", tt.path, got, tt.want)
		}
	}

	ctx := new(fasthttp.RequestCtx)
	ctx.Request.SetRequestURI("/users")
	router.Handler(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusNotFound {
		t.Errorf("path /users: Code=%d, want=%d", ctx.Response.StatusCode(), fasthttp.StatusNotFound)
	}
}

func TestRouterBeforeAfter(t *testing.T) {
	calls := make([]string, 0)
	record := func(name string) MiddlewareFunc {
		return func(_ *fasthttp.RequestCtx) {
			calls = append(calls, name)
		}
	}

	router := New()
	router.Before(record("before1"), record("before2"))
	router.After(record("after"))
	router.Handle("/", func(_ *fasthttp.RequestCtx) {
		calls = append(calls, "handler")
	})
	router.MustBuild()

	ctx := new(fasthttp.RequestCtx)
	ctx.Request.SetRequestURI("/")
	router.Handler(ctx)

	want := []string{"before1", "before2", "handler", "after"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls == %v, want %v", calls, want)
	}

	// middleware does not run when no route matches
	calls = calls[:0]

	ctx.Request.SetRequestURI("/nope")
	router.Handler(ctx)

	if len(calls) != 0 {
		t.Errorf("calls == %v, want none", calls)
	}
}

func TestRouterStaticFastPath(t *testing.T) {
	hits := make(map[string]int)
	handler := func(name string) fasthttp.RequestHandler {
		return func(_ *fasthttp.RequestCtx) {
			hits[name]++
		}
	}

	router := New(radix.WithStaticFastPath(true))
	router.Handle("/users/new", handler("new"))
	router.Handle("/users/{id}", handler("id"))
	router.MustBuild()

	for _, path := range []string{"/users/new", "/users/42", "/users/newer"} {
		ctx := new(fasthttp.RequestCtx)
		ctx.Request.SetRequestURI(path)
		router.Handler(ctx)
	}

	want := map[string]int{"new": 1, "id": 2}
	if !reflect.DeepEqual(hits, want) {
		t.Errorf("hits == %v, want %v", hits, want)
	}
}

func TestRouterList(t *testing.T) {
	expected := []string{
		"/bar",
		"/foo",
		"/v1/users/{name}/{surname?}",
		"/v1/users/{id}/{*rest}",
	}

	r := New()
	r.Handle("/bar", func(ctx *fasthttp.RequestCtx) {})
	r.Handle("/foo", func(ctx *fasthttp.RequestCtx) {})

	v1 := r.Group("/v1")
	v1.Handle("/users/{name}/{surname?}", func(ctx *fasthttp.RequestCtx) {})
	v1.Handle("/users/{id}/{*rest}", func(ctx *fasthttp.RequestCtx) {})

	result := r.List()

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Router.List() == %v, want %v", result, expected)
	}
}

func TestRouterDump(t *testing.T) {
	r := New()
	r.Handle("/a", func(ctx *fasthttp.RequestCtx) {})
	r.Handle("/{x}", func(ctx *fasthttp.RequestCtx) {})

	var out bytes.Buffer

	if err := r.Dump(&out); err == nil {
		t.Error("an error was expected dumping routes which are not built")
	}

	r.MustBuild()

	if err := r.Dump(&out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Join([]string{
		`root`,
		`  "/"`,
		`    "a" => #0 /a`,
		`    {x} => #1 /{x}`,
		``,
	}, "\n")

	if out.String() != want {
		t.Errorf("Router.Dump() ==\n%s\nwant\n%s", out.String(), want)
	}
}

func TestRouterLogger(t *testing.T) {
	var out bytes.Buffer

	r := New()
	r.Logger = slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r.Handle("/", func(ctx *fasthttp.RequestCtx) {})
	r.MustBuild()

	if !strings.Contains(out.String(), `msg="routes compiled"`) {
		t.Errorf("missing build summary in log output: %s", out.String())
	}
}

func TestRouterServer(t *testing.T) {
	r := New()
	r.Handle("/hello/{name}", func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString("hello " + ctx.UserValue("name").(string))
	})
	r.MustBuild()

	assertWithTestServer(t, "GET /hello/gopher HTTP/1.1\r\n\r\n", r.Handler, func(rw *readWriter) {
		br := bufio.NewReader(&rw.w)
		var resp fasthttp.Response
		if err := resp.Read(br); err != nil {
			t.Fatalf("Unexpected error when reading response: %s", err)
		}
		if resp.Header.StatusCode() != fasthttp.StatusOK {
			t.Fatalf("Status code %d, want %d", resp.Header.StatusCode(), fasthttp.StatusOK)
		}
		if string(resp.Body()) != "hello gopher" {
			t.Errorf("Body %q, want %q", resp.Body(), "hello gopher")
		}
	})
}

func BenchmarkRouterGet(b *testing.B) {
	r := New()
	r.Handle("/", func(ctx *fasthttp.RequestCtx) {})
	r.MustBuild()

	ctx := new(fasthttp.RequestCtx)
	ctx.Request.Header.SetMethod("GET")
	ctx.Request.SetRequestURI("/")

	for i := 0; i < b.N; i++ {
		r.Handler(ctx)
	}
}

func BenchmarkRouterParams(b *testing.B) {
	r := New()
	r.Handle("/{id}", func(ctx *fasthttp.RequestCtx) {})
	r.MustBuild()

	ctx := new(fasthttp.RequestCtx)
	ctx.Request.Header.SetMethod("GET")
	ctx.Request.SetRequestURI("/hola")

	for i := 0; i < b.N; i++ {
		r.Handler(ctx)
	}
}

func BenchmarkRouterNotFound(b *testing.B) {
	r := New()
	r.Handle("/bench", func(ctx *fasthttp.RequestCtx) {})
	r.MustBuild()

	ctx := new(fasthttp.RequestCtx)
	ctx.Request.Header.SetMethod("GET")
	ctx.Request.SetRequestURI("/notfound")

	for i := 0; i < b.N; i++ {
		r.Handler(ctx)
	}
}
