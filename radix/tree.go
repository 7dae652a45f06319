// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package radix

import (
	"io"
	"strconv"

	"github.com/valyala/bytebufferpool"
)

// Router is a compiled set of rules. It is never modified after Build
// returns, so it's safe for concurrent use without locking.
type Router[T any] struct {
	tree     tree
	tags     []T
	patterns []string
	static   map[string]int32
}

// Lookup returns the rule matching the whole path and the captured
// variables. The second return value is false if no rule matches.
func (r *Router[T]) Lookup(path string) (Match[T], bool) {
	if r.static != nil {
		if idx, ok := r.static[path]; ok {
			return r.match(idx, nil), true
		}
	}

	var (
		buf    [8]capture
		failed failures
	)

	idx, caps := r.tree.find(0, path, buf[:0], &failed)
	if idx == noTag {
		return Match[T]{}, false
	}

	return r.match(idx, caps), true
}

func (r *Router[T]) match(idx int32, caps []capture) Match[T] {
	vars := make(map[string]string, len(caps))
	for _, c := range caps {
		vars[c.name] = c.value
	}

	return Match[T]{
		Tag:     r.tags[idx],
		Vars:    vars,
		Pattern: r.patterns[idx],
	}
}

// Len returns the number of compiled rules.
func (r *Router[T]) Len() int {
	return len(r.tags)
}

// Routes returns the canonical pattern of every rule in registration order.
func (r *Router[T]) Routes() []string {
	routes := make([]string, len(r.patterns))
	copy(routes, r.patterns)

	return routes
}

// Dump writes a human readable view of the compiled tree to w.
func (r *Router[T]) Dump(w io.Writer) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	r.dump(buf)

	_, err := w.Write(buf.B)

	return err
}

// String returns the output of Dump.
func (r *Router[T]) String() string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	r.dump(buf)

	return buf.String()
}

func (r *Router[T]) dump(buf *bytebufferpool.ByteBuffer) {
	buf.WriteString("root")
	r.dumpTerminal(buf, r.tree.nodes[0].tag)
	buf.WriteByte('\n')
	r.dumpNode(buf, 0, 1)

	if len(r.static) == 0 {
		return
	}

	buf.WriteString("static\n")

	// Registration order keeps the output stable
	paths := make([]*string, len(r.patterns))
	for path, idx := range r.static {
		path := path
		paths[idx] = &path
	}

	for idx, path := range paths {
		if path == nil {
			continue
		}

		buf.WriteString("  ")
		buf.B = strconv.AppendQuote(buf.B, *path)
		r.dumpTerminal(buf, int32(idx))
		buf.WriteByte('\n')
	}
}

func (r *Router[T]) dumpNode(buf *bytebufferpool.ByteBuffer, n int32, depth int) {
	nd := &r.tree.nodes[n]

	line := func(label string, child int32) {
		for i := 0; i < depth; i++ {
			buf.WriteString("  ")
		}

		buf.WriteString(label)
		r.dumpTerminal(buf, r.tree.nodes[child].tag)
		buf.WriteByte('\n')
		r.dumpNode(buf, child, depth+1)
	}

	for _, e := range nd.edges {
		line(strconv.Quote(e.label), e.child)
	}

	if nd.variable.child != noNode {
		line("{"+nd.variable.name+"}", nd.variable.child)
	}

	if nd.wildcard.child != noNode {
		line("{*"+nd.wildcard.name+"}", nd.wildcard.child)
	}
}

func (r *Router[T]) dumpTerminal(buf *bytebufferpool.ByteBuffer, idx int32) {
	if idx == noTag {
		return
	}

	buf.WriteString(" => #")
	buf.B = strconv.AppendInt(buf.B, int64(idx), 10)
	buf.WriteString(" ")
	buf.WriteString(r.patterns[idx])
}
