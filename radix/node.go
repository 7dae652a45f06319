// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package radix

import (
	"strings"
)

// tree is the node arena. The root is always at index 0.
type tree struct {
	nodes []node
	sep   byte
}

func newTree(sep byte) tree {
	t := tree{
		nodes: make([]node, 0, 16),
		sep:   sep,
	}
	t.newNode()

	return t
}

func (t *tree) newNode() int32 {
	t.nodes = append(t.nodes, node{
		variable: namedEdge{child: noNode},
		wildcard: namedEdge{child: noNode},
		tag:      noTag,
	})

	return int32(len(t.nodes) - 1)
}

// addLiteral follows the literal edges below n that spell text, splitting
// the first edge that diverges from it, and returns the node where text ends.
//
// The arena may grow while adding, so nodes are always addressed by index.
func (t *tree) addLiteral(n int32, text string) int32 {
	for len(text) > 0 {
		i := strings.IndexByte(t.nodes[n].indices, text[0])
		if i < 0 {
			child := t.newNode()

			t.nodes[n].indices += text[:1]
			t.nodes[n].edges = append(t.nodes[n].edges, edge{label: text, child: child})

			return child
		}

		e := t.nodes[n].edges[i]

		// Find the longest common prefix.
		// The first byte is shared, so it's at least 1.
		l := longestCommonPrefix(text, e.label)

		if l < len(e.label) {
			// Splits edge because has the same prefix
			mid := t.newNode()

			t.nodes[mid].indices = e.label[l : l+1]
			t.nodes[mid].edges = []edge{{label: e.label[l:], child: e.child}}
			t.nodes[n].edges[i] = edge{label: e.label[:l], child: mid}
		}

		n = t.nodes[n].edges[i].child
		text = text[l:]
	}

	return n
}

// addNamed returns the child of the variable or wildcard edge of n named
// name, creating it when missing. It returns noNode and the owner of the
// existing edge when the edge carries another name.
func (t *tree) addNamed(n int32, kind Kind, name string, owner int32) (int32, int32) {
	var ne *namedEdge

	switch kind {
	case KindVariable:
		ne = &t.nodes[n].variable
	case KindWildcard:
		ne = &t.nodes[n].wildcard
	default:
		panic("invalid token kind")
	}

	if ne.child != noNode {
		if ne.name != name {
			return noNode, ne.owner
		}

		return ne.child, ne.owner
	}

	child := t.newNode()

	// The arena may have moved
	switch kind {
	case KindVariable:
		t.nodes[n].variable = namedEdge{name: name, child: child, owner: owner}
	case KindWildcard:
		t.nodes[n].wildcard = namedEdge{name: name, child: child, owner: owner}
	}

	return child, owner
}

// accepts reports whether a descent from n could consume path. It only
// looks at n itself and is used to prune variable stop points.
func (n *node) accepts(path string) bool {
	if len(path) == 0 {
		return n.tag != noTag || n.wildcard.child != noNode
	}

	return strings.IndexByte(n.indices, path[0]) >= 0 ||
		n.variable.child != noNode ||
		n.wildcard.child != noNode
}

// failures remembers the (node, remaining length) pairs below a variable
// edge that are known not to match. Whether a descent succeeds never depends
// on what was captured before it, so each pair is explored once per lookup.
type failures map[uint64]struct{}

func failureKey(n int32, path string) uint64 {
	return uint64(uint32(n))<<32 | uint64(uint32(len(path)))
}

// find matches path below n and returns the tag index of the first rule
// that consumes all of it, or noTag.
//
// Literal edges are tried first, then the variable edge with the shortest
// capture that lets the rest match, then the wildcard edge.
func (t *tree) find(n int32, path string, caps []capture, failed *failures) (int32, []capture) {
	nd := &t.nodes[n]

	if len(path) == 0 {
		if nd.tag != noTag {
			// Found it
			return nd.tag, caps
		}
	} else if i := strings.IndexByte(nd.indices, path[0]); i >= 0 {
		// Sibling edges never share a first byte, so this is the only candidate
		e := nd.edges[i]

		if strings.HasPrefix(path, e.label) {
			if tag, c := t.find(e.child, path[len(e.label):], caps, failed); tag != noTag {
				return tag, c
			}
		}
	}

	if v := nd.variable; v.child != noNode {
		child := &t.nodes[v.child]
		end := segmentEndIndex(path, t.sep)

		for p := 1; p <= end; p++ {
			rest := path[p:]

			if !child.accepts(rest) {
				continue
			}

			key := failureKey(v.child, rest)
			if _, ok := (*failed)[key]; ok {
				continue
			}

			// Recursive search to know if the current branch it's correct
			tag, c := t.find(v.child, rest, append(caps, capture{name: v.name, value: path[:p]}), failed)
			if tag != noTag {
				return tag, c
			}

			if *failed == nil {
				*failed = make(failures)
			}
			(*failed)[key] = struct{}{}
		}
	}

	if w := nd.wildcard; w.child != noNode {
		// The wildcard always ends a rule, so its child is terminal
		return t.nodes[w.child].tag, append(caps, capture{name: w.name, value: path})
	}

	return noTag, caps
}
