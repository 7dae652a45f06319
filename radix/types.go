// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package radix

// Kind is the type of a pattern token.
type Kind uint8

// Token is one element of a parsed route pattern.
//
// For KindLiteral, Text holds the literal text. For KindVariable and
// KindWildcard it holds the name.
type Token struct {
	Kind Kind
	Text string
}

// Tokens is a parsed route pattern.
type Tokens []Token

// Rule pairs a token sequence with the caller's tag.
type Rule[T any] struct {
	Tokens Tokens
	Tag    T
}

// Match is the result of a successful lookup.
type Match[T any] struct {
	// Tag is the payload registered with the matched rule.
	Tag T

	// Vars maps variable and wildcard names to the captured text.
	Vars map[string]string

	// Pattern is the canonical pattern text of the matched rule.
	Pattern string
}

type edge struct {
	label string
	child int32
}

type namedEdge struct {
	name  string
	child int32
	owner int32 // rule that created the edge
}

// node is an arena slot. Children are addressed by their index in the arena.
type node struct {
	indices  string
	edges    []edge
	variable namedEdge
	wildcard namedEdge
	tag      int32
}

type capture struct {
	name  string
	value string
}
