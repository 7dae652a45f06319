// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

// Package radix compiles route patterns into an immutable radix tree and
// matches request paths against it.
package radix

// DefaultSeparator is the byte that bounds a separable variable capture.
const DefaultSeparator = '/'

const (
	// KindLiteral is literal text that must match byte for byte.
	KindLiteral Kind = iota
	// KindVariable is a named separable variable, written {name}.
	KindVariable
	// KindWildcard is a named trailing capture, written {*name}.
	KindWildcard
)

const noNode int32 = -1

const noTag int32 = -1
