// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package radix

import (
	"strings"
)

type builder struct {
	tree     tree
	patterns []string
	static   map[string]int32
}

// Build compiles the rules into a Router. It fails on the first rule that
// is malformed, duplicates an earlier rule, or needs a variable or wildcard
// name other than the one already present at the same branch point.
//
// Build is not concurrency-safe, the returned Router is.
func Build[T any](rules []Rule[T], opts ...Option) (*Router[T], error) {
	cfg := newConfig(opts)

	b := &builder{
		tree:     newTree(cfg.separator),
		patterns: make([]string, 0, len(rules)),
	}
	if cfg.staticFastPath {
		b.static = make(map[string]int32)
	}

	tags := make([]T, 0, len(rules))

	for i, rule := range rules {
		if err := b.add(int32(i), rule.Tokens); err != nil {
			return nil, err
		}

		tags = append(tags, rule.Tag)
	}

	cfg.logger.Debug("routes compiled",
		"rules", len(rules),
		"nodes", len(b.tree.nodes),
		"static", len(b.static),
	)

	return &Router[T]{
		tree:     b.tree,
		tags:     tags,
		patterns: b.patterns,
		static:   b.static,
	}, nil
}

// MustBuild is like Build but panics if the rules cannot be compiled.
func MustBuild[T any](rules []Rule[T], opts ...Option) *Router[T] {
	r, err := Build(rules, opts...)
	if err != nil {
		panic(err)
	}

	return r
}

// add inserts the tokens of the rule with index idx.
func (b *builder) add(idx int32, tokens Tokens) error {
	if err := tokens.validate(); err != nil {
		return err
	}

	pattern := tokens.String()
	b.patterns = append(b.patterns, pattern)

	if b.static != nil {
		if path, ok := staticPath(tokens); ok {
			if prev, exists := b.static[path]; exists {
				return &BuildError{Pattern: pattern, Conflict: b.patterns[prev], Err: ErrDuplicateRule}
			}

			b.static[path] = idx

			return nil
		}
	}

	n := int32(0)

	for _, tok := range tokens {
		switch tok.Kind {
		case KindLiteral:
			n = b.tree.addLiteral(n, tok.Text)

		case KindVariable, KindWildcard:
			child, owner := b.tree.addNamed(n, tok.Kind, tok.Text, idx)
			if child == noNode {
				err := ErrAmbiguousVariable
				if tok.Kind == KindWildcard {
					err = ErrAmbiguousWildcard
				}

				return &BuildError{Pattern: pattern, Conflict: b.patterns[owner], Err: err}
			}

			n = child

		default:
			panic("invalid token kind")
		}
	}

	if prev := b.tree.nodes[n].tag; prev != noTag {
		return &BuildError{Pattern: pattern, Conflict: b.patterns[prev], Err: ErrDuplicateRule}
	}

	b.tree.nodes[n].tag = idx

	return nil
}

// staticPath returns the concatenated literal text of tokens, if they are
// all literals.
func staticPath(tokens Tokens) (string, bool) {
	var b strings.Builder

	for _, tok := range tokens {
		if tok.Kind != KindLiteral {
			return "", false
		}

		b.WriteString(tok.Text)
	}

	return b.String(), true
}
