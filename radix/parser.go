// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package radix

import (
	"strings"
)

// Parse turns a route pattern into its token sequence.
//
// Text outside braces is literal, {name} is a separable variable and {*name}
// is a wildcard that must end the pattern. Names may only contain letters,
// digits and underscores.
func Parse(pattern string) (Tokens, error) {
	tokens := make(Tokens, 0, 4)
	wildcardAt := -1
	start := 0

	push := func(tok Token) error {
		if wildcardAt >= 0 {
			return &ParseError{Pattern: pattern, Offset: wildcardAt, Err: ErrWildcardNotLast}
		}

		tokens = append(tokens, tok)

		return nil
	}

	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '}':
			return nil, &ParseError{Pattern: pattern, Offset: i, Err: ErrUnbalancedBraces}

		case '{':
			if i > start {
				if err := push(Token{Kind: KindLiteral, Text: pattern[start:i]}); err != nil {
					return nil, err
				}
			}

			end := -1
			for j := i + 1; j < len(pattern); j++ {
				if pattern[j] == '{' {
					return nil, &ParseError{Pattern: pattern, Offset: j, Err: ErrUnbalancedBraces}
				}

				if pattern[j] == '}' {
					end = j
					break
				}
			}

			if end < 0 {
				return nil, &ParseError{Pattern: pattern, Offset: i, Err: ErrUnbalancedBraces}
			}

			tok := Token{Kind: KindVariable, Text: pattern[i+1 : end]}
			if strings.HasPrefix(tok.Text, "*") {
				tok.Kind = KindWildcard
				tok.Text = tok.Text[1:]
			}

			if !validName.MatchString(tok.Text) {
				return nil, &ParseError{Pattern: pattern, Offset: i + 1, Err: ErrInvalidName}
			}

			if tokens.hasName(tok.Text) {
				return nil, &ParseError{Pattern: pattern, Offset: i + 1, Err: ErrDuplicateName}
			}

			if err := push(tok); err != nil {
				return nil, err
			}

			if tok.Kind == KindWildcard {
				wildcardAt = i
			}

			i = end
			start = end + 1
		}
	}

	if start < len(pattern) {
		if err := push(Token{Kind: KindLiteral, Text: pattern[start:]}); err != nil {
			return nil, err
		}
	}

	return tokens, nil
}

// String renders the tokens back into pattern text.
func (ts Tokens) String() string {
	var b strings.Builder

	for _, tok := range ts {
		switch tok.Kind {
		case KindLiteral:
			b.WriteString(tok.Text)
		case KindVariable:
			b.WriteString("{" + tok.Text + "}")
		case KindWildcard:
			b.WriteString("{*" + tok.Text + "}")
		default:
			panic("invalid token kind")
		}
	}

	return b.String()
}

// Names returns the variable and wildcard names in order of appearance.
func (ts Tokens) Names() []string {
	names := make([]string, 0, len(ts))

	for _, tok := range ts {
		switch tok.Kind {
		case KindLiteral:
		case KindVariable, KindWildcard:
			names = append(names, tok.Text)
		default:
			panic("invalid token kind")
		}
	}

	return names
}

func (ts Tokens) hasName(name string) bool {
	for _, tok := range ts {
		if tok.Kind != KindLiteral && tok.Text == name {
			return true
		}
	}

	return false
}

// validate checks what Parse guarantees, for rules built by hand.
func (ts Tokens) validate() error {
	pattern := ts.String()

	for i, tok := range ts {
		switch tok.Kind {
		case KindLiteral:
		case KindVariable, KindWildcard:
			if !validName.MatchString(tok.Text) {
				return &BuildError{Pattern: pattern, Err: ErrInvalidName}
			}

			if ts[:i].hasName(tok.Text) {
				return &BuildError{Pattern: pattern, Err: ErrDuplicateName}
			}

			if tok.Kind == KindWildcard && i != len(ts)-1 {
				return &BuildError{Pattern: pattern, Err: ErrWildcardNotLast}
			}
		default:
			panic("invalid token kind")
		}
	}

	return nil
}
