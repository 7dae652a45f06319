// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package radix

import (
	"errors"
	"strconv"
)

var (
	// ErrUnbalancedBraces indicates a '{' without its '}', a nested '{' or a stray '}'.
	ErrUnbalancedBraces = errors.New("unbalanced braces")

	// ErrInvalidName indicates an empty variable name or one with characters
	// other than letters, digits and underscore.
	ErrInvalidName = errors.New("invalid variable name")

	// ErrDuplicateName indicates the same variable name used twice in one pattern.
	ErrDuplicateName = errors.New("duplicate variable name")

	// ErrWildcardNotLast indicates a wildcard followed by other tokens.
	ErrWildcardNotLast = errors.New("wildcard must be the last token")

	// ErrDuplicateRule indicates two rules with an identical token path.
	ErrDuplicateRule = errors.New("duplicate rule")

	// ErrAmbiguousVariable indicates two differently named variables at the same branch point.
	ErrAmbiguousVariable = errors.New("conflicting variable names")

	// ErrAmbiguousWildcard indicates two differently named wildcards at the same branch point.
	ErrAmbiguousWildcard = errors.New("conflicting wildcard names")
)

// ParseError reports a malformed pattern.
type ParseError struct {
	Pattern string
	Offset  int
	Err     error
}

func (e *ParseError) Error() string {
	return e.Err.Error() + " at offset " + strconv.Itoa(e.Offset) + " in pattern '" + e.Pattern + "'"
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// BuildError reports a rule that cannot be added to the tree. Conflict holds
// the pattern of the earlier rule it collides with, when there is one.
type BuildError struct {
	Pattern  string
	Conflict string
	Err      error
}

func (e *BuildError) Error() string {
	msg := e.Err.Error() + " in pattern '" + e.Pattern + "'"
	if e.Conflict != "" {
		msg += " conflicts with existing pattern '" + e.Conflict + "'"
	}

	return msg
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
