package radix

import (
	"errors"
)

// Setup collects rules and compiles them into a Router.
//
// Patterns are parsed as they are added. Parse errors are kept and returned
// by Build, so calls can be chained:
//
//	r, err := radix.NewSetup[int]().
//		Add("/users", 1).
//		Add("/users/{id}", 2).
//		Build()
type Setup[T any] struct {
	opts  []Option
	rules []Rule[T]
	errs  []error
}

// NewSetup returns an empty Setup compiling with the given options.
func NewSetup[T any](opts ...Option) *Setup[T] {
	return &Setup[T]{
		opts: opts,
	}
}

// Add registers a rule for pattern.
func (s *Setup[T]) Add(pattern string, tag T) *Setup[T] {
	tokens, err := Parse(pattern)
	if err != nil {
		s.errs = append(s.errs, err)
		return s
	}

	s.rules = append(s.rules, Rule[T]{Tokens: tokens, Tag: tag})

	return s
}

// AddTokens registers a rule from an already parsed pattern.
func (s *Setup[T]) AddTokens(tokens Tokens, tag T) *Setup[T] {
	s.rules = append(s.rules, Rule[T]{Tokens: tokens, Tag: tag})

	return s
}

// Build compiles every added rule. Parse errors are returned as they were
// reported, joined if there is more than one.
func (s *Setup[T]) Build() (*Router[T], error) {
	if err := s.parseErr(); err != nil {
		return nil, err
	}

	return Build(s.rules, s.opts...)
}

// MustBuild is like Build but panics if the rules cannot be compiled.
func (s *Setup[T]) MustBuild() *Router[T] {
	if err := s.parseErr(); err != nil {
		panic(err)
	}

	return MustBuild(s.rules, s.opts...)
}

func (s *Setup[T]) parseErr() error {
	switch len(s.errs) {
	case 0:
		return nil
	case 1:
		return s.errs[0]
	default:
		return errors.Join(s.errs...)
	}
}
