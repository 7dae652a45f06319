package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/fasthttp/pathrouter/radix"
)

var errMissingPattern = errors.New("missing pattern")

type routeEntry struct {
	line    int
	tag     string
	pattern string
}

// readRoutes reads a route table. Blank lines and lines starting with '#'
// are skipped. The pattern is everything after the first run of blanks.
func readRoutes(r io.Reader) ([]routeEntry, error) {
	var entries []routeEntry

	scanner := bufio.NewScanner(r)
	n := 0

	for scanner.Scan() {
		n++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		i := strings.IndexFunc(line, unicode.IsSpace)
		if i < 0 {
			return nil, fmt.Errorf("line %d: %w after tag %q", n, errMissingPattern, line)
		}

		entries = append(entries, routeEntry{
			line:    n,
			tag:     line[:i],
			pattern: strings.TrimLeftFunc(line[i:], unicode.IsSpace),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// compileRoutes parses every entry, reporting all pattern errors with their
// line number, and builds the router tagged by the entry tags.
func compileRoutes(entries []routeEntry, opts ...radix.Option) (*radix.Router[string], error) {
	setup := radix.NewSetup[string](opts...)

	var errs []error

	for _, e := range entries {
		tokens, err := radix.Parse(e.pattern)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", e.line, err))
			continue
		}

		setup.AddTokens(tokens, e.tag)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return setup.Build()
}

func loadRoutes(file string, opts ...radix.Option) (*radix.Router[string], error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := readRoutes(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	r, err := compileRoutes(entries, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	return r, nil
}
