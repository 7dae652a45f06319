// Command routecheck loads a route table file and checks it, matches paths
// against it or prints the compiled tree.
//
// A route table has one rule per line, a tag followed by a pattern:
//
//	# users
//	users.list  /users
//	users.show  /users/{id}
//	files       /files/{*path}
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
