// Package main provides the compiler wrapper that embeds compilation database
// entries into object files. Install it in place of the compiler, e.g. as
// CXX=compdb-wrapper.
package main

import (
	"fmt"
	"os"

	"github.com/slchris/compdb-wrapper/internal/wrapper"
)

func main() {
	config, err := wrapper.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "compdb-wrapper: failed to load config: %v\n", err)
		os.Exit(1)
	}

	w, err := wrapper.NewWrapper(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compdb-wrapper: failed to create wrapper: %v\n", err)
		os.Exit(1)
	}

	// Execute only returns if the compiler could not be started.
	if err := w.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "compdb-wrapper: %v\n", err)
		os.Exit(1)
	}
}
