// Package main provides a command-line tool that rebuilds compile_commands.json
// from the entries compdb-wrapper embedded in object files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/spf13/pflag"

	"github.com/slchris/compdb-wrapper/internal/compdb"
	"github.com/slchris/compdb-wrapper/internal/extract"
	"github.com/slchris/compdb-wrapper/internal/logging"
)

var (
	output      = pflag.StringP("output", "o", "compile_commands.json", "Output file, or - for stdout")
	jobs        = pflag.IntP("jobs", "j", runtime.NumCPU(), "Number of files read in parallel")
	suffixes    = pflag.StringArray("suffix", extract.DefaultSuffixes, "Object file suffix to pick up inside directories (repeatable)")
	printHeader = pflag.Bool("print-header", false, "Print the forced include used by compdb-wrapper and exit")
	verbose     = pflag.BoolP("verbose", "v", false, "Log progress to stderr")
)

func main() {
	pflag.Usage = usage
	pflag.Parse()

	if *printHeader {
		fmt.Print(compdb.Header())
		return
	}

	if pflag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	if err := run(pflag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "compdb-extract: %v\n", err)
		os.Exit(1)
	}
}

func run(roots []string) error {
	logger, err := logging.New(&logging.Config{
		Enabled:       *verbose,
		Level:         "debug",
		EnableConsole: true,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	scanner := &extract.Scanner{
		Suffixes:    *suffixes,
		Concurrency: *jobs,
		Logger:      logger,
	}
	entries, err := scanner.Scan(ctx, roots)
	if err != nil {
		return err
	}
	logger.Info("found %d entries", len(entries))

	if *output == "-" {
		return extract.WriteDatabase(os.Stdout, entries)
	}
	if err := extract.WriteDatabaseFile(*output, entries); err != nil {
		return err
	}
	logger.Info("wrote %s", *output)
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: compdb-extract [flags] <object-or-directory>...")
	fmt.Fprintln(os.Stderr)
	pflag.PrintDefaults()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  # Rebuild the database from a build tree:")
	fmt.Fprintln(os.Stderr, "  compdb-extract -o compile_commands.json build/")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "  # Install the header next to the wrapper:")
	fmt.Fprintln(os.Stderr, "  compdb-extract --print-header > /usr/local/bin/CompilationDatabaseMagic.h")
}
