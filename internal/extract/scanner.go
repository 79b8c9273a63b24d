package extract

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/slchris/compdb-wrapper/internal/compdb"
	"github.com/slchris/compdb-wrapper/internal/logging"
)

// DefaultSuffixes select object files when walking directories.
var DefaultSuffixes = []string{".o", ".obj"}

// Scanner collects entries from object files.
type Scanner struct {
	// Suffixes select files inside directories. Files named directly are
	// always read.
	Suffixes    []string
	Concurrency int
	Logger      *logging.Logger
}

// Scan reads every object under roots and returns their merged entries.
func (s *Scanner) Scan(ctx context.Context, roots []string) ([]compdb.Entry, error) {
	paths, err := s.collect(roots)
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("scanning %d files", len(paths))

	limit := s.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	results := make([][]compdb.Entry, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entries, err := ReadObject(path, s.Logger)
			if err != nil {
				return err
			}
			if len(entries) > 0 {
				s.Logger.Debug("%s: %d entries", path, len(entries))
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Merge(results...), nil
}

func (s *Scanner) collect(roots []string) ([]string, error) {
	suffixes := s.Suffixes
	if len(suffixes) == 0 {
		suffixes = DefaultSuffixes
	}

	var paths []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}
		if !info.IsDir() {
			paths = append(paths, root)
			continue
		}

		// WalkDir does not descend through a symlinked root.
		dir, err := filepath.EvalSymlinks(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
		}

		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() && hasSuffix(path, suffixes) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}
	return paths, nil
}

func hasSuffix(path string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// Merge drops duplicate entries and orders the rest by file, directory and
// command. An object linked into several archives yields one entry.
func Merge(groups ...[]compdb.Entry) []compdb.Entry {
	seen := make(map[compdb.Entry]bool)
	merged := []compdb.Entry{}
	for _, group := range groups {
		for _, entry := range group {
			if seen[entry] {
				continue
			}
			seen[entry] = true
			merged = append(merged, entry)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Directory != b.Directory {
			return a.Directory < b.Directory
		}
		return a.Command < b.Command
	})
	return merged
}
