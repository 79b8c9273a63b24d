package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/slchris/compdb-wrapper/internal/compdb"
)

// WriteDatabase writes entries as a compile_commands.json array.
func WriteDatabase(w io.Writer, entries []compdb.Entry) error {
	if entries == nil {
		entries = []compdb.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode database: %w", err)
	}
	return nil
}

// WriteDatabaseFile writes entries to path, replacing any existing file only
// once the new contents are complete.
func WriteDatabaseFile(path string, entries []compdb.Entry) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".compile_commands-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := WriteDatabase(tmp, entries); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil { //nolint:gosec // Database is meant to be shared
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
