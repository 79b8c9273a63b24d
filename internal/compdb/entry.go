// Package compdb builds compilation database entries for a compiler invocation
// and plans the extra arguments that embed them into the produced object file.
package compdb

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kballard/go-shellquote"
)

// Entry is a single compilation database record.
type Entry struct {
	Directory string `json:"directory"`
	Command   string `json:"command"`
	File      string `json:"file,omitempty"`
}

// BuildEntry describes argv, which must start with the compiler name, as run
// from cwd. The source file is whatever finder picks out of argv.
//
// Command records argv before injection: the injected definitions carry the
// entry and its hash, so the entry cannot contain them.
func BuildEntry(argv []string, cwd string, finder SourceFinder) Entry {
	entry := Entry{
		Directory: cwd,
		Command:   shellquote.Join(argv...),
	}
	if finder != nil {
		if file, ok := finder.FindSource(argv); ok {
			entry.File = file
		}
	}
	return entry
}

// Serialize returns the compact JSON form of the entry. HTML characters are
// left unescaped so the text matches what a reader of the object sees.
func (e Entry) Serialize() (string, error) {
	data, err := marshal(e)
	if err != nil {
		return "", fmt.Errorf("failed to serialize entry: %w", err)
	}
	return string(data), nil
}

// EncodeLiteral turns s into a double-quoted, escaped literal usable as the
// value of a -D definition.
func EncodeLiteral(s string) (string, error) {
	data, err := marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode literal: %w", err)
	}
	return string(data), nil
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
