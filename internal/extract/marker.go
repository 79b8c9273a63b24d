// Package extract recovers compilation database entries embedded in object
// files and assembles them into a compile_commands.json database.
package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/slchris/compdb-wrapper/internal/compdb"
)

var (
	markerPrefix = []byte(compdb.MarkerPrefix)
	markerSuffix = []byte(compdb.MarkerSuffix)
)

// ParseMarkers decodes every entry wrapped in compdb markers within data.
// Any malformed marker is an error.
func ParseMarkers(data []byte) ([]compdb.Entry, error) {
	return parseMarkers(data, nil)
}

// ScanMarkers is ParseMarkers for bytes that are not known to hold only
// entries, such as whole archives. Candidates that do not decode are passed
// to skip and scanning resumes just after their prefix.
func ScanMarkers(data []byte, skip func(offset int, err error)) []compdb.Entry {
	if skip == nil {
		skip = func(int, error) {}
	}
	entries, _ := parseMarkers(data, skip)
	return entries
}

func parseMarkers(data []byte, skip func(offset int, err error)) ([]compdb.Entry, error) {
	var entries []compdb.Entry

	offset := 0
	for {
		idx := bytes.Index(data[offset:], markerPrefix)
		if idx < 0 {
			return entries, nil
		}
		start := offset + idx + len(markerPrefix)

		entry, end, err := decodeMarker(data, start)
		if err != nil {
			if skip == nil {
				return nil, err
			}
			skip(offset+idx, err)
			offset += idx + 1
			continue
		}

		entries = append(entries, entry)
		offset = end
	}
}

// decodeMarker decodes the entry starting at start and returns the offset
// just past its closing marker.
func decodeMarker(data []byte, start int) (compdb.Entry, int, error) {
	// The JSON itself may contain ">>>", so let the decoder find its end.
	dec := json.NewDecoder(bytes.NewReader(data[start:]))
	var entry compdb.Entry
	if err := dec.Decode(&entry); err != nil {
		return compdb.Entry{}, 0, fmt.Errorf("malformed entry at offset %d: %w", start, err)
	}
	end := start + int(dec.InputOffset())
	if !bytes.HasPrefix(data[end:], markerSuffix) {
		return compdb.Entry{}, 0, fmt.Errorf("unterminated entry at offset %d", start)
	}
	return entry, end + len(markerSuffix), nil
}
