package extract

import (
	"bytes"
	"debug/elf"
	"fmt"
	"os"

	"github.com/slchris/compdb-wrapper/internal/compdb"
	"github.com/slchris/compdb-wrapper/internal/logging"
)

var elfMagic = []byte(elf.ELFMAG)

// ReadObject returns the entries embedded in the file at path. ELF objects
// are read through their compdb section; anything else, such as archives or
// other object formats, is scanned whole and markers that fail to decode
// there are logged at debug level and skipped. logger may be nil.
func ReadObject(path string, logger *logging.Logger) ([]compdb.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !bytes.HasPrefix(data, elfMagic) {
		return ScanMarkers(data, func(offset int, err error) {
			logger.Debug("%s: skipping marker at offset %d: %v", path, offset, err)
		}), nil
	}

	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ELF %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sec := f.Section(compdb.SectionName)
	if sec == nil {
		return nil, nil
	}
	contents, err := sec.Data()
	if err != nil {
		return nil, fmt.Errorf("failed to read section %s of %s: %w", compdb.SectionName, path, err)
	}

	entries, err := ParseMarkers(contents)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}
