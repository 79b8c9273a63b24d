package compdb

import _ "embed"

const (
	// SectionName is the object file section holding embedded entries.
	SectionName = ".clang.compdb"
	// MarkerPrefix opens an embedded entry.
	MarkerPrefix = "<<<COMPDB:"
	// MarkerSuffix closes an embedded entry.
	MarkerSuffix = ">>>"
)

//go:embed CompilationDatabaseMagic.h
var header string

// Header returns the source of the forced include consuming EntryMacro and
// SymbolMacro.
func Header() string {
	return header
}
