package compdb

import (
	"crypto/sha1" //nolint:gosec // Symbol naming only
	"encoding/hex"
)

const (
	// EntryMacro receives the string literal holding the serialized entry.
	EntryMacro = "__COMPDB_ENTRY"
	// SymbolMacro receives the identifier of the emitted symbol.
	SymbolMacro = "__COMPDB_SYMNAME"
	// SymbolPrefix starts every generated identifier.
	SymbolPrefix = "__COMPDB_SYMNAME_"
	// DefaultHeader is the forced include consuming both macros.
	DefaultHeader = "CompilationDatabaseMagic.h"
	// DefaultCompileOnlyFlag marks an invocation that stops at the object file.
	DefaultCompileOnlyFlag = "-c"
	// DefaultCompiler is the real compiler front end.
	DefaultCompiler = "clang++"
)

// DetectCompileOnly reports whether token appears as a whole argument.
// Grouped short flags and flag values are not inspected.
func DetectCompileOnly(args []string, token string) bool {
	for _, arg := range args {
		if arg == token {
			return true
		}
	}
	return false
}

// MakeIdentifier derives a symbol name from the serialized entry. Equal
// inputs give equal names.
func MakeIdentifier(serialized string) string {
	sum := sha1.Sum([]byte(serialized))
	return SymbolPrefix + hex.EncodeToString(sum[:])
}

// Inject returns a copy of args followed by the two definitions and the
// forced include of header.
func Inject(args []string, literal, symbol, header string) []string {
	out := make([]string, 0, len(args)+4)
	out = append(out, args...)
	return append(out,
		"-D"+EntryMacro+"="+literal,
		"-D"+SymbolMacro+"="+symbol,
		"-include", header,
	)
}

// Plan is the command line to run in place of the wrapper.
type Plan struct {
	Argv         []string
	Instrumented bool

	// Set only when Instrumented.
	Entry      Entry
	Serialized string
	Symbol     string
}

// Transformer turns wrapper arguments into a Plan.
type Transformer struct {
	Compiler        string
	CompileOnlyFlag string
	Header          string
	Finder          SourceFinder
}

// NewTransformer returns a Transformer for compiler with default settings.
func NewTransformer(compiler string) *Transformer {
	if compiler == "" {
		compiler = DefaultCompiler
	}
	return &Transformer{
		Compiler:        compiler,
		CompileOnlyFlag: DefaultCompileOnlyFlag,
		Header:          DefaultHeader,
		Finder:          SuffixFinder{Suffixes: DefaultSourceSuffixes},
	}
}

// CompileOnly reports whether args would be instrumented.
func (t *Transformer) CompileOnly(args []string) bool {
	return DetectCompileOnly(args, t.compileOnlyFlag())
}

// Plan prefixes args with the compiler and, for compile-only invocations,
// appends the definitions describing that command as run from cwd. The
// entry's Command is the prefixed argv without the appended arguments;
// Plan.Argv is the full command line.
func (t *Transformer) Plan(args []string, cwd string) (*Plan, error) {
	argv := make([]string, 0, len(args)+1)
	argv = append(argv, t.Compiler)
	argv = append(argv, args...)

	if !t.CompileOnly(args) {
		return &Plan{Argv: argv}, nil
	}

	entry := BuildEntry(argv, cwd, t.Finder)
	serialized, err := entry.Serialize()
	if err != nil {
		return nil, err
	}
	literal, err := EncodeLiteral(serialized)
	if err != nil {
		return nil, err
	}
	symbol := MakeIdentifier(serialized)

	header := t.Header
	if header == "" {
		header = DefaultHeader
	}
	return &Plan{
		Argv:         Inject(argv, literal, symbol, header),
		Instrumented: true,
		Entry:        entry,
		Serialized:   serialized,
		Symbol:       symbol,
	}, nil
}

func (t *Transformer) compileOnlyFlag() string {
	if t.CompileOnlyFlag == "" {
		return DefaultCompileOnlyFlag
	}
	return t.CompileOnlyFlag
}
