package compdb

import "strings"

// DefaultSourceSuffixes are the suffixes SuffixFinder matches when none are given.
var DefaultSourceSuffixes = []string{".cpp"}

// SourceFinder guesses which argument of a compiler command line is the
// translation unit being compiled.
type SourceFinder interface {
	FindSource(args []string) (string, bool)
}

// SuffixFinder picks the first argument ending in one of Suffixes.
//
// It does not parse options, so a flag value such as -DNAME=x.cpp or
// -Ifoo.cpp is reported when it comes before the real source file.
type SuffixFinder struct {
	Suffixes []string
}

// FindSource implements SourceFinder.
func (f SuffixFinder) FindSource(args []string) (string, bool) {
	suffixes := f.Suffixes
	if len(suffixes) == 0 {
		suffixes = DefaultSourceSuffixes
	}
	for _, arg := range args {
		for _, suffix := range suffixes {
			if strings.HasSuffix(arg, suffix) {
				return arg, true
			}
		}
	}
	return "", false
}
