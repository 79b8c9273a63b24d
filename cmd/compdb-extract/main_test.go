package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/slchris/compdb-wrapper/internal/compdb"
)

func TestRun(t *testing.T) {
	buildDir := t.TempDir()
	serialized := `{"directory":"/build","command":"clang++ -c a.cpp -o a.o","file":"a.cpp"}`
	object := "\x00" + compdb.MarkerPrefix + serialized + compdb.MarkerSuffix + "\x00"
	if err := os.WriteFile(filepath.Join(buildDir, "a.o"), []byte(object), 0600); err != nil {
		t.Fatalf("Failed to create object: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "compile_commands.json")
	*output = outPath
	*jobs = 1
	defer func() { *output = "compile_commands.json" }()

	if err := run([]string{buildDir}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read database: %v", err)
	}
	var entries []compdb.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("Failed to decode database: %v", err)
	}
	if len(entries) != 1 || entries[0].File != "a.cpp" || entries[0].Directory != "/build" {
		t.Errorf("Unexpected entries: %+v", entries)
	}
}

func TestRunMissingRoot(t *testing.T) {
	*output = filepath.Join(t.TempDir(), "compile_commands.json")
	defer func() { *output = "compile_commands.json" }()

	if err := run([]string{filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Error("Expected error for missing root, got nil")
	}
}
