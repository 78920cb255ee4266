package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// coreImports parses the non-test files of pkg/core and returns their
// import paths keyed by file name.
func coreImports(t *testing.T) map[string][]string {
	t.Helper()
	fset := token.NewFileSet()

	entries, err := os.ReadDir(".")
	if err != nil {
		t.Fatalf("Failed to read core directory: %v", err)
	}

	imports := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}
		// Skip test files
		if strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		f, err := parser.ParseFile(fset, filepath.Join(".", entry.Name()), nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", entry.Name(), err)
			continue
		}
		for _, imp := range f.Imports {
			imports[entry.Name()] = append(imports[entry.Name()], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return imports
}

// TestCoreImportsOnly verifies pkg/core only imports pkg/token and stdlib,
// so every pipeline stage can depend on it without cycles.
func TestCoreImportsOnly(t *testing.T) {
	allowedExternal := map[string]bool{
		"github.com/leapstack-labs/ecltoml/pkg/token": true,
	}

	for file, paths := range coreImports(t) {
		for _, importPath := range paths {
			// Allow stdlib (no dots in path)
			if !strings.Contains(importPath, ".") {
				continue
			}
			if !allowedExternal[importPath] {
				t.Errorf("%s imports forbidden package: %s", file, importPath)
			}
		}
	}
}

// TestCoreDoesNotImportStages verifies pkg/core doesn't import the packages
// that consume it.
func TestCoreDoesNotImportStages(t *testing.T) {
	stages := []string{"/pkg/parser", "/pkg/resolve", "/pkg/format", "/pkg/translate", "/pkg/diag", "/internal/"}

	for file, paths := range coreImports(t) {
		for _, importPath := range paths {
			for _, stage := range stages {
				if strings.Contains(importPath, stage) {
					t.Errorf("%s imports %s (core must not depend on pipeline stages)", file, importPath)
				}
			}
		}
	}
}
