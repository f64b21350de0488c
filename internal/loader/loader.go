// Package loader reads theme source files and their declared imports
// from disk as YAML. It hands the engine already-deserialised document
// trees; nothing downstream ever parses raw text.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/pigment/pkg/compose"
)

// ImportKey is the top-level document key declaring imports.
const ImportKey = "import"

// ThemeFile is one loaded document: its on-disk path and parsed tree.
type ThemeFile struct {
	Path     string
	Document map[string]any
}

// LoadResult holds a main document and its imports in declared order.
type LoadResult struct {
	Main    *ThemeFile
	Imports []*ThemeFile
}

// Layers returns the documents in merge order: imports first, main
// document last. The import declaration is stripped from every layer.
func (r *LoadResult) Layers() []map[string]any {
	layers := make([]map[string]any, 0, len(r.Imports)+1)
	for _, imp := range r.Imports {
		layers = append(layers, imp.Document)
	}
	return append(layers, r.Main.Document)
}

// LoadTheme loads a theme file and every import it declares. Import
// names are located against the file's own directory first, then the
// configured search paths, trying the name as given and with .yaml or
// .yml appended. A malformed import declaration or a missing import
// file is an error.
func LoadTheme(path string, searchPaths []string) (*LoadResult, error) {
	main, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	names, err := compose.NormalizeImports(main.Document[ImportKey])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	delete(main.Document, ImportKey)

	dirs := append([]string{filepath.Dir(path)}, searchPaths...)

	result := &LoadResult{Main: main}
	for _, name := range names {
		importPath, ok := findImport(name, dirs)
		if !ok {
			return nil, &ImportNotFoundError{Name: name, SearchPaths: dirs}
		}

		imported, err := LoadFile(importPath)
		if err != nil {
			return nil, err
		}
		// Imports do not declare their own imports; a stray
		// declaration is dropped rather than followed.
		delete(imported.Document, ImportKey)
		result.Imports = append(result.Imports, imported)
	}

	return result, nil
}

// LoadFile reads and parses one YAML theme document.
func LoadFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme file: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: invalid YAML: %w", path, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	return &ThemeFile{Path: path, Document: doc}, nil
}

// findImport locates an import name within the search directories.
func findImport(name string, dirs []string) (string, bool) {
	candidates := []string{name}
	if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
		candidates = append(candidates, name+".yaml", name+".yml")
	}

	for _, dir := range dirs {
		for _, candidate := range candidates {
			full := filepath.Join(dir, candidate)
			if info, err := os.Stat(full); err == nil && !info.IsDir() {
				return full, true
			}
		}
	}
	return "", false
}

// ImportNotFoundError reports an import that no search path satisfied.
type ImportNotFoundError struct {
	Name        string
	SearchPaths []string
}

func (e *ImportNotFoundError) Error() string {
	return fmt.Sprintf("import %q not found in %s", e.Name, strings.Join(e.SearchPaths, ", "))
}
