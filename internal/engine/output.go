package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputPath returns where a compiled theme document lands for a given
// source file, output directory, and format.
func OutputPath(sourcePath, outDir, format string) string {
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	ext := ".json"
	if format == "yaml" {
		ext = ".yaml"
	}
	return filepath.Join(outDir, base+ext)
}

// Write serialises the compiled theme document to the output
// directory, creating it if needed.
func (c *Compilation) Write(outDir, format string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	var data []byte
	var err error
	switch format {
	case "yaml":
		data, err = yaml.Marshal(c.Document)
	default:
		data, err = json.MarshalIndent(c.Document, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return "", fmt.Errorf("encode theme document: %w", err)
	}

	path := OutputPath(c.SourcePath, outDir, format)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write theme document: %w", err)
	}
	return path, nil
}
