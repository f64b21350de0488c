package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pigment/pkg/compose"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "midnight.yaml", `
palette:
  cyan: "#56b6c2"
variables:
  accent: "$$cyan"
`)

	file, err := LoadFile(path)
	require.NoError(t, err)

	palette, ok := file.Document["palette"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "#56b6c2", palette["cyan"])
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.yaml", "palette: [unclosed")

	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestLoadFile_Empty(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.yaml", "")

	file, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, file.Document)
}

func TestLoadTheme_ImportsInDeclaredOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", `
palette:
  bg: "#101020"
`)
	writeFile(t, dir, "accents.yml", `
palette:
  accent: "#56b6c2"
`)
	main := writeFile(t, dir, "midnight.yaml", `
import:
  - base
  - accents
palette:
  fg: "#e0e0e0"
`)

	result, err := LoadTheme(main, nil)
	require.NoError(t, err)
	require.Len(t, result.Imports, 2)

	assert.Contains(t, result.Imports[0].Path, "base.yaml")
	assert.Contains(t, result.Imports[1].Path, "accents.yml")

	layers := result.Layers()
	require.Len(t, layers, 3)
	_, hasImport := layers[2][ImportKey]
	assert.False(t, hasImport, "import declaration is stripped from the main layer")
}

func TestLoadTheme_SingleStringImport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "palette: {bg: \"#101020\"}\n")
	main := writeFile(t, dir, "midnight.yaml", "import: base\n")

	result, err := LoadTheme(main, nil)
	require.NoError(t, err)
	assert.Len(t, result.Imports, 1)
}

func TestLoadTheme_SearchPaths(t *testing.T) {
	themeDir := t.TempDir()
	sharedDir := t.TempDir()
	writeFile(t, sharedDir, "base.yaml", "palette: {bg: \"#101020\"}\n")
	main := writeFile(t, themeDir, "midnight.yaml", "import: base\n")

	result, err := LoadTheme(main, []string{sharedDir})
	require.NoError(t, err)
	require.Len(t, result.Imports, 1)
	assert.Contains(t, result.Imports[0].Path, sharedDir)
}

func TestLoadTheme_ImportNotFound(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "midnight.yaml", "import: missing\n")

	_, err := LoadTheme(main, nil)
	require.Error(t, err)

	var notFound *ImportNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Name)
}

func TestLoadTheme_MalformedImportSpec(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "midnight.yaml", "import: 42\n")

	_, err := LoadTheme(main, nil)
	require.Error(t, err)

	var specErr *compose.ImportSpecError
	assert.ErrorAs(t, err, &specErr)
}
