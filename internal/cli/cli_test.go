package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	themesDir := filepath.Join(dir, "themes")
	require.NoError(t, os.MkdirAll(themesDir, 0o755))

	theme := `
palette:
  cyan: "#56b6c2"
variables:
  accent: "$$cyan"
colors:
  editor.background: "#1a1a2e"
  editor.selection: "alpha($(accent), 40)"
`
	require.NoError(t, os.WriteFile(filepath.Join(themesDir, "midnight.yaml"), []byte(theme), 0o644))

	cfg := "themes_dir: " + themesDir + "\nout_dir: " + filepath.Join(dir, "dist") + "\n"
	cfgPath := filepath.Join(dir, "pigment.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	return cfgPath
}

func TestBuildCommand(t *testing.T) {
	cfgPath := writeProject(t)

	out, _, err := runCommand(t, "--config", cfgPath, "build")
	require.NoError(t, err)
	assert.Contains(t, out, "midnight.json")

	dist := filepath.Join(filepath.Dir(cfgPath), "dist")
	_, statErr := os.Stat(filepath.Join(dist, "midnight.json"))
	assert.NoError(t, statErr)
}

func TestBuildCommand_FailureIsolated(t *testing.T) {
	cfgPath := writeProject(t)
	themesDir := filepath.Join(filepath.Dir(cfgPath), "themes")
	require.NoError(t, os.WriteFile(filepath.Join(themesDir, "broken.yaml"),
		[]byte("colors: {bg: \"$(missing)\"}\n"), 0o644))

	out, errOut, err := runCommand(t, "--config", cfgPath, "build")
	require.Error(t, err)

	// The good theme still compiled.
	assert.Contains(t, out, "midnight.json")
	assert.Contains(t, errOut, "broken.yaml")
}

func TestPreviewCommand(t *testing.T) {
	cfgPath := writeProject(t)
	theme := filepath.Join(filepath.Dir(cfgPath), "themes", "midnight.yaml")

	out, _, err := runCommand(t, "--config", cfgPath, "preview", theme)
	require.NoError(t, err)

	// Unevaluated: the alias and function call survive composition.
	assert.Contains(t, out, "$$cyan")
	assert.Contains(t, out, "alpha($(accent), 40)")
}

func TestExplainCommand(t *testing.T) {
	cfgPath := writeProject(t)
	theme := filepath.Join(filepath.Dir(cfgPath), "themes", "midnight.yaml")

	out, _, err := runCommand(t, "--config", cfgPath, "explain", theme, "accent")
	require.NoError(t, err)

	assert.Contains(t, out, "accent")
	assert.Contains(t, out, "palette.cyan")
	assert.Contains(t, out, "#56b6c2")
	assert.Contains(t, out, "Derived from: palette.cyan")
	assert.Contains(t, out, "Depends on:")
}

func TestExplainCommand_UnknownPath(t *testing.T) {
	cfgPath := writeProject(t)
	theme := filepath.Join(filepath.Dir(cfgPath), "themes", "midnight.yaml")

	_, _, err := runCommand(t, "--config", cfgPath, "explain", theme, "no.such.path")
	require.Error(t, err)
}

func TestPathsCommand(t *testing.T) {
	cfgPath := writeProject(t)
	theme := filepath.Join(filepath.Dir(cfgPath), "themes", "midnight.yaml")

	out, _, err := runCommand(t, "--config", cfgPath, "paths", theme)
	require.NoError(t, err)

	assert.Contains(t, out, "palette.cyan")
	assert.Contains(t, out, "colors.editor.background")
}
