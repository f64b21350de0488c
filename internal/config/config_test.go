package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	var cfg ProjectConfig
	cfg.ApplyDefaults()

	assert.Equal(t, DefaultThemesDir, cfg.ThemesDir)
	assert.Equal(t, DefaultOutDir, cfg.OutDir)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Zero(t, cfg.MaxPasses, "zero means use the engine default")
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := ProjectConfig{ThemesDir: "sources", Format: FormatYAML}
	cfg.ApplyDefaults()

	assert.Equal(t, "sources", cfg.ThemesDir)
	assert.Equal(t, FormatYAML, cfg.Format)
}

func TestValidate(t *testing.T) {
	cfg := ProjectConfig{Format: "toml"}
	err := cfg.Validate()
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "format", cfgErr.Field)

	cfg = ProjectConfig{Format: FormatJSON, MaxPasses: -1}
	require.Error(t, cfg.Validate())

	cfg = ProjectConfig{Format: FormatYAML, MaxPasses: 20}
	require.NoError(t, cfg.Validate())
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	content := `
themes_dir: sources
import_paths:
  - shared
format: yaml
max_passes: 25
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "sources", cfg.ThemesDir)
	assert.Equal(t, []string{"shared"}, cfg.ImportPaths)
	assert.Equal(t, FormatYAML, cfg.Format)
	assert.Equal(t, 25, cfg.MaxPasses)
	assert.Equal(t, DefaultOutDir, cfg.OutDir, "unset fields get defaults")
}

func TestLoadFromDir_NoConfigFile(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadFromDir_AltExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileNameAlt), []byte("out_dir: build\n"), 0o644))

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "build", cfg.OutDir)
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("{}\n"), 0o644))

	assert.Equal(t, root, FindProjectRoot(nested))
	assert.Equal(t, "", FindProjectRoot(filepath.Join(t.TempDir(), "nowhere")))
}
