// Package config provides project configuration for pigment. It is
// decoupled from CLI concerns so other tools can load a project the
// same way the CLI does.
package config

import "fmt"

// Output formats for compiled themes.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ProjectConfig holds the theme project configuration.
type ProjectConfig struct {
	// ThemesDir is the directory containing theme source documents.
	ThemesDir string `koanf:"themes_dir"`
	// ImportPaths are extra directories searched for imports, after
	// the importing file's own directory.
	ImportPaths []string `koanf:"import_paths"`
	// OutDir is where compiled theme documents are written.
	OutDir string `koanf:"out_dir"`
	// Format is the output format: json or yaml.
	Format string `koanf:"format"`
	// MaxPasses overrides the per-scope resolution iteration cap.
	MaxPasses int `koanf:"max_passes"`
}

// ApplyDefaults applies default values to a ProjectConfig.
func (c *ProjectConfig) ApplyDefaults() {
	if c.ThemesDir == "" {
		c.ThemesDir = DefaultThemesDir
	}
	if c.OutDir == "" {
		c.OutDir = DefaultOutDir
	}
	if c.Format == "" {
		c.Format = FormatJSON
	}
}

// Validate checks the configuration for unusable values.
func (c *ProjectConfig) Validate() error {
	if c.Format != FormatJSON && c.Format != FormatYAML {
		return &ConfigError{Field: "format", Message: fmt.Sprintf("must be %q or %q, got %q", FormatJSON, FormatYAML, c.Format)}
	}
	if c.MaxPasses < 0 {
		return &ConfigError{Field: "max_passes", Message: "must not be negative"}
	}
	return nil
}

// ConfigError reports an invalid configuration field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}
