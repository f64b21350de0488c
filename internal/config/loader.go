package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "pigment.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "pigment.yml"

// envPrefix namespaces environment variable overrides, e.g.
// PIGMENT_OUT_DIR=build.
const envPrefix = "PIGMENT_"

// maxUpwardSearchLevels limits how far up the directory tree to search
// for config files.
const maxUpwardSearchLevels = 10

// Load builds the effective configuration by layering, weakest first:
// built-in defaults, the config file (explicit path or discovered),
// PIGMENT_* environment variables, then command-line flags.
func Load(explicit string, flags *pflag.FlagSet) (*ProjectConfig, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"themes_dir": DefaultThemesDir,
		"out_dir":    DefaultOutDir,
		"format":     FormatJSON,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, err
	}

	if path := findConfigFile(explicit); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(key string) string {
		return strings.ToLower(strings.TrimPrefix(key, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	if flags != nil {
		flagProvider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		})
		if err := k.Load(flagProvider, nil); err != nil {
			return nil, err
		}
	}

	var cfg ProjectConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromDir loads a ProjectConfig from the given directory. Returns
// nil, nil if no config file is found (not an error condition).
func LoadFromDir(dir string) (*ProjectConfig, error) {
	path := findConfigFileIn(dir)
	if path == "" {
		return nil, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, err
	}

	var cfg ProjectConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findConfigFile finds the config file to use.
// Priority: explicit path > pigment.yaml > pigment.yml in the CWD.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	if _, err := os.Stat(ConfigFileNameAlt); err == nil {
		return ConfigFileNameAlt
	}
	return ""
}

// findConfigFileIn finds the config file in the given directory.
func findConfigFileIn(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FindProjectRoot walks up from the given directory to find one
// containing a pigment config file. Returns empty string if not found
// within maxUpwardSearchLevels.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if findConfigFileIn(dir) != "" {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}
