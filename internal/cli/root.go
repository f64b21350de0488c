// Package cli provides the command-line interface for pigment.
package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pigment/internal/config"
	"github.com/leapstack-labs/pigment/internal/engine"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pigment",
		Short: "Pigment - Colour Theme Compiler",
		Long: `Pigment compiles declarative colour-theme documents into flat,
fully-resolved theme files.

Theme sources are nested YAML documents with imports, palette aliases,
variables, and colour-transform calls; pigment merges the imports,
resolves every reference and transform, and writes the final document.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose"); verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: pigment.yaml)")
	flags.StringSlice("import-paths", nil, "extra directories searched for imports")
	flags.String("out-dir", "", "output directory for compiled themes")
	flags.String("format", "", "output format: json or yaml")
	flags.Int("max-passes", 0, "per-scope resolution iteration cap")
	flags.BoolP("verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newBuildCommand(),
		newPreviewCommand(),
		newExplainCommand(),
		newPathsCommand(),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// commandContext bundles what every command needs.
type commandContext struct {
	Config *config.ProjectConfig
	Logger *slog.Logger
	Engine *engine.Engine
}

// newCommandContext pulls config and logger from the command context
// and builds an engine from them.
func newCommandContext(cmd *cobra.Command) (*commandContext, error) {
	cfg, _ := cmd.Context().Value(configKey{}).(*config.ProjectConfig)
	if cfg == nil {
		cfg = &config.ProjectConfig{}
		cfg.ApplyDefaults()
	}

	logger, _ := cmd.Context().Value(loggerKey{}).(*slog.Logger)
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	eng := engine.New(engine.Config{
		ImportPaths: cfg.ImportPaths,
		MaxPasses:   cfg.MaxPasses,
		Logger:      logger,
	})

	return &commandContext{Config: cfg, Logger: logger, Engine: eng}, nil
}

// themeSources resolves command arguments into theme source paths. No
// arguments means every YAML document in the configured themes
// directory.
func themeSources(cfg *config.ProjectConfig, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	entries, err := os.ReadDir(cfg.ThemesDir)
	if err != nil {
		return nil, err
	}

	var sources []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml":
			sources = append(sources, filepath.Join(cfg.ThemesDir, entry.Name()))
		}
	}
	return sources, nil
}
