// Package engine orchestrates theme compilation: load sources, compose
// imports, resolve the three scopes in order, and recompose the final
// theme document. Each compilation owns its token store; independent
// compilations share nothing mutable and run concurrently.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/pigment/internal/loader"
	"github.com/leapstack-labs/pigment/pkg/colormath"
	"github.com/leapstack-labs/pigment/pkg/colormath/colorful"
	"github.com/leapstack-labs/pigment/pkg/compose"
	"github.com/leapstack-labs/pigment/pkg/paths"
	"github.com/leapstack-labs/pigment/pkg/resolve"
	"github.com/leapstack-labs/pigment/pkg/token"
)

// Reserved top-level sections; everything else belongs to the theme
// scope.
const (
	SectionPalette   = "palette"
	SectionVariables = "variables"
)

// Config holds engine configuration.
type Config struct {
	// ImportPaths are extra directories searched for imports.
	ImportPaths []string
	// MaxPasses overrides the per-scope resolution cap (default 10).
	MaxPasses int
	// Math is the colour-math capability (defaults to the go-colorful
	// implementation).
	Math colormath.Capability
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Engine compiles theme documents.
type Engine struct {
	importPaths []string
	maxPasses   int
	math        colormath.Capability
	logger      *slog.Logger
}

// New creates an engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	math := cfg.Math
	if math == nil {
		math = colorful.New()
	}
	return &Engine{
		importPaths: cfg.ImportPaths,
		maxPasses:   cfg.MaxPasses,
		math:        math,
		logger:      logger,
	}
}

// Compilation is the result of compiling one theme document.
type Compilation struct {
	// RunID identifies this compilation in logs and diagnostics.
	RunID string
	// SourcePath is the main theme file.
	SourcePath string
	// Composed is the merged, carry-forward-substituted document
	// before any resolution, for preview/explain tooling.
	Composed map[string]any
	// Store is the compilation's token store, queryable by path.
	Store *token.Store
	// Palette, Variables, and Theme are the resolved flat
	// key→literal mappings per scope.
	Palette   map[string]string
	Variables map[string]string
	Theme     map[string]string
	// Document is the recomposed nested document from the theme
	// scope, ready for an output writer.
	Document map[string]any
}

// Compile loads, composes, and resolves one theme document.
func (e *Engine) Compile(path string) (*Compilation, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := e.logger.With("run_id", runID, "source", path)
	logger.Debug("compiling theme")

	loaded, err := loader.LoadTheme(path, e.importPaths)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	composed := compose.Merge(loaded.Layers()...)

	comp := &Compilation{
		RunID:      runID,
		SourcePath: path,
		Composed:   composed,
		Store:      token.NewStore(),
	}

	resolver := resolve.New(resolve.Config{
		Store:     comp.Store,
		Math:      e.math,
		MaxPasses: e.maxPasses,
		Logger:    logger,
	})

	paletteDoc, _ := composed[SectionPalette].(map[string]any)
	variablesDoc, _ := composed[SectionVariables].(map[string]any)
	themeDoc := make(map[string]any, len(composed))
	for section, value := range composed {
		if section == SectionPalette || section == SectionVariables {
			continue
		}
		themeDoc[section] = value
	}

	palette, err := resolver.ResolveScope(resolve.ScopePalette, paths.Decompose(paletteDoc))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	variables, err := resolver.ResolveScope(resolve.ScopeVariables, paths.Decompose(variablesDoc))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	theme, err := resolver.ResolveScope(resolve.ScopeTheme, paths.Decompose(themeDoc))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	comp.Palette = flatten(resolve.ScopePalette, palette)
	comp.Variables = flatten(resolve.ScopeVariables, variables)
	comp.Theme = flatten(resolve.ScopeTheme, theme)
	comp.Document = paths.Recompose(theme)

	logger.Info("theme compiled",
		"imports", len(loaded.Imports),
		"tokens", comp.Store.Len(),
		"duration", time.Since(start))
	return comp, nil
}

// Preview loads and composes a theme document without resolving it,
// exposing the post-merge, post-carry-forward tree with every
// reference and function call still unevaluated.
func (e *Engine) Preview(path string) (map[string]any, error) {
	loaded, err := loader.LoadTheme(path, e.importPaths)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return compose.Merge(loaded.Layers()...), nil
}

// flatten extracts the scope's flat key→literal mapping, keyed the way
// the token store keys them. Non-string scalars are skipped.
func flatten(scope resolve.Scope, entries []paths.Entry) map[string]string {
	flat := make(map[string]string, len(entries))
	for _, e := range entries {
		if s, ok := e.Value.(string); ok {
			flat[scope.Key(e.Path)] = s
		}
	}
	return flat
}

// Result pairs one compilation attempt with its outcome.
type Result struct {
	Path        string
	Compilation *Compilation
	Err         error
}

// CompileAll compiles independent theme documents concurrently. Each
// document gets its own engine state and store; one document's failure
// never aborts its siblings, so every Result carries either a
// compilation or that document's error.
func (e *Engine) CompileAll(ctx context.Context, sources []string) []Result {
	results := make([]Result, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Path: path, Err: err}
				return nil
			}
			comp, err := e.Compile(path)
			results[i] = Result{Path: path, Compilation: comp, Err: err}
			return nil
		})
	}
	// Workers never return errors; failures live in their Result.
	_ = g.Wait()

	return results
}
