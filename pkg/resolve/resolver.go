// Package resolve implements the phased, fixpoint-iteration resolution
// of theme values. Each scope's entries are registered in the token
// store, then swept repeatedly: references are substituted from the
// store, function calls are dispatched to the colour-math capability,
// and the sweep repeats until a pass changes nothing or the pass cap
// is exhausted.
package resolve

import (
	"log/slog"
	"strings"

	"github.com/leapstack-labs/pigment/pkg/colormath"
	"github.com/leapstack-labs/pigment/pkg/paths"
	"github.com/leapstack-labs/pigment/pkg/token"
)

// DefaultMaxPasses bounds fixpoint iteration per scope. The cap is the
// cycle detector: a circular reference never stabilises and exhausts
// it.
const DefaultMaxPasses = 10

// Config holds resolver configuration.
type Config struct {
	// Store is the token store for this compilation. Required.
	Store *token.Store
	// Math is the colour-math capability. Required.
	Math colormath.Capability
	// MaxPasses overrides the per-scope iteration cap (default 10).
	MaxPasses int
	// Logger is the structured logger (optional, discards if nil).
	Logger *slog.Logger
}

// Resolver resolves scope entries against a token store. All mutation
// is strictly sequential: later entries' lookups within a pass depend
// on earlier entries' already-updated results.
type Resolver struct {
	store     *token.Store
	math      colormath.Capability
	maxPasses int
	logger    *slog.Logger
}

// New creates a resolver.
func New(cfg Config) *Resolver {
	maxPasses := cfg.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		store:     cfg.Store,
		math:      cfg.Math,
		maxPasses: maxPasses,
		logger:    logger,
	}
}

// Store returns the resolver's token store.
func (r *Resolver) Store() *token.Store {
	return r.store
}

// ResolveScope resolves every entry of one scope to a literal. Entries
// are registered in the store under scope-prefixed keys (palette
// aliases are textually expanded first), then swept until stable. The
// returned entries carry resolved values; the input is not mutated.
// On failure nothing is partially applied to the result: callers get
// either a fully resolved scope or an error naming every unresolved
// entry.
func (r *Resolver) ResolveScope(scope Scope, entries []paths.Entry) ([]paths.Entry, error) {
	resolved := make([]paths.Entry, len(entries))
	copy(resolved, entries)

	// Register every string entry as a token; non-string scalars pass
	// through untouched.
	keys := make([]string, 0, len(resolved))
	for i := range resolved {
		value, ok := resolved[i].Value.(string)
		if !ok {
			continue
		}
		value = ExpandAliases(value)
		resolved[i].Value = value

		key := scope.Key(resolved[i].Path)
		r.store.Put(token.New(key, kindFor(Classify(value)), value))
		keys = append(keys, key)
	}

	passes := 0
	for passes < r.maxPasses {
		changed := false
		for _, key := range keys {
			tok, _ := r.store.Find(key)
			c, err := r.resolveToken(tok)
			if err != nil {
				return nil, err
			}
			changed = changed || c
		}
		passes++
		r.logger.Debug("resolution pass complete", "scope", scope.String(), "pass", passes, "changed", changed)
		if !changed {
			break
		}
	}

	var unresolved []UnresolvedEntry
	for _, key := range keys {
		tok, _ := r.store.Find(key)
		if !terminal(tok.Value) {
			unresolved = append(unresolved, UnresolvedEntry{Key: key, Value: tok.Value})
		}
	}
	if len(unresolved) > 0 {
		return nil, &UnresolvedError{Scope: scope, Passes: passes, Entries: unresolved}
	}

	for i := range resolved {
		if _, ok := resolved[i].Value.(string); !ok {
			continue
		}
		tok, _ := r.store.Find(scope.Key(resolved[i].Path))
		resolved[i].Value = tok.Value
	}
	return resolved, nil
}

// resolveToken keeps substituting one token's value within the current
// pass until no further substitution occurs or the value becomes a hex
// literal, walking reference chains of arbitrary length.
func (r *Resolver) resolveToken(tok *token.Token) (bool, error) {
	changed := false
	for {
		switch Classify(tok.Value) {
		case ClassHex:
			norm := NormalizeHex(tok.Value)
			if norm != tok.Value {
				tok.Value = norm
				changed = true
			}
			return changed, nil

		case ClassReference:
			path, _ := ReferencePath(tok.Value)
			ref, found := r.store.Find(path)
			if !found {
				// Not in any visible scope yet; leave for retry.
				return changed, nil
			}
			tok.AppendTrail(ref)
			if tok.Dependency == nil && ref != tok {
				tok.Dependency = ref
				r.store.Link(ref, tok)
			}
			if ref.Value == tok.Value {
				// Self-reference or collapsed cycle: no progress.
				return changed, nil
			}
			tok.Value = ref.Value
			changed = true

		case ClassFunction:
			name, args, _ := ParseCall(tok.Value)

			resolvedArgs := make([]string, len(args))
			ready := true
			for i, arg := range args {
				value, ok, err := r.resolveExpr(tok, arg)
				if err != nil {
					return changed, err
				}
				if !ok {
					ready = false
					break
				}
				resolvedArgs[i] = value
			}
			if !ready {
				return changed, nil
			}

			var result string
			var err error
			if transform, known := colormath.ParseTransform(name); known {
				result, err = r.math.Apply(transform, resolvedArgs)
			} else {
				// Unrecognised name: rebuild the call with resolved
				// arguments and hand it to the colour parser.
				result, err = r.math.Parse(name + "(" + strings.Join(resolvedArgs, ", ") + ")")
			}
			if err != nil {
				return changed, &ColorParseError{Key: tok.Name, Expr: tok.Value, Cause: err}
			}
			tok.Value = result
			changed = true

		default:
			return changed, nil
		}
	}
}

// resolveExpr resolves one function argument, which may itself be a
// hex literal, a reference, a nested function call, or a plain scalar
// like a percentage. Nested calls become intermediate tokens keyed by
// their expression string, so explain tooling can replay sub-chains.
// Returns ok=false when the argument cannot be settled yet.
func (r *Resolver) resolveExpr(parent *token.Token, expr string) (string, bool, error) {
	switch Classify(expr) {
	case ClassHex:
		norm := NormalizeHex(expr)
		// Repeated literals reuse the already-registered token rather
		// than minting a duplicate.
		if existing, ok := r.store.FindByValue(norm); ok {
			parent.AppendTrail(existing)
		}
		return norm, true, nil

	case ClassReference:
		path, _ := ReferencePath(expr)
		ref, found := r.store.Find(path)
		if !found {
			return "", false, nil
		}
		if !terminal(ref.Value) {
			return "", false, nil
		}
		parent.AppendTrail(ref)
		if parent.Dependency == nil && ref != parent {
			parent.Dependency = ref
			r.store.Link(ref, parent)
		}
		return ref.Value, true, nil

	case ClassFunction:
		sub := r.store.Add(token.New(expr, token.KindFunction, expr), nil)
		if _, err := r.resolveToken(sub); err != nil {
			return "", false, err
		}
		if !terminal(sub.Value) {
			return "", false, nil
		}
		parent.AppendTrail(sub)
		return sub.Value, true, nil

	default:
		return expr, true, nil
	}
}
