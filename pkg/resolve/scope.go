package resolve

// PaletteScopeName is the path prefix palette entries are registered
// under, and the prefix `$$name` aliases expand to.
const PaletteScopeName = "palette"

// Scope is one of the three ordered evaluation phases. Visibility is
// fixed by resolution order: palette resolves first against itself
// alone, variables against palette plus variables, theme against
// everything including unresolved sibling theme entries.
type Scope int

// Scopes in resolution order.
const (
	ScopePalette Scope = iota
	ScopeVariables
	ScopeTheme
)

func (s Scope) String() string {
	switch s {
	case ScopePalette:
		return "palette"
	case ScopeVariables:
		return "variables"
	default:
		return "theme"
	}
}

// Key returns the store key for a flat path in this scope. Palette
// entries are namespaced under the palette prefix so `$(palette.name)`
// references and `$$name` aliases find them; other scopes register
// their flat paths directly.
func (s Scope) Key(path string) string {
	if s == ScopePalette {
		return PaletteScopeName + "." + path
	}
	return path
}
