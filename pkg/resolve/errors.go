package resolve

import (
	"fmt"
	"strings"
)

// UnresolvedEntry names one entry that failed to converge.
type UnresolvedEntry struct {
	Key   string
	Value string
}

// UnresolvedError reports every entry still carrying reference or
// function syntax when a scope's pass loop ended. Circular and mutual
// references surface here: they never stabilise, exhaust the cap, and
// each participant is listed.
type UnresolvedError struct {
	Scope   Scope
	Passes  int
	Entries []UnresolvedEntry
}

func (e *UnresolvedError) Error() string {
	names := make([]string, len(e.Entries))
	for i, entry := range e.Entries {
		names[i] = fmt.Sprintf("%s (%s)", entry.Key, entry.Value)
	}
	return fmt.Sprintf("%s scope: %d value(s) unresolved after %d pass(es): %s",
		e.Scope, len(e.Entries), e.Passes, strings.Join(names, ", "))
}

// ColorParseError reports an expression that reached the colour-math
// fallback and failed to parse there.
type ColorParseError struct {
	Key   string
	Expr  string
	Cause error
}

func (e *ColorParseError) Error() string {
	return fmt.Sprintf("%s: colour expression %q: %v", e.Key, e.Expr, e.Cause)
}

func (e *ColorParseError) Unwrap() error {
	return e.Cause
}
