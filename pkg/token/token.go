// Package token tracks resolved state for theme values. Each value the
// resolution engine touches becomes a Token holding its raw expression,
// current value, classification, and an ordered derivation trail. The
// Store indexes tokens by flat path or raw expression and records
// dependency edges between them for explain tooling.
package token

// Kind classifies a token's raw value.
type Kind int

// Kind constants for token classifications.
const (
	KindLiteral Kind = iota
	KindHex
	KindReference
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindHex:
		return "hex"
	case KindReference:
		return "reference"
	case KindFunction:
		return "function"
	default:
		return "literal"
	}
}

// Token records the resolution state of one value. Value mutates across
// resolution passes and settles once the owning scope converges. Trail
// is the ordered, deduplicated list of tokens this one passed through
// on its way to a final literal.
type Token struct {
	// Name is the canonical key: a flat path, or the raw expression
	// string for ad hoc intermediate values.
	Name string
	// Kind is the classification of the raw value.
	Kind Kind
	// RawValue is the value as authored, before any substitution.
	RawValue string
	// Value is the current value; identical to RawValue until a
	// substitution rewrites it.
	Value string
	// Dependency links to the first token this one resolved through.
	Dependency *Token
	// Trail holds every token visited while resolving this one, in
	// insertion order with duplicates elided.
	Trail []*Token
}

// New creates a token whose current value starts at its raw value.
func New(name string, kind Kind, raw string) *Token {
	return &Token{Name: name, Kind: kind, RawValue: raw, Value: raw}
}

// AppendTrail records a visited token, eliding duplicates.
func (t *Token) AppendTrail(step *Token) {
	if step == nil || step == t {
		return
	}
	for _, existing := range t.Trail {
		if existing == step {
			return
		}
	}
	t.Trail = append(t.Trail, step)
}
