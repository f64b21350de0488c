package resolve

import "github.com/leapstack-labs/pigment/pkg/token"

// Class is the classification of a value during resolution, decided by
// a fixed-priority ordering of predicates: hex literal first, then
// single reference, then function call, then literal.
type Class int

// Value classifications.
const (
	ClassLiteral Class = iota
	ClassHex
	ClassReference
	ClassFunction
)

func (c Class) String() string {
	switch c {
	case ClassHex:
		return "hex"
	case ClassReference:
		return "reference"
	case ClassFunction:
		return "function"
	default:
		return "literal"
	}
}

// Classify determines how the engine treats a value this pass.
func Classify(value string) Class {
	if IsHex(value) {
		return ClassHex
	}
	if _, ok := ReferencePath(value); ok {
		return ClassReference
	}
	if _, _, ok := ParseCall(value); ok {
		return ClassFunction
	}
	return ClassLiteral
}

// terminal reports whether a value needs no further substitution.
func terminal(value string) bool {
	c := Classify(value)
	return c == ClassHex || c == ClassLiteral
}

func kindFor(c Class) token.Kind {
	switch c {
	case ClassHex:
		return token.KindHex
	case ClassReference:
		return token.KindReference
	case ClassFunction:
		return token.KindFunction
	default:
		return token.KindLiteral
	}
}
