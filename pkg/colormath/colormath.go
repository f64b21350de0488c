// Package colormath defines the colour-math capability boundary: a
// closed catalogue of colour transforms plus a parser that normalises
// arbitrary colour expressions to hex. The resolution engine dispatches
// function calls here by name and never does colour arithmetic itself.
package colormath

import "fmt"

// Transform enumerates the supported colour transforms. The set is
// closed: unknown names route through TransformPassthrough, which hands
// the raw expression to the capability's parser.
type Transform int

// Supported transforms.
const (
	TransformPassthrough Transform = iota
	TransformLighten
	TransformDarken
	TransformShade
	TransformTint
	TransformMix
	TransformAlpha
	TransformSaturate
	TransformDesaturate
	TransformSpin
	TransformGreyscale
	TransformInvert
	TransformComplement
)

var transformNames = map[string]Transform{
	"lighten":    TransformLighten,
	"darken":     TransformDarken,
	"shade":      TransformShade,
	"tint":       TransformTint,
	"mix":        TransformMix,
	"alpha":      TransformAlpha,
	"fade":       TransformAlpha,
	"saturate":   TransformSaturate,
	"desaturate": TransformDesaturate,
	"spin":       TransformSpin,
	"greyscale":  TransformGreyscale,
	"grayscale":  TransformGreyscale,
	"invert":     TransformInvert,
	"complement": TransformComplement,
}

func (t Transform) String() string {
	switch t {
	case TransformLighten:
		return "lighten"
	case TransformDarken:
		return "darken"
	case TransformShade:
		return "shade"
	case TransformTint:
		return "tint"
	case TransformMix:
		return "mix"
	case TransformAlpha:
		return "alpha"
	case TransformSaturate:
		return "saturate"
	case TransformDesaturate:
		return "desaturate"
	case TransformSpin:
		return "spin"
	case TransformGreyscale:
		return "greyscale"
	case TransformInvert:
		return "invert"
	case TransformComplement:
		return "complement"
	default:
		return "passthrough"
	}
}

// ParseTransform maps a call name to its transform. Returns false for
// names outside the catalogue; callers then fall back to Parse.
func ParseTransform(name string) (Transform, bool) {
	t, ok := transformNames[name]
	return t, ok
}

// Capability is the colour-math boundary consumed by the resolution
// engine. Apply evaluates one transform over positional string
// arguments (already split by the caller). Parse normalises an
// arbitrary colour expression to hex; failure to parse is an error.
type Capability interface {
	Apply(t Transform, args []string) (string, error)
	Parse(expr string) (string, error)
}

// ParseError reports a colour expression the capability could not
// parse.
type ParseError struct {
	Expr    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse colour expression %q: %s", e.Expr, e.Message)
}

// TransformError reports a transform applied with bad arguments.
type TransformError struct {
	Transform Transform
	Message   string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("%s: %s", e.Transform, e.Message)
}
