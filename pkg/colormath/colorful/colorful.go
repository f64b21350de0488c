// Package colorful implements the colour-math capability on top of
// go-colorful. Transforms operate in HSL or blended RGB space; alpha
// channels are carried around the arithmetic and reattached.
package colorful

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	gocolorful "github.com/lucasb-eyer/go-colorful"

	"github.com/leapstack-labs/pigment/pkg/colormath"
)

// Math is the go-colorful backed capability. The zero value is usable.
type Math struct{}

// New creates a Math capability.
func New() *Math {
	return &Math{}
}

var _ colormath.Capability = (*Math)(nil)

var (
	hexPattern  = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	rgbPattern  = regexp.MustCompile(`^rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*([\d.]+)\s*)?\)$`)
	lastPercent = regexp.MustCompile(`[\d.]+%?$`)
)

// Apply evaluates a transform over positional string arguments.
func (m *Math) Apply(t colormath.Transform, args []string) (string, error) {
	switch t {
	case colormath.TransformPassthrough:
		if len(args) != 1 {
			return "", &colormath.TransformError{Transform: t, Message: "expects exactly one expression"}
		}
		return m.Parse(args[0])

	case colormath.TransformLighten, colormath.TransformDarken,
		colormath.TransformSaturate, colormath.TransformDesaturate:
		col, amount, err := m.colorAndAmount(t, args)
		if err != nil {
			return "", err
		}
		h, s, l := col.rgb.Hsl()
		switch t {
		case colormath.TransformLighten:
			l = clamp01(l + amount/100)
		case colormath.TransformDarken:
			l = clamp01(l - amount/100)
		case colormath.TransformSaturate:
			s = clamp01(s + amount/100)
		case colormath.TransformDesaturate:
			s = clamp01(s - amount/100)
		}
		col.rgb = gocolorful.Hsl(h, s, l).Clamped()
		return col.format(), nil

	case colormath.TransformShade, colormath.TransformTint:
		col, amount, err := m.colorAndAmount(t, args)
		if err != nil {
			return "", err
		}
		target := gocolorful.Color{R: 0, G: 0, B: 0}
		if t == colormath.TransformTint {
			target = gocolorful.Color{R: 1, G: 1, B: 1}
		}
		col.rgb = col.rgb.BlendRgb(target, clamp01(amount/100))
		return col.format(), nil

	case colormath.TransformMix:
		if len(args) != 2 && len(args) != 3 {
			return "", &colormath.TransformError{Transform: t, Message: "expects two colours and an optional weight"}
		}
		first, err := m.parse(args[0])
		if err != nil {
			return "", err
		}
		second, err := m.parse(args[1])
		if err != nil {
			return "", err
		}
		weight := 50.0
		if len(args) == 3 {
			weight, err = parseAmount(t, args[2])
			if err != nil {
				return "", err
			}
		}
		first.rgb = first.rgb.BlendRgb(second.rgb, clamp01(weight/100))
		return first.format(), nil

	case colormath.TransformAlpha:
		col, amount, err := m.colorAndAmount(t, args)
		if err != nil {
			return "", err
		}
		// Fractions up to 1 are taken directly; larger values read as
		// percentages.
		if amount > 1 {
			amount /= 100
		}
		col.alpha = clamp01(amount)
		col.hasAlpha = true
		return col.format(), nil

	case colormath.TransformSpin, colormath.TransformComplement:
		degrees := 180.0
		var col *color
		var err error
		if t == colormath.TransformSpin {
			col, degrees, err = m.colorAndAmount(t, args)
		} else {
			col, err = m.single(t, args)
		}
		if err != nil {
			return "", err
		}
		h, s, l := col.rgb.Hsl()
		h = math.Mod(h+degrees, 360)
		if h < 0 {
			h += 360
		}
		col.rgb = gocolorful.Hsl(h, s, l).Clamped()
		return col.format(), nil

	case colormath.TransformGreyscale:
		col, err := m.single(t, args)
		if err != nil {
			return "", err
		}
		h, _, l := col.rgb.Hsl()
		col.rgb = gocolorful.Hsl(h, 0, l).Clamped()
		return col.format(), nil

	case colormath.TransformInvert:
		col, err := m.single(t, args)
		if err != nil {
			return "", err
		}
		col.rgb = gocolorful.Color{R: 1 - col.rgb.R, G: 1 - col.rgb.G, B: 1 - col.rgb.B}
		return col.format(), nil

	default:
		return "", &colormath.TransformError{Transform: t, Message: "unsupported transform"}
	}
}

// Parse normalises an arbitrary colour expression to hex.
func (m *Math) Parse(expr string) (string, error) {
	col, err := m.parse(expr)
	if err != nil {
		return "", err
	}
	return col.format(), nil
}

// color is a parsed colour with an optional alpha channel carried
// alongside the arithmetic.
type color struct {
	rgb      gocolorful.Color
	alpha    float64
	hasAlpha bool
}

func (c *color) format() string {
	hex := c.rgb.Hex()
	if c.hasAlpha {
		return fmt.Sprintf("%s%02x", hex, int(math.Round(c.alpha*255)))
	}
	return hex
}

func (m *Math) parse(expr string) (*color, error) {
	expr = strings.TrimSpace(expr)

	if match := hexPattern.FindStringSubmatch(expr); match != nil {
		return parseHex(match[1])
	}

	if match := rgbPattern.FindStringSubmatch(expr); match != nil {
		return parseRGB(expr, match)
	}

	return nil, &colormath.ParseError{Expr: expr, Message: "not a recognised colour"}
}

func parseHex(digits string) (*color, error) {
	digits = strings.ToLower(digits)

	// Expand shorthand: #abc -> #aabbcc, #abcd -> #aabbccdd.
	if len(digits) == 3 || len(digits) == 4 {
		var expanded strings.Builder
		for _, r := range digits {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		digits = expanded.String()
	}

	col := &color{}
	if len(digits) == 8 {
		a, err := strconv.ParseUint(digits[6:8], 16, 8)
		if err != nil {
			return nil, &colormath.ParseError{Expr: "#" + digits, Message: "invalid alpha channel"}
		}
		col.alpha = float64(a) / 255
		col.hasAlpha = true
		digits = digits[:6]
	}

	rgb, err := gocolorful.Hex("#" + digits)
	if err != nil {
		return nil, &colormath.ParseError{Expr: "#" + digits, Message: err.Error()}
	}
	col.rgb = rgb
	return col, nil
}

func parseRGB(expr string, match []string) (*color, error) {
	channels := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(match[i+1])
		if err != nil || v > 255 {
			return nil, &colormath.ParseError{Expr: expr, Message: "channel out of range"}
		}
		channels[i] = float64(v) / 255
	}

	col := &color{rgb: gocolorful.Color{R: channels[0], G: channels[1], B: channels[2]}}
	if match[4] != "" {
		a, err := strconv.ParseFloat(match[4], 64)
		if err != nil || a < 0 || a > 1 {
			return nil, &colormath.ParseError{Expr: expr, Message: "alpha out of range"}
		}
		col.alpha = a
		col.hasAlpha = true
	}
	return col, nil
}

func (m *Math) colorAndAmount(t colormath.Transform, args []string) (*color, float64, error) {
	if len(args) != 2 {
		return nil, 0, &colormath.TransformError{Transform: t, Message: "expects a colour and an amount"}
	}
	col, err := m.parse(args[0])
	if err != nil {
		return nil, 0, err
	}
	amount, err := parseAmount(t, args[1])
	if err != nil {
		return nil, 0, err
	}
	return col, amount, nil
}

func (m *Math) single(t colormath.Transform, args []string) (*color, error) {
	if len(args) != 1 {
		return nil, &colormath.TransformError{Transform: t, Message: "expects exactly one colour"}
	}
	return m.parse(args[0])
}

func parseAmount(t colormath.Transform, arg string) (float64, error) {
	arg = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(arg), "%"))
	if !lastPercent.MatchString(arg) {
		return 0, &colormath.TransformError{Transform: t, Message: fmt.Sprintf("invalid amount %q", arg)}
	}
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, &colormath.TransformError{Transform: t, Message: fmt.Sprintf("invalid amount %q", arg)}
	}
	return v, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
