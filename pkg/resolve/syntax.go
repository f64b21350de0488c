package resolve

import (
	"regexp"
	"strings"
)

// Reference syntax comes in three interchangeable spellings:
// $(path.to.value), ${path.to.value}, and bare $path.to.value. The
// bare form terminates at the first non-word, non-dot rune.
var (
	hexPattern      = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	refParenPattern = regexp.MustCompile(`^\$\(([\w.]+)\)$`)
	refBracePattern = regexp.MustCompile(`^\$\{([\w.]+)\}$`)
	refBarePattern  = regexp.MustCompile(`^\$([\w][\w.]*)$`)
	aliasPattern    = regexp.MustCompile(`\$\$(?:\(([\w.]+)\)|\{([\w.]+)\}|([\w][\w.]*))`)
	callPattern     = regexp.MustCompile(`^([A-Za-z_][\w-]*)\((.*)\)$`)
)

// ExpandAliases textually expands palette aliases before resolution:
// $$name, $$(name), and $${name} all become $(palette.name).
func ExpandAliases(value string) string {
	return aliasPattern.ReplaceAllStringFunc(value, func(match string) string {
		sub := aliasPattern.FindStringSubmatch(match)
		name := sub[1]
		if name == "" {
			name = sub[2]
		}
		if name == "" {
			name = sub[3]
		}
		return "$(" + PaletteScopeName + "." + name + ")"
	})
}

// ReferencePath extracts the path from a value that is a single
// reference in any of the three spellings.
func ReferencePath(value string) (string, bool) {
	for _, pattern := range []*regexp.Regexp{refParenPattern, refBracePattern, refBarePattern} {
		if match := pattern.FindStringSubmatch(value); match != nil {
			return match[1], true
		}
	}
	return "", false
}

// ParseCall splits a value of the form name(arg, arg, ...) into its
// name and top-level-comma arguments. Returns false when the value is
// not a well-formed call: no name, unbalanced parentheses, or trailing
// text after the closing parenthesis.
func ParseCall(value string) (string, []string, bool) {
	match := callPattern.FindStringSubmatch(value)
	if match == nil {
		return "", nil, false
	}

	inner := match[2]
	if !balanced(inner) {
		return "", nil, false
	}
	return match[1], SplitArgs(inner), true
}

// SplitArgs splits a call's argument text at top-level commas, leaving
// commas inside nested parentheses or braces alone.
func SplitArgs(inner string) []string {
	if strings.TrimSpace(inner) == "" {
		return nil
	}

	var args []string
	depth := 0
	start := 0
	for i, r := range inner {
		switch r {
		case '(', '{':
			depth++
		case ')', '}':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(inner[start:]))
	return args
}

// balanced reports whether parentheses in s are balanced and never
// close below depth zero. The callPattern regex is greedy, so inner
// text of a malformed value like "f(a))(" would otherwise slip by.
func balanced(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// IsHex reports whether the value is a hex colour literal in 3, 4, 6,
// or 8 digit form.
func IsHex(value string) bool {
	return hexPattern.MatchString(value)
}

// NormalizeHex expands 3/4-digit shorthand to 6/8-digit form and
// lowercases the digits. Non-hex input is returned unchanged.
func NormalizeHex(value string) string {
	if !IsHex(value) {
		return value
	}

	digits := strings.ToLower(value[1:])
	if len(digits) == 3 || len(digits) == 4 {
		var expanded strings.Builder
		expanded.WriteByte('#')
		for _, r := range digits {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		return expanded.String()
	}
	return "#" + digits
}
