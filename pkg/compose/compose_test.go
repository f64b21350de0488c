package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_ObjectPolicy(t *testing.T) {
	base := map[string]any{
		"palette": map[string]any{
			"cyan": "#56b6c2",
			"red":  "#e06c75",
		},
	}
	override := map[string]any{
		"palette": map[string]any{
			"red":   "#ff0000",
			"green": "#98c379",
		},
	}

	merged := Merge(base, override)
	palette := merged["palette"].(map[string]any)

	assert.Equal(t, "#56b6c2", palette["cyan"], "untouched keys survive")
	assert.Equal(t, "#ff0000", palette["red"], "later keys override")
	assert.Equal(t, "#98c379", palette["green"], "new keys merge in")
}

func TestMerge_DeepObjectPolicy(t *testing.T) {
	base := map[string]any{
		"colors": map[string]any{
			"editor": map[string]any{"background": "#1a1a2e", "foreground": "#e0e0e0"},
		},
	}
	override := map[string]any{
		"colors": map[string]any{
			"editor": map[string]any{"background": "#000000"},
		},
	}

	merged := Merge(base, override)
	editor := merged["colors"].(map[string]any)["editor"].(map[string]any)

	assert.Equal(t, "#000000", editor["background"])
	assert.Equal(t, "#e0e0e0", editor["foreground"])
}

func TestMerge_ArrayPolicyAppends(t *testing.T) {
	imported := map[string]any{
		"tokenColors": []any{
			map[string]any{"scope": "comment"},
		},
	}
	main := map[string]any{
		"tokenColors": []any{
			map[string]any{"scope": "keyword"},
		},
	}

	merged := Merge(imported, main)
	list := merged["tokenColors"].([]any)

	require.Len(t, list, 2)
	assert.Equal(t, "comment", list[0].(map[string]any)["scope"], "imports come first")
	assert.Equal(t, "keyword", list[1].(map[string]any)["scope"])
}

func TestMerge_CarryForward(t *testing.T) {
	layerA := map[string]any{
		"variables": map[string]any{"accent": "#56b6c2"},
	}
	layerB := map[string]any{
		"variables": map[string]any{"accent": "shade(^, 25)"},
	}

	merged := Merge(layerA, layerB)
	vars := merged["variables"].(map[string]any)

	assert.Equal(t, "shade(#56b6c2, 25)", vars["accent"])
}

func TestMerge_CarryForwardChainsAcrossLayers(t *testing.T) {
	layerA := map[string]any{"variables": map[string]any{"k": "#111111"}}
	layerB := map[string]any{"variables": map[string]any{"k": "lighten(^, 10)"}}
	layerC := map[string]any{"variables": map[string]any{"k": "darken(^, 5)"}}

	merged := Merge(layerA, layerB, layerC)
	vars := merged["variables"].(map[string]any)

	// Each layer substitutes the immediately preceding merged value.
	assert.Equal(t, "darken(lighten(#111111, 10), 5)", vars["k"])
}

func TestMerge_CarryForwardNoPriorNoOps(t *testing.T) {
	layerA := map[string]any{"variables": map[string]any{"other": "#111111"}}
	layerB := map[string]any{"variables": map[string]any{"fresh": "mix(^, #fff)"}}

	merged := Merge(layerA, layerB)
	vars := merged["variables"].(map[string]any)

	// No prior value for the key: the placeholder is left alone.
	assert.Equal(t, "mix(^, #fff)", vars["fresh"])
}

func TestMerge_CarryForwardNeverFiresOnObjects(t *testing.T) {
	layerA := map[string]any{"variables": map[string]any{"group": map[string]any{"a": "#111111"}}}
	layerB := map[string]any{"variables": map[string]any{"group": "spin(^, 30)"}}

	merged := Merge(layerA, layerB)
	vars := merged["variables"].(map[string]any)

	// The prior value is an object node, so substitution does not fire.
	assert.Equal(t, "spin(^, 30)", vars["group"])
}

func TestMerge_EmptyAndSingle(t *testing.T) {
	assert.Equal(t, map[string]any{}, Merge())

	single := map[string]any{"palette": map[string]any{"cyan": "#56b6c2"}}
	assert.Equal(t, single, Merge(single))
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	base := map[string]any{"palette": map[string]any{"cyan": "#56b6c2"}}
	override := map[string]any{"palette": map[string]any{"cyan": "#000000"}}

	Merge(base, override)

	assert.Equal(t, "#56b6c2", base["palette"].(map[string]any)["cyan"])
}

func TestNormalizeImports(t *testing.T) {
	names, err := NormalizeImports("base")
	require.NoError(t, err)
	assert.Equal(t, []string{"base"}, names)

	names, err = NormalizeImports([]any{"base", "dark"})
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "dark"}, names)

	names, err = NormalizeImports(nil)
	require.NoError(t, err)
	assert.Nil(t, names)
}

func TestNormalizeImports_Malformed(t *testing.T) {
	for _, spec := range []any{42, map[string]any{"a": "b"}, []any{"ok", 7}} {
		_, err := NormalizeImports(spec)
		require.Error(t, err, "expected error for %v", spec)

		var specErr *ImportSpecError
		assert.ErrorAs(t, err, &specErr)
	}
}
