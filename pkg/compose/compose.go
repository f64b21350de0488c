// Package compose merges imported theme documents under per-section
// policy: map-valued sections deep-merge with later keys winning, and
// list-valued sections concatenate with imports first. A carry-forward
// placeholder lets a later layer derive a value from the already-merged
// value of the same key.
package compose

import (
	"fmt"
	"strings"
)

// CarryForward is the placeholder a later layer embeds in a leaf string
// to splice in the value the key held after all earlier layers merged.
const CarryForward = "^"

// Merge composes documents in declared order; callers pass imports
// first and the main document last, so the main document wins on
// conflicts. Each layer has its carry-forward placeholders substituted
// against the accumulated result before the layer itself is merged, so
// repeated redefinition chains layer by layer.
func Merge(layers ...map[string]any) map[string]any {
	if len(layers) == 0 {
		return map[string]any{}
	}

	acc, _ := cloneValue(layers[0]).(map[string]any)
	if acc == nil {
		acc = map[string]any{}
	}
	for _, layer := range layers[1:] {
		substituted := substituteCarryForward(acc, layer)
		merged, _ := mergeValue(acc, substituted).(map[string]any)
		acc = merged
	}
	return acc
}

// mergeValue merges next onto prior. Maps deep-merge recursively with
// next's keys winning; slices concatenate prior-first; anything else
// takes next.
func mergeValue(prior, next any) any {
	switch nextVal := next.(type) {
	case map[string]any:
		priorMap, ok := prior.(map[string]any)
		if !ok {
			return cloneValue(nextVal)
		}
		result := make(map[string]any, len(priorMap)+len(nextVal))
		for k, v := range priorMap {
			result[k] = cloneValue(v)
		}
		for k, v := range nextVal {
			if existing, ok := result[k]; ok {
				result[k] = mergeValue(existing, v)
			} else {
				result[k] = cloneValue(v)
			}
		}
		return result
	case []any:
		priorList, ok := prior.([]any)
		if !ok {
			return cloneValue(nextVal)
		}
		result := make([]any, 0, len(priorList)+len(nextVal))
		for _, v := range priorList {
			result = append(result, cloneValue(v))
		}
		for _, v := range nextVal {
			result = append(result, cloneValue(v))
		}
		return result
	default:
		return next
	}
}

// substituteCarryForward rewrites layer leaves containing the
// carry-forward placeholder with the prior merged value at the same
// path. Fires only on leaf strings whose prior value is also a leaf
// string; object nodes and missing priors are left untouched. Only
// map-merged sections participate: the walk never descends into
// slices, whose elements have no prior key to carry forward from.
func substituteCarryForward(prior map[string]any, layer map[string]any) map[string]any {
	result := make(map[string]any, len(layer))
	for k, v := range layer {
		priorVal, hasPrior := prior[k]

		switch val := v.(type) {
		case map[string]any:
			priorMap, ok := priorVal.(map[string]any)
			if !ok {
				priorMap = map[string]any{}
			}
			result[k] = substituteCarryForward(priorMap, val)
		case string:
			if hasPrior && strings.Contains(val, CarryForward) {
				if priorStr, ok := priorVal.(string); ok {
					result[k] = strings.ReplaceAll(val, CarryForward, priorStr)
					continue
				}
			}
			result[k] = val
		default:
			result[k] = v
		}
	}
	return result
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		clone := make(map[string]any, len(val))
		for k, child := range val {
			clone[k] = cloneValue(child)
		}
		return clone
	case []any:
		clone := make([]any, len(val))
		for i, child := range val {
			clone[i] = cloneValue(child)
		}
		return clone
	default:
		return v
	}
}

// ImportSpecError reports an import declaration that is neither a
// string nor a list of strings.
type ImportSpecError struct {
	Value any
}

func (e *ImportSpecError) Error() string {
	return fmt.Sprintf("import specification must be a string or list of strings, got %T", e.Value)
}

// NormalizeImports validates and flattens an import declaration into a
// list of import names. A nil declaration yields no imports.
func NormalizeImports(spec any) ([]string, error) {
	switch val := spec.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{val}, nil
	case []any:
		names := make([]string, 0, len(val))
		for _, item := range val {
			name, ok := item.(string)
			if !ok {
				return nil, &ImportSpecError{Value: item}
			}
			names = append(names, name)
		}
		return names, nil
	case []string:
		return val, nil
	default:
		return nil, &ImportSpecError{Value: spec}
	}
}
