// Package paths flattens nested theme documents into addressable
// path/value entries and recomposes the inverse. It is a pure leaf
// component: the composer and the resolution engine both build on it.
package paths

import (
	"sort"
	"strconv"
	"strings"
)

// Separator joins path segments into a flat path.
const Separator = "."

// ArrayRef marks an entry as belonging to an array element.
// Prefix is the flat path of the array node itself; Index is the
// element's position within it.
type ArrayRef struct {
	Prefix string
	Index  int
}

// Entry is one flattened leaf: a dot-joined flat path and its value.
// Array holds the chain of enclosing array descriptors, outermost
// first, so arrays nested inside array-element maps survive the round
// trip. Empty when the leaf lives outside any list-valued section.
type Entry struct {
	Path  string
	Value any
	Array []ArrayRef
}

// Join joins path segments with the separator, skipping empty segments.
func Join(segments ...string) string {
	parts := segments[:0:0]
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, Separator)
}

// Decompose flattens a nested document into entries via a depth-first
// walk with sorted key order, so output is stable for equal input.
// Non-string scalar leaves pass through unchanged. Array elements emit
// one entry per leaf plus a shared array descriptor.
func Decompose(doc map[string]any) []Entry {
	var entries []Entry
	walkMap("", doc, nil, &entries)
	return entries
}

func walkMap(prefix string, node map[string]any, chain []ArrayRef, out *[]Entry) {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		walkValue(Join(prefix, k), node[k], chain, out)
	}
}

func walkValue(path string, value any, chain []ArrayRef, out *[]Entry) {
	switch v := value.(type) {
	case map[string]any:
		if len(v) == 0 {
			*out = append(*out, Entry{Path: path, Value: v, Array: chain})
			return
		}
		walkMap(path, v, chain, out)
	case []any:
		for i, elem := range v {
			elemChain := append(append([]ArrayRef(nil), chain...), ArrayRef{Prefix: path, Index: i})
			walkValue(Join(path, strconv.Itoa(i)), elem, elemChain, out)
		}
	default:
		*out = append(*out, Entry{Path: path, Value: value, Array: chain})
	}
}

// Recompose rebuilds a nested document from entries. Entries sharing an
// array descriptor prefix are grouped, sorted by index, and emitted as
// an array. Duplicate flat paths resolve last-seen-wins; callers that
// need override semantics must pre-filter. Empty input yields an empty
// document.
func Recompose(entries []Entry) map[string]any {
	// Last-seen-wins on duplicate flat paths.
	seen := make(map[string]int, len(entries))
	deduped := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if i, ok := seen[e.Path]; ok {
			deduped[i] = e
			continue
		}
		seen[e.Path] = len(deduped)
		deduped = append(deduped, e)
	}

	doc := make(map[string]any)
	assemble(doc, "", deduped, 0)
	return doc
}

// assemble rebuilds entries into node, which sits at flat path base.
// depth counts the enclosing array descriptors already consumed, so an
// entry whose descriptor chain is exhausted is a plain leaf of this
// node and deeper chains group into nested arrays.
func assemble(node map[string]any, base string, entries []Entry, depth int) {
	arrays := make(map[string]map[int][]Entry)
	var arrayOrder []string
	for _, e := range entries {
		if len(e.Array) == depth {
			insert(node, splitPath(relative(e.Path, base)), e.Value)
			continue
		}
		ref := e.Array[depth]
		group, ok := arrays[ref.Prefix]
		if !ok {
			group = make(map[int][]Entry)
			arrays[ref.Prefix] = group
			arrayOrder = append(arrayOrder, ref.Prefix)
		}
		group[ref.Index] = append(group[ref.Index], e)
	}

	for _, prefix := range arrayOrder {
		insert(node, splitPath(relative(prefix, base)), recomposeList(prefix, arrays[prefix], depth+1))
	}
}

// recomposeList rebuilds one array from its per-index entry groups,
// sorted by index.
func recomposeList(prefix string, group map[int][]Entry, depth int) []any {
	indexes := make([]int, 0, len(group))
	for i := range group {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	list := make([]any, 0, len(indexes))
	for _, i := range indexes {
		list = append(list, recomposeElement(Join(prefix, strconv.Itoa(i)), group[i], depth))
	}
	return list
}

// recomposeElement rebuilds one array element from its entries. A
// single entry addressed exactly at the element path is a scalar;
// entries whose next descriptor is the element path itself form a
// nested list; anything else is a map rebuilt from the relative paths.
func recomposeElement(elemPath string, entries []Entry, depth int) any {
	if len(entries) == 1 && entries[0].Path == elemPath && len(entries[0].Array) == depth {
		return entries[0].Value
	}

	if chain := entries[0].Array; len(chain) > depth && chain[depth].Prefix == elemPath {
		group := make(map[int][]Entry)
		for _, e := range entries {
			group[e.Array[depth].Index] = append(group[e.Array[depth].Index], e)
		}
		return recomposeList(elemPath, group, depth+1)
	}

	elem := make(map[string]any)
	assemble(elem, elemPath, entries, depth)
	return elem
}

// relative strips the base prefix from a flat path.
func relative(path, base string) string {
	if base == "" {
		return path
	}
	return strings.TrimPrefix(path, base+Separator)
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, Separator)
}

// insert places value at the nested location named by segments,
// creating intermediate maps as needed. An existing scalar in the way
// is replaced by a map (last-seen-wins at every level).
func insert(doc map[string]any, segments []string, value any) {
	if len(segments) == 0 {
		return
	}

	node := doc
	for _, seg := range segments[:len(segments)-1] {
		child, ok := node[seg].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[seg] = child
		}
		node = child
	}
	node[segments[len(segments)-1]] = value
}
