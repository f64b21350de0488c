package token

import "sort"

// Store maps canonical keys to tokens for one compilation. It is owned
// by the compilation that created it and passed by handle into the
// resolution engine; independent compilations never share a store.
type Store struct {
	tokens map[string]*Token

	// byValue supports reverse lookup so repeated literals reuse one
	// token instead of minting duplicates.
	byValue map[string]string

	graph *Graph
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		tokens:  make(map[string]*Token),
		byValue: make(map[string]string),
		graph:   NewGraph(),
	}
}

// Add registers a token under its name. Registration is idempotent: if
// a token already exists for the key, the existing token is returned
// and the new one is discarded. The optional dependency records an edge
// in the store's dependency graph either way.
func (s *Store) Add(tok *Token, dependency *Token) *Token {
	existing, ok := s.tokens[tok.Name]
	if !ok {
		s.tokens[tok.Name] = tok
		s.byValue[tok.RawValue] = tok.Name
		s.graph.AddNode(tok.Name)
		existing = tok
	}

	if dependency != nil {
		existing.Dependency = dependency
		s.graph.AddNode(dependency.Name)
		s.graph.AddEdge(dependency.Name, existing.Name)
	}

	return existing
}

// Put registers or replaces the token for a key. The most recent write
// wins, matching the composer's override semantics. A replaced token's
// reverse-lookup entry is dropped so FindByValue never returns a token
// whose raw value no longer matches.
func (s *Store) Put(tok *Token) {
	if old, ok := s.tokens[tok.Name]; ok {
		if name, ok := s.byValue[old.RawValue]; ok && name == old.Name {
			delete(s.byValue, old.RawValue)
		}
	}
	s.tokens[tok.Name] = tok
	s.byValue[tok.RawValue] = tok.Name
	s.graph.AddNode(tok.Name)
}

// Find returns the token for an exact key.
func (s *Store) Find(key string) (*Token, bool) {
	tok, ok := s.tokens[key]
	return tok, ok
}

// FindByValue returns the token whose raw value matches, if any.
// Used to avoid duplicate tokens for repeated literals.
func (s *Store) FindByValue(value string) (*Token, bool) {
	key, ok := s.byValue[value]
	if !ok {
		return nil, false
	}
	return s.Find(key)
}

// Link records a dependency edge between two registered tokens.
func (s *Store) Link(from, to *Token) {
	s.graph.AddNode(from.Name)
	s.graph.AddNode(to.Name)
	s.graph.AddEdge(from.Name, to.Name)
}

// Len returns the number of registered tokens.
func (s *Store) Len() int {
	return len(s.tokens)
}

// Keys returns all registered keys in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.tokens))
	for k := range s.tokens {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Parents returns the keys the given key depends on directly, in
// sorted order.
func (s *Store) Parents(key string) []string {
	parents := append([]string(nil), s.graph.Parents(key)...)
	sort.Strings(parents)
	return parents
}

// Upstream returns every key the given key depends on, directly or
// transitively, in sorted order.
func (s *Store) Upstream(key string) []string {
	return s.graph.Upstream(key)
}

// Cycle reports whether the recorded dependency edges contain a cycle,
// returning the cycle path when present. Diagnostic only: the engine
// detects cycles by pass-cap exhaustion, this reconstructs the loop for
// explain output.
func (s *Store) Cycle() (bool, []string) {
	return s.graph.HasCycle()
}
