package lsxtype

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Resolver owns an ordinal table. It is read-only after construction and safe for
// concurrent use.
type Resolver struct {
	ordinals map[int]Name
}

// Ordinal pairs a table index with its canonical name.
type Ordinal struct {
	Name  Name
	Index int
}

var defaultResolver = mustNewResolver(nil)

// Default returns the resolver backed by the built-in table.
func Default() *Resolver {
	return defaultResolver
}

// Resolve maps token through the built-in table.
func Resolve(token string) string {
	return defaultResolver.Resolve(token)
}

// NewResolver builds a resolver from the built-in table plus extra ordinals.
// Extra entries may not redefine a built-in ordinal.
func NewResolver(extra map[int]Name) (*Resolver, error) {
	ordinals := make(map[int]Name, len(defaultOrdinals)+len(extra))
	for i, name := range defaultOrdinals {
		ordinals[i] = name
	}
	for _, idx := range slices.Sorted(maps.Keys(extra)) {
		name := extra[idx]
		if idx < 0 {
			return nil, fmt.Errorf("type ordinal %d: negative ordinal", idx)
		}
		if name == "" {
			return nil, fmt.Errorf("type ordinal %d: empty name", idx)
		}
		if existing, ok := ordinals[idx]; ok {
			return nil, fmt.Errorf("type ordinal %d: already defined as %s", idx, existing)
		}
		ordinals[idx] = name
	}
	return &Resolver{ordinals: ordinals}, nil
}

func mustNewResolver(extra map[int]Name) *Resolver {
	r, err := NewResolver(extra)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve returns the canonical name for token. Purely numeric tokens are looked up
// in the ordinal table; unmapped ordinals and symbolic tokens are returned unchanged.
func (r *Resolver) Resolve(token string) string {
	if r == nil {
		r = defaultResolver
	}
	if !IsOrdinal(token) {
		return token
	}
	idx, err := strconv.Atoi(token)
	if err != nil {
		// too many digits for int; cannot be in the table
		return token
	}
	if name, ok := r.ordinals[idx]; ok {
		return string(name)
	}
	return token
}

// Lookup reports the canonical name registered for ordinal idx.
func (r *Resolver) Lookup(idx int) (Name, bool) {
	if r == nil {
		r = defaultResolver
	}
	name, ok := r.ordinals[idx]
	return name, ok
}

// Ordinals lists the table sorted by index.
func (r *Resolver) Ordinals() []Ordinal {
	if r == nil {
		r = defaultResolver
	}
	out := make([]Ordinal, 0, len(r.ordinals))
	for _, idx := range slices.Sorted(maps.Keys(r.ordinals)) {
		out = append(out, Ordinal{Index: idx, Name: r.ordinals[idx]})
	}
	return out
}

// IsOrdinal reports whether token consists solely of ASCII digits.
func IsOrdinal(token string) bool {
	if token == "" {
		return false
	}
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return false
		}
	}
	return true
}
