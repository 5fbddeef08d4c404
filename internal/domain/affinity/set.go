package affinity

import "sort"

// Set is an immutable collection of distinct character names.
// The zero value is the empty set.
type Set struct {
	m map[string]struct{}
}

// NewSet builds a Set from names, dropping duplicates and empty strings.
func NewSet(names ...string) Set {
	if len(names) == 0 {
		return Set{}
	}
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n != "" {
			m[n] = struct{}{}
		}
	}
	return Set{m: m}
}

// Has reports whether name is in the set.
func (s Set) Has(name string) bool {
	_, ok := s.m[name]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int { return len(s.m) }

// CountIn returns |s ∩ names|. Duplicates in names are counted once.
func (s Set) CountIn(names []string) int {
	if len(s.m) == 0 || len(names) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(names))
	n := 0
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if s.Has(name) {
			n++
		}
	}
	return n
}

// Members returns the intersection of s with names, in the order of names.
func (s Set) Members(names []string) []string {
	out := []string{}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if s.Has(name) {
			out = append(out, name)
		}
	}
	return out
}

// Slice returns the members sorted by name.
func (s Set) Slice() []string {
	out := make([]string, 0, len(s.m))
	for n := range s.m {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (s Set) union(names []string) Set {
	m := make(map[string]struct{}, len(s.m)+len(names))
	for n := range s.m {
		m[n] = struct{}{}
	}
	for _, n := range names {
		if n != "" {
			m[n] = struct{}{}
		}
	}
	return Set{m: m}
}
