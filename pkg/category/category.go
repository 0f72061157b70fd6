// Package category defines the semantic tag algebra used to classify
// instructions and to filter or weight selection. The enumeration is open:
// architecture plugins may introduce their own categories alongside the
// predefined ones, and selection logic operates purely on set membership.
package category

import "sort"

// Category tags an instruction's semantic role.
type Category string

// Predefined categories shared by every instruction set.
const (
	Arithmetic      Category = "arithmetic"
	Logical         Category = "logical"
	Branch          Category = "branch"
	Load            Category = "load"
	Store           Category = "store"
	Input           Category = "input"
	Output          Category = "output"
	Immediate       Category = "immediate"
	JumpAndLink     Category = "jump-and-link"
	EnvironmentCall Category = "environment-call"
	Label           Category = "label"
	Nop             Category = "nop"
)

// Set is an unordered collection of categories. Duplicates collapse.
type Set map[Category]struct{}

// NewSet builds a set from the given categories.
func NewSet(cats ...Category) Set {
	s := make(Set, len(cats))
	for _, c := range cats {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether c is a member of s.
func (s Set) Has(c Category) bool {
	_, ok := s[c]
	return ok
}

// Union returns a new set containing the members of s and t.
func (s Set) Union(t Set) Set {
	u := make(Set, len(s)+len(t))
	for c := range s {
		u[c] = struct{}{}
	}
	for c := range t {
		u[c] = struct{}{}
	}
	return u
}

// Intersects reports whether s and t share at least one member.
func (s Set) Intersects(t Set) bool {
	for c := range s {
		if t.Has(c) {
			return true
		}
	}
	return false
}

// Sorted returns the members of s in lexical order. Any code that iterates a
// set for selection or rendering must go through here to stay deterministic.
func (s Set) Sorted() []Category {
	out := make([]Category, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
