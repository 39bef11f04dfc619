// Package modes defines the closed set of I-Model mode names and the set
// algebra used by selection and scoring.
package modes

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownMode is returned when a name lies outside the configured universe.
var ErrUnknownMode = errors.New("unknown mode")

// Name identifies a mode. The label string is its identity.
type Name string

// Reference mode names.
const (
	Intentionality Name = "Intentionality"
	Integrity      Name = "Integrity"
	Inquiry        Name = "Inquiry"
	Intuition      Name = "Intuition"
)

// Universe is the ordered, duplicate-free list of modes a session works with.
// Order drives the rest layout and tie-breaking in statistics.
type Universe []Name

// Default returns the four reference modes in canonical order.
func Default() Universe {
	return Universe{Intentionality, Integrity, Inquiry, Intuition}
}

// NewUniverse builds a universe, rejecting empty and duplicate names.
func NewUniverse(names ...Name) (Universe, error) {
	if len(names) == 0 {
		return nil, errors.New("universe needs at least one mode")
	}
	seen := make(map[Name]bool, len(names))
	u := make(Universe, 0, len(names))
	for _, n := range names {
		if n == "" {
			return nil, errors.New("empty mode name")
		}
		if seen[n] {
			return nil, fmt.Errorf("duplicate mode %q", n)
		}
		seen[n] = true
		u = append(u, n)
	}
	return u, nil
}

// Contains reports whether n belongs to the universe.
func (u Universe) Contains(n Name) bool {
	return u.Index(n) >= 0
}

// Index returns the position of n, or -1.
func (u Universe) Index(n Name) int {
	for i, m := range u {
		if m == n {
			return i
		}
	}
	return -1
}

// Validate returns ErrUnknownMode (wrapped with the offending name) if n is
// not part of the universe.
func (u Universe) Validate(n Name) error {
	if !u.Contains(n) {
		return fmt.Errorf("%w: %q", ErrUnknownMode, n)
	}
	return nil
}

// ValidateSet checks every member of s.
func (u Universe) ValidateSet(s Set) error {
	for _, n := range s.Names() {
		if err := u.Validate(n); err != nil {
			return err
		}
	}
	return nil
}

// Set is an unordered collection of mode names. The zero value is an empty set.
type Set struct {
	m map[Name]struct{}
}

// NewSet returns a set holding names.
func NewSet(names ...Name) Set {
	var s Set
	for _, n := range names {
		s = s.Add(n)
	}
	return s
}

// Add returns a set that also holds n. The receiver is not modified.
func (s Set) Add(n Name) Set {
	c := s.Clone()
	if c.m == nil {
		c.m = make(map[Name]struct{})
	}
	c.m[n] = struct{}{}
	return c
}

// Remove returns a set without n. The receiver is not modified.
func (s Set) Remove(n Name) Set {
	if !s.Has(n) {
		return s
	}
	c := s.Clone()
	delete(c.m, n)
	return c
}

// Has reports membership.
func (s Set) Has(n Name) bool {
	_, ok := s.m[n]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s.m)
}

// Empty reports whether the set has no members.
func (s Set) Empty() bool {
	return len(s.m) == 0
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	if s.m == nil {
		return Set{}
	}
	c := Set{m: make(map[Name]struct{}, len(s.m))}
	for n := range s.m {
		c.m[n] = struct{}{}
	}
	return c
}

// Equal reports set equality; order never matters.
func (s Set) Equal(o Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	for n := range s.m {
		if !o.Has(n) {
			return false
		}
	}
	return true
}

// Intersect returns the members present in both sets.
func (s Set) Intersect(o Set) Set {
	var out Set
	for n := range s.m {
		if o.Has(n) {
			out = out.Add(n)
		}
	}
	return out
}

// Names returns the members sorted lexically.
func (s Set) Names() []Name {
	out := make([]Name, 0, len(s.m))
	for n := range s.m {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Ordered returns the members in universe order. Members outside the
// universe are appended lexically.
func (s Set) Ordered(u Universe) []Name {
	out := make([]Name, 0, s.Len())
	for _, n := range u {
		if s.Has(n) {
			out = append(out, n)
		}
	}
	for _, n := range s.Names() {
		if !u.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// Strings is a convenience for rendering and logging.
func (s Set) Strings(u Universe) []string {
	names := s.Ordered(u)
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}
