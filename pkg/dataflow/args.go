package dataflow

import (
	"fmt"
	"sort"
	"strings"
)

// Args is the keyword argument bag handed to Run. It travels unchanged along
// the whole pull chain so that every node sees the same arguments.
type Args map[string]any

func (a Args) Has(name string) bool {
	_, ok := a[name]

	return ok
}

func (a Args) Clone() Args {
	if a == nil {
		return nil
	}

	out := make(Args, len(a))
	for k, v := range a {
		out[k] = v
	}

	return out
}

// Key returns a canonical representation of the arguments. Two bags holding
// the same pairs produce the same key regardless of insertion order.
func (a Args) Key() string {
	names := make([]string, 0, len(a))
	for k := range a {
		names = append(names, k)
	}

	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, k := range names {
		parts = append(parts, fmt.Sprintf("%s=%v", k, a[k]))
	}

	return strings.Join(parts, "&")
}

// Set is a set of names, used for required arguments and node tags.
type Set map[string]struct{}

func NewSet(names ...string) Set {
	s := make(Set, len(names))

	return s.Add(names...)
}

func (s Set) Add(names ...string) Set {
	for _, n := range names {
		s[n] = struct{}{}
	}

	return s
}

func (s Set) Contains(name string) bool {
	_, ok := s[name]

	return ok
}

func (s Set) Clone() Set {
	out := make(Set, len(s))
	for n := range s {
		out[n] = struct{}{}
	}

	return out
}

// Union returns a new set holding the names of both sets.
func (s Set) Union(other Set) Set {
	out := s.Clone()
	for n := range other {
		out[n] = struct{}{}
	}

	return out
}

func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}

	sort.Strings(out)

	return out
}

// Missing returns the names of the set absent from args, sorted.
func (s Set) Missing(args Args) []string {
	var out []string

	for n := range s {
		if !args.Has(n) {
			out = append(out, n)
		}
	}

	sort.Strings(out)

	return out
}
