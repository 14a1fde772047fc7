// Package literal extracts guaranteed literal prefixes and suffixes from
// a parsed pattern. The result is an algebraic Set: finite string sets
// that every match must start and end with, plus a completeness flag
// meaning the sets enumerate the exact full matching strings.
package literal

import (
	"strings"

	"github.com/samber/lo"
)

// MaxLiterals caps the prefix and suffix set sizes. Any operation that would exceed
// it collapses the whole set to Empty.
const MaxLiterals = 128

// maxCaseLen bounds case-insensitive expansion of a single literal.
const maxCaseLen = 8

// Set describes the guaranteed literal content of a subtree.
//
// Prefixes is a finite set of strings every match begins with (one of
// them); Suffixes the same for match ends. Complete means both sets are
// the exact set of full matching strings. A Set with no strings at all
// carries no information; the singleton {""} means "matches exactly the
// empty string" and is produced by anchors, assertions and comments.
type Set struct {
	Prefixes []string
	Suffixes []string
	Complete bool
}

// FromString returns the exact singleton set for s.
func FromString(s string) Set {
	return Set{Prefixes: []string{s}, Suffixes: []string{s}, Complete: true}
}

// Empty returns the no-information set.
func Empty() Set {
	return Set{}
}

// IsEmpty reports whether the set carries no information at all.
func (s Set) IsEmpty() bool {
	return len(s.Prefixes) == 0 && len(s.Suffixes) == 0
}

// Concat combines two sets matched in sequence.
func (s Set) Concat(o Set) Set {
	if s.IsEmpty() && o.IsEmpty() {
		return Empty()
	}
	if o.IsEmpty() {
		// Unknown continuation: prefixes survive, suffixes are lost.
		return capped(Set{Prefixes: s.Prefixes})
	}
	if s.IsEmpty() {
		return capped(Set{Suffixes: o.Suffixes})
	}
	res := Set{Complete: s.Complete && o.Complete}
	if s.Complete {
		res.Prefixes = cross(s.Prefixes, o.Prefixes)
	} else {
		res.Prefixes = s.Prefixes
	}
	if o.Complete {
		res.Suffixes = cross(s.Suffixes, o.Suffixes)
	} else {
		res.Suffixes = o.Suffixes
	}
	return capped(res)
}

// Unite combines two alternative sets. A branch with no information
// poisons the whole union: nothing is guaranteed any more.
func (s Set) Unite(o Set) Set {
	if s.IsEmpty() || o.IsEmpty() {
		return Empty()
	}
	return capped(Set{
		Prefixes: lo.Uniq(append(append([]string{}, s.Prefixes...), o.Prefixes...)),
		Suffixes: lo.Uniq(append(append([]string{}, s.Suffixes...), o.Suffixes...)),
		Complete: s.Complete && o.Complete,
	})
}

func cross(a, b []string) []string {
	out := make([]string, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			out = append(out, x+y)
		}
	}
	return lo.Uniq(out)
}

func capped(s Set) Set {
	if len(s.Prefixes) > MaxLiterals || len(s.Suffixes) > MaxLiterals {
		return Empty()
	}
	return s
}

// ExpandCaseInsensitive returns the set of case variants of v, or Empty
// when v is longer than the expansion bound or the variant count would
// exceed MaxLiterals.
func ExpandCaseInsensitive(v string) Set {
	if len(v) > maxCaseLen {
		return Empty()
	}
	variants := []string{""}
	for i := 0; i < len(v); i++ {
		c := string(v[i])
		lower, upper := strings.ToLower(c), strings.ToUpper(c)
		if lower == upper {
			for j := range variants {
				variants[j] += c
			}
			continue
		}
		next := make([]string, 0, len(variants)*2)
		for _, p := range variants {
			next = append(next, p+lower, p+upper)
		}
		if len(next) > MaxLiterals {
			return Empty()
		}
		variants = next
	}
	variants = lo.Uniq(variants)
	return Set{Prefixes: variants, Suffixes: variants, Complete: true}
}
