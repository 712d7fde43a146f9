package core

import (
	"strings"

	"golang.org/x/text/cases"
)

// fold returns the case-folded form of s for case-insensitive comparison.
// A Caser is stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// matcher holds predicates prepared for repeated evaluation.
type matcher struct {
	name       string
	categories map[string]struct{}
	sizeRanges map[string]struct{}
	genders    map[string]struct{}
}

func newMatcher(p Predicates) matcher {
	m := matcher{
		categories: toSet(p.Categories),
		sizeRanges: toSet(p.SizeRanges),
		genders:    toSet(p.Genders),
	}
	// A blank name is no restriction; a non-blank one matches as typed.
	if strings.TrimSpace(p.Name) != "" {
		m.name = fold(p.Name)
	}
	return m
}

// toSet returns nil for an empty slice, meaning "no restriction".
func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func (m matcher) match(p Product) bool {
	if m.name != "" && !strings.Contains(fold(p.Name), m.name) {
		return false
	}
	if !inSet(m.categories, p.Category) {
		return false
	}
	if !inSet(m.sizeRanges, p.SizeRange) {
		return false
	}
	return inSet(m.genders, p.Gender)
}

func inSet(set map[string]struct{}, v string) bool {
	if set == nil {
		return true
	}
	_, ok := set[v]
	return ok
}

// Filter returns the records satisfying every active predicate, in input order.
// The result never aliases records. An empty result is valid.
func Filter(records []Product, p Predicates) []Product {
	if p.IsZero() {
		return append(make([]Product, 0, len(records)), records...)
	}

	m := newMatcher(p)
	out := make([]Product, 0, len(records))
	for _, r := range records {
		if m.match(r) {
			out = append(out, r)
		}
	}
	return out
}
