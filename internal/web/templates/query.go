package templates

import (
	"net/url"

	"github.com/JonMunkholm/assort/internal/core"
)

// Query string parameter names shared by links, forms and the handlers.
const (
	ParamVersion   = "version"
	ParamName      = "name"
	ParamCategory  = "category"
	ParamSizeRange = "sizeRange"
	ParamGender    = "gender"
	ParamSort      = "sort"
	ParamDir       = "dir"
)

// ParseQuery reads a view query from URL values.
func ParseQuery(v url.Values) core.Query {
	return core.Query{
		Version: v.Get(ParamVersion),
		Predicates: core.Predicates{
			Name:       v.Get(ParamName),
			Categories: nonEmpty(v[ParamCategory]),
			SizeRanges: nonEmpty(v[ParamSizeRange]),
			Genders:    nonEmpty(v[ParamGender]),
		},
		Sort: core.ParseSort(v.Get(ParamSort), v.Get(ParamDir)),
	}
}

// Values encodes q so that ParseQuery(Values(q)) round-trips.
func Values(q core.Query) url.Values {
	v := url.Values{}
	if q.Version != "" {
		v.Set(ParamVersion, q.Version)
	}
	if q.Predicates.Name != "" {
		v.Set(ParamName, q.Predicates.Name)
	}
	for _, c := range q.Predicates.Categories {
		v.Add(ParamCategory, c)
	}
	for _, s := range q.Predicates.SizeRanges {
		v.Add(ParamSizeRange, s)
	}
	for _, g := range q.Predicates.Genders {
		v.Add(ParamGender, g)
	}
	v.Set(ParamSort, string(q.Sort.Column))
	v.Set(ParamDir, q.Sort.Dir())
	return v
}

// Href returns the page URL for q.
func Href(q core.Query) string {
	return "/?" + Values(q).Encode()
}

// ToggleSort returns the sort applied when the header of col is clicked:
// the active column flips direction, any other column starts ascending.
func ToggleSort(current core.SortSpec, col core.Column) core.SortSpec {
	if current.Column == col {
		return core.SortSpec{Column: col, Desc: !current.Desc}
	}
	return core.SortSpec{Column: col}
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
