// Package templates renders the catalog HTML.
//
// Components are written in .templ files and compiled with `templ generate`;
// the generated *_templ.go files are committed. Handlers render them with
// component.Render(ctx, w).
package templates

import (
	"slices"

	"github.com/JonMunkholm/assort/internal/core"
)

//go:generate templ generate

const (
	// DefaultTitle is the page heading.
	DefaultTitle = "ASSORT Standard Products"

	// EmptyMessage is shown when a view has no rows.
	EmptyMessage = "No products found"
)

// PageData is everything the page needs to render.
type PageData struct {
	Title string
	View  core.View
}

func (d PageData) title() string {
	if d.Title == "" {
		return DefaultTitle
	}
	return d.Title
}

// sortHref is the link behind a column header.
func sortHref(q core.Query, col core.Column) string {
	next := q
	next.Sort = ToggleSort(q.Sort, col)
	return Href(next)
}

func ariaSort(s core.SortSpec) string {
	if s.Desc {
		return "descending"
	}
	return "ascending"
}

func sortArrow(s core.SortSpec) string {
	if s.Desc {
		return "▼"
	}
	return "▲"
}

// missingFrom returns the selected values that options does not contain.
func missingFrom(options, selected []string) []string {
	var out []string
	for _, s := range selected {
		if !slices.Contains(options, s) {
			out = append(out, s)
		}
	}
	return out
}
