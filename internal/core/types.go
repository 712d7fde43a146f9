package core

import "strings"

// Product is a single standard product record.
// Both on-disk shapes normalize to this type at load time.
type Product struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Category  string `json:"category"`
	SizeRange string `json:"sizeRange"`
	Gender    string `json:"gender"`
	Version   string `json:"version" validate:"required"`
}

// Column identifies a sortable table column.
type Column string

const (
	ColumnID        Column = "id"
	ColumnName      Column = "name"
	ColumnCategory  Column = "category"
	ColumnSizeRange Column = "sizeRange"
	ColumnGender    Column = "gender"
)

// Columns lists the table columns in display order.
var Columns = []Column{ColumnID, ColumnName, ColumnCategory, ColumnSizeRange, ColumnGender}

// Label returns the column header shown to users.
func (c Column) Label() string {
	switch c {
	case ColumnID:
		return "ID"
	case ColumnName:
		return "Name"
	case ColumnCategory:
		return "Category"
	case ColumnSizeRange:
		return "Size Range"
	case ColumnGender:
		return "Gender"
	default:
		return string(c)
	}
}

// Value returns the product field backing the column.
func (c Column) Value(p Product) string {
	switch c {
	case ColumnName:
		return p.Name
	case ColumnCategory:
		return p.Category
	case ColumnSizeRange:
		return p.SizeRange
	case ColumnGender:
		return p.Gender
	default:
		return p.ID
	}
}

// ParseColumn returns the column with the given name.
// Returns false for unknown names.
func ParseColumn(name string) (Column, bool) {
	for _, c := range Columns {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// SortSpec represents a single sort column and direction.
type SortSpec struct {
	Column Column
	Desc   bool
}

// DefaultSort orders by ID ascending.
var DefaultSort = SortSpec{Column: ColumnID}

// Dir returns "asc" or "desc".
func (s SortSpec) Dir() string {
	if s.Desc {
		return "desc"
	}
	return "asc"
}

// ParseSort builds a SortSpec from a column name and a direction string.
// Unknown columns fall back to DefaultSort; any direction other than "desc"
// is ascending.
func ParseSort(column, dir string) SortSpec {
	c, ok := ParseColumn(column)
	if !ok {
		return DefaultSort
	}
	return SortSpec{Column: c, Desc: dir == "desc"}
}

// Predicates is the set of active filters, combined with AND logic.
// A blank Name (empty or whitespace only) or an empty set means no
// restriction on that field.
type Predicates struct {
	Name       string
	Categories []string
	SizeRanges []string
	Genders    []string
}

// IsZero reports whether no predicate is active.
func (p Predicates) IsZero() bool {
	return strings.TrimSpace(p.Name) == "" &&
		len(p.Categories) == 0 &&
		len(p.SizeRanges) == 0 &&
		len(p.Genders) == 0
}

// Query describes one derived view of the catalog.
type Query struct {
	Version    string
	Predicates Predicates
	Sort       SortSpec
}

// Facets holds the distinct values offered by the checkbox groups.
type Facets struct {
	Categories []string `json:"categories"`
	SizeRanges []string `json:"sizeRanges"`
	Genders    []string `json:"genders"`
}

// View is the result of running a Query against a Catalog.
type View struct {
	Version  string    // Resolved version (default applied)
	Versions []string  // All available versions, ascending
	Products []Product // Filtered and sorted rows
	Total    int       // Rows in the version partition before filtering
	Facets   Facets    // Checkbox options for the version partition
	Query    Query     // Query as resolved
}

// Empty reports whether the view has no rows to display.
func (v View) Empty() bool {
	return len(v.Products) == 0
}
