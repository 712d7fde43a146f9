package core

import "slices"

// BuildFacets returns the distinct category, size range and gender values
// of records, each in ascending natural order.
func BuildFacets(records []Product) Facets {
	return Facets{
		Categories: distinct(records, ColumnCategory),
		SizeRanges: distinct(records, ColumnSizeRange),
		Genders:    distinct(records, ColumnGender),
	}
}

func distinct(records []Product, col Column) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, p := range records {
		v := col.Value(p)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	slices.SortFunc(values, CompareNatural)
	return values
}
