package core

import (
	"cmp"
	"slices"
	"strings"
)

// CompareNatural orders strings case-insensitively with digit runs compared
// by numeric value, so "Size 2" sorts before "Size 10". Strings that are
// equal under that ordering fall back to byte order; only identical strings
// compare equal.
func CompareNatural(a, b string) int {
	if c := compareChunks(fold(a), fold(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// compareChunks walks both strings, comparing digit runs numerically and
// everything else byte by byte.
func compareChunks(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			si, sj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			if c := compareDigits(a[si:i], b[sj:j]); c != 0 {
				return c
			}
			continue
		}
		if a[i] != b[j] {
			return cmp.Compare(a[i], b[j])
		}
		i++
		j++
	}
	return cmp.Compare(len(a)-i, len(b)-j)
}

// compareDigits compares two runs of ASCII digits by value.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return cmp.Compare(len(a), len(b))
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// sortKey pairs a record with its pre-folded column value.
type sortKey struct {
	product Product
	raw     string
	folded  string
}

// Sort returns a copy of records ordered by spec. The sort is stable:
// records with identical column values keep their input order.
// Unknown columns sort by ID.
func Sort(records []Product, spec SortSpec) []Product {
	col := spec.Column
	if _, ok := ParseColumn(string(col)); !ok {
		col = ColumnID
	}

	keys := make([]sortKey, len(records))
	for i, p := range records {
		raw := col.Value(p)
		keys[i] = sortKey{product: p, raw: raw, folded: fold(raw)}
	}

	slices.SortStableFunc(keys, func(a, b sortKey) int {
		c := compareChunks(a.folded, b.folded)
		if c == 0 {
			c = strings.Compare(a.raw, b.raw)
		}
		if spec.Desc {
			return -c
		}
		return c
	})

	out := make([]Product, len(keys))
	for i, k := range keys {
		out[i] = k.product
	}
	return out
}
