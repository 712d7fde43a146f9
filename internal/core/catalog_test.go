package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCatalog_Versions(t *testing.T) {
	tests := []struct {
		name     string
		versions []string
		want     []string
	}{
		{
			name:     "numeric keys sort by value",
			versions: []string{"10", "2", "1"},
			want:     []string{"1", "2", "10"},
		},
		{
			name:     "text keys sort alphabetically",
			versions: []string{"summer", "autumn"},
			want:     []string{"autumn", "summer"},
		},
		{
			name:     "empty catalog",
			versions: nil,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var products []Product
			for i, v := range tt.versions {
				products = append(products, Product{ID: string(rune('a' + i)), Name: "x", Version: v})
			}
			got := NewCatalog(products).Versions()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Versions() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCatalog_SelectPartitions(t *testing.T) {
	cat := NewCatalog(sampleProducts())

	total := 0
	seen := make(map[string]string)
	for _, v := range cat.Versions() {
		for _, p := range cat.Select(v) {
			if p.Version != v {
				t.Errorf("Select(%q) returned product %s of version %q", v, p.ID, p.Version)
			}
			if prev, ok := seen[p.ID]; ok {
				t.Errorf("product %s appears in versions %q and %q", p.ID, prev, v)
			}
			seen[p.ID] = v
			total++
		}
	}

	if total != cat.Len() {
		t.Errorf("union of partitions = %d products, want %d", total, cat.Len())
	}
}

func TestCatalog_SelectUnknownVersion(t *testing.T) {
	cat := NewCatalog(sampleProducts())

	got := cat.Select("99")
	if len(got) != 0 {
		t.Errorf("Select(unknown) = %d products, want 0", len(got))
	}
}

func TestCatalog_ResolveVersion(t *testing.T) {
	cat := NewCatalog(sampleProducts())

	if got := cat.ResolveVersion(""); got != "1" {
		t.Errorf("ResolveVersion(\"\") = %q, want %q", got, "1")
	}
	if got := cat.ResolveVersion("2"); got != "2" {
		t.Errorf("ResolveVersion(\"2\") = %q, want %q", got, "2")
	}
	if got := cat.ResolveVersion("nope"); got != "nope" {
		t.Errorf("ResolveVersion(\"nope\") = %q, want unknown version preserved", got)
	}
	if got := NewCatalog(nil).ResolveVersion(""); got != "" {
		t.Errorf("empty catalog ResolveVersion = %q, want empty", got)
	}
}

func TestCatalog_Immutable(t *testing.T) {
	src := sampleProducts()
	cat := NewCatalog(src)

	src[0].Name = "mutated"
	sel := cat.Select("1")
	sel[0].Name = "mutated too"

	if got := cat.Select("1")[0].Name; got != "Tent" {
		t.Errorf("catalog changed through caller slices: name = %q", got)
	}
}

func TestCatalog_SnapshotID(t *testing.T) {
	a := NewCatalog(sampleProducts())
	b := NewCatalog(sampleProducts())
	if a.SnapshotID() != b.SnapshotID() {
		t.Error("equal content produced different snapshot IDs")
	}

	changed := sampleProducts()
	changed[1].Name = "Tarpaulin"
	if NewCatalog(changed).SnapshotID() == a.SnapshotID() {
		t.Error("different content produced the same snapshot ID")
	}
}

func TestCatalog_DuplicateIDs(t *testing.T) {
	products := append(sampleProducts(), Product{ID: "A1", Name: "Tent v2", Version: "1"})
	dups := NewCatalog(products).DuplicateIDs()

	if diff := cmp.Diff(map[string][]string{"1": {"A1"}}, dups); diff != "" {
		t.Errorf("DuplicateIDs() mismatch (-want +got):\n%s", diff)
	}
}

func TestStore(t *testing.T) {
	s := NewStore(nil)
	if _, err := s.Current(); !errors.Is(err, ErrNoCatalog) {
		t.Fatalf("Current() on empty store error = %v, want ErrNoCatalog", err)
	}

	first := NewCatalog(sampleProducts())
	if prev := s.Swap(first); prev != nil {
		t.Errorf("Swap() on empty store returned %v, want nil", prev)
	}

	second := NewCatalog(sampleProducts()[:2])
	if prev := s.Swap(second); prev != first {
		t.Error("Swap() did not return the previous catalog")
	}

	got, err := s.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if got != second {
		t.Error("Current() did not return the swapped catalog")
	}
}
