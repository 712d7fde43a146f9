package core

import (
	"errors"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// ErrNoCatalog is returned when a Store has not been loaded yet.
var ErrNoCatalog = errors.New("catalog not loaded")

// snapshotNamespace scopes snapshot IDs so they never collide with other
// name-based UUIDs.
var snapshotNamespace = uuid.MustParse("6f1d7c1e-3a55-4c2e-9a0b-6b0f9d3d2c41")

// Catalog is an immutable set of products partitioned by version.
// Build one with NewCatalog; never modify the slices it returns.
type Catalog struct {
	products   []Product
	partitions map[string][]Product
	versions   []string
	snapshotID uuid.UUID
}

// NewCatalog builds a catalog from products in source order.
// The input slice is copied.
func NewCatalog(products []Product) *Catalog {
	c := &Catalog{
		products:   slices.Clone(products),
		partitions: make(map[string][]Product),
	}

	for _, p := range c.products {
		if _, ok := c.partitions[p.Version]; !ok {
			c.versions = append(c.versions, p.Version)
		}
		c.partitions[p.Version] = append(c.partitions[p.Version], p)
	}

	slices.SortFunc(c.versions, CompareNatural)
	c.snapshotID = uuid.NewSHA1(snapshotNamespace, []byte(c.fingerprint()))

	return c
}

// fingerprint renders the canonical content for snapshot hashing.
func (c *Catalog) fingerprint() string {
	var b strings.Builder
	for _, v := range c.versions {
		b.WriteString(v)
		b.WriteByte(0x1e)
		for _, p := range c.partitions[v] {
			b.WriteString(p.ID)
			b.WriteByte(0x1f)
			b.WriteString(p.Name)
			b.WriteByte(0x1f)
			b.WriteString(p.Category)
			b.WriteByte(0x1f)
			b.WriteString(p.SizeRange)
			b.WriteByte(0x1f)
			b.WriteString(p.Gender)
			b.WriteByte(0x1e)
		}
	}
	return b.String()
}

// Versions returns the available version keys in ascending natural order.
func (c *Catalog) Versions() []string {
	return slices.Clone(c.versions)
}

// HasVersion reports whether v is a known version.
func (c *Catalog) HasVersion(v string) bool {
	_, ok := c.partitions[v]
	return ok
}

// ResolveVersion applies the default-version rule: an empty selection
// resolves to the first available version. Unknown versions are returned
// unchanged so that Select yields an empty partition.
func (c *Catalog) ResolveVersion(v string) string {
	if v != "" {
		return v
	}
	if len(c.versions) == 0 {
		return ""
	}
	return c.versions[0]
}

// Select returns the products of version v in source order.
// Unknown versions yield an empty slice.
func (c *Catalog) Select(v string) []Product {
	return slices.Clone(c.partitions[v])
}

// All returns every product in source order.
func (c *Catalog) All() []Product {
	return slices.Clone(c.products)
}

// Partitions returns the products grouped by version.
// Keys match Versions.
func (c *Catalog) Partitions() map[string][]Product {
	out := make(map[string][]Product, len(c.partitions))
	for v, ps := range c.partitions {
		out[v] = slices.Clone(ps)
	}
	return out
}

// Len returns the total number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// SnapshotID identifies the catalog content. Equal content yields equal IDs.
func (c *Catalog) SnapshotID() uuid.UUID {
	return c.snapshotID
}

// DuplicateIDs returns, per version, IDs that appear more than once.
// Duplicates are tolerated; callers may log them.
func (c *Catalog) DuplicateIDs() map[string][]string {
	dups := make(map[string][]string)
	for _, v := range c.versions {
		seen := make(map[string]int)
		for _, p := range c.partitions[v] {
			seen[p.ID]++
			if seen[p.ID] == 2 {
				dups[v] = append(dups[v], p.ID)
			}
		}
	}
	return dups
}

// Store holds the live catalog snapshot.
// Readers always see a complete catalog; Swap replaces it atomically.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore creates a store holding c. c may be nil.
func NewStore(c *Catalog) *Store {
	s := &Store{}
	if c != nil {
		s.current.Store(c)
	}
	return s
}

// Current returns the live catalog.
func (s *Store) Current() (*Catalog, error) {
	c := s.current.Load()
	if c == nil {
		return nil, ErrNoCatalog
	}
	return c, nil
}

// Swap installs c and returns the previous catalog.
func (s *Store) Swap(c *Catalog) *Catalog {
	return s.current.Swap(c)
}
