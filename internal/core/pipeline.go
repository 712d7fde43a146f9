package core

// Run computes the derived view for q: select the version partition, filter
// it, then sort it. The catalog is never modified.
func Run(c *Catalog, q Query) View {
	version := c.ResolveVersion(q.Version)
	base := c.Select(version)

	spec := q.Sort
	if _, ok := ParseColumn(string(spec.Column)); !ok {
		spec = DefaultSort
	}

	products := Sort(Filter(base, q.Predicates), spec)

	return View{
		Version:  version,
		Versions: c.Versions(),
		Products: products,
		Total:    len(base),
		Facets:   BuildFacets(base),
		Query: Query{
			Version:    version,
			Predicates: q.Predicates,
			Sort:       spec,
		},
	}
}
