package core

// sampleProducts returns a two-version fixture in source order.
func sampleProducts() []Product {
	return []Product{
		{ID: "A1", Name: "Tent", Category: "Shelter", SizeRange: "One Size", Gender: "Unisex", Version: "1"},
		{ID: "A2", Name: "Tarp", Category: "Shelter", SizeRange: "One Size", Gender: "Unisex", Version: "1"},
		{ID: "B1", Name: "T-Shirt", Category: "Tops", SizeRange: "XS-XL", Gender: "Womens", Version: "2"},
		{ID: "B2", Name: "Rain Shell", Category: "Outerwear", SizeRange: "S-XXL", Gender: "Mens", Version: "2"},
		{ID: "B3", Name: "Base Layer", Category: "Tops", SizeRange: "S-XXL", Gender: "Mens", Version: "2"},
		{ID: "B4", Name: "Sleeping Bag", Category: "Shelter", SizeRange: "One Size", Gender: "Unisex", Version: "2"},
	}
}

func names(ps []Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func ids(ps []Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}
