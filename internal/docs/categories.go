package docs

// Category is one entry of the navigation table. Labels carry their
// position so the downstream sidebar sorts them lexically.
type Category struct {
	Slug  string
	Label string
}

// Categories is the fixed, ordered category table.
var Categories = []Category{
	{Slug: "getting-started", Label: "1. Getting started"},
	{Slug: "howto", Label: "2. How to"},
	{Slug: "faq", Label: "3. Faq"},
	{Slug: "advanced", Label: "4. Advanced"},
	{Slug: "troubleshooting", Label: "5. Troubleshooting"},
	{Slug: "help", Label: "6. Help"},
}

// CategoryLabel returns the numbered label for slug.
func CategoryLabel(slug string) (string, bool) {
	for _, c := range Categories {
		if c.Slug == slug {
			return c.Label, true
		}
	}
	return "", false
}
