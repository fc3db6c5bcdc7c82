package catalog

import "strings"

// DefaultMaxPrice is the price-slider ceiling the storefront starts with.
const DefaultMaxPrice = 100000

// Criteria are the three independent browse filters. Category CategoryAll
// matches every product, any other value is an exact case-sensitive match.
// MaxPrice is an inclusive ceiling. Query is a case-insensitive substring
// match over name, brand and category; empty matches everything.
type Criteria struct {
	Category string
	MaxPrice float64
	Query    string
}

// Filter returns the subsequence of products matching all three criteria, in
// the original order. It never reorders or ranks.
func Filter(products []Product, c Criteria) []Product {
	q := strings.ToLower(strings.TrimSpace(c.Query))

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !matchesCategory(p, c.Category) {
			continue
		}
		if p.Price.Amount() > c.MaxPrice {
			continue
		}
		if !matchesQuery(p, q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesCategory(p Product, category string) bool {
	return category == CategoryAll || p.Category == category
}

func matchesQuery(p Product, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Brand), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}
