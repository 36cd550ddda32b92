// internal/domain/catalog/filter.go
package catalog

import "strings"

// Filter returns the products matching query. An empty query matches
// everything; otherwise a product matches when its name, or any variant's
// SKU or barcode, contains the query case-insensitively.
func Filter(products []Product, query string) []Product {
	if query == "" {
		out := make([]Product, len(products))
		copy(out, products)
		return out
	}

	needle := strings.ToLower(query)
	out := make([]Product, 0)
	for _, p := range products {
		if matches(p, needle) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	for _, v := range p.Variants {
		if strings.Contains(strings.ToLower(v.SKU), needle) {
			return true
		}
		if v.Barcode != "" && strings.Contains(strings.ToLower(v.Barcode), needle) {
			return true
		}
	}
	return false
}

// Search filters the snapshot
func (s *Snapshot) Search(query string) []Product {
	return Filter(s.Products(), query)
}
