// internal/domain/catalog/snapshot.go
package catalog

import (
	"time"

	"github.com/your-org/pos-backend/internal/pkg/types"
)

// Snapshot is an immutable view of the catalog as of one fetch.
// Updates produce a new Snapshot; existing ones never change.
type Snapshot struct {
	products  []Product
	fetchedAt time.Time
}

// NewSnapshot copies products into a new snapshot
func NewSnapshot(products []Product, fetchedAt time.Time) *Snapshot {
	copied := make([]Product, len(products))
	for i, p := range products {
		copied[i] = p.clone()
	}
	return &Snapshot{products: copied, fetchedAt: fetchedAt}
}

// Products returns a copy of the products in catalog order
func (s *Snapshot) Products() []Product {
	out := make([]Product, len(s.products))
	for i, p := range s.products {
		out[i] = p.clone()
	}
	return out
}

// Len returns the number of products
func (s *Snapshot) Len() int {
	return len(s.products)
}

// FetchedAt returns when the snapshot was taken
func (s *Snapshot) FetchedAt() time.Time {
	return s.fetchedAt
}

// Product finds a product by id
func (s *Snapshot) Product(id types.ID) (Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p.clone(), true
		}
	}
	return Product{}, false
}

// FindVariant finds a variant and its owning product by variant id
func (s *Snapshot) FindVariant(variantID types.ID) (Product, Variant, bool) {
	for _, p := range s.products {
		if v, ok := p.Variant(variantID); ok {
			return p.clone(), v, true
		}
	}
	return Product{}, Variant{}, false
}

// WithProduct returns a new snapshot where p replaces the product with the
// same id, or is prepended when it is new.
func (s *Snapshot) WithProduct(p Product) *Snapshot {
	products := make([]Product, 0, len(s.products)+1)
	replaced := false
	for _, existing := range s.products {
		if existing.ID == p.ID {
			products = append(products, p)
			replaced = true
			continue
		}
		products = append(products, existing)
	}
	if !replaced {
		products = append([]Product{p}, products...)
	}
	return NewSnapshot(products, s.fetchedAt)
}

// Inventory annotates every product with its stock summary
func (s *Snapshot) Inventory(lowStockLimit int) []InventoryItem {
	items := make([]InventoryItem, len(s.products))
	for i, p := range s.products {
		items[i] = InventoryItem{
			Product:     p.clone(),
			TotalStock:  p.TotalStock(),
			StockStatus: p.StockStatus(lowStockLimit),
		}
	}
	return items
}
