// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/pkg/types"
)

// StockStatus summarises a product's stock across variants
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

// DefaultLowStockLimit is the total stock below which a product is low
const DefaultLowStockLimit = 10

// Variant is a sellable unit of a product
type Variant struct {
	ID            types.ID        `json:"id" validate:"required"`
	SKU           string          `json:"sku" validate:"required"`
	Price         decimal.Decimal `json:"price" validate:"gte=0"`
	CostPrice     decimal.Decimal `json:"cost_price" validate:"gte=0"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
	Size          string          `json:"size,omitempty"`
	Color         string          `json:"color,omitempty"`
	Barcode       string          `json:"barcode,omitempty"`
}

// Margin is the per-unit profit of the variant
func (v Variant) Margin() decimal.Decimal {
	return v.Price.Sub(v.CostPrice)
}

// InStock reports whether at least one unit can be sold
func (v Variant) InStock() bool {
	return v.StockQuantity > 0
}

// Product owns an ordered list of variants
type Product struct {
	ID          types.ID  `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	Variants    []Variant `json:"variants" validate:"required,min=1,dive"`
}

// TotalStock sums stock over all variants
func (p Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.StockQuantity
	}
	return total
}

// StockStatus classifies TotalStock against the low-stock limit
func (p Product) StockStatus(lowStockLimit int) StockStatus {
	total := p.TotalStock()
	switch {
	case total == 0:
		return StockStatusOutOfStock
	case total < lowStockLimit:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// Variant finds a variant by id
func (p Product) Variant(id types.ID) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

func (p Product) clone() Product {
	p.Variants = append([]Variant(nil), p.Variants...)
	return p
}

// InventoryItem is a product annotated for the inventory screen
type InventoryItem struct {
	Product
	TotalStock  int         `json:"total_stock"`
	StockStatus StockStatus `json:"stock_status"`
}

// ProductInput is the body for creating or updating a product
type ProductInput struct {
	Name        string         `json:"name" validate:"required,min=2"`
	Description string         `json:"description,omitempty"`
	Variants    []VariantInput `json:"variants" validate:"required,min=1,dive"`
}

// VariantInput is a variant inside a ProductInput. ID is set on updates.
type VariantInput struct {
	ID            types.ID        `json:"id,omitempty"`
	SKU           string          `json:"sku" validate:"required"`
	Barcode       string          `json:"barcode,omitempty"`
	Size          string          `json:"size,omitempty"`
	Color         string          `json:"color,omitempty"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
	CostPrice     decimal.Decimal `json:"cost_price" validate:"gte=0"`
	Price         decimal.Decimal `json:"price" validate:"gt=0"`
}

// HistoryRecord is one entry of a product's audit trail
type HistoryRecord struct {
	ID        types.ID  `json:"id"`
	Action    string    `json:"action" validate:"required"`
	Details   string    `json:"details"`
	User      *Actor    `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Actor is the user that performed a recorded action
type Actor struct {
	ID   types.ID `json:"id"`
	Name string   `json:"name"`
}
