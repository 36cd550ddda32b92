// internal/domain/cart/entity.go
package cart

import (
	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/domain/catalog"
	"github.com/your-org/pos-backend/internal/pkg/types"
)

// Line is one row of the sale in progress: a projection of the variant as
// of the last sync plus the requested quantity.
type Line struct {
	LineID      string   `json:"cart_id"`
	ProductID   types.ID `json:"product_id"`
	ProductName string   `json:"product_name"`
	catalog.Variant
	Quantity int `json:"quantity"`
}

// Subtotal is price * quantity for the line
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Totals represents calculated cart totals
type Totals struct {
	ItemCount     int             `json:"item_count"`     // Number of lines
	TotalQuantity int             `json:"total_quantity"` // Sum of all quantities
	SubTotal      decimal.Decimal `json:"sub_total"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// View is the cart as returned to the UI
type View struct {
	SessionID string `json:"session_id"`
	Items     []Line `json:"items"`
	Totals    Totals `json:"totals"`
}
