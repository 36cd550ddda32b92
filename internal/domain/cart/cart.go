// internal/domain/cart/cart.go
package cart

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/domain/catalog"
	"github.com/your-org/pos-backend/internal/pkg/apperr"
	"github.com/your-org/pos-backend/internal/pkg/types"
)

// Cart holds the lines of one sale. It is not safe for concurrent use;
// Service serialises access per session.
//
// Invariants: at most one line per variant id, and for every line
// 1 <= Quantity <= StockQuantity.
type Cart struct {
	lines     []Line
	newLineID func(variantID types.ID) string
}

// New creates an empty cart
func New() *Cart {
	return &Cart{newLineID: defaultLineID}
}

// defaultLineID makes ids unique even when a variant is removed and re-added
func defaultLineID(variantID types.ID) string {
	return fmt.Sprintf("%s-%s", variantID, uuid.New().String())
}

// AddToCart adds one unit of variant. A variant already in the cart has its
// quantity incremented instead of getting a second line.
func (c *Cart) AddToCart(product catalog.Product, variant catalog.Variant) error {
	if variant.StockQuantity <= 0 {
		return apperr.Stock("cart.AddToCart", "This item cannot be added.")
	}

	idx := c.indexOfVariant(variant.ID)
	current := 0
	if idx >= 0 {
		current = c.lines[idx].Quantity
	}

	if current+1 > variant.StockQuantity {
		return apperr.Stock("cart.AddToCart", fmt.Sprintf("Only %d units available.", variant.StockQuantity))
	}

	if idx >= 0 {
		// Refresh the projection in case price or stock changed since the line was added
		c.lines[idx].Variant = variant
		c.lines[idx].ProductName = product.Name
		c.lines[idx].Quantity = current + 1
		return nil
	}

	c.lines = append(c.lines, Line{
		LineID:      c.newLineID(variant.ID),
		ProductID:   product.ID,
		ProductName: product.Name,
		Variant:     variant,
		Quantity:    1,
	})
	return nil
}

// RemoveFromCart drops the line with lineID; unknown ids are ignored
func (c *Cart) RemoveFromCart(lineID string) {
	for i := range c.lines {
		if c.lines[i].LineID == lineID {
			c.lines = append(c.lines[:i:i], c.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity changes a line's quantity by delta. Unknown lines and
// results below 1 are no-ops; removal is only possible via RemoveFromCart.
// Results above the stock ceiling are rejected with a stock warning.
func (c *Cart) UpdateQuantity(lineID string, delta int) error {
	idx := c.indexOfLine(lineID)
	if idx < 0 {
		return nil
	}

	line := &c.lines[idx]
	newQuantity := line.Quantity + delta
	if newQuantity < 1 {
		return nil
	}
	if newQuantity > line.StockQuantity {
		return apperr.Stock("cart.UpdateQuantity", fmt.Sprintf("Cannot sell more than %d units.", line.StockQuantity))
	}

	line.Quantity = newQuantity
	return nil
}

// Total is the sum of price * quantity over all lines, computed on every call
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Totals computes the totals summary
func (c *Cart) Totals() Totals {
	totals := Totals{
		ItemCount: len(c.lines),
		SubTotal:  c.Total(),
	}
	for _, line := range c.lines {
		totals.TotalQuantity += line.Quantity
	}
	totals.TotalAmount = totals.SubTotal
	return totals
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the lines in insertion order
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Deduct subtracts sold quantities per variant id. Fully sold lines are
// removed; units added after the sale was taken stay in the cart.
func (c *Cart) Deduct(sold map[types.ID]int) {
	kept := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		line.Quantity -= sold[line.ID]
		if line.Quantity > 0 {
			kept = append(kept, line)
		}
	}
	c.lines = kept
}

func (c *Cart) indexOfVariant(variantID types.ID) int {
	for i := range c.lines {
		if c.lines[i].ID == variantID {
			return i
		}
	}
	return -1
}

func (c *Cart) indexOfLine(lineID string) int {
	for i := range c.lines {
		if c.lines[i].LineID == lineID {
			return i
		}
	}
	return -1
}
