// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/pkg/types"
)

// Status represents the order status as reported by the bookkeeping API
type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusReturned  Status = "returned"
	StatusPartial   Status = "partially_returned"
	StatusCancelled Status = "cancelled"
)

// PaymentMethod is how a sale was settled
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodCredit PaymentMethod = "credit"
)

// Order represents a completed sale
type Order struct {
	ID            types.ID        `json:"id" validate:"required"`
	InvoiceNumber string          `json:"invoice_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        Status          `json:"status,omitempty"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty"`
	CreatedAt     *time.Time      `json:"created_at,omitempty"`
	Customer      *CustomerRef    `json:"customer,omitempty"`
	Items         []Item          `json:"items,omitempty" validate:"dive"`
}

// CustomerRef is the customer embedded in an order
type CustomerRef struct {
	ID   types.ID `json:"id,omitempty"`
	Name string   `json:"name"`
}

// Item is one sold line of an order
type Item struct {
	ID               types.ID        `json:"id"`
	ProductVariantID types.ID        `json:"product_variant_id" validate:"required"`
	Quantity         int             `json:"quantity" validate:"gte=0"`
	Price            decimal.Decimal `json:"price"`
	Variant          *VariantRef     `json:"variant,omitempty"`
}

// Subtotal is price * quantity for the item
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// VariantRef is the variant embedded in an order item
type VariantRef struct {
	SKU   string `json:"sku"`
	Size  string `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

// Label is a short human description such as "ANK-RED-M (M / Red)"
func (v *VariantRef) Label() string {
	if v == nil {
		return ""
	}
	label := v.SKU
	switch {
	case v.Size != "" && v.Color != "":
		label += " (" + v.Size + " / " + v.Color + ")"
	case v.Size != "":
		label += " (" + v.Size + ")"
	case v.Color != "":
		label += " (" + v.Color + ")"
	}
	return label
}

// SoldQuantity returns how many units of a variant the order contains
func (o *Order) SoldQuantity(variantID types.ID) (int, bool) {
	found := false
	total := 0
	for _, item := range o.Items {
		if item.ProductVariantID == variantID {
			found = true
			total += item.Quantity
		}
	}
	return total, found
}

// CustomerName returns the customer name or "Walk-in Customer"
func (o *Order) CustomerName() string {
	if o.Customer == nil || o.Customer.Name == "" {
		return "Walk-in Customer"
	}
	return o.Customer.Name
}

// LineItem is one entry of an order creation payload
type LineItem struct {
	VariantID types.ID `json:"variant_id"`
	Quantity  int      `json:"quantity"`
}

// CreateRequest is the payload for POST /orders
type CreateRequest struct {
	CustomerID    *types.ID     `json:"customer_id"`
	Items         []LineItem    `json:"items"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

// ReturnRequest is the payload for POST /returns
type ReturnRequest struct {
	OrderID types.ID   `json:"order_id" binding:"required"`
	Items   []LineItem `json:"items" binding:"required"`
	Reason  string     `json:"reason"`
}

// ReturnResult is what the bookkeeping API answers to a return
type ReturnResult struct {
	ID           types.ID        `json:"id,omitempty"`
	OrderID      types.ID        `json:"order_id,omitempty"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	Message      string          `json:"message,omitempty"`
}
