// internal/domain/checkout/entity.go
package checkout

import (
	"strings"

	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/order"
	"github.com/your-org/pos-backend/internal/pkg/types"
)

// DefaultPaymentMethod is selected when checkout opens and after each sale
const DefaultPaymentMethod = order.PaymentMethodCash

// ParsePaymentMethod normalises the accepted spellings of a payment method
func ParsePaymentMethod(s string) (order.PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return order.PaymentMethodCash, true
	case "card", "transfer":
		return order.PaymentMethodCard, true
	case "credit", "store_credit", "store-credit":
		return order.PaymentMethodCredit, true
	}
	return "", false
}

// Selection is the transient checkout state of one session
type Selection struct {
	CustomerID    *types.ID           `json:"customer_id"`
	CustomerName  string              `json:"customer_name,omitempty"`
	PaymentMethod order.PaymentMethod `json:"payment_method"`
}

// DefaultSelection returns cash with no customer
func DefaultSelection() Selection {
	return Selection{PaymentMethod: DefaultPaymentMethod}
}

// HasCustomer reports whether a customer is selected
func (s Selection) HasCustomer() bool {
	return s.CustomerID != nil && !s.CustomerID.IsZero()
}

// SelectCustomerRequest picks the customer for the sale. A null id clears it.
type SelectCustomerRequest struct {
	CustomerID *types.ID `json:"customer_id"`
	Name       string    `json:"name,omitempty"`
}

// SelectPaymentMethodRequest picks the payment method
type SelectPaymentMethodRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// Summary is what the checkout dialog renders
type Summary struct {
	Cart      *cart.View `json:"cart"`
	Selection Selection  `json:"selection"`
	CanSubmit bool       `json:"can_submit"`
	Blocker   string     `json:"blocker,omitempty"`
}

// Result is returned after a successful sale
type Result struct {
	InvoiceNumber string       `json:"invoice_number"`
	Order         *order.Order `json:"order"`
}
