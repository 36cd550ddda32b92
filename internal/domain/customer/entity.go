// internal/domain/customer/entity.go
package customer

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/pkg/types"
)

// Customer is a store customer. A positive balance means they owe the store.
type Customer struct {
	ID        types.ID        `json:"id" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Email     string          `json:"email,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Address   string          `json:"address,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt *time.Time      `json:"created_at,omitempty"`
}

// OwesStore reports whether the customer carries a debt
func (c Customer) OwesStore() bool {
	return c.Balance.IsPositive()
}

// CreateRequest represents a new customer
type CreateRequest struct {
	Name    string `json:"name" binding:"required,min=2" validate:"required,min=2"`
	Email   string `json:"email,omitempty" binding:"omitempty,email" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}
