// internal/domain/user/entity.go
package user

import (
	"time"

	"github.com/your-org/pos-backend/internal/pkg/types"
)

// Role is a staff role
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCashier:
		return true
	}
	return false
}

// Store is the shop a user belongs to
type Store struct {
	ID       types.ID `json:"id"`
	Name     string   `json:"name"`
	Currency string   `json:"currency,omitempty"`
}

// RoleRef is a role as embedded by the bookkeeping API
type RoleRef struct {
	Name string `json:"name"`
}

// User represents a staff account
type User struct {
	ID        types.ID   `json:"id" validate:"required"`
	Name      string     `json:"name" validate:"required"`
	Email     string     `json:"email"`
	Role      Role       `json:"role,omitempty"`
	Roles     []RoleRef  `json:"roles,omitempty"`
	Store     *Store     `json:"store,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// PrimaryRole returns the role field or, failing that, the first embedded role
func (u User) PrimaryRole() Role {
	if u.Role != "" {
		return u.Role
	}
	if len(u.Roles) > 0 {
		return Role(u.Roles[0].Name)
	}
	return ""
}

// CreateRequest represents a new staff account
type CreateRequest struct {
	Name     string `json:"name" binding:"required" validate:"required,min=2"`
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=6"`
	Role     Role   `json:"role" validate:"required,oneof=admin manager cashier"`
}
