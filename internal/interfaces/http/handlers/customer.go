// internal/interfaces/http/handlers/customer.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/domain/customer"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	customerService *customer.Service
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *customer.Service) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles GET /customers?search=
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customerService.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Customers retrieved successfully", customers)
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req customer.CreateRequest
	if !bindJSON(c, "customer.Create", &req) {
		return
	}

	created, err := h.customerService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Customer created successfully", created)
}
