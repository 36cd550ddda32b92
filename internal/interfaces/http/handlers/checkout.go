// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/domain/checkout"
	"github.com/your-org/pos-backend/internal/domain/customer"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles the checkout panel endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// GetSummary handles GET /checkout
func (h *CheckoutHandler) GetSummary(c *gin.Context) {
	summary, err := h.checkoutService.Summary(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Checkout retrieved successfully", summary)
}

// SelectCustomer handles PUT /checkout/customer
func (h *CheckoutHandler) SelectCustomer(c *gin.Context) {
	var req checkout.SelectCustomerRequest
	if !bindJSON(c, "checkout.SelectCustomer", &req) {
		return
	}

	selection := h.checkoutService.SelectCustomer(middleware.GetSessionID(c), &req)
	respond(c, http.StatusOK, "Customer selected", selection)
}

// SelectPaymentMethod handles PUT /checkout/payment-method
func (h *CheckoutHandler) SelectPaymentMethod(c *gin.Context) {
	var req checkout.SelectPaymentMethodRequest
	if !bindJSON(c, "checkout.SelectPaymentMethod", &req) {
		return
	}

	selection, err := h.checkoutService.SelectPaymentMethod(middleware.GetSessionID(c), req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Payment method selected", selection)
}

// Reset handles DELETE /checkout
func (h *CheckoutHandler) Reset(c *gin.Context) {
	selection := h.checkoutService.Reset(middleware.GetSessionID(c))
	respond(c, http.StatusOK, "Checkout reset", selection)
}

// QuickAddCustomer handles POST /checkout/customers
func (h *CheckoutHandler) QuickAddCustomer(c *gin.Context) {
	var req customer.CreateRequest
	if !bindJSON(c, "checkout.QuickAddCustomer", &req) {
		return
	}

	created, err := h.checkoutService.QuickAddCustomer(c.Request.Context(), middleware.GetSessionID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Customer added", created)
}

// Submit handles POST /checkout
func (h *CheckoutHandler) Submit(c *gin.Context) {
	result, err := h.checkoutService.Submit(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, fmt.Sprintf("Sale completed! Invoice #%s", result.InvoiceNumber), result)
}
