// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	view, err := h.cartService.GetCart(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Cart retrieved successfully", view)
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req cart.AddToCartRequest
	if !bindJSON(c, "cart.AddToCart", &req) {
		return
	}

	view, err := h.cartService.AddToCart(c.Request.Context(), middleware.GetSessionID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Item added to cart", view)
}

// UpdateQuantity handles PATCH /cart/items/:lineId
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req cart.UpdateQuantityRequest
	if !bindJSON(c, "cart.UpdateQuantity", &req) {
		return
	}

	view, err := h.cartService.UpdateQuantity(c.Request.Context(), middleware.GetSessionID(c), c.Param("lineId"), req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Cart updated", view)
}

// RemoveFromCart handles DELETE /cart/items/:lineId
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	view, err := h.cartService.RemoveFromCart(c.Request.Context(), middleware.GetSessionID(c), c.Param("lineId"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Item removed from cart", view)
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cartService.ClearCart(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Cart cleared", nil)
}
