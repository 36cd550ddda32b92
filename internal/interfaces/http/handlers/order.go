// internal/interfaces/http/handlers/order.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/domain/order"
	"github.com/your-org/pos-backend/internal/pkg/pdf"
	"github.com/your-org/pos-backend/internal/pkg/types"
)

// OrderHandler handles sales history, receipts and returns
type OrderHandler struct {
	orderService *order.Service
	pdfService   *pdf.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, pdfService *pdf.Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		pdfService:   pdfService,
	}
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.GetOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Orders retrieved successfully", orders)
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.orderService.GetOrder(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Order retrieved successfully", o)
}

// GetReceipt handles GET /orders/:id/receipt. The receipt is a PDF when
// rendering is enabled and format=html was not asked for.
func (h *OrderHandler) GetReceipt(c *gin.Context) {
	o, err := h.orderService.GetOrder(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}

	if h.pdfService.Enabled() && c.Query("format") != "html" {
		buf, err := h.pdfService.GenerateReceipt(o)
		if err != nil {
			respondError(c, fmt.Errorf("failed to generate receipt: %w", err))
			return
		}

		filename := fmt.Sprintf("receipt-%s.pdf", o.InvoiceNumber)
		c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
		return
	}

	page, err := h.pdfService.RenderHTML(o)
	if err != nil {
		respondError(c, fmt.Errorf("failed to render receipt: %w", err))
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// CreateReturn handles POST /returns
func (h *OrderHandler) CreateReturn(c *gin.Context) {
	var req order.ReturnRequest
	if !bindJSON(c, "order.CreateReturn", &req) {
		return
	}

	result, err := h.orderService.CreateReturn(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Return processed successfully", result)
}
