// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/domain/catalog"
	"github.com/your-org/pos-backend/internal/pkg/types"
)

// CatalogHandler handles catalog and product endpoints
type CatalogHandler struct {
	catalogService *catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Search handles GET /catalog?q=&view=inventory
func (h *CatalogHandler) Search(c *gin.Context) {
	query := c.Query("q")

	if strings.EqualFold(c.Query("view"), "inventory") {
		items, err := h.catalogService.Inventory(c.Request.Context(), query)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Inventory retrieved successfully", items)
		return
	}

	products, err := h.catalogService.Search(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Products retrieved successfully", products)
}

// Refresh handles POST /catalog/refresh
func (h *CatalogHandler) Refresh(c *gin.Context) {
	snap, err := h.catalogService.Refresh(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Catalog refreshed", gin.H{
		"products":   snap.Len(),
		"fetched_at": snap.FetchedAt(),
	})
}

// CreateProduct handles POST /products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req catalog.ProductInput
	if !bindJSON(c, "catalog.CreateProduct", &req) {
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Product created successfully", product)
}

// UpdateProduct handles PUT /products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req catalog.ProductInput
	if !bindJSON(c, "catalog.UpdateProduct", &req) {
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), types.ID(c.Param("id")), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Product updated successfully", product)
}

// History handles GET /products/:id/history
func (h *CatalogHandler) History(c *gin.Context) {
	records, err := h.catalogService.History(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Product history retrieved successfully", records)
}

// GenerateSKU handles GET /products/sku
func (h *CatalogHandler) GenerateSKU(c *gin.Context) {
	respond(c, http.StatusOK, "SKU generated", gin.H{"sku": catalog.GenerateSKU()})
}
