// internal/interfaces/http/handlers/report.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/domain/report"
)

// ReportHandler handles financial report and accounting endpoints
type ReportHandler struct {
	reportService *report.Service
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *report.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ProfitLoss handles GET /reports/profit-loss
func (h *ReportHandler) ProfitLoss(c *gin.Context) {
	pl, err := h.reportService.ProfitLoss(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Profit and loss retrieved successfully", pl)
}

// BalanceSheet handles GET /reports/balance-sheet
func (h *ReportHandler) BalanceSheet(c *gin.Context) {
	bs, err := h.reportService.BalanceSheet(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Balance sheet retrieved successfully", bs)
}

// Summary handles GET /reports/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Report summary retrieved successfully", summary)
}

// Accounts handles GET /accounting/accounts
func (h *ReportHandler) Accounts(c *gin.Context) {
	accounts, err := h.reportService.Accounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Accounts retrieved successfully", accounts)
}

// Ledger handles GET /accounting/ledger?per_page=
func (h *ReportHandler) Ledger(c *gin.Context) {
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(report.DefaultLedgerPageSize)))

	entries, err := h.reportService.Ledger(c.Request.Context(), perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Ledger retrieved successfully", entries)
}
