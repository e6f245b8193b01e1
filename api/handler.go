package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"api_ledger/internal/sales"
)

// salesHandler holds the sales service and implements HTTP handlers for sales operations.
type salesHandler struct {
	salesService *sales.Service
	logger       *zap.Logger
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(salesService *sales.Service, logger *zap.Logger) *salesHandler {
	return &salesHandler{
		salesService: salesService,
		logger:       logger,
	}
}

type saleRequest struct {
	Date         string   `json:"date"`
	SheetsSold   *int     `json:"sheetsSold" binding:"required,min=1"`
	TotalRevenue *float64 `json:"totalRevenue" binding:"required,min=0"`
}

const msgSaleRequired = "Sheets sold and total revenue are required"

// bindSale decodes the request body into a sale input, writing the 400
// response itself when the body is unusable.
func (h *salesHandler) bindSale(ctx *gin.Context) (sales.SaleInput, bool) {
	var req saleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind sale request", zap.Error(err))
		respondFail(ctx, http.StatusBadRequest, msgSaleRequired, err)
		return sales.SaleInput{}, false
	}

	date, err := optionalDate(req.Date)
	if err != nil {
		h.logger.Warn("invalid sale date", zap.String("date", req.Date), zap.Error(err))
		respondFail(ctx, http.StatusBadRequest, "Invalid date", fmt.Errorf("%w: invalid date", sales.ErrValidation))
		return sales.SaleInput{}, false
	}

	return sales.SaleInput{
		Date:         date,
		SheetsSold:   *req.SheetsSold,
		TotalRevenue: req.TotalRevenue,
	}, true
}

// handleCreateSale handles the POST /api/sales endpoint.
func (h *salesHandler) handleCreateSale(ctx *gin.Context) {
	in, ok := h.bindSale(ctx)
	if !ok {
		return
	}

	sale, err := h.salesService.CreateSale(ctx.Request.Context(), in)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusBadRequest {
			respondFail(ctx, status, msgSaleRequired, err)
			return
		}
		respondFail(ctx, status, "Error saving sale data", err)
		return
	}

	respondOK(ctx, http.StatusCreated, "Sale recorded successfully", sale)
}

// handleUpdateSale handles the PUT /api/sales/:id endpoint.
func (h *salesHandler) handleUpdateSale(ctx *gin.Context) {
	saleID := ctx.Param("id")
	in, ok := h.bindSale(ctx)
	if !ok {
		return
	}

	sale, err := h.salesService.UpdateSale(ctx.Request.Context(), saleID, in)
	if err != nil {
		switch status := statusFor(err); status {
		case http.StatusBadRequest:
			respondFail(ctx, status, msgSaleRequired, err)
		case http.StatusNotFound:
			respondFail(ctx, status, "Sale not found", nil)
		default:
			respondFail(ctx, status, "Error updating sale", err)
		}
		return
	}

	respondOK(ctx, http.StatusOK, "Sale updated successfully", sale)
}

// handleDeleteSale handles the DELETE /api/sales/:id endpoint.
func (h *salesHandler) handleDeleteSale(ctx *gin.Context) {
	saleID := ctx.Param("id")

	sale, err := h.salesService.DeleteSale(ctx.Request.Context(), saleID)
	if err != nil {
		if status := statusFor(err); status == http.StatusNotFound {
			respondFail(ctx, status, "Sale not found", nil)
		} else {
			respondFail(ctx, status, "Error deleting sale", err)
		}
		return
	}

	respondOK(ctx, http.StatusOK, "Sale deleted successfully", sale)
}
