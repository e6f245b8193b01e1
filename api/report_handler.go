package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"api_ledger/internal/expenses"
	"api_ledger/internal/sales"
	"api_ledger/internal/summary"
)

// reportHandler serves the read-only views across sales and expenses.
type reportHandler struct {
	salesService   *sales.Service
	expenseService *expenses.Service
	summaryService *summary.Service
	logger         *zap.Logger
}

func NewReportHandler(salesService *sales.Service, expenseService *expenses.Service,
	summaryService *summary.Service, logger *zap.Logger) *reportHandler {
	return &reportHandler{
		salesService:   salesService,
		expenseService: expenseService,
		summaryService: summaryService,
		logger:         logger,
	}
}

// transactionRange reads startDate and endDate. The range only applies when
// both are given; a plain date as endDate covers that whole day.
func transactionRange(ctx *gin.Context) (start, end time.Time, err error) {
	startStr, endStr := ctx.Query("startDate"), ctx.Query("endDate")
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, nil
	}
	if start, err = parseDate(startStr); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid startDate %q", startStr)
	}
	if end, err = parseDate(endStr); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid endDate %q", endStr)
	}
	if _, dateErr := time.Parse(dateOnly, strings.TrimSpace(endStr)); dateErr == nil {
		end = end.AddDate(0, 0, 1).Add(-time.Millisecond)
	}
	return start, end, nil
}

// handleListTransactions handles GET /api/transactions.
func (h *reportHandler) handleListTransactions(ctx *gin.Context) {
	start, end, err := transactionRange(ctx)
	if err != nil {
		h.logger.Warn("invalid transaction range", zap.Error(err))
		respondFail(ctx, http.StatusBadRequest, "Invalid date range", err)
		return
	}

	kind := ctx.Query("type")
	data := gin.H{}

	if kind != "expenses" {
		list, err := h.salesService.ListSales(ctx.Request.Context(), sales.Filter{Start: start, End: end})
		if err != nil {
			respondFail(ctx, http.StatusInternalServerError, "Error fetching transactions", err)
			return
		}
		data["sales"] = list
	}
	if kind != "sales" {
		list, err := h.expenseService.ListExpenses(ctx.Request.Context(), expenses.Filter{Start: start, End: end})
		if err != nil {
			respondFail(ctx, http.StatusInternalServerError, "Error fetching transactions", err)
			return
		}
		data["expenses"] = list
	}

	h.logger.Debug("transactions listed",
		zap.String("type", kind),
		zap.Time("start", start),
		zap.Time("end", end),
	)
	respondOK(ctx, http.StatusOK, "", data)
}

// handleSummary handles GET /api/summary.
func (h *reportHandler) handleSummary(ctx *gin.Context) {
	period := ctx.Query("period")

	report, err := h.summaryService.Summarize(ctx.Request.Context(), period)
	if err != nil {
		respondFail(ctx, http.StatusInternalServerError, "Error generating summary", err)
		return
	}

	respondOK(ctx, http.StatusOK, "", report)
}
