package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"api_ledger/internal/expenses"
)

type expenseHandler struct {
	expenseService *expenses.Service
	logger         *zap.Logger
}

func NewExpenseHandler(expenseService *expenses.Service, logger *zap.Logger) *expenseHandler {
	return &expenseHandler{
		expenseService: expenseService,
		logger:         logger,
	}
}

type expenseRequest struct {
	Date        string   `json:"date"`
	Type        string   `json:"type" binding:"required,oneof=petrol other"`
	Amount      *float64 `json:"amount" binding:"required"`
	Description *string  `json:"description"`
}

const msgExpenseRequired = "Type and amount are required"

func (h *expenseHandler) bindExpense(ctx *gin.Context) (expenses.ExpenseInput, bool) {
	var req expenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind expense request", zap.Error(err))
		respondFail(ctx, http.StatusBadRequest, msgExpenseRequired, err)
		return expenses.ExpenseInput{}, false
	}

	date, err := optionalDate(req.Date)
	if err != nil {
		h.logger.Warn("invalid expense date", zap.String("date", req.Date), zap.Error(err))
		respondFail(ctx, http.StatusBadRequest, "Invalid date", fmt.Errorf("%w: invalid date", expenses.ErrValidation))
		return expenses.ExpenseInput{}, false
	}

	return expenses.ExpenseInput{
		Date:        date,
		Type:        expenses.Type(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
	}, true
}

// handleCreateExpense handles the POST /api/expenses endpoint.
func (h *expenseHandler) handleCreateExpense(ctx *gin.Context) {
	in, ok := h.bindExpense(ctx)
	if !ok {
		return
	}

	expense, err := h.expenseService.CreateExpense(ctx.Request.Context(), in)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusBadRequest {
			respondFail(ctx, status, msgExpenseRequired, err)
			return
		}
		respondFail(ctx, status, "Error saving expense data", err)
		return
	}

	respondOK(ctx, http.StatusCreated, "Expense recorded successfully", expense)
}

// handleUpdateExpense handles the PUT /api/expenses/:id endpoint.
func (h *expenseHandler) handleUpdateExpense(ctx *gin.Context) {
	expenseID := ctx.Param("id")
	in, ok := h.bindExpense(ctx)
	if !ok {
		return
	}

	expense, err := h.expenseService.UpdateExpense(ctx.Request.Context(), expenseID, in)
	if err != nil {
		switch status := statusFor(err); status {
		case http.StatusBadRequest:
			respondFail(ctx, status, msgExpenseRequired, err)
		case http.StatusNotFound:
			respondFail(ctx, status, "Expense not found", nil)
		default:
			respondFail(ctx, status, "Error updating expense", err)
		}
		return
	}

	respondOK(ctx, http.StatusOK, "Expense updated successfully", expense)
}

// handleDeleteExpense handles the DELETE /api/expenses/:id endpoint.
func (h *expenseHandler) handleDeleteExpense(ctx *gin.Context) {
	expenseID := ctx.Param("id")

	expense, err := h.expenseService.DeleteExpense(ctx.Request.Context(), expenseID)
	if err != nil {
		if status := statusFor(err); status == http.StatusNotFound {
			respondFail(ctx, status, "Expense not found", nil)
		} else {
			respondFail(ctx, status, "Error deleting expense", err)
		}
		return
	}

	respondOK(ctx, http.StatusOK, "Expense deleted successfully", expense)
}
