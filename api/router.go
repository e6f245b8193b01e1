package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"api_ledger/internal/expenses"
	"api_ledger/internal/sales"
	"api_ledger/internal/summary"
)

// Dependencies are the services the routes are bound to.
type Dependencies struct {
	Sales     *sales.Service
	Expenses  *expenses.Service
	Summary   *summary.Service
	Logger    *zap.Logger
	StaticDir string
}

// InitRoutes registers the ledger endpoints under /api on the given Gin
// engine, plus the health probe and the static asset fallback.
func InitRoutes(e *gin.Engine, deps Dependencies) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	salesHandler := NewSalesHandler(deps.Sales, logger.Named("sales"))
	expenseHandler := NewExpenseHandler(deps.Expenses, logger.Named("expenses"))
	reportHandler := NewReportHandler(deps.Sales, deps.Expenses, deps.Summary, logger.Named("reports"))

	api := e.Group("/api")

	api.POST("/sales", salesHandler.handleCreateSale)
	api.PUT("/sales/:id", salesHandler.handleUpdateSale)
	api.DELETE("/sales/:id", salesHandler.handleDeleteSale)

	api.POST("/expenses", expenseHandler.handleCreateExpense)
	api.PUT("/expenses/:id", expenseHandler.handleUpdateExpense)
	api.DELETE("/expenses/:id", expenseHandler.handleDeleteExpense)

	api.GET("/transactions", reportHandler.handleListTransactions)
	api.GET("/summary", reportHandler.handleSummary)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	e.NoRoute(staticFallback(deps.StaticDir))
}

// staticFallback serves files from dir for unmatched routes, falling back to
// index.html so client side routes resolve. Unknown /api paths get a JSON 404.
func staticFallback(dir string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		if dir == "" || strings.HasPrefix(path, "/api/") ||
			(ctx.Request.Method != http.MethodGet && ctx.Request.Method != http.MethodHead) {
			respondFail(ctx, http.StatusNotFound, "Not found", nil)
			return
		}

		file := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+path)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			ctx.File(file)
			return
		}

		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			respondFail(ctx, http.StatusNotFound, "Not found", nil)
			return
		}
		ctx.File(index)
	}
}
