package summary

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"api_ledger/internal/expenses"
	"api_ledger/internal/sales"
)

// ProductionCostPerSheet is the fixed cost of producing one sheet.
const ProductionCostPerSheet = 43

// SalesReader lists sales over a date range.
type SalesReader interface {
	List(ctx context.Context, filter sales.Filter) ([]*sales.Sale, error)
}

// ExpensesReader lists expenses over a date range and type.
type ExpensesReader interface {
	List(ctx context.Context, filter expenses.Filter) ([]*expenses.Expense, error)
}

// Report is the consolidated financial summary of a period.
type Report struct {
	Period              string    `json:"period"`
	StartDate           time.Time `json:"startDate"`
	EndDate             time.Time `json:"endDate"`
	TotalSheets         int       `json:"totalSheets"`
	TotalRevenue        float64   `json:"totalRevenue"`
	TotalProductionCost float64   `json:"totalProductionCost"`
	TotalPetrol         float64   `json:"totalPetrol"`
	TotalOtherExpenses  float64   `json:"totalOtherExpenses"`
	TotalExpenses       float64   `json:"totalExpenses"`
	ExpenseCount        int       `json:"expenseCount"`
	AvgPricePerSheet    float64   `json:"avgPricePerSheet"`
	NetProfit           float64   `json:"netProfit"`
	ProfitMargin        float64   `json:"profitMargin"`
}

// Service builds period reports from the sales and expense stores.
type Service struct {
	sales    SalesReader
	expenses ExpensesReader
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(salesReader SalesReader, expensesReader ExpensesReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sales:    salesReader,
		expenses: expensesReader,
		logger:   logger,
		now:      time.Now,
	}
}

// Summarize aggregates the records dated inside the period's range.
func (s *Service) Summarize(ctx context.Context, period string) (*Report, error) {
	rng := ResolvePeriod(period, s.now())

	var (
		saleRecs           []*sales.Sale
		all, petrol, other []*expenses.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		saleRecs, err = s.sales.List(gctx, sales.Filter{Start: rng.Start, End: rng.End})
		return err
	})
	g.Go(func() (err error) {
		all, err = s.expenses.List(gctx, expenses.Filter{Start: rng.Start, End: rng.End})
		return err
	})
	g.Go(func() (err error) {
		petrol, err = s.expenses.List(gctx, expenses.Filter{Start: rng.Start, End: rng.End, Type: expenses.TypePetrol})
		return err
	})
	g.Go(func() (err error) {
		other, err = s.expenses.List(gctx, expenses.Filter{Start: rng.Start, End: rng.End, Type: expenses.TypeOther})
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to build summary", zap.String("period", period), zap.Error(err))
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}

	report := &Report{
		Period:    period,
		StartDate: rng.Start,
		EndDate:   rng.End,
	}

	var priceSum float64
	for _, sale := range saleRecs {
		report.TotalSheets += sale.SheetsSold
		report.TotalRevenue += sale.TotalRevenue
		report.TotalProductionCost += float64(sale.SheetsSold) * ProductionCostPerSheet
		priceSum += sale.PricePerSheet
	}
	if len(saleRecs) > 0 {
		report.AvgPricePerSheet = round2(priceSum / float64(len(saleRecs)))
	}

	report.TotalExpenses = sumAmounts(all)
	report.ExpenseCount = len(all)
	report.TotalPetrol = sumAmounts(petrol)
	report.TotalOtherExpenses = sumAmounts(other)

	report.NetProfit = NetProfit(report.TotalRevenue, report.TotalProductionCost, report.TotalExpenses)
	report.ProfitMargin = ProfitMargin(report.NetProfit, report.TotalRevenue)

	s.logger.Info("summary generated",
		zap.String("period", period),
		zap.Time("start", rng.Start),
		zap.Time("end", rng.End),
		zap.Int("sales", len(saleRecs)),
		zap.Int("expenses", report.ExpenseCount),
	)
	return report, nil
}

// NetProfit is revenue minus production cost minus all expenses.
func NetProfit(revenue, productionCost, totalExpenses float64) float64 {
	return revenue - productionCost - totalExpenses
}

// ProfitMargin is net profit as a percentage of revenue, at two decimals.
// It is 0 when there is no revenue.
func ProfitMargin(netProfit, revenue float64) float64 {
	if revenue == 0 {
		return 0
	}
	return round2(netProfit / revenue * 100)
}

func sumAmounts(list []*expenses.Expense) float64 {
	var total float64
	for _, e := range list {
		total += e.Amount
	}
	return total
}

// round2 rounds the exact binary value of v half away from zero, so 1.005
// (stored as 1.00499...) becomes 1.00.
func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	exact := decimal.RequireFromString(new(big.Float).SetFloat64(v).Text('f', 30))
	f, _ := exact.Round(2).Float64()
	return f
}
