package engine

import (
	"strings"

	"github.com/username/taxmate/backend/src/models"
)

// CapitalPurchaseThreshold is the amount above which an expense is bucketed
// as a capital purchase (KES). Fixed by policy, no configuration surface.
const CapitalPurchaseThreshold = 10000.0

// operatingKeywords mark fuel/transport vendors for the operating-expense
// bucket. Matched case-insensitively against the vendor name.
var operatingKeywords = []string{"fuel", "transport"}

// Aggregates holds the per-type sums and the category breakdown derived
// from one pass over the record collection.
type Aggregates struct {
	IncomeTotal       float64
	ExpenseTotal      float64
	NetProfit         float64
	VATIn             float64
	VATOut            float64
	VATPayable        float64
	InvestmentTotal   float64
	CategoryBreakdown map[models.Category]float64
}

// TransactionAggregator partitions records by type and sums their amounts.
type TransactionAggregator struct{}

func NewTransactionAggregator() *TransactionAggregator {
	return &TransactionAggregator{}
}

// Aggregate is a pure function of the record collection. NetProfit is a
// draft annual-income proxy (income minus expenses, capital gains excluded)
// and VATPayable may go negative, signifying a refund position.
func (a *TransactionAggregator) Aggregate(records []models.TransactionRecord) Aggregates {
	agg := Aggregates{
		CategoryBreakdown: map[models.Category]float64{
			models.CategoryIncome:           0,
			models.CategoryCapitalPurchase:  0,
			models.CategoryOperatingExpense: 0,
			models.CategoryOtherExpense:     0,
			models.CategoryInvestments:      0,
		},
	}

	for _, r := range records {
		switch r.Type {
		case models.RecordTypeIncome:
			agg.IncomeTotal += r.TotalAmount
			agg.VATOut += r.VATAmount
			agg.CategoryBreakdown[models.CategoryIncome] += r.TotalAmount
		case models.RecordTypeExpense:
			agg.ExpenseTotal += r.TotalAmount
			agg.VATIn += r.VATAmount
			agg.CategoryBreakdown[ClassifyExpense(r)] += r.TotalAmount
		case models.RecordTypeInvestment:
			agg.InvestmentTotal += r.TotalAmount
			agg.CategoryBreakdown[models.CategoryInvestments] += r.TotalAmount
		}
	}

	agg.NetProfit = agg.IncomeTotal - agg.ExpenseTotal
	agg.VATPayable = agg.VATOut - agg.VATIn
	return agg
}

// ClassifyExpense buckets one expense record. Precedence: the capital
// threshold wins over the vendor keyword match.
func ClassifyExpense(r models.TransactionRecord) models.Category {
	if r.TotalAmount > CapitalPurchaseThreshold {
		return models.CategoryCapitalPurchase
	}
	vendor := strings.ToLower(r.Vendor)
	for _, kw := range operatingKeywords {
		if strings.Contains(vendor, kw) {
			return models.CategoryOperatingExpense
		}
	}
	return models.CategoryOtherExpense
}
