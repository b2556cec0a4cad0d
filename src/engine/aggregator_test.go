package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/taxmate/backend/src/models"
)

func incomeRecord(id string, amount, vat float64) models.TransactionRecord {
	return models.TransactionRecord{ID: id, Type: models.RecordTypeIncome, Vendor: "Client", TotalAmount: amount, VATAmount: vat}
}

func expenseRecord(id, vendor string, amount, vat float64) models.TransactionRecord {
	return models.TransactionRecord{ID: id, Type: models.RecordTypeExpense, Vendor: vendor, TotalAmount: amount, VATAmount: vat}
}

func tradeRecord(id string, side models.TradeSide, amount float64) models.TransactionRecord {
	return models.TransactionRecord{ID: id, Type: models.RecordTypeInvestment, SubType: side, Vendor: "Broker", TotalAmount: amount}
}

func TestAggregateTotals(t *testing.T) {
	records := []models.TransactionRecord{
		incomeRecord("i1", 100000, 16000),
		incomeRecord("i2", 50000, 8000),
		expenseRecord("e1", "Stationery Ltd", 3000, 480),
		expenseRecord("e2", "City Transport Co", 7000, 0),
		tradeRecord("t1", models.TradeSideBuy, 20000),
		tradeRecord("t2", models.TradeSideSell, 25000),
	}

	agg := NewTransactionAggregator().Aggregate(records)

	assert.Equal(t, 150000.0, agg.IncomeTotal)
	assert.Equal(t, 10000.0, agg.ExpenseTotal)
	assert.Equal(t, 140000.0, agg.NetProfit)
	assert.Equal(t, 24000.0, agg.VATOut)
	assert.Equal(t, 480.0, agg.VATIn)
	assert.Equal(t, 23520.0, agg.VATPayable)
	assert.Equal(t, 45000.0, agg.InvestmentTotal)
}

func TestAggregateVATRefundPosition(t *testing.T) {
	records := []models.TransactionRecord{
		incomeRecord("i1", 10000, 0),
		expenseRecord("e1", "Supplies", 9000, 1440),
	}

	agg := NewTransactionAggregator().Aggregate(records)
	assert.Equal(t, -1440.0, agg.VATPayable, "more input than output VAT means a refund")
}

func TestAggregateEmpty(t *testing.T) {
	agg := NewTransactionAggregator().Aggregate(nil)
	assert.Zero(t, agg.IncomeTotal)
	assert.Zero(t, agg.ExpenseTotal)
	assert.Zero(t, agg.NetProfit)
	assert.Zero(t, agg.VATPayable)
	// The breakdown always carries the full closed category set.
	require.Len(t, agg.CategoryBreakdown, 5)
}

func TestClassifyExpense(t *testing.T) {
	tests := []struct {
		name   string
		record models.TransactionRecord
		want   models.Category
	}{
		{"above capital threshold", expenseRecord("e", "Machinery Ltd", 10001, 0), models.CategoryCapitalPurchase},
		{"threshold is exclusive", expenseRecord("e", "Machinery Ltd", 10000, 0), models.CategoryOtherExpense},
		{"fuel keyword", expenseRecord("e", "Shell Fuel Station", 2000, 0), models.CategoryOperatingExpense},
		{"transport keyword, case-insensitive", expenseRecord("e", "ACME TRANSPORT", 2000, 0), models.CategoryOperatingExpense},
		{"capital threshold beats keyword", expenseRecord("e", "Fuel Depot", 50000, 0), models.CategoryCapitalPurchase},
		{"plain expense", expenseRecord("e", "Stationery Shop", 2000, 0), models.CategoryOtherExpense},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyExpense(tt.record))
		})
	}
}

func TestAggregateCategoryBreakdown(t *testing.T) {
	records := []models.TransactionRecord{
		incomeRecord("i1", 100000, 16000),
		expenseRecord("e1", "Machinery Ltd", 60000, 0),
		expenseRecord("e2", "Fuel Station", 2000, 0),
		expenseRecord("e3", "Stationery Shop", 1500, 0),
		tradeRecord("t1", models.TradeSideBuy, 30000),
	}

	agg := NewTransactionAggregator().Aggregate(records)

	assert.Equal(t, 100000.0, agg.CategoryBreakdown[models.CategoryIncome])
	assert.Equal(t, 60000.0, agg.CategoryBreakdown[models.CategoryCapitalPurchase])
	assert.Equal(t, 2000.0, agg.CategoryBreakdown[models.CategoryOperatingExpense])
	assert.Equal(t, 1500.0, agg.CategoryBreakdown[models.CategoryOtherExpense])
	assert.Equal(t, 30000.0, agg.CategoryBreakdown[models.CategoryInvestments])
}
