package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/taxmate/backend/src/models"
)

func TestComputeSnapshotEmptyCollection(t *testing.T) {
	snap, err := NewTaxEngine().ComputeSnapshot(nil, models.BusinessTypePersonal)
	require.NoError(t, err)

	assert.Zero(t, snap.IncomeTotal)
	assert.Zero(t, snap.ExpenseTotal)
	assert.Zero(t, snap.NetProfit)
	assert.Zero(t, snap.EstimatedPAYE)
	assert.Zero(t, snap.EstimatedCorpTax)
	assert.Equal(t, 40, snap.RiskScore)
	require.Len(t, snap.RiskFlags, 1)
	assert.Equal(t, "no-records", snap.RiskFlags[0].ID)
}

func TestComputeSnapshotBasicScenario(t *testing.T) {
	records := []models.TransactionRecord{
		incomeRecord("i1", 100000, 16000),
		expenseRecord("e1", "Fuel Station", 20000, 0),
	}

	snap, err := NewTaxEngine().ComputeSnapshot(records, models.BusinessTypePersonal)
	require.NoError(t, err)

	assert.Equal(t, 100000.0, snap.IncomeTotal)
	assert.Equal(t, 20000.0, snap.ExpenseTotal)
	assert.Equal(t, 80000.0, snap.NetProfit)
	assert.Equal(t, 16000.0, snap.VATOut)
	assert.Zero(t, snap.VATIn)
	assert.Equal(t, 16000.0, snap.VATPayable)
	// 80,000 sits inside the first PAYE band: 10% flat, no relief.
	assert.InDelta(t, 8000.0, snap.EstimatedPAYE, 0.001)
	assert.Zero(t, snap.EstimatedCorpTax)
	// The 20,000 expense classifies as a capital purchase and outnumbers
	// half the single income record, so only rule 4 fires.
	require.Len(t, snap.RiskFlags, 1)
	assert.Equal(t, "high-capital", snap.RiskFlags[0].ID)
	assert.Equal(t, 15, snap.RiskScore)
}

func TestComputeSnapshotCorporateTax(t *testing.T) {
	records := []models.TransactionRecord{
		incomeRecord("i1", 1000000, 160000),
		expenseRecord("e1", "Office Rent", 400000, 0),
	}

	snap, err := NewTaxEngine().ComputeSnapshot(records, models.BusinessTypeOrganization)
	require.NoError(t, err)

	assert.InDelta(t, 180000.0, snap.EstimatedCorpTax, 0.001)
	// PAYE is still computed; the caller picks which figure to surface.
	assert.Greater(t, snap.EstimatedPAYE, 0.0)
}

func TestComputeSnapshotCorpTaxFlooredOnLoss(t *testing.T) {
	records := []models.TransactionRecord{
		incomeRecord("i1", 1000, 160),
		expenseRecord("e1", "Vendor", 5000, 800),
	}

	snap, err := NewTaxEngine().ComputeSnapshot(records, models.BusinessTypeOrganization)
	require.NoError(t, err)

	assert.Equal(t, -4000.0, snap.NetProfit)
	assert.Zero(t, snap.EstimatedCorpTax)
	assert.Zero(t, snap.EstimatedPAYE)
}

func TestComputeSnapshotDoesNotMutateInput(t *testing.T) {
	records := []models.TransactionRecord{
		incomeRecord("i1", 100000, 16000),
		tradeRecord("b1", models.TradeSideBuy, 500),
	}
	before := make([]models.TransactionRecord, len(records))
	copy(before, records)

	_, err := NewTaxEngine().ComputeSnapshot(records, models.BusinessTypePersonal)
	require.NoError(t, err)
	assert.Equal(t, before, records)
}

func TestComputeSnapshotIdempotent(t *testing.T) {
	records := []models.TransactionRecord{
		incomeRecord("i1", 250000, 40000),
		expenseRecord("e1", "Transport Hub", 9000, 0),
		tradeRecord("b1", models.TradeSideBuy, 1000),
		tradeRecord("s1", models.TradeSideSell, 4000),
	}

	eng := NewTaxEngine()
	first, err := eng.ComputeSnapshot(records, models.BusinessTypePersonal)
	require.NoError(t, err)
	second, err := eng.ComputeSnapshot(records, models.BusinessTypePersonal)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeSnapshotRejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name   string
		record models.TransactionRecord
		field  string
	}{
		{
			"negative amount",
			models.TransactionRecord{ID: "r1", Type: models.RecordTypeExpense, Vendor: "V", TotalAmount: -10},
			"totalAmount",
		},
		{
			"NaN vat",
			models.TransactionRecord{ID: "r2", Type: models.RecordTypeIncome, Vendor: "V", TotalAmount: 10, VATAmount: math.NaN()},
			"vatAmount",
		},
		{
			"trade side on expense",
			models.TransactionRecord{ID: "r3", Type: models.RecordTypeExpense, SubType: models.TradeSideBuy, Vendor: "V", TotalAmount: 10},
			"subType",
		},
		{
			"unknown type",
			models.TransactionRecord{ID: "r4", Type: "Loan", Vendor: "V", TotalAmount: 10},
			"type",
		},
	}

	eng := NewTaxEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eng.ComputeSnapshot([]models.TransactionRecord{tt.record}, models.BusinessTypePersonal)
			var invalidErr *InvalidRecordError
			require.ErrorAs(t, err, &invalidErr)
			assert.Equal(t, tt.record.ID, invalidErr.RecordID)
			assert.Equal(t, tt.field, invalidErr.Field)
		})
	}
}

func TestMatchCapitalGainsValidates(t *testing.T) {
	bad := []models.TransactionRecord{
		{ID: "r1", Type: models.RecordTypeInvestment, SubType: "Short", Vendor: "Broker", TotalAmount: 10},
	}
	_, err := NewTaxEngine().MatchCapitalGains(bad)
	var invalidErr *InvalidRecordError
	assert.True(t, errors.As(err, &invalidErr))
}

func TestMatchCapitalGainsPartialResult(t *testing.T) {
	records := []models.TransactionRecord{
		incomeRecord("i1", 100, 16),
		tradeRecord("b1", models.TradeSideBuy, 100),
		tradeRecord("s1", models.TradeSideSell, 160),
	}

	got, err := NewTaxEngine().MatchCapitalGains(records)
	require.NoError(t, err)
	assert.Equal(t, 60.0, got.RealizedGains)
	assert.InDelta(t, 9.0, got.EstimatedCGT, 0.001)
}
