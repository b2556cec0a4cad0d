package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/username/taxmate/backend/src/models"
)

func TestMatchPositionalPairing(t *testing.T) {
	// Buys [100, 200, 300] and sells [150, 500] in collection order:
	// gains = (150-100) + (500-200) = 350; the third buy stays unmatched.
	records := []models.TransactionRecord{
		tradeRecord("b1", models.TradeSideBuy, 100),
		tradeRecord("b2", models.TradeSideBuy, 200),
		tradeRecord("s1", models.TradeSideSell, 150),
		tradeRecord("b3", models.TradeSideBuy, 300),
		tradeRecord("s2", models.TradeSideSell, 500),
	}

	got := NewCapitalGainsMatcher().Match(records)
	assert.Equal(t, 350.0, got.RealizedGains)
	assert.InDelta(t, 52.5, got.EstimatedCGT, 0.001)
}

func TestMatchPreservesCollectionOrderNotDates(t *testing.T) {
	// Pairing is positional over the stored order even when dates would
	// suggest a different FIFO matching.
	records := []models.TransactionRecord{
		{ID: "b-late", Type: models.RecordTypeInvestment, SubType: models.TradeSideBuy, Vendor: "Broker", Date: "2025-06-01", TotalAmount: 900},
		{ID: "b-early", Type: models.RecordTypeInvestment, SubType: models.TradeSideBuy, Vendor: "Broker", Date: "2025-01-01", TotalAmount: 100},
		{ID: "s1", Type: models.RecordTypeInvestment, SubType: models.TradeSideSell, Vendor: "Broker", Date: "2025-07-01", TotalAmount: 1000},
	}

	got := NewCapitalGainsMatcher().Match(records)
	// First sell pairs with the first stored buy (900), not the oldest one.
	assert.Equal(t, 100.0, got.RealizedGains)
}

func TestMatchUnmatchedSellsExcluded(t *testing.T) {
	records := []models.TransactionRecord{
		tradeRecord("b1", models.TradeSideBuy, 100),
		tradeRecord("s1", models.TradeSideSell, 120),
		tradeRecord("s2", models.TradeSideSell, 5000),
	}

	got := NewCapitalGainsMatcher().Match(records)
	assert.Equal(t, 20.0, got.RealizedGains, "second sell has no buy and is silently excluded")
}

func TestMatchNetLossFloorsCGT(t *testing.T) {
	records := []models.TransactionRecord{
		tradeRecord("b1", models.TradeSideBuy, 1000),
		tradeRecord("s1", models.TradeSideSell, 400),
	}

	got := NewCapitalGainsMatcher().Match(records)
	assert.Equal(t, -600.0, got.RealizedGains)
	assert.Zero(t, got.EstimatedCGT, "CGT never goes negative on a net loss")
}

func TestMatchIgnoresNonInvestmentRecords(t *testing.T) {
	records := []models.TransactionRecord{
		incomeRecord("i1", 100000, 16000),
		expenseRecord("e1", "Vendor", 5000, 800),
	}

	got := NewCapitalGainsMatcher().Match(records)
	assert.Zero(t, got.RealizedGains)
	assert.Zero(t, got.EstimatedCGT)
}
