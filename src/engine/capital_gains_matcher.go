package engine

import "github.com/username/taxmate/backend/src/models"

// CGTRate is the flat capital-gains rate for residents (15%).
const CGTRate = 0.15

// GainsResult is the realized-gains figure and its estimated liability.
type GainsResult struct {
	RealizedGains float64 `json:"realizedGains"`
	EstimatedCGT  float64 `json:"estimatedCGT"`
}

// CapitalGainsMatcher pairs investment buys with sells to produce realized
// gains.
type CapitalGainsMatcher struct{}

func NewCapitalGainsMatcher() *CapitalGainsMatcher {
	return &CapitalGainsMatcher{}
}

// Match splits the investment records into buys and sells, preserving the
// collection's iteration order, and pairs the i-th buy with the i-th sell.
// The pairing is positional, not date-sorted FIFO; callers that want true
// FIFO must sort before handing records in, and none do today. Unmatched
// sells are excluded from the sum here and surfaced by the risk scorer
// instead.
func (m *CapitalGainsMatcher) Match(records []models.TransactionRecord) GainsResult {
	var buys, sells []float64
	for _, r := range records {
		if r.Type != models.RecordTypeInvestment {
			continue
		}
		switch r.SubType {
		case models.TradeSideBuy:
			buys = append(buys, r.TotalAmount)
		case models.TradeSideSell:
			sells = append(sells, r.TotalAmount)
		}
	}

	n := len(buys)
	if len(sells) < n {
		n = len(sells)
	}

	var gains float64
	for i := 0; i < n; i++ {
		gains += sells[i] - buys[i]
	}

	cgt := gains * CGTRate
	if cgt < 0 {
		cgt = 0
	}
	return GainsResult{RealizedGains: gains, EstimatedCGT: cgt}
}
