package engine

import "github.com/username/taxmate/backend/src/models"

// CorporateTaxRate is the flat corporate income-tax rate for organizations.
const CorporateTaxRate = 0.30

// TaxEngine composes the aggregator, the capital-gains matcher, the
// progressive PAYE schedule and the risk scorer into one snapshot
// computation. It is stateless between invocations: callers re-run
// ComputeSnapshot in full whenever the record collection changes.
type TaxEngine struct {
	aggregator *TransactionAggregator
	matcher    *CapitalGainsMatcher
	scorer     *RiskScorer
	brackets   []models.TaxBracket
	relief     float64
}

// NewTaxEngine returns an engine instantiated with the KRA personal bands.
func NewTaxEngine() *TaxEngine {
	return &TaxEngine{
		aggregator: NewTransactionAggregator(),
		matcher:    NewCapitalGainsMatcher(),
		scorer:     NewRiskScorer(),
		brackets:   PersonalIncomeBrackets,
		relief:     PersonalRelief,
	}
}

// ComputeSnapshot validates the records, aggregates them, matches capital
// gains, applies the tax rules for the given business type and scores audit
// risk. It never mutates the input slice and is safe to call concurrently
// across independent inputs.
//
// PAYE is computed unconditionally regardless of business type; the caller
// chooses which liability figure to surface.
func (e *TaxEngine) ComputeSnapshot(records []models.TransactionRecord, businessType models.BusinessType) (*models.ComputedSnapshot, error) {
	if err := ValidateRecords(records); err != nil {
		return nil, err
	}

	agg := e.aggregator.Aggregate(records)
	gains := e.matcher.Match(records)

	taxable := agg.NetProfit
	if taxable < 0 {
		taxable = 0
	}

	var corpTax float64
	if businessType == models.BusinessTypeOrganization {
		corpTax = agg.NetProfit * CorporateTaxRate
		if corpTax < 0 {
			corpTax = 0
		}
	}

	snap := &models.ComputedSnapshot{
		IncomeTotal:       agg.IncomeTotal,
		ExpenseTotal:      agg.ExpenseTotal,
		NetProfit:         agg.NetProfit,
		VATIn:             agg.VATIn,
		VATOut:            agg.VATOut,
		VATPayable:        agg.VATPayable,
		InvestmentTotal:   agg.InvestmentTotal,
		RealizedGains:     gains.RealizedGains,
		EstimatedCGT:      gains.EstimatedCGT,
		EstimatedPAYE:     ProgressiveTax(taxable, e.brackets, e.relief),
		EstimatedCorpTax:  corpTax,
		CategoryBreakdown: agg.CategoryBreakdown,
	}

	snap.RiskFlags, snap.RiskScore = e.scorer.Score(snap, records)
	return snap, nil
}

// MatchCapitalGains exposes the gains computation to callers that only need
// the partial result (Schedule CG preview, CGT filing).
func (e *TaxEngine) MatchCapitalGains(records []models.TransactionRecord) (GainsResult, error) {
	if err := ValidateRecords(records); err != nil {
		return GainsResult{}, err
	}
	return e.matcher.Match(records), nil
}

// ScoreRisk re-evaluates the risk rules against an existing snapshot.
func (e *TaxEngine) ScoreRisk(snap *models.ComputedSnapshot, records []models.TransactionRecord) ([]models.RiskFlag, int) {
	return e.scorer.Score(snap, records)
}
