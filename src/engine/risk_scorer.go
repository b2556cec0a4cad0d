package engine

import "github.com/username/taxmate/backend/src/models"

// maxRiskScore caps the additive rule weights.
const maxRiskScore = 100

// RiskScorer evaluates the fixed battery of audit red-flag heuristics
// against a computed snapshot and the raw record collection.
type RiskScorer struct{}

func NewRiskScorer() *RiskScorer {
	return &RiskScorer{}
}

// Score runs the six rules in their canonical order. Each triggered rule
// appends one flag and adds its fixed weight; the final score is capped at
// 100. Evaluation mutates nothing and the flag listing order is
// deterministic.
func (s *RiskScorer) Score(snap *models.ComputedSnapshot, records []models.TransactionRecord) ([]models.RiskFlag, int) {
	flags := []models.RiskFlag{}
	score := 0

	add := func(f models.RiskFlag) {
		flags = append(flags, f)
		score += f.Weight
	}

	// Rule 1: empty collection.
	if len(records) == 0 {
		add(models.RiskFlag{
			ID:       "no-records",
			Message:  "No records uploaded: Triggers audit for non-filers or NIL returns.",
			Severity: models.SeverityHigh,
			Fix:      "Upload at least 3-5 receipts to build a compliant history.",
			Weight:   40,
		})
	}

	// Rule 2: expenses above 150% of income.
	if snap.ExpenseTotal > snap.IncomeTotal*1.5 {
		add(models.RiskFlag{
			ID:       "high-expenses",
			Message:  "Expenses exceed 150% of income: Common red flag for lifestyle mismatch.",
			Severity: models.SeverityHigh,
			Fix:      "Verify business purpose of large expenses; categorize properly.",
			Weight:   30,
		})
	}

	// Rule 3: output VAT under 14% of income. The incomeTotal > 0 guard
	// short-circuits the division; a zero income is not an error here.
	if snap.IncomeTotal > 0 && snap.VATOut/snap.IncomeTotal < 0.14 {
		add(models.RiskFlag{
			ID:       "low-vat",
			Message:  "VAT on income below 14%: May indicate under-charging or misclassification.",
			Severity: models.SeverityMedium,
			Fix:      "Ensure all sales include 16% VAT; review income records.",
			Weight:   20,
		})
	}

	// Rule 4: large expenses outnumber half the income records.
	var capitalPurchases, incomeRecords int
	for _, r := range records {
		switch {
		case r.Type == models.RecordTypeExpense && r.TotalAmount > CapitalPurchaseThreshold:
			capitalPurchases++
		case r.Type == models.RecordTypeIncome:
			incomeRecords++
		}
	}
	if float64(capitalPurchases) > float64(incomeRecords)*0.5 {
		add(models.RiskFlag{
			ID:       "high-capital",
			Message:  "High capital purchases relative to income: Flags potential personal use.",
			Severity: models.SeverityMedium,
			Fix:      "Document business use with quotes/invoices.",
			Weight:   15,
		})
	}

	// Rule 5: more sells than buys leaves the gains sum incomplete.
	var buys, sells int
	for _, r := range records {
		if r.Type != models.RecordTypeInvestment {
			continue
		}
		switch r.SubType {
		case models.TradeSideBuy:
			buys++
		case models.TradeSideSell:
			sells++
		}
	}
	if sells > 0 && buys < sells {
		add(models.RiskFlag{
			ID:       "unmatched-invest",
			Message:  "Unmatched investment sells: CGT calculation incomplete; data discrepancy risk.",
			Severity: models.SeverityHigh,
			Fix:      "Upload buy receipts to pair trades for FIFO.",
			Weight:   25,
		})
	}

	// Rule 6: high liability without evident deductions.
	if snap.NetProfit > 500000 && (snap.EstimatedPAYE > 100000 || snap.EstimatedCorpTax > 100000) {
		add(models.RiskFlag{
			ID:       "high-paye",
			Message:  "High tax liability without evident deductions: Bracket creep audit trigger.",
			Severity: models.SeverityLow,
			Fix:      "Track allowable deductions like pension/NSSF contributions.",
			Weight:   10,
		})
	}

	if score > maxRiskScore {
		score = maxRiskScore
	}
	return flags, score
}
