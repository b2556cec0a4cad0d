package engine

import "github.com/username/taxmate/backend/src/models"

// AlertLevel grades a compliance advisory.
type AlertLevel string

const (
	AlertLevelCritical AlertLevel = "critical"
	AlertLevelRisk     AlertLevel = "risk"
	AlertLevelAdvice   AlertLevel = "advice"
	AlertLevelOK       AlertLevel = "ok"
)

// ComplianceAlert is an advisory shown alongside the snapshot. Alerts use
// looser thresholds than the scored risk rules and carry no weight; they
// are guidance, not part of the audit score.
type ComplianceAlert struct {
	ID      string     `json:"id"`
	Level   AlertLevel `json:"level"`
	Message string     `json:"message"`
}

// ComplianceAlerts derives the advisory list from a computed snapshot and
// the record collection.
func ComplianceAlerts(snap *models.ComputedSnapshot, records []models.TransactionRecord) []ComplianceAlert {
	alerts := []ComplianceAlert{}

	if len(records) == 0 {
		alerts = append(alerts, ComplianceAlert{
			ID:      "no-records",
			Level:   AlertLevelCritical,
			Message: "No records found. Start uploading invoices and receipts!",
		})
	}
	if snap.ExpenseTotal > snap.IncomeTotal*2 {
		alerts = append(alerts, ComplianceAlert{
			ID:      "expenses-exceed-income",
			Level:   AlertLevelRisk,
			Message: "Your expenses significantly exceed income. KRA may flag this return for review.",
		})
	}
	if snap.IncomeTotal > 0 && snap.VATOut/snap.IncomeTotal < 0.16 {
		alerts = append(alerts, ComplianceAlert{
			ID:      "vat-under-standard-rate",
			Level:   AlertLevelAdvice,
			Message: "The calculated VAT on sales (VAT Out) is less than 16% of your income. Check if all sales invoices correctly charged 16% VAT.",
		})
	}
	if snap.RealizedGains > snap.InvestmentTotal*0.2 {
		alerts = append(alerts, ComplianceAlert{
			ID:      "high-cgt-exposure",
			Level:   AlertLevelRisk,
			Message: "Realized gains exceed 20% of investment volume. High CGT exposure (15%) - consider holding longer to defer tax.",
		})
	}
	if snap.NetProfit > 9600000 {
		alerts = append(alerts, ComplianceAlert{
			ID:      "top-bracket",
			Level:   AlertLevelRisk,
			Message: "Estimated income pushes you into the 35% PAYE band. Optimize deductions with a tax advisor.",
		})
	}
	if len(records) > 5 {
		alerts = append(alerts, ComplianceAlert{
			ID:      "record-clean",
			Level:   AlertLevelOK,
			Message: "Digital record clean and ready for accountant review. All figures are drafts - consult KRA guidelines.",
		})
	}

	return alerts
}
