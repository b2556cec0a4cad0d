package models

// RecordType classifies a transaction record.
type RecordType string

const (
	RecordTypeIncome     RecordType = "Income"
	RecordTypeExpense    RecordType = "Expense"
	RecordTypeInvestment RecordType = "Investment"
)

// TradeSide is the buy/sell marker on investment records. It must be empty
// on non-investment records.
type TradeSide string

const (
	TradeSideNone TradeSide = ""
	TradeSideBuy  TradeSide = "Buy"
	TradeSideSell TradeSide = "Sell"
)

// BusinessType selects personal PAYE vs flat corporate tax treatment.
type BusinessType string

const (
	BusinessTypePersonal     BusinessType = "personal"
	BusinessTypeOrganization BusinessType = "organization"
)

// Severity levels for audit risk flags.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Category is the closed set of display buckets for the financial snapshot.
type Category string

const (
	CategoryIncome           Category = "Income"
	CategoryCapitalPurchase  Category = "Capital Purchase"
	CategoryOperatingExpense Category = "Operating Expense"
	CategoryOtherExpense     Category = "Other Expense"
	CategoryInvestments      Category = "Investments"
)

// TransactionRecord is one financial event as stored for a user.
// Records are immutable inputs to the tax engine; the engine never mutates
// them, and the slice order handed to the engine is the stored insertion
// order (timestamp ascending), which matters for capital-gains pairing.
type TransactionRecord struct {
	ID          string     `json:"id"`
	UserID      int64      `json:"-"`
	Type        RecordType `json:"type"`
	SubType     TradeSide  `json:"subType,omitempty"`
	Vendor      string     `json:"vendor"`
	Date        string     `json:"date"`
	Description string     `json:"description,omitempty"`
	TotalAmount float64    `json:"totalAmount"`
	VATAmount   float64    `json:"vatAmount"`
	Timestamp   int64      `json:"timestamp"`
}

// BusinessProfile holds the taxpayer's business type setting.
type BusinessProfile struct {
	BusinessType BusinessType `json:"businessType"`
}

// TaxBracket is one band of a progressive schedule: Width is the amount of
// income taxed at Rate before the remainder rolls into the next bracket.
// A Width <= 0 marks the unbounded top bracket.
type TaxBracket struct {
	Width float64
	Rate  float64
}

// RiskFlag is one triggered audit-risk rule with its remediation hint.
type RiskFlag struct {
	ID       string   `json:"id"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Fix      string   `json:"fix"`
	Weight   int      `json:"weight"`
}

// ComputedSnapshot is the engine's sole output: every field is derived from
// the record collection and business type, and it is recreated in full on
// each recomputation.
type ComputedSnapshot struct {
	IncomeTotal       float64              `json:"incomeTotal"`
	ExpenseTotal      float64              `json:"expenseTotal"`
	NetProfit         float64              `json:"netProfit"`
	VATIn             float64              `json:"vatIn"`
	VATOut            float64              `json:"vatOut"`
	VATPayable        float64              `json:"vatPayable"`
	InvestmentTotal   float64              `json:"investmentTotal"`
	RealizedGains     float64              `json:"realizedGains"`
	EstimatedCGT      float64              `json:"estimatedCGT"`
	EstimatedPAYE     float64              `json:"estimatedPAYE"`
	EstimatedCorpTax  float64              `json:"estimatedCorpTax"`
	CategoryBreakdown map[Category]float64 `json:"categoryBreakdown"`
	RiskFlags         []RiskFlag           `json:"riskFlags"`
	RiskScore         int                  `json:"riskScore"`
}
