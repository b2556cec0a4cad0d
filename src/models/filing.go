package models

import "time"

// ReturnType identifies which liability a filing submits.
type ReturnType string

const (
	ReturnTypeVAT    ReturnType = "VAT"
	ReturnTypePAYE   ReturnType = "PAYE"
	ReturnTypeCorpIT ReturnType = "CorpIT"
	ReturnTypeCGT    ReturnType = "CGT"
)

// Filing is a submitted tax return draft. Submission goes through the mock
// GavaConnect integration, so Reference carries a MOCK- prefixed receipt.
type Filing struct {
	ID        string     `json:"id"`
	UserID    int64      `json:"-"`
	Type      ReturnType `json:"type"`
	Period    int        `json:"period"`
	Amount    float64    `json:"amount"`
	Reference string     `json:"reference"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// Invoice is an eTIMS-style electronic invoice issued from an income record.
type Invoice struct {
	ID          string    `json:"invoiceId"`
	UserID      int64     `json:"-"`
	RecordID    string    `json:"recordId"`
	Amount      float64   `json:"amount"`
	VAT         float64   `json:"vat"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
