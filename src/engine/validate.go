package engine

import (
	"math"

	"github.com/username/taxmate/backend/src/models"
)

// ValidateRecords checks the engine's input contract: amounts must be real,
// non-negative numbers and a trade side may only appear on investment
// records. The first offending record aborts the walk.
func ValidateRecords(records []models.TransactionRecord) error {
	for i := range records {
		r := &records[i]
		if err := validateAmount(r.ID, "totalAmount", r.TotalAmount); err != nil {
			return err
		}
		if err := validateAmount(r.ID, "vatAmount", r.VATAmount); err != nil {
			return err
		}
		switch r.Type {
		case models.RecordTypeIncome, models.RecordTypeExpense:
			if r.SubType != models.TradeSideNone {
				return &InvalidRecordError{RecordID: r.ID, Field: "subType", Reason: "only investment records may carry a buy/sell side"}
			}
		case models.RecordTypeInvestment:
			if r.SubType != models.TradeSideNone && r.SubType != models.TradeSideBuy && r.SubType != models.TradeSideSell {
				return &InvalidRecordError{RecordID: r.ID, Field: "subType", Reason: "unknown trade side"}
			}
		default:
			return &InvalidRecordError{RecordID: r.ID, Field: "type", Reason: "unknown record type"}
		}
	}
	return nil
}

func validateAmount(recordID, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidRecordError{RecordID: recordID, Field: field, Reason: "amount is not a finite number"}
	}
	if v < 0 {
		return &InvalidRecordError{RecordID: recordID, Field: field, Reason: "amount must be non-negative"}
	}
	return nil
}
