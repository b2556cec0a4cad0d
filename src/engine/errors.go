package engine

import "fmt"

// InvalidRecordError reports a contract violation in a caller-supplied
// record. The engine fails fast instead of coercing bad values to zero,
// since silently repaired records would mask exactly the data-entry
// mistakes the risk scorer exists to catch.
type InvalidRecordError struct {
	RecordID string
	Field    string
	Reason   string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid record %q: field %s: %s", e.RecordID, e.Field, e.Reason)
}
