package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/username/taxmate/backend/src/logger"
	"github.com/username/taxmate/backend/src/models"
)

var ErrNotIncomeRecord = errors.New("invoices can only be issued for income records")

// InvoiceStatusIssued is the status the mock eTIMS channel assigns on issue.
const InvoiceStatusIssued = "Issued"

type invoiceServiceImpl struct {
	db      *sql.DB
	records RecordService
}

func NewInvoiceService(db *sql.DB, records RecordService) InvoiceService {
	return &invoiceServiceImpl{db: db, records: records}
}

// IssueInvoice creates an electronic invoice from an existing income record.
// The invoice copies the record's figures at issue time; later edits to the
// record do not alter already-issued invoices.
func (s *invoiceServiceImpl) IssueInvoice(userID int64, recordID string) (*models.Invoice, error) {
	record, err := s.records.GetRecord(userID, recordID)
	if err != nil {
		return nil, err
	}
	if record.Type != models.RecordTypeIncome {
		return nil, ErrNotIncomeRecord
	}

	invoice := &models.Invoice{
		ID:          uuid.New().String(),
		UserID:      userID,
		RecordID:    record.ID,
		Amount:      record.TotalAmount,
		VAT:         record.VATAmount,
		Date:        record.Date,
		Description: record.Description,
		Status:      InvoiceStatusIssued,
		CreatedAt:   time.Now(),
	}

	_, err = s.db.Exec(`INSERT INTO invoices (id, user_id, record_id, amount, vat, date, description, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		invoice.ID, invoice.UserID, invoice.RecordID, invoice.Amount, invoice.VAT,
		invoice.Date, invoice.Description, invoice.Status, invoice.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("storing invoice: %w", err)
	}
	logger.L.Info("Invoice issued", "userID", userID, "invoiceID", invoice.ID, "recordID", recordID)
	return invoice, nil
}

func (s *invoiceServiceImpl) ListInvoices(userID int64) ([]models.Invoice, error) {
	rows, err := s.db.Query(`SELECT id, user_id, record_id, amount, vat, date, description, status, created_at
		FROM invoices WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying invoices for user %d: %w", userID, err)
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		var inv models.Invoice
		var description sql.NullString
		if err := rows.Scan(&inv.ID, &inv.UserID, &inv.RecordID, &inv.Amount, &inv.VAT,
			&inv.Date, &description, &inv.Status, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning invoice for user %d: %w", userID, err)
		}
		inv.Description = description.String
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return invoices, nil
}
