package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueInvoiceFromIncomeRecord(t *testing.T) {
	db := newTestDB(t)
	records := NewRecordService(db)
	invoices := NewInvoiceService(db, records)
	userID := insertTestUser(t, db, "alice", "alice@example.com")

	rec := incomeRecord(100000, 16000)
	rec.Description = "Consulting services"
	created, err := records.CreateRecord(userID, rec)
	require.NoError(t, err)

	invoice, err := invoices.IssueInvoice(userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, invoice.RecordID)
	assert.InDelta(t, 100000.0, invoice.Amount, 1e-9)
	assert.InDelta(t, 16000.0, invoice.VAT, 1e-9)
	assert.Equal(t, "Consulting services", invoice.Description)
	assert.Equal(t, InvoiceStatusIssued, invoice.Status)

	listed, err := invoices.ListInvoices(userID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, invoice.ID, listed[0].ID)
}

func TestIssueInvoiceRejectsNonIncomeRecords(t *testing.T) {
	db := newTestDB(t)
	records := NewRecordService(db)
	invoices := NewInvoiceService(db, records)
	userID := insertTestUser(t, db, "alice", "alice@example.com")

	expense, err := records.CreateRecord(userID, expenseRecord("Fuel Station", 20000, 0))
	require.NoError(t, err)

	_, err = invoices.IssueInvoice(userID, expense.ID)
	assert.ErrorIs(t, err, ErrNotIncomeRecord)
}

func TestIssueInvoiceUnknownRecord(t *testing.T) {
	db := newTestDB(t)
	records := NewRecordService(db)
	invoices := NewInvoiceService(db, records)
	userID := insertTestUser(t, db, "alice", "alice@example.com")

	_, err := invoices.IssueInvoice(userID, "does-not-exist")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestIssuedInvoiceIsImmutableToRecordEdits(t *testing.T) {
	db := newTestDB(t)
	records := NewRecordService(db)
	invoices := NewInvoiceService(db, records)
	userID := insertTestUser(t, db, "alice", "alice@example.com")

	created, err := records.CreateRecord(userID, incomeRecord(100000, 16000))
	require.NoError(t, err)
	invoice, err := invoices.IssueInvoice(userID, created.ID)
	require.NoError(t, err)

	update := incomeRecord(1, 0)
	update.ID = created.ID
	_, err = records.UpdateRecord(userID, update)
	require.NoError(t, err)

	listed, err := invoices.ListInvoices(userID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, invoice.ID, listed[0].ID)
	assert.InDelta(t, 100000.0, listed[0].Amount, 1e-9, "invoice keeps figures from issue time")
}
