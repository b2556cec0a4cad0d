package services

import (
	"github.com/username/taxmate/backend/src/engine"
	"github.com/username/taxmate/backend/src/models"
)

// SnapshotView is the full dashboard payload: the computed snapshot plus the
// advisory alerts derived from it and the profile setting it was computed
// under.
type SnapshotView struct {
	models.ComputedSnapshot
	BusinessType models.BusinessType      `json:"businessType"`
	Alerts       []engine.ComplianceAlert `json:"alerts"`
}

// RiskView is the standalone audit-risk payload.
type RiskView struct {
	Flags []models.RiskFlag `json:"flags"`
	Score int               `json:"score"`
}

// RecordService owns the transaction record collection for each user.
type RecordService interface {
	CreateRecord(userID int64, record models.TransactionRecord) (*models.TransactionRecord, error)
	ListRecords(userID int64) ([]models.TransactionRecord, error)
	GetRecord(userID int64, recordID string) (*models.TransactionRecord, error)
	UpdateRecord(userID int64, record models.TransactionRecord) (*models.TransactionRecord, error)
	DeleteRecord(userID int64, recordID string) error
	DeleteAllRecords(userID int64) error
}

// SnapshotService runs the tax engine over a user's records and memoizes the
// result per record-collection content.
type SnapshotService interface {
	GetSnapshot(userID int64) (*SnapshotView, error)
	GetCapitalGains(userID int64) (*engine.GainsResult, error)
	GetRisk(userID int64) (*RiskView, error)
}

// FilingService submits return drafts through the mock GavaConnect channel.
type FilingService interface {
	SubmitFiling(userID int64, returnType models.ReturnType, period int) (*models.Filing, error)
	ListFilings(userID int64) ([]models.Filing, error)
}

// InvoiceService issues eTIMS-style electronic invoices from income records.
type InvoiceService interface {
	IssueInvoice(userID int64, recordID string) (*models.Invoice, error)
	ListInvoices(userID int64) ([]models.Invoice, error)
}
