package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/username/taxmate/backend/src/engine"
	"github.com/username/taxmate/backend/src/logger"
	"github.com/username/taxmate/backend/src/models"
	"github.com/username/taxmate/backend/src/security/validation"
)

var ErrRecordNotFound = errors.New("record not found")

type recordServiceImpl struct {
	db *sql.DB
}

// NewRecordService creates a record service backed by the given database.
func NewRecordService(db *sql.DB) RecordService {
	return &recordServiceImpl{db: db}
}

// CreateRecord validates and stores a new transaction record. The server
// assigns the ID and the insertion timestamp; a missing date defaults to
// today.
func (s *recordServiceImpl) CreateRecord(userID int64, record models.TransactionRecord) (*models.TransactionRecord, error) {
	record.ID = uuid.New().String()
	record.UserID = userID
	// Nanosecond resolution keeps insertion order stable even for rapid
	// back-to-back creates; capital-gains pairing depends on it.
	record.Timestamp = time.Now().UnixNano()
	if record.Date == "" {
		record.Date = time.Now().Format("2006-01-02")
	}
	record.Vendor = validation.SanitizeDisplayString(record.Vendor)
	record.Description = validation.SanitizeDisplayString(record.Description)

	if err := engine.ValidateRecords([]models.TransactionRecord{record}); err != nil {
		return nil, err
	}

	_, err := s.db.Exec(`INSERT INTO tax_records (id, user_id, type, sub_type, vendor, date, description, total_amount, vat_amount, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.UserID, string(record.Type), string(record.SubType), record.Vendor,
		record.Date, record.Description, record.TotalAmount, record.VATAmount, record.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("inserting record: %w", err)
	}
	logger.L.Info("Record created", "userID", userID, "recordID", record.ID, "type", record.Type)
	return &record, nil
}

// ListRecords returns the user's records in insertion order. The order is
// load-bearing: capital-gains pairing follows it.
func (s *recordServiceImpl) ListRecords(userID int64) ([]models.TransactionRecord, error) {
	rows, err := s.db.Query(`SELECT id, user_id, type, sub_type, vendor, date, description, total_amount, vat_amount, timestamp
		FROM tax_records WHERE user_id = ? ORDER BY timestamp ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying records for user %d: %w", userID, err)
	}
	defer rows.Close()

	records := []models.TransactionRecord{}
	for rows.Next() {
		var rec models.TransactionRecord
		var recType, subType string
		var description sql.NullString
		if err := rows.Scan(&rec.ID, &rec.UserID, &recType, &subType, &rec.Vendor,
			&rec.Date, &description, &rec.TotalAmount, &rec.VATAmount, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning record for user %d: %w", userID, err)
		}
		rec.Type = models.RecordType(recType)
		rec.SubType = models.TradeSide(subType)
		rec.Description = description.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *recordServiceImpl) GetRecord(userID int64, recordID string) (*models.TransactionRecord, error) {
	row := s.db.QueryRow(`SELECT id, user_id, type, sub_type, vendor, date, description, total_amount, vat_amount, timestamp
		FROM tax_records WHERE user_id = ? AND id = ?`, userID, recordID)

	var rec models.TransactionRecord
	var recType, subType string
	var description sql.NullString
	err := row.Scan(&rec.ID, &rec.UserID, &recType, &subType, &rec.Vendor,
		&rec.Date, &description, &rec.TotalAmount, &rec.VATAmount, &rec.Timestamp)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	rec.Type = models.RecordType(recType)
	rec.SubType = models.TradeSide(subType)
	rec.Description = description.String
	return &rec, nil
}

// UpdateRecord replaces the mutable fields of an existing record. The stored
// timestamp is preserved so the record keeps its position in the collection.
func (s *recordServiceImpl) UpdateRecord(userID int64, record models.TransactionRecord) (*models.TransactionRecord, error) {
	existing, err := s.GetRecord(userID, record.ID)
	if err != nil {
		return nil, err
	}

	record.UserID = userID
	record.Timestamp = existing.Timestamp
	if record.Date == "" {
		record.Date = existing.Date
	}
	record.Vendor = validation.SanitizeDisplayString(record.Vendor)
	record.Description = validation.SanitizeDisplayString(record.Description)

	if err := engine.ValidateRecords([]models.TransactionRecord{record}); err != nil {
		return nil, err
	}

	_, err = s.db.Exec(`UPDATE tax_records SET type = ?, sub_type = ?, vendor = ?, date = ?, description = ?, total_amount = ?, vat_amount = ?
		WHERE user_id = ? AND id = ?`,
		string(record.Type), string(record.SubType), record.Vendor, record.Date,
		record.Description, record.TotalAmount, record.VATAmount, userID, record.ID)
	if err != nil {
		return nil, fmt.Errorf("updating record %s: %w", record.ID, err)
	}
	logger.L.Info("Record updated", "userID", userID, "recordID", record.ID)
	return &record, nil
}

func (s *recordServiceImpl) DeleteRecord(userID int64, recordID string) error {
	res, err := s.db.Exec(`DELETE FROM tax_records WHERE user_id = ? AND id = ?`, userID, recordID)
	if err != nil {
		return fmt.Errorf("deleting record %s: %w", recordID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	logger.L.Info("Record deleted", "userID", userID, "recordID", recordID)
	return nil
}

func (s *recordServiceImpl) DeleteAllRecords(userID int64) error {
	_, err := s.db.Exec(`DELETE FROM tax_records WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("deleting records for user %d: %w", userID, err)
	}
	logger.L.Info("All records deleted", "userID", userID)
	return nil
}
