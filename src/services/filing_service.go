package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/username/taxmate/backend/src/logger"
	"github.com/username/taxmate/backend/src/model"
	"github.com/username/taxmate/backend/src/models"
	"github.com/username/taxmate/backend/src/utils"
)

var (
	ErrUnknownReturnType = errors.New("unknown return type")
	ErrNoRealizedGains   = errors.New("no realized capital gains to file")
)

// FilingStatusAccepted is the terminal status the mock GavaConnect channel
// returns. There is no live submission path yet; every accepted draft gets a
// MOCK- prefixed receipt reference.
const FilingStatusAccepted = "Accepted"

type filingServiceImpl struct {
	db        *sql.DB
	snapshots SnapshotService
	email     EmailService
}

func NewFilingService(db *sql.DB, snapshots SnapshotService, email EmailService) FilingService {
	return &filingServiceImpl{db: db, snapshots: snapshots, email: email}
}

// SubmitFiling computes the current snapshot, picks the liability figure for
// the requested return type and records the submission. The receipt email is
// best effort: a send failure never fails the filing.
func (s *filingServiceImpl) SubmitFiling(userID int64, returnType models.ReturnType, period int) (*models.Filing, error) {
	view, err := s.snapshots.GetSnapshot(userID)
	if err != nil {
		return nil, fmt.Errorf("computing snapshot for filing: %w", err)
	}

	var amount float64
	switch returnType {
	case models.ReturnTypeVAT:
		amount = view.VATPayable
	case models.ReturnTypePAYE:
		amount = view.EstimatedPAYE
	case models.ReturnTypeCorpIT:
		amount = view.EstimatedCorpTax
	case models.ReturnTypeCGT:
		if view.RealizedGains <= 0 {
			return nil, ErrNoRealizedGains
		}
		amount = view.EstimatedCGT
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownReturnType, returnType)
	}

	filing := &models.Filing{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      returnType,
		Period:    period,
		Amount:    utils.RoundFloat(amount, 2),
		Reference: fmt.Sprintf("MOCK-%d", time.Now().UnixMilli()),
		Status:    FilingStatusAccepted,
		CreatedAt: time.Now(),
	}

	_, err = s.db.Exec(`INSERT INTO filings (id, user_id, type, period, amount, reference, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		filing.ID, filing.UserID, string(filing.Type), filing.Period, filing.Amount,
		filing.Reference, filing.Status, filing.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("storing filing: %w", err)
	}
	logger.L.Info("Filing submitted", "userID", userID, "type", returnType, "period", period, "amount", amount, "reference", filing.Reference)

	if user, userErr := model.GetUserByID(s.db, userID); userErr == nil {
		if mailErr := s.email.SendFilingReceiptEmail(user.Email, user.Username, filing); mailErr != nil {
			logger.L.Warn("Failed to send filing receipt email", "userID", userID, "filingID", filing.ID, "error", mailErr)
		}
	} else {
		logger.L.Warn("Could not load user for filing receipt email", "userID", userID, "error", userErr)
	}

	return filing, nil
}

func (s *filingServiceImpl) ListFilings(userID int64) ([]models.Filing, error) {
	rows, err := s.db.Query(`SELECT id, user_id, type, period, amount, reference, status, created_at
		FROM filings WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying filings for user %d: %w", userID, err)
	}
	defer rows.Close()

	filings := []models.Filing{}
	for rows.Next() {
		var f models.Filing
		var filingType string
		if err := rows.Scan(&f.ID, &f.UserID, &filingType, &f.Period, &f.Amount, &f.Reference, &f.Status, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning filing for user %d: %w", userID, err)
		}
		f.Type = models.ReturnType(filingType)
		filings = append(filings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return filings, nil
}
