package services

import (
	"database/sql"
	"fmt"

	"github.com/patrickmn/go-cache"
	"github.com/username/taxmate/backend/src/engine"
	"github.com/username/taxmate/backend/src/logger"
	"github.com/username/taxmate/backend/src/model"
	"github.com/username/taxmate/backend/src/models"
	"github.com/username/taxmate/backend/src/utils"
)

type snapshotServiceImpl struct {
	db      *sql.DB
	engine  *engine.TaxEngine
	records RecordService
	cache   *cache.Cache
}

// NewSnapshotService wires the tax engine to the record store. Computed
// snapshots are memoized keyed on a content hash of the inputs, so a cache
// entry can never serve stale figures: any change to the records or the
// business type produces a different key.
func NewSnapshotService(db *sql.DB, taxEngine *engine.TaxEngine, records RecordService, c *cache.Cache) SnapshotService {
	return &snapshotServiceImpl{
		db:      db,
		engine:  taxEngine,
		records: records,
		cache:   c,
	}
}

type snapshotInputs struct {
	Records      []models.TransactionRecord `json:"records"`
	BusinessType models.BusinessType        `json:"businessType"`
}

func (s *snapshotServiceImpl) loadInputs(userID int64) (*snapshotInputs, error) {
	records, err := s.records.ListRecords(userID)
	if err != nil {
		return nil, err
	}
	profile, err := model.GetBusinessProfile(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("loading business profile for user %d: %w", userID, err)
	}
	return &snapshotInputs{Records: records, BusinessType: profile.BusinessType}, nil
}

func (s *snapshotServiceImpl) GetSnapshot(userID int64) (*SnapshotView, error) {
	inputs, err := s.loadInputs(userID)
	if err != nil {
		return nil, err
	}

	contentHash, err := utils.ContentHash(inputs)
	if err != nil {
		return nil, fmt.Errorf("hashing snapshot inputs: %w", err)
	}
	cacheKey := fmt.Sprintf("snapshot:%d:%s", userID, contentHash)

	if cached, found := s.cache.Get(cacheKey); found {
		if view, ok := cached.(*SnapshotView); ok {
			logger.L.Debug("Snapshot served from cache", "userID", userID, "cacheKey", cacheKey)
			return view, nil
		}
	}

	snap, err := s.engine.ComputeSnapshot(inputs.Records, inputs.BusinessType)
	if err != nil {
		return nil, err
	}

	view := &SnapshotView{
		ComputedSnapshot: *snap,
		BusinessType:     inputs.BusinessType,
		Alerts:           engine.ComplianceAlerts(snap, inputs.Records),
	}
	s.cache.Set(cacheKey, view, cache.DefaultExpiration)
	logger.L.Info("Snapshot computed", "userID", userID, "records", len(inputs.Records), "riskScore", view.RiskScore)
	return view, nil
}

func (s *snapshotServiceImpl) GetCapitalGains(userID int64) (*engine.GainsResult, error) {
	records, err := s.records.ListRecords(userID)
	if err != nil {
		return nil, err
	}
	gains, err := s.engine.MatchCapitalGains(records)
	if err != nil {
		return nil, err
	}
	return &gains, nil
}

func (s *snapshotServiceImpl) GetRisk(userID int64) (*RiskView, error) {
	view, err := s.GetSnapshot(userID)
	if err != nil {
		return nil, err
	}
	return &RiskView{Flags: view.RiskFlags, Score: view.RiskScore}, nil
}
