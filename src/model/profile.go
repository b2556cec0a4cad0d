package model

import (
	"database/sql"
	"time"

	"github.com/username/taxmate/backend/src/models"
)

// GetBusinessProfile reads the stored business type for a user. Users who
// have never saved a profile default to personal treatment.
func GetBusinessProfile(db *sql.DB, userID int64) (*models.BusinessProfile, error) {
	row := db.QueryRow(`SELECT business_type FROM business_profiles WHERE user_id = ?`, userID)
	var businessType string
	err := row.Scan(&businessType)
	if err != nil {
		if err == sql.ErrNoRows {
			return &models.BusinessProfile{BusinessType: models.BusinessTypePersonal}, nil
		}
		return nil, err
	}
	return &models.BusinessProfile{BusinessType: models.BusinessType(businessType)}, nil
}

// SaveBusinessProfile upserts the business type for a user.
func SaveBusinessProfile(db *sql.DB, userID int64, businessType models.BusinessType) error {
	_, err := db.Exec(`INSERT INTO business_profiles (user_id, business_type, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET business_type = excluded.business_type, updated_at = excluded.updated_at`,
		userID, string(businessType), time.Now())
	return err
}
