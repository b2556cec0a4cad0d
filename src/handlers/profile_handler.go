package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/username/taxmate/backend/src/database"
	"github.com/username/taxmate/backend/src/logger"
	"github.com/username/taxmate/backend/src/model"
	"github.com/username/taxmate/backend/src/models"
	"github.com/username/taxmate/backend/src/utils"
)

type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	profile, err := model.GetBusinessProfile(database.DB, userID)
	if err != nil {
		logger.L.Error("Failed to load business profile", "userID", userID, "error", err)
		utils.SendJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, profile)
}

// HandleUpdateProfile switches the taxpayer between personal PAYE and flat
// corporate treatment. The next snapshot request picks the change up.
func (h *ProfileHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var profile models.BusinessProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if profile.BusinessType != models.BusinessTypePersonal && profile.BusinessType != models.BusinessTypeOrganization {
		utils.SendJSONError(w, "businessType must be 'personal' or 'organization'", http.StatusBadRequest)
		return
	}

	if err := model.SaveBusinessProfile(database.DB, userID, profile.BusinessType); err != nil {
		logger.L.Error("Failed to save business profile", "userID", userID, "error", err)
		utils.SendJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	logger.L.Info("Business profile updated", "userID", userID, "businessType", profile.BusinessType)
	utils.SendJSON(w, profile)
}
