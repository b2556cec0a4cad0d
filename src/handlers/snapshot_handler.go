package handlers

import (
	"errors"
	"net/http"

	"github.com/username/taxmate/backend/src/engine"
	"github.com/username/taxmate/backend/src/services"
	"github.com/username/taxmate/backend/src/utils"
)

type SnapshotHandler struct {
	snapshotService services.SnapshotService
}

func NewSnapshotHandler(snapshotService services.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{snapshotService: snapshotService}
}

func sendSnapshotError(w http.ResponseWriter, err error) {
	var invalidErr *engine.InvalidRecordError
	if errors.As(err, &invalidErr) {
		utils.SendJSONError(w, invalidErr.Error(), http.StatusUnprocessableEntity)
		return
	}
	utils.SendJSONError(w, "Internal server error", http.StatusInternalServerError)
}

// HandleGetSnapshot returns the full computed snapshot with compliance
// alerts. The figures are recomputed from the stored records on every call
// unless the memoized result is still current.
func (h *SnapshotHandler) HandleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	view, err := h.snapshotService.GetSnapshot(userID)
	if err != nil {
		sendSnapshotError(w, err)
		return
	}
	utils.SendJSON(w, view)
}

func (h *SnapshotHandler) HandleGetCapitalGains(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	gains, err := h.snapshotService.GetCapitalGains(userID)
	if err != nil {
		sendSnapshotError(w, err)
		return
	}
	utils.SendJSON(w, gains)
}

func (h *SnapshotHandler) HandleGetRisk(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	risk, err := h.snapshotService.GetRisk(userID)
	if err != nil {
		sendSnapshotError(w, err)
		return
	}
	utils.SendJSON(w, risk)
}
