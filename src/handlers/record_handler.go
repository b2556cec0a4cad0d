package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/username/taxmate/backend/src/engine"
	"github.com/username/taxmate/backend/src/models"
	"github.com/username/taxmate/backend/src/services"
	"github.com/username/taxmate/backend/src/utils"
)

type RecordHandler struct {
	recordService services.RecordService
}

func NewRecordHandler(recordService services.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

// sendRecordError maps service errors to HTTP statuses. Validation failures
// carry the offending field back to the client.
func sendRecordError(w http.ResponseWriter, err error) {
	var invalidErr *engine.InvalidRecordError
	switch {
	case errors.As(err, &invalidErr):
		utils.SendJSONError(w, invalidErr.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrRecordNotFound):
		utils.SendJSONError(w, "Record not found", http.StatusNotFound)
	default:
		utils.SendJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *RecordHandler) HandleListRecords(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	records, err := h.recordService.ListRecords(userID)
	if err != nil {
		sendRecordError(w, err)
		return
	}
	utils.SendJSON(w, records)
}

func (h *RecordHandler) HandleCreateRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var record models.TransactionRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.recordService.CreateRecord(userID, record)
	if err != nil {
		sendRecordError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *RecordHandler) HandleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	recordID := r.PathValue("id")
	if recordID == "" {
		utils.SendJSONError(w, "Record ID is required", http.StatusBadRequest)
		return
	}

	var record models.TransactionRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	record.ID = recordID

	updated, err := h.recordService.UpdateRecord(userID, record)
	if err != nil {
		sendRecordError(w, err)
		return
	}
	utils.SendJSON(w, updated)
}

func (h *RecordHandler) HandleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	recordID := r.PathValue("id")
	if recordID == "" {
		utils.SendJSONError(w, "Record ID is required", http.StatusBadRequest)
		return
	}

	if err := h.recordService.DeleteRecord(userID, recordID); err != nil {
		sendRecordError(w, err)
		return
	}
	utils.SendJSON(w, map[string]string{"message": "Record deleted"})
}

func (h *RecordHandler) HandleDeleteAllRecords(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	if err := h.recordService.DeleteAllRecords(userID); err != nil {
		sendRecordError(w, err)
		return
	}
	utils.SendJSON(w, map[string]string{"message": "All records deleted"})
}
