package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/username/taxmate/backend/src/engine"
	"github.com/username/taxmate/backend/src/models"
	"github.com/username/taxmate/backend/src/services"
	"github.com/username/taxmate/backend/src/utils"
)

type FilingHandler struct {
	filingService services.FilingService
}

func NewFilingHandler(filingService services.FilingService) *FilingHandler {
	return &FilingHandler{filingService: filingService}
}

func (h *FilingHandler) HandleSubmitFiling(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var request struct {
		Type   models.ReturnType `json:"type"`
		Period int               `json:"period"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if request.Period == 0 {
		request.Period = time.Now().Year()
	}

	filing, err := h.filingService.SubmitFiling(userID, request.Type, request.Period)
	if err != nil {
		var invalidErr *engine.InvalidRecordError
		switch {
		case errors.Is(err, services.ErrUnknownReturnType):
			utils.SendJSONError(w, "type must be one of VAT, PAYE, CorpIT, CGT", http.StatusBadRequest)
		case errors.Is(err, services.ErrNoRealizedGains):
			utils.SendJSONError(w, "No realized capital gains to file", http.StatusUnprocessableEntity)
		case errors.As(err, &invalidErr):
			utils.SendJSONError(w, invalidErr.Error(), http.StatusUnprocessableEntity)
		default:
			utils.SendJSONError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(filing)
}

func (h *FilingHandler) HandleListFilings(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	filings, err := h.filingService.ListFilings(userID)
	if err != nil {
		utils.SendJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, filings)
}
