package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/username/taxmate/backend/src/services"
	"github.com/username/taxmate/backend/src/utils"
)

type InvoiceHandler struct {
	invoiceService services.InvoiceService
}

func NewInvoiceHandler(invoiceService services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func (h *InvoiceHandler) HandleIssueInvoice(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var request struct {
		RecordID string `json:"recordId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if request.RecordID == "" {
		utils.SendJSONError(w, "recordId is required", http.StatusBadRequest)
		return
	}

	invoice, err := h.invoiceService.IssueInvoice(userID, request.RecordID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRecordNotFound):
			utils.SendJSONError(w, "Record not found", http.StatusNotFound)
		case errors.Is(err, services.ErrNotIncomeRecord):
			utils.SendJSONError(w, "Invoices can only be issued for income records", http.StatusUnprocessableEntity)
		default:
			utils.SendJSONError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(invoice)
}

func (h *InvoiceHandler) HandleListInvoices(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	invoices, err := h.invoiceService.ListInvoices(userID)
	if err != nil {
		utils.SendJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, invoices)
}
