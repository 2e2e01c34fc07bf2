package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"society-ledger/internal/domain/finance"
	"society-ledger/internal/domain/society"
	"society-ledger/internal/transport/httpserver/middleware"
)

type recordPaymentRequest struct {
	ResidentID string  `json:"residentId"`
	Amount     float64 `json:"amount"`
	Reference  string  `json:"reference"`
}

type recordContributionRequest struct {
	ResidentID string  `json:"residentId"`
	Amount     float64 `json:"amount"`
	Details    string  `json:"details"`
}

type addExpenseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Details     string  `json:"details"`
}

type confirmPaymentRequest struct {
	Amount    float64 `json:"amount"`
	Reference string  `json:"reference"`
}

type paymentInfoRequest struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"ifsc"`
	UPI           string `json:"upi"`
	QRPayload     string `json:"qrPayload"`
}

func (h *Handlers) RecordPayment(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session")
		return
	}

	var req recordPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.ResidentID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "resident id is required")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "amount must be positive")
		return
	}

	record, err := h.Finance.RecordMaintenancePayment(r.Context(), principal.ApartmentID, principal.UserID, req.ResidentID, req.Amount, req.Reference)
	if err != nil {
		h.financeError(w, "finance.record_payment", err, principal)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

func (h *Handlers) RecordContribution(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session")
		return
	}

	var req recordContributionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.ResidentID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "resident id is required")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "amount must be positive")
		return
	}
	if strings.TrimSpace(req.Details) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "details are required")
		return
	}

	contribution, err := h.Finance.RecordContribution(r.Context(), principal.ApartmentID, principal.UserID, req.ResidentID, req.Amount, req.Details)
	if err != nil {
		h.financeError(w, "finance.record_contribution", err, principal)
		return
	}

	writeJSON(w, http.StatusCreated, contribution)
}

func (h *Handlers) AddExpense(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session")
		return
	}

	var req addExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "description is required")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "amount must be positive")
		return
	}

	expense, err := h.Finance.AddExpense(r.Context(), principal.ApartmentID, principal.UserID, finance.AddExpenseInput{
		Description: req.Description,
		Amount:      req.Amount,
		Details:     req.Details,
	})
	if err != nil {
		h.financeError(w, "finance.add_expense", err, principal)
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

func (h *Handlers) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session")
		return
	}

	var req confirmPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "amount must be positive")
		return
	}

	record, err := h.Finance.ConfirmPayment(r.Context(), principal.ApartmentID, principal.UserID, req.Amount, req.Reference)
	if err != nil {
		h.financeError(w, "finance.confirm_payment", err, principal)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

func (h *Handlers) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session")
		return
	}

	recordID := chi.URLParam(r, "record_id")
	if recordID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "record id is required")
		return
	}

	record, err := h.Finance.VerifyPayment(r.Context(), principal.ApartmentID, principal.UserID, recordID)
	if err != nil {
		switch {
		case errors.Is(err, finance.ErrRecordNotFound):
			h.log.BusinessError("finance.verify_payment: record not found", err, "record_id", recordID)
			writeError(w, http.StatusNotFound, "record_not_found", "maintenance record not found")
		case errors.Is(err, finance.ErrNotSelfReported):
			h.log.BusinessError("finance.verify_payment: not self-reported", err, "record_id", recordID)
			writeError(w, http.StatusBadRequest, "not_self_reported", "only self-reported records can be verified")
		default:
			h.financeError(w, "finance.verify_payment", err, principal)
		}
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *Handlers) SavePaymentInfo(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session")
		return
	}

	var req paymentInfoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	info, err := h.Finance.SavePaymentInfo(r.Context(), principal.ApartmentID, principal.UserID, society.PaymentInfo{
		BankName:      strings.TrimSpace(req.BankName),
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		IFSC:          strings.TrimSpace(req.IFSC),
		UPI:           strings.TrimSpace(req.UPI),
		QRPayload:     strings.TrimSpace(req.QRPayload),
	})
	if err != nil {
		h.financeError(w, "finance.save_payment_info", err, principal)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (h *Handlers) GetPaymentInfo(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session")
		return
	}

	info, err := h.Finance.PaymentInfo(r.Context(), principal.ApartmentID)
	if err != nil {
		h.financeError(w, "finance.get_payment_info", err, principal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"paymentInfo": info})
}

func (h *Handlers) MaintenanceStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session")
		return
	}

	statuses, err := h.Finance.MaintenanceStatus(r.Context(), principal.ApartmentID)
	if err != nil {
		h.financeError(w, "finance.maintenance_status", err, principal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"statuses": statuses})
}

func (h *Handlers) ExpenseSummary(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session")
		return
	}

	summary, err := h.Finance.ExpenseSummary(r.Context(), principal.ApartmentID)
	if err != nil {
		h.financeError(w, "finance.expense_summary", err, principal)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *Handlers) Balance(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session")
		return
	}

	balance, err := h.Finance.AvailableBalance(r.Context(), principal.ApartmentID)
	if err != nil {
		h.financeError(w, "finance.balance", err, principal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"availableBalance": balance})
}

func (h *Handlers) financeError(w http.ResponseWriter, op string, err error, principal middleware.Principal) {
	switch {
	case errors.Is(err, society.ErrApartmentNotFound):
		h.log.BusinessError(op+": apartment not found", err, "apartment_id", principal.ApartmentID)
		writeError(w, http.StatusNotFound, "apartment_not_found", "apartment not found")
	case errors.Is(err, finance.ErrResidentNotFound):
		h.log.BusinessError(op+": resident not found", err, "apartment_id", principal.ApartmentID)
		writeError(w, http.StatusNotFound, "resident_not_found", "resident not found")
	case errors.Is(err, finance.ErrNotSecretary):
		h.log.BusinessError(op+": not secretary", err, "user_id", principal.UserID)
		writeError(w, http.StatusForbidden, "not_secretary", "secretary role required")
	case errors.Is(err, society.ErrStaleDocument):
		h.log.BusinessError(op+": concurrent write", err, "apartment_id", principal.ApartmentID)
		writeError(w, http.StatusConflict, "conflict", "apartment was modified concurrently, retry")
	default:
		h.log.InternalError(op+": failed", err, "apartment_id", principal.ApartmentID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
