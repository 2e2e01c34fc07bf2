package handler

import (
	"errors"
	"net/http"

	"society-ledger/internal/domain/society"
	"society-ledger/internal/transport/httpserver/middleware"
)

func (h *Handlers) MaintenanceReport(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session")
		return
	}

	workbook, err := h.Reports.MaintenanceReport(r.Context(), principal.ApartmentID)
	if err != nil {
		if errors.Is(err, society.ErrApartmentNotFound) {
			h.log.BusinessError("report.maintenance: apartment not found", err, "apartment_id", principal.ApartmentID)
			writeError(w, http.StatusNotFound, "apartment_not_found", "apartment not found")
			return
		}
		h.log.InternalError("report.maintenance: build failed", err, "apartment_id", principal.ApartmentID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="maintenance-report.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
