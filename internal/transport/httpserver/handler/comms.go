package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"society-ledger/internal/domain/comms"
	"society-ledger/internal/domain/society"
	"society-ledger/internal/transport/httpserver/middleware"
)

type postAnnouncementRequest struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiverId"`
	Text       string `json:"text"`
}

func (h *Handlers) PostAnnouncement(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session")
		return
	}

	var req postAnnouncementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "title and message are required")
		return
	}

	announcement, err := h.Comms.PostAnnouncement(r.Context(), principal.ApartmentID, principal.UserID, req.Title, req.Message, req.Priority)
	if err != nil {
		switch {
		case errors.Is(err, comms.ErrInvalidPriority):
			h.log.BusinessError("comms.post_announcement: invalid priority", err, "priority", req.Priority)
			writeError(w, http.StatusBadRequest, "invalid_priority", "priority must be normal, important or urgent")
		default:
			h.commsError(w, "comms.post_announcement", err, principal)
		}
		return
	}

	writeJSON(w, http.StatusCreated, announcement)
}

func (h *Handlers) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session")
		return
	}

	announcements, err := h.Comms.Announcements(r.Context(), principal.ApartmentID)
	if err != nil {
		h.commsError(w, "comms.list_announcements", err, principal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"announcements": announcements})
}

func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session")
		return
	}

	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	if err := h.Comms.SendMessage(r.Context(), principal.ApartmentID, principal.UserID, req.ReceiverID, req.Text); err != nil {
		h.commsError(w, "comms.send_message", err, principal)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Conversation(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session")
		return
	}

	partnerID := chi.URLParam(r, "partner_id")
	if partnerID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "partner id is required")
		return
	}

	messages, err := h.Comms.Conversation(r.Context(), principal.ApartmentID, principal.UserID, partnerID)
	if err != nil {
		h.commsError(w, "comms.conversation", err, principal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (h *Handlers) commsError(w http.ResponseWriter, op string, err error, principal middleware.Principal) {
	switch {
	case errors.Is(err, society.ErrApartmentNotFound):
		h.log.BusinessError(op+": apartment not found", err, "apartment_id", principal.ApartmentID)
		writeError(w, http.StatusNotFound, "apartment_not_found", "apartment not found")
	case errors.Is(err, comms.ErrAuthorNotFound), errors.Is(err, comms.ErrSenderNotFound):
		h.log.BusinessError(op+": sender not found", err, "user_id", principal.UserID)
		writeError(w, http.StatusNotFound, "resident_not_found", "resident not found")
	case errors.Is(err, comms.ErrReceiverNotFound):
		h.log.BusinessError(op+": receiver not found", err)
		writeError(w, http.StatusNotFound, "receiver_not_found", "receiver not found")
	case errors.Is(err, comms.ErrNotSecretary):
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
