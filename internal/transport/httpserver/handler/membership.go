package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"society-ledger/internal/domain/membership"
	"society-ledger/internal/domain/society"
	"society-ledger/internal/transport/httpserver/middleware"
)

type registerApartmentRequest struct {
	SecretaryName      string  `json:"secretaryName"`
	Phone              string  `json:"phone"`
	Email              string  `json:"email"`
	Avatar             string  `json:"avatar"`
	ApartmentName      string  `json:"apartmentName"`
	DefaultMaintenance float64 `json:"defaultMaintenance"`
}

type joinApartmentRequest struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Flat          string `json:"flat"`
	Avatar        string `json:"avatar"`
	FamilyMembers int    `json:"familyMembers"`
}

type loginRequest struct {
	Phone string `json:"phone"`
}

type apartmentResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	SecretaryPhone     string    `json:"secretaryPhone"`
	SecretaryEmail     string    `json:"secretaryEmail,omitempty"`
	DefaultMaintenance float64   `json:"defaultMaintenance"`
	CreatedAt          time.Time `json:"createdAt"`
}

type authResponse struct {
	Token     string            `json:"token"`
	User      society.Resident  `json:"user"`
	Apartment apartmentResponse `json:"apartment"`
}

func toApartmentResponse(a society.Apartment) apartmentResponse {
	return apartmentResponse{
		ID:                 a.ID,
		Name:               a.Name,
		SecretaryPhone:     a.SecretaryPhone,
		SecretaryEmail:     a.SecretaryEmail,
		DefaultMaintenance: a.DefaultMaintenance,
		CreatedAt:          a.CreatedAt,
	}
}

func toAuthResponse(auth *membership.Auth) authResponse {
	return authResponse{
		Token:     auth.Session.Token,
		User:      auth.User,
		Apartment: toApartmentResponse(auth.Apartment),
	}
}

func (h *Handlers) RegisterApartment(w http.ResponseWriter, r *http.Request) {
	var req registerApartmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.SecretaryName) == "" || strings.TrimSpace(req.ApartmentName) == "" || strings.TrimSpace(req.Phone) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name, apartment name and phone are required")
		return
	}
	if req.DefaultMaintenance < 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "default maintenance must be positive")
		return
	}

	auth, err := h.Membership.RegisterApartment(r.Context(), membership.RegisterInput{
		SecretaryName:      req.SecretaryName,
		Phone:              req.Phone,
		Email:              req.Email,
		Avatar:             req.Avatar,
		ApartmentName:      req.ApartmentName,
		DefaultMaintenance: req.DefaultMaintenance,
	})
	if err != nil {
		h.log.InternalError("membership.register: register failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toAuthResponse(auth))
}

func (h *Handlers) JoinApartment(w http.ResponseWriter, r *http.Request) {
	var req joinApartmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Phone) == "" || strings.TrimSpace(req.Flat) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "code, name, phone and flat are required")
		return
	}

	auth, err := h.Membership.JoinApartment(r.Context(), membership.JoinInput{
		Code:          req.Code,
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		Flat:          req.Flat,
		Avatar:        req.Avatar,
		FamilyMembers: req.FamilyMembers,
	})
	if err != nil {
		switch {
		case errors.Is(err, membership.ErrInviteNotFound):
			h.log.BusinessError("membership.join: invite not found", err, "code", req.Code)
			writeError(w, http.StatusNotFound, "invite_not_found", "invalid or expired invitation code")
		case errors.Is(err, membership.ErrPhoneTaken):
			h.log.BusinessError("membership.join: phone taken", err, "phone", req.Phone)
			writeError(w, http.StatusConflict, "phone_taken", "phone already registered")
		case errors.Is(err, society.ErrStaleDocument):
			h.log.BusinessError("membership.join: concurrent write", err)
			writeError(w, http.StatusConflict, "conflict", "apartment was modified concurrently, retry")
		default:
			h.log.InternalError("membership.join: join failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(auth))
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.Phone) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "phone is required")
		return
	}

	auth, err := h.Membership.Login(r.Context(), req.Phone)
	if err != nil {
		if errors.Is(err, membership.ErrPhoneNotFound) {
			h.log.BusinessError("membership.login: user not found", err)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
			return
		}
		h.log.InternalError("membership.login: login failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(auth))
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session")
		return
	}

	if err := h.Membership.Logout(r.Context(), principal.Token); err != nil {
		h.log.InternalError("membership.logout: logout failed", err, "user_id", principal.UserID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session")
		return
	}

	user, apartment, err := h.Membership.Me(r.Context(), principal.ApartmentID, principal.UserID)
	if err != nil {
		h.membershipError(w, "membership.me", err, principal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":      user,
		"apartment": toApartmentResponse(*apartment),
	})
}

func (h *Handlers) GenerateInvite(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session")
		return
	}

	invite, err := h.Membership.GenerateInviteCode(r.Context(), principal.ApartmentID, principal.UserID)
	if err != nil {
		h.membershipError(w, "membership.generate_invite", err, principal)
		return
	}

	writeJSON(w, http.StatusCreated, invite)
}

func (h *Handlers) ListInvites(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session")
		return
	}

	invites, err := h.Membership.ActiveInvites(r.Context(), principal.ApartmentID)
	if err != nil {
		h.membershipError(w, "membership.list_invites", err, principal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"invites": invites})
}

func (h *Handlers) ListResidents(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session")
		return
	}

	residents, err := h.Membership.Residents(r.Context(), principal.ApartmentID)
	if err != nil {
		h.membershipError(w, "membership.list_residents", err, principal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"residents": residents})
}

func (h *Handlers) membershipError(w http.ResponseWriter, op string, err error, principal middleware.Principal) {
	switch {
	case errors.Is(err, society.ErrApartmentNotFound):
		h.log.BusinessError(op+": apartment not found", err, "apartment_id", principal.ApartmentID)
		writeError(w, http.StatusNotFound, "apartment_not_found", "apartment not found")
	case errors.Is(err, membership.ErrResidentNotFound):
		h.log.BusinessError(op+": resident not found", err, "user_id", principal.UserID)
		writeError(w, http.StatusNotFound, "resident_not_found", "resident not found")
	case errors.Is(err, membership.ErrNotSecretary):
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
