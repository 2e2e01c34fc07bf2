// Package membership creates apartments, admits residents through invite
// codes and resolves logins by phone number.
package membership

import (
	"context"
	"fmt"
	"strings"
	"time"

	"society-ledger/internal/domain/session"
	"society-ledger/internal/domain/society"
)

const (
	defaultMaintenanceFallback = 1000
	inviteCodeAttempts         = 10
)

type Service struct {
	store    society.Store
	sessions session.Store
}

func NewService(store society.Store, sessions session.Store) *Service {
	return &Service{store: store, sessions: sessions}
}

// Auth is the result of any operation that establishes a session.
type Auth struct {
	Session   session.Session
	User      society.Resident
	Apartment society.Apartment
}

type RegisterInput struct {
	SecretaryName      string
	Phone              string
	Email              string
	Avatar             string
	ApartmentName      string
	DefaultMaintenance float64
}

type JoinInput struct {
	Code          string
	Name          string
	Phone         string
	Email         string
	Flat          string
	Avatar        string
	FamilyMembers int
}

// RegisterApartment creates a new apartment with its single secretary
// resident, persists it and establishes the secretary's session.
func (s *Service) RegisterApartment(ctx context.Context, input RegisterInput) (*Auth, error) {
	name := strings.TrimSpace(input.SecretaryName)
	apartmentName := strings.TrimSpace(input.ApartmentName)
	phone := strings.TrimSpace(input.Phone)

	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if apartmentName == "" {
		return nil, fmt.Errorf("apartment name is required")
	}
	if phone == "" {
		return nil, fmt.Errorf("phone is required")
	}
	if input.DefaultMaintenance < 0 {
		return nil, fmt.Errorf("default maintenance must be positive")
	}

	maintenance := input.DefaultMaintenance
	if maintenance == 0 {
		maintenance = defaultMaintenanceFallback
	}

	now := time.Now().UTC()
	apartment := society.Apartment{
		ID:                 society.NewID(),
		Name:               apartmentName,
		SecretaryPhone:     phone,
		SecretaryEmail:     strings.TrimSpace(input.Email),
		DefaultMaintenance: maintenance,
		CreatedAt:          now,
	}

	secretary := society.Resident{
		ID:            society.NewID(),
		Name:          name,
		Phone:         phone,
		Email:         strings.TrimSpace(input.Email),
		Flat:          society.SecretaryFlat,
		FamilyMembers: 1,
		Role:          society.RoleSecretary,
		Avatar:        input.Avatar,
		ApartmentID:   apartment.ID,
		CreatedAt:     now,
	}
	apartment.Residents = []society.Resident{secretary}

	if err := s.store.Save(ctx, &apartment); err != nil {
		return nil, err
	}

	return s.establishSession(ctx, secretary, apartment)
}

// JoinApartment consumes an unused invite code found anywhere in the store,
// admits the caller as a resident and establishes their session.
func (s *Service) JoinApartment(ctx context.Context, input JoinInput) (*Auth, error) {
	code := strings.TrimSpace(input.Code)
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	flat := strings.TrimSpace(input.Flat)

	if code == "" {
		return nil, fmt.Errorf("invite code is required")
	}
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if phone == "" {
		return nil, fmt.Errorf("phone is required")
	}
	if flat == "" {
		return nil, fmt.Errorf("flat is required")
	}

	familyMembers := input.FamilyMembers
	if familyMembers <= 0 {
		familyMembers = 1
	}

	apartments, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	var apartment *society.Apartment
	for i := range apartments {
		if apartments[i].UnusedInvite(code) != nil {
			apartment = &apartments[i]
			break
		}
	}
	if apartment == nil {
		return nil, ErrInviteNotFound
	}

	if apartment.ResidentByPhone(phone) != nil {
		return nil, ErrPhoneTaken
	}

	now := time.Now().UTC()
	resident := society.Resident{
		ID:            society.NewID(),
		Name:          name,
		Phone:         phone,
		Email:         strings.TrimSpace(input.Email),
		Flat:          flat,
		FamilyMembers: familyMembers,
		Role:          society.RoleResident,
		Avatar:        input.Avatar,
		ApartmentID:   apartment.ID,
		CreatedAt:     now,
	}
	apartment.Residents = append(apartment.Residents, resident)

	invite := apartment.UnusedInvite(code)
	invite.Used = true
	invite.UsedBy = resident.ID
	invite.UsedAt = &now

	if err := s.store.Save(ctx, apartment); err != nil {
		return nil, err
	}

	return s.establishSession(ctx, resident, *apartment)
}

// Login resolves a phone number across all apartments. The phone is the sole
// credential; there is no password.
func (s *Service) Login(ctx context.Context, phone string) (*Auth, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("phone is required")
	}

	apartments, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range apartments {
		if user := apartments[i].ResidentByPhone(phone); user != nil {
			return s.establishSession(ctx, *user, apartments[i])
		}
	}

	return nil, ErrPhoneNotFound
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// GenerateInviteCode issues a fresh single-use invite. Only the secretary may
// issue invites. Generation retries on the unlikely collision with a code
// already present in the apartment.
func (s *Service) GenerateInviteCode(ctx context.Context, apartmentID, issuerID string) (*society.InviteCode, error) {
	apartment, err := s.store.Get(ctx, apartmentID)
	if err != nil {
		return nil, err
	}

	issuer := apartment.ResidentByID(issuerID)
	if issuer == nil {
		return nil, ErrResidentNotFound
	}
	if issuer.Role != society.RoleSecretary {
		return nil, ErrNotSecretary
	}

	code, err := s.freshInviteCode(apartment)
	if err != nil {
		return nil, err
	}

	invite := society.InviteCode{
		ID:        society.NewID(),
		Code:      code,
		CreatedBy: issuer.ID,
		CreatedAt: time.Now().UTC(),
	}
	apartment.InviteCodes = append(apartment.InviteCodes, invite)

	if err := s.store.Save(ctx, apartment); err != nil {
		return nil, err
	}

	return &invite, nil
}

// ActiveInvites returns the apartment's unused invite codes in issue order.
func (s *Service) ActiveInvites(ctx context.Context, apartmentID string) ([]society.InviteCode, error) {
	apartment, err := s.store.Get(ctx, apartmentID)
	if err != nil {
		return nil, err
	}

	active := make([]society.InviteCode, 0)
	for _, invite := range apartment.InviteCodes {
		if !invite.Used {
			active = append(active, invite)
		}
	}
	return active, nil
}

// Me resolves a session principal back to its resident and apartment.
func (s *Service) Me(ctx context.Context, apartmentID, userID string) (*society.Resident, *society.Apartment, error) {
	apartment, err := s.store.Get(ctx, apartmentID)
	if err != nil {
		return nil, nil, err
	}
	user := apartment.ResidentByID(userID)
	if user == nil {
		return nil, nil, ErrResidentNotFound
	}
	return user, apartment, nil
}

// Residents returns the apartment roster in join order.
func (s *Service) Residents(ctx context.Context, apartmentID string) ([]society.Resident, error) {
	apartment, err := s.store.Get(ctx, apartmentID)
	if err != nil {
		return nil, err
	}
	return apartment.Residents, nil
}

func (s *Service) freshInviteCode(apartment *society.Apartment) (string, error) {
	for i := 0; i < inviteCodeAttempts; i++ {
		code, err := society.NewInviteCode()
		if err != nil {
			return "", err
		}
		if !apartment.HasInviteCode(code) {
			return code, nil
		}
	}
	return "", ErrCodeGenerationFailed
}

func (s *Service) establishSession(ctx context.Context, user society.Resident, apartment society.Apartment) (*Auth, error) {
	sess := session.New(user.ID, apartment.ID)
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	return &Auth{Session: sess, User: user, Apartment: apartment}, nil
}
