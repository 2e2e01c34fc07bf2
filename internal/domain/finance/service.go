// Package finance is the ledger's financial engine: it records maintenance
// payments, contributions and shared expenses, and computes each resident's
// due/paid position and the apartment balance.
package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"society-ledger/internal/domain/comms"
	"society-ledger/internal/domain/society"
)

type Service struct {
	store society.Store
}

func NewService(store society.Store) *Service {
	return &Service{store: store}
}

type AddExpenseInput struct {
	Description string
	Amount      float64
	Details     string
}

// RecordMaintenancePayment appends a regular-type record for the resident,
// attributed to the acting secretary as recorder.
func (s *Service) RecordMaintenancePayment(ctx context.Context, apartmentID, actorID, residentID string, amount float64, reference string) (*society.MaintenanceRecord, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	apartment, err := s.store.Get(ctx, apartmentID)
	if err != nil {
		return nil, err
	}

	actor, err := requireSecretary(apartment, actorID)
	if err != nil {
		return nil, err
	}

	resident := apartment.ResidentByID(residentID)
	if resident == nil {
		return nil, ErrResidentNotFound
	}

	record := society.MaintenanceRecord{
		ID:           society.NewID(),
		ResidentID:   resident.ID,
		ResidentName: resident.Name,
		Amount:       amount,
		Reference:    strings.TrimSpace(reference),
		Type:         society.PaymentRegular,
		RecordedBy:   actor.ID,
		CreatedAt:    time.Now().UTC(),
	}
	apartment.MaintenanceRecords = append(apartment.MaintenanceRecords, record)

	if err := s.store.Save(ctx, apartment); err != nil {
		return nil, err
	}
	return &record, nil
}

// RecordContribution appends a voluntary contribution. Details are required
// so the ledger explains itself later.
func (s *Service) RecordContribution(ctx context.Context, apartmentID, actorID, residentID string, amount float64, details string) (*society.Contribution, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	details = strings.TrimSpace(details)
	if details == "" {
		return nil, fmt.Errorf("details are required")
	}

	apartment, err := s.store.Get(ctx, apartmentID)
	if err != nil {
		return nil, err
	}

	actor, err := requireSecretary(apartment, actorID)
	if err != nil {
		return nil, err
	}

	resident := apartment.ResidentByID(residentID)
	if resident == nil {
		return nil, ErrResidentNotFound
	}

	contribution := society.Contribution{
		ID:           society.NewID(),
		ResidentID:   resident.ID,
		ResidentName: resident.Name,
		Amount:       amount,
		Details:      details,
		RecordedBy:   actor.ID,
		CreatedAt:    time.Now().UTC(),
	}
	apartment.Contributions = append(apartment.Contributions, contribution)

	if err := s.store.Save(ctx, apartment); err != nil {
		return nil, err
	}
	return &contribution, nil
}

// AddExpense appends a shared expense and announces the new per-resident
// share to the building.
func (s *Service) AddExpense(ctx context.Context, apartmentID, actorID string, input AddExpenseInput) (*society.Expense, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	apartment, err := s.store.Get(ctx, apartmentID)
	if err != nil {
		return nil, err
	}

	actor, err := requireSecretary(apartment, actorID)
	if err != nil {
		return nil, err
	}

	expense := society.Expense{
		ID:          society.NewID(),
		Description: description,
		Amount:      input.Amount,
		Details:     strings.TrimSpace(input.Details),
		AddedBy:     actor.ID,
		CreatedAt:   time.Now().UTC(),
	}
	apartment.Expenses = append(apartment.Expenses, expense)

	share := ExtraShare(apartment)
	announcement := comms.SystemAnnouncement(*actor,
		"New shared expense",
		fmt.Sprintf("%s: %s added. Per-resident share is now %s.",
			description, rupees(decimal.NewFromFloat(expense.Amount)), rupees(share)),
		society.PriorityImportant,
	)
	apartment.Announcements = append(apartment.Announcements, announcement)

	if err := s.store.Save(ctx, apartment); err != nil {
		return nil, err
	}
	return &expense, nil
}

// ConfirmPayment lets a resident self-report a payment. The record stays
// unverified until the secretary verifies it; a normal-priority announcement
// notifies the secretary.
func (s *Service) ConfirmPayment(ctx context.Context, apartmentID, actorID string, amount float64, reference string) (*society.MaintenanceRecord, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	apartment, err := s.store.Get(ctx, apartmentID)
	if err != nil {
		return nil, err
	}

	actor := apartment.ResidentByID(actorID)
	if actor == nil {
		return nil, ErrResidentNotFound
	}

	record := society.MaintenanceRecord{
		ID:           society.NewID(),
		ResidentID:   actor.ID,
		ResidentName: actor.Name,
		Amount:       amount,
		Reference:    strings.TrimSpace(reference),
		Type:         society.PaymentSelfReported,
		RecordedBy:   actor.ID,
		CreatedAt:    time.Now().UTC(),
	}
	apartment.MaintenanceRecords = append(apartment.MaintenanceRecords, record)

	announcement := comms.SystemAnnouncement(*actor,
		"Payment reported",
		fmt.Sprintf("%s reported a payment of %s. Verification pending.",
			actor.Name, rupees(decimal.NewFromFloat(amount))),
		society.PriorityNormal,
	)
	apartment.Announcements = append(apartment.Announcements, announcement)

	if err := s.store.Save(ctx, apartment); err != nil {
		return nil, err
	}
	return &record, nil
}

// VerifyPayment flips the verified flag on a self-reported record. The flag
// flip is the one permitted mutation of an existing record.
func (s *Service) VerifyPayment(ctx context.Context, apartmentID, actorID, recordID string) (*society.MaintenanceRecord, error) {
	apartment, err := s.store.Get(ctx, apartmentID)
	if err != nil {
		return nil, err
	}

	if _, err := requireSecretary(apartment, actorID); err != nil {
		return nil, err
	}

	record := apartment.MaintenanceRecordByID(recordID)
	if record == nil {
		return nil, ErrRecordNotFound
	}
	if record.Type != society.PaymentSelfReported {
		return nil, ErrNotSelfReported
	}
	record.Verified = true

	if err := s.store.Save(ctx, apartment); err != nil {
		return nil, err
	}

	verified := *record
	return &verified, nil
}

// SavePaymentInfo overwrites the apartment's collection details in full.
func (s *Service) SavePaymentInfo(ctx context.Context, apartmentID, actorID string, info society.PaymentInfo) (*society.PaymentInfo, error) {
	apartment, err := s.store.Get(ctx, apartmentID)
	if err != nil {
		return nil, err
	}

	if _, err := requireSecretary(apartment, actorID); err != nil {
		return nil, err
	}

	info.UpdatedAt = time.Now().UTC()
	apartment.PaymentInfo = &info

	if err := s.store.Save(ctx, apartment); err != nil {
		return nil, err
	}
	return apartment.PaymentInfo, nil
}

func (s *Service) PaymentInfo(ctx context.Context, apartmentID string) (*society.PaymentInfo, error) {
	apartment, err := s.store.Get(ctx, apartmentID)
	if err != nil {
		return nil, err
	}
	return apartment.PaymentInfo, nil
}

// MaintenanceStatus computes every non-secretary resident's position against
// the current roster and expense list.
func (s *Service) MaintenanceStatus(ctx context.Context, apartmentID string) ([]ResidentStatus, error) {
	apartment, err := s.store.Get(ctx, apartmentID)
	if err != nil {
		return nil, err
	}
	return Statuses(apartment), nil
}

func (s *Service) ExpenseSummary(ctx context.Context, apartmentID string) (*ExpenseSummary, error) {
	apartment, err := s.store.Get(ctx, apartmentID)
	if err != nil {
		return nil, err
	}
	summary := SummarizeExpenses(apartment)
	return &summary, nil
}

func (s *Service) AvailableBalance(ctx context.Context, apartmentID string) (float64, error) {
	apartment, err := s.store.Get(ctx, apartmentID)
	if err != nil {
		return 0, err
	}
	return Balance(apartment), nil
}

func requireSecretary(apartment *society.Apartment, actorID string) (*society.Resident, error) {
	actor := apartment.ResidentByID(actorID)
	if actor == nil {
		return nil, ErrResidentNotFound
	}
	if actor.Role != society.RoleSecretary {
		return nil, ErrNotSecretary
	}
	return actor, nil
}

func rupees(d decimal.Decimal) string {
	return "₹" + d.Round(2).StringFixed(2)
}
