package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"society-ledger/internal/domain/society"
)

func fixtureApartment(defaultMaintenance float64, residentCount int) *society.Apartment {
	now := time.Now().UTC()
	apartment := &society.Apartment{
		ID:                 society.NewID(),
		Name:               "Green Heights",
		SecretaryPhone:     "9000000000",
		DefaultMaintenance: defaultMaintenance,
		CreatedAt:          now,
	}

	secretary := society.Resident{
		ID:          society.NewID(),
		Name:        "Asha",
		Phone:       "9000000000",
		Flat:        society.SecretaryFlat,
		Role:        society.RoleSecretary,
		ApartmentID: apartment.ID,
		CreatedAt:   now,
	}
	apartment.Residents = append(apartment.Residents, secretary)

	for i := 0; i < residentCount; i++ {
		apartment.Residents = append(apartment.Residents, society.Resident{
			ID:          society.NewID(),
			Name:        "Resident",
			Phone:       "90000000" + string(rune('1'+i)) + "0",
			Flat:        "A-10" + string(rune('1'+i)),
			Role:        society.RoleResident,
			ApartmentID: apartment.ID,
			CreatedAt:   now,
		})
	}
	return apartment
}

func addExpenseTo(apartment *society.Apartment, amount float64) {
	apartment.Expenses = append(apartment.Expenses, society.Expense{
		ID:          society.NewID(),
		Description: "repair",
		Amount:      amount,
		AddedBy:     apartment.Residents[0].ID,
		CreatedAt:   time.Now().UTC(),
	})
}

func payMaintenance(apartment *society.Apartment, residentID string, amount float64, paymentType string) {
	apartment.MaintenanceRecords = append(apartment.MaintenanceRecords, society.MaintenanceRecord{
		ID:         society.NewID(),
		ResidentID: residentID,
		Amount:     amount,
		Type:       paymentType,
		RecordedBy: apartment.Residents[0].ID,
		CreatedAt:  time.Now().UTC(),
	})
}

func TestStatusesTwoResidentsOneExpense(t *testing.T) {
	apartment := fixtureApartment(1000, 2)
	addExpenseTo(apartment, 200)

	statuses := Statuses(apartment)
	require.Len(t, statuses, 2)

	for _, st := range statuses {
		assert.Equal(t, 100.0, st.ExtraShare)
		assert.Equal(t, 1100.0, st.Due)
		assert.Equal(t, StatusPending, st.Status)
	}
}

func TestStatusPaidBoundary(t *testing.T) {
	apartment := fixtureApartment(1000, 2)
	addExpenseTo(apartment, 200)
	resident := apartment.Residents[1]

	payMaintenance(apartment, resident.ID, 1099.99, society.PaymentRegular)
	statuses := Statuses(apartment)
	require.Equal(t, resident.ID, statuses[0].ResidentID)
	assert.Equal(t, StatusPending, statuses[0].Status)
	assert.Equal(t, 0.01, statuses[0].Pending)

	payMaintenance(apartment, resident.ID, 0.01, society.PaymentRegular)
	statuses = Statuses(apartment)
	assert.Equal(t, StatusPaid, statuses[0].Status)
	assert.Equal(t, 0.0, statuses[0].Pending)
}

func TestStatusesReflectNewJoins(t *testing.T) {
	apartment := fixtureApartment(1000, 1)
	addExpenseTo(apartment, 200)

	statuses := Statuses(apartment)
	require.Len(t, statuses, 1)
	assert.Equal(t, 200.0, statuses[0].ExtraShare)

	// A new join halves the share without touching stored records.
	apartment.Residents = append(apartment.Residents, society.Resident{
		ID:          society.NewID(),
		Name:        "Newcomer",
		Phone:       "9111111111",
		Flat:        "B-201",
		Role:        society.RoleResident,
		ApartmentID: apartment.ID,
	})

	statuses = Statuses(apartment)
	require.Len(t, statuses, 2)
	assert.Equal(t, 100.0, statuses[0].ExtraShare)
	assert.Equal(t, 1100.0, statuses[0].Due)
}

func TestExtraTypeRecordsCountOnce(t *testing.T) {
	apartment := fixtureApartment(1000, 2)
	addExpenseTo(apartment, 200)
	resident := apartment.Residents[1]

	payMaintenance(apartment, resident.ID, 1000, society.PaymentRegular)
	payMaintenance(apartment, resident.ID, 100, society.PaymentExtra)

	statuses := Statuses(apartment)
	require.Equal(t, resident.ID, statuses[0].ResidentID)
	assert.Equal(t, 1100.0, statuses[0].Paid)
	assert.Equal(t, 100.0, statuses[0].ExtraPaid)
	assert.Equal(t, StatusPaid, statuses[0].Status)
}

func TestContributionsCountTowardsPaid(t *testing.T) {
	apartment := fixtureApartment(1000, 2)
	addExpenseTo(apartment, 200)
	resident := apartment.Residents[1]

	payMaintenance(apartment, resident.ID, 1000, society.PaymentRegular)
	apartment.Contributions = append(apartment.Contributions, society.Contribution{
		ID:         society.NewID(),
		ResidentID: resident.ID,
		Amount:     100,
		Details:    "festival fund",
		RecordedBy: apartment.Residents[0].ID,
		CreatedAt:  time.Now().UTC(),
	})

	statuses := Statuses(apartment)
	assert.Equal(t, StatusPaid, statuses[0].Status)
}

func TestExtraShareZeroWithoutResidents(t *testing.T) {
	apartment := fixtureApartment(1000, 0)
	addExpenseTo(apartment, 500)

	assert.True(t, ExtraShare(apartment).IsZero())
	assert.Empty(t, Statuses(apartment))
}

func TestBalanceDecreasesByExpensesOnly(t *testing.T) {
	apartment := fixtureApartment(1000, 2)
	resident := apartment.Residents[1]

	payMaintenance(apartment, resident.ID, 1000, society.PaymentRegular)
	apartment.Contributions = append(apartment.Contributions, society.Contribution{
		ID:         society.NewID(),
		ResidentID: resident.ID,
		Amount:     250.50,
		Details:    "diwali fund",
	})
	require.Equal(t, 1250.50, Balance(apartment))

	before := Balance(apartment)
	for _, amount := range []float64{100, 49.25, 0.75} {
		addExpenseTo(apartment, amount)
	}
	assert.Equal(t, before-150, Balance(apartment))
}

func TestSummarizeExpenses(t *testing.T) {
	apartment := fixtureApartment(1000, 2)
	addExpenseTo(apartment, 120)
	addExpenseTo(apartment, 80)

	summary := SummarizeExpenses(apartment)
	assert.Equal(t, 200.0, summary.Total)
	assert.Equal(t, 100.0, summary.PerResidentShare)
	assert.Equal(t, 2, summary.Count)
	require.Len(t, summary.Expenses, 2)
}
