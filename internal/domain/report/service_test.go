package report_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"society-ledger/internal/domain/finance"
	"society-ledger/internal/domain/membership"
	"society-ledger/internal/domain/report"
	"society-ledger/internal/repository/memory"
)

func TestMaintenanceReport(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	members := membership.NewService(store, memory.NewSessionStore())
	financeSvc := finance.NewService(store)
	reports := report.NewService(store)

	auth, err := members.RegisterApartment(ctx, membership.RegisterInput{
		SecretaryName:      "Asha",
		Phone:              "9000000000",
		ApartmentName:      "Green Heights",
		DefaultMaintenance: 1000,
	})
	require.NoError(t, err)

	invite, err := members.GenerateInviteCode(ctx, auth.Apartment.ID, auth.User.ID)
	require.NoError(t, err)
	joined, err := members.JoinApartment(ctx, membership.JoinInput{
		Code: invite.Code, Name: "Ravi", Phone: "9111111111", Flat: "A-101",
	})
	require.NoError(t, err)

	_, err = financeSvc.AddExpense(ctx, auth.Apartment.ID, auth.User.ID, finance.AddExpenseInput{
		Description: "Lift repair", Amount: 200,
	})
	require.NoError(t, err)
	_, err = financeSvc.RecordMaintenancePayment(ctx, auth.Apartment.ID, auth.User.ID, joined.User.ID, 1200, "")
	require.NoError(t, err)

	payload, err := reports.MaintenanceReport(ctx, auth.Apartment.ID)
	require.NoError(t, err)
	require.NotEmpty(t, payload)

	workbook, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Maintenance")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2)

	assert.Equal(t, []string{"Resident", "Flat", "Due", "Paid", "Pending", "Status"}, rows[0])

	require.GreaterOrEqual(t, len(rows[1]), 6)
	assert.Equal(t, "Ravi", rows[1][0])
	assert.Equal(t, "A-101", rows[1][1])
	assert.Equal(t, "1200", rows[1][2])
	assert.Equal(t, "Paid", rows[1][5])

	var labels []string
	for _, row := range rows[2:] {
		if len(row) > 0 {
			labels = append(labels, row[0])
		}
	}
	assert.Contains(t, labels, "Total expenses")
	assert.Contains(t, labels, "Per-resident share")
	assert.Contains(t, labels, "Available balance")
}

func TestMaintenanceReportEmptyRoster(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	members := membership.NewService(store, memory.NewSessionStore())
	reports := report.NewService(store)

	auth, err := members.RegisterApartment(ctx, membership.RegisterInput{
		SecretaryName:      "Asha",
		Phone:              "9000000000",
		ApartmentName:      "Green Heights",
		DefaultMaintenance: 1000,
	})
	require.NoError(t, err)

	payload, err := reports.MaintenanceReport(ctx, auth.Apartment.ID)
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Maintenance")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, "Resident", rows[0][0])
}
