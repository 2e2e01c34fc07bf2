// Package report renders the apartment's maintenance position as an xlsx
// workbook for the secretary to download.
package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"society-ledger/internal/domain/finance"
	"society-ledger/internal/domain/society"
)

const sheetName = "Maintenance"

var reportHeader = []string{"Resident", "Flat", "Due", "Paid", "Pending", "Status"}

type Service struct {
	store society.Store
}

func NewService(store society.Store) *Service {
	return &Service{store: store}
}

// MaintenanceReport builds the workbook for one apartment: a row per
// non-secretary resident plus a summary block with the apartment totals.
func (s *Service) MaintenanceReport(ctx context.Context, apartmentID string) ([]byte, error) {
	apartment, err := s.store.Get(ctx, apartmentID)
	if err != nil {
		return nil, err
	}
	return buildWorkbook(apartment)
}

func buildWorkbook(apartment *society.Apartment) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}

	for col, title := range reportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			f.Close()
			return nil, err
		}
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(reportHeader), 1)
	if err := f.SetCellStyle(sheetName, "A1", endHeader, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	statuses := finance.Statuses(apartment)
	row := 2
	for _, st := range statuses {
		values := []any{st.Name, st.Flat, st.Due, st.Paid, st.Pending, st.Status}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, err
			}
		}
		row++
	}

	summary := finance.SummarizeExpenses(apartment)
	row++
	summaryRows := [][2]any{
		{"Total expenses", summary.Total},
		{"Per-resident share", summary.PerResidentShare},
		{"Available balance", finance.Balance(apartment)},
	}
	for _, pair := range summaryRows {
		labelCell, _ := excelize.CoordinatesToCellName(1, row)
		valueCell, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellValue(sheetName, labelCell, pair[0]); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(sheetName, valueCell, pair[1]); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
