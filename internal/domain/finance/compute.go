package finance

import (
	"github.com/shopspring/decimal"

	"society-ledger/internal/domain/society"
)

// Status labels for a resident's maintenance position.
const (
	StatusPaid    = "Paid"
	StatusPending = "Pending"
)

// ResidentStatus is the computed due/paid position of one resident.
//
// Total paid counts every maintenance record for the resident exactly once,
// regardless of type, plus their contributions. ExtraPaid is a display figure
// only (the extra-type subset of the same records) and never feeds the
// Paid/Pending decision, so the two cannot disagree.
type ResidentStatus struct {
	ResidentID string  `json:"residentId"`
	Name       string  `json:"name"`
	Flat       string  `json:"flat"`
	Due        float64 `json:"due"`
	Paid       float64 `json:"paid"`
	ExtraShare float64 `json:"extraShare"`
	ExtraPaid  float64 `json:"extraPaid"`
	Pending    float64 `json:"pending"`
	Status     string  `json:"status"`
}

type ExpenseSummary struct {
	Total            float64           `json:"total"`
	PerResidentShare float64           `json:"perResidentShare"`
	Count            int               `json:"count"`
	Expenses         []society.Expense `json:"expenses"`
}

// ExtraShare is each non-secretary resident's equal portion of all shared
// expenses, zero when the apartment has no such residents yet.
func ExtraShare(apartment *society.Apartment) decimal.Decimal {
	n := len(apartment.NonSecretaryResidents())
	if n == 0 {
		return decimal.Zero
	}
	return totalExpenses(apartment).Div(decimal.NewFromInt(int64(n)))
}

// Statuses computes the maintenance position of every non-secretary resident,
// in join order. New joins change the divisor, so the result always reflects
// the current roster without re-persisting prior records.
func Statuses(apartment *society.Apartment) []ResidentStatus {
	extraShare := ExtraShare(apartment)
	due := decimal.NewFromFloat(apartment.DefaultMaintenance).Add(extraShare)

	residents := apartment.NonSecretaryResidents()
	statuses := make([]ResidentStatus, 0, len(residents))
	for _, r := range residents {
		paid := paidMaintenance(apartment, r.ID).Add(paidContributions(apartment, r.ID))

		status := StatusPending
		if paid.GreaterThanOrEqual(due) {
			status = StatusPaid
		}

		pending := due.Sub(paid)
		if pending.IsNegative() {
			pending = decimal.Zero
		}

		statuses = append(statuses, ResidentStatus{
			ResidentID: r.ID,
			Name:       r.Name,
			Flat:       r.Flat,
			Due:        round2(due),
			Paid:       round2(paid),
			ExtraShare: round2(extraShare),
			ExtraPaid:  round2(paidExtra(apartment, r.ID)),
			Pending:    round2(pending),
			Status:     status,
		})
	}
	return statuses
}

// Balance is the apartment-level funds position: everything collected minus
// everything spent.
func Balance(apartment *society.Apartment) float64 {
	collected := decimal.Zero
	for _, rec := range apartment.MaintenanceRecords {
		collected = collected.Add(decimal.NewFromFloat(rec.Amount))
	}
	for _, c := range apartment.Contributions {
		collected = collected.Add(decimal.NewFromFloat(c.Amount))
	}
	return round2(collected.Sub(totalExpenses(apartment)))
}

func SummarizeExpenses(apartment *society.Apartment) ExpenseSummary {
	expenses := apartment.Expenses
	if expenses == nil {
		expenses = []society.Expense{}
	}
	return ExpenseSummary{
		Total:            round2(totalExpenses(apartment)),
		PerResidentShare: round2(ExtraShare(apartment)),
		Count:            len(expenses),
		Expenses:         expenses,
	}
}

func totalExpenses(apartment *society.Apartment) decimal.Decimal {
	total := decimal.Zero
	for _, e := range apartment.Expenses {
		total = total.Add(decimal.NewFromFloat(e.Amount))
	}
	return total
}

func paidMaintenance(apartment *society.Apartment, residentID string) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range apartment.MaintenanceRecords {
		if rec.ResidentID == residentID {
			total = total.Add(decimal.NewFromFloat(rec.Amount))
		}
	}
	return total
}

func paidExtra(apartment *society.Apartment, residentID string) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range apartment.MaintenanceRecords {
		if rec.ResidentID == residentID && rec.Type == society.PaymentExtra {
			total = total.Add(decimal.NewFromFloat(rec.Amount))
		}
	}
	return total
}

func paidContributions(apartment *society.Apartment, residentID string) decimal.Decimal {
	total := decimal.Zero
	for _, c := range apartment.Contributions {
		if c.ResidentID == residentID {
			total = total.Add(decimal.NewFromFloat(c.Amount))
		}
	}
	return total
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
