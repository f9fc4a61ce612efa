package aggregate

import (
	"github.com/pesapots/backend/internal/models"
	"github.com/shopspring/decimal"
)

// BillSummary summarizes recurring bills.
type BillSummary struct {
	TotalMonthly decimal.Decimal `json:"totalMonthly" example:"815.99"` // Sum of all bills due monthly, paid or not
	TotalUnpaid  decimal.Decimal `json:"totalUnpaid" example:"15.99"`   // Sum of all unpaid bills regardless of frequency
	PaidCount    int             `json:"paidCount" example:"1"`
	UnpaidCount  int             `json:"unpaidCount" example:"1"`
}

// BillTotals computes the summary of a list of bills.
func BillTotals(bills []models.RecurringBill) BillSummary {
	s := BillSummary{
		TotalMonthly: decimal.Zero,
		TotalUnpaid:  decimal.Zero,
	}

	for _, b := range bills {
		if b.Frequency == models.BillFrequencyMonthly {
			s.TotalMonthly = s.TotalMonthly.Add(b.Amount)
		}

		if b.Paid {
			s.PaidCount++
			continue
		}
		s.UnpaidCount++
		s.TotalUnpaid = s.TotalUnpaid.Add(b.Amount)
	}

	return s
}
