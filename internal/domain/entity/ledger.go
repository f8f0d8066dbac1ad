package entity

import (
	"github.com/chaatgpt/till/internal/domain/enum"
)

// DateLayout is the calendar date format used for the ledger reset marker
const DateLayout = "2006-01-02"

// EODLedger accumulates all bills of a single calendar day
type EODLedger struct {
	TotalSales         Money  `json:"total_sales"`
	BillCount          int    `json:"bill_count"`
	CashAmountReceived Money  `json:"cash_amount_received"`
	UPIAmountReceived  Money  `json:"upi_amount_received"`
	Bills              []Bill `json:"bills"`
	LastResetDate      string `json:"last_reset_date"`
}

// NewEODLedger returns an empty ledger dated day (YYYY-MM-DD)
func NewEODLedger(day string) *EODLedger {
	return &EODLedger{
		Bills:         []Bill{},
		LastResetDate: day,
	}
}

// Append records a bill and updates the running counters.
// Pending bills count towards sales but towards neither tender.
func (l *EODLedger) Append(bill Bill) {
	l.Bills = append(l.Bills, bill)
	l.TotalSales += bill.Total
	l.BillCount++

	switch bill.PaymentMethod {
	case enum.PaymentMethodCash:
		if bill.AmountReceived > 0 {
			l.CashAmountReceived += bill.AmountReceived
		}
	case enum.PaymentMethodUPI:
		if bill.Total > 0 {
			l.UPIAmountReceived += bill.Total
		}
	}
}

// PendingAmount is sales not yet covered by cash or UPI. It is not clamped.
func (l *EODLedger) PendingAmount() Money {
	return l.TotalSales - l.CashAmountReceived - l.UPIAmountReceived
}

// AverageBill is total sales per bill, zero when there are no bills
func (l *EODLedger) AverageBill() Money {
	if l.BillCount == 0 {
		return 0
	}
	return l.TotalSales / Money(l.BillCount)
}

// FindBill looks up a bill by number; the most recent match wins
func (l *EODLedger) FindBill(number string) (*Bill, bool) {
	for i := len(l.Bills) - 1; i >= 0; i-- {
		if l.Bills[i].BillNumber == number {
			b := l.Bills[i]
			return &b, true
		}
	}
	return nil, false
}

// EODSummary is the headline figures of a ledger
type EODSummary struct {
	Date               string `json:"date"`
	BillCount          int    `json:"bill_count"`
	TotalSales         Money  `json:"total_sales"`
	AverageBill        Money  `json:"average_bill"`
	CashAmountReceived Money  `json:"cash_amount_received"`
	UPIAmountReceived  Money  `json:"upi_amount_received"`
	PendingAmount      Money  `json:"pending_amount"`
}

// Summary derives the headline figures
func (l *EODLedger) Summary() EODSummary {
	return EODSummary{
		Date:               l.LastResetDate,
		BillCount:          l.BillCount,
		TotalSales:         l.TotalSales,
		AverageBill:        l.AverageBill(),
		CashAmountReceived: l.CashAmountReceived,
		UPIAmountReceived:  l.UPIAmountReceived,
		PendingAmount:      l.PendingAmount(),
	}
}
