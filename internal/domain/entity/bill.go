package entity

import (
	"time"

	"github.com/chaatgpt/till/internal/domain/enum"
)

// Bill is the immutable record of a finalized order
type Bill struct {
	BillNumber     string             `json:"bill_number"`
	Date           time.Time          `json:"date"`
	CustomerName   string             `json:"customer_name"`
	CustomerPhone  string             `json:"customer_phone"`
	Items          []OrderLine        `json:"items"`
	Subtotal       Money              `json:"subtotal"`
	PackingCharge  Money              `json:"packing_charge"`
	Total          Money              `json:"total"`
	PaymentMethod  enum.PaymentMethod `json:"payment_method"`
	AmountReceived Money              `json:"amount_received"`
	Change         Money              `json:"change"`
}

// ItemCount is the number of units across all lines
func (b *Bill) ItemCount() int {
	n := 0
	for _, item := range b.Items {
		n += item.Quantity
	}
	return n
}

// Day returns the local calendar date of the bill, truncated to midnight
func (b *Bill) Day(loc *time.Location) time.Time {
	t := b.Date.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
