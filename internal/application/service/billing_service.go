package service

import (
	"fmt"
	"time"

	"github.com/chaatgpt/till/internal/domain/entity"
	"github.com/chaatgpt/till/internal/domain/enum"
)

// DefaultBillPrefix starts every bill number unless configured otherwise
const DefaultBillPrefix = "BG"

// GenerateBillNumber formats PREFIX-YYYYMMDD-HHMMSS from the local time.
// Two bills finalized within the same second share a number.
func GenerateBillNumber(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = DefaultBillPrefix
	}
	return fmt.Sprintf("%s-%s", prefix, now.Format("20060102-150405"))
}

// Settlement is how a bill is paid
type Settlement struct {
	Method         enum.PaymentMethod
	AmountReceived entity.Money
	Change         entity.Money
}

// FinalizeBill snapshots an order into an immutable bill
func FinalizeBill(number string, now time.Time, order entity.Order, totals entity.Totals, s Settlement) entity.Bill {
	return entity.Bill{
		BillNumber:     number,
		Date:           now,
		CustomerName:   order.CustomerName,
		CustomerPhone:  order.CustomerPhone,
		Items:          order.Snapshot(),
		Subtotal:       totals.Subtotal,
		PackingCharge:  totals.Packing,
		Total:          totals.Total,
		PaymentMethod:  s.Method,
		AmountReceived: s.AmountReceived,
		Change:         s.Change,
	}
}
