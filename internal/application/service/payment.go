package service

import (
	"github.com/chaatgpt/till/internal/domain/entity"
	"github.com/chaatgpt/till/internal/domain/enum"
	"github.com/chaatgpt/till/pkg/apperror"
)

// PaymentState tracks how far payment capture has progressed
type PaymentState int

const (
	PaymentNoneSelected PaymentState = iota
	PaymentMethodChosen
	PaymentValidated
)

func (s PaymentState) String() string {
	switch s {
	case PaymentMethodChosen:
		return "method_chosen"
	case PaymentValidated:
		return "validated"
	default:
		return "none_selected"
	}
}

// Change is the advisory change figure shown while cash is being tendered
type Change struct {
	Amount       entity.Money `json:"change"`
	Insufficient bool         `json:"insufficient"`
}

// Payment is the payment selection of the active order
type Payment struct {
	method   enum.PaymentMethod
	tendered entity.Money
	state    PaymentState
}

// NewPayment returns a payment with no method selected
func NewPayment() *Payment {
	return &Payment{}
}

// SelectMethod chooses cash or upi. Choosing upi clears any tendered cash.
func (p *Payment) SelectMethod(raw string) error {
	method, ok := enum.ParsePaymentMethod(raw)
	if !ok {
		return apperror.ErrInvalidMethod
	}
	p.method = method
	if method == enum.PaymentMethodUPI {
		p.tendered = 0
	}
	p.state = PaymentMethodChosen
	return nil
}

// SetAmountTendered records the cash handed over. Negative or non-numeric
// input is treated as zero. It has no effect unless cash is selected.
func (p *Payment) SetAmountTendered(raw string) {
	if p.method != enum.PaymentMethodCash {
		return
	}
	p.tendered = entity.ParseMoney(raw)
	p.state = PaymentMethodChosen
}

// ComputeChange reports the change due on total. It never blocks an action.
func (p *Payment) ComputeChange(total entity.Money) Change {
	if p.method != enum.PaymentMethodCash || p.tendered == 0 {
		return Change{}
	}
	if p.tendered < total {
		return Change{Insufficient: true}
	}
	return Change{Amount: p.tendered - total}
}

// ValidateForProcessing checks that the order can be settled with the
// current selection. Checks run in a fixed order and the first failure wins.
func (p *Payment) ValidateForProcessing(order entity.Order, totals entity.Totals) error {
	if order.IsEmpty() {
		return apperror.ErrEmptyOrder
	}
	if p.method == enum.PaymentMethodNone {
		return apperror.ErrNoPaymentMethod
	}
	if p.method == enum.PaymentMethodCash {
		if p.tendered < totals.Total {
			return apperror.NewInsufficientAmountError(totals.Total.Short(), p.tendered.Short())
		}
		if p.tendered == 0 {
			return apperror.ErrMissingAmount
		}
	}
	p.state = PaymentValidated
	return nil
}

// Settlement returns how a bill that passed validation is paid.
// UPI is always received in full.
func (p *Payment) Settlement(total entity.Money) Settlement {
	switch p.method {
	case enum.PaymentMethodCash:
		change := p.tendered - total
		if change < 0 {
			change = 0
		}
		return Settlement{Method: enum.PaymentMethodCash, AmountReceived: p.tendered, Change: change}
	case enum.PaymentMethodUPI:
		return Settlement{Method: enum.PaymentMethodUPI, AmountReceived: total}
	}
	return Settlement{Method: enum.PaymentMethodPending}
}

// Method is the selected payment method
func (p *Payment) Method() enum.PaymentMethod {
	return p.method
}

// Tendered is the cash amount entered
func (p *Payment) Tendered() entity.Money {
	return p.tendered
}

// State is the capture progress
func (p *Payment) State() PaymentState {
	return p.state
}

// Reset returns to NoneSelected
func (p *Payment) Reset() {
	*p = Payment{}
}
