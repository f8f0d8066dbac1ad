package service

import (
	"strings"

	"github.com/chaatgpt/till/internal/domain/entity"
	"github.com/chaatgpt/till/pkg/apperror"
)

// ComputeTotals derives subtotal, packing surcharge and total of a set of
// lines. The surcharge is rate per unit across all lines when enabled.
func ComputeTotals(lines []entity.OrderLine, packingEnabled bool, rate entity.Money) entity.Totals {
	var t entity.Totals
	for _, l := range lines {
		t.Subtotal += l.Total
		t.ItemCount += l.Quantity
	}
	if packingEnabled {
		t.Packing = entity.Money(t.ItemCount) * rate
	}
	t.Total = t.Subtotal + t.Packing
	return t
}

// Cart is the single in-progress order of a till session
type Cart struct {
	order entity.Order
}

// NewCart returns an empty cart
func NewCart() *Cart {
	return &Cart{order: entity.Order{Lines: []entity.OrderLine{}}}
}

// AddItem increments the line with the same name or appends a new one
func (c *Cart) AddItem(name string, price entity.Money) entity.OrderLine {
	for i := range c.order.Lines {
		if c.order.Lines[i].Name == name {
			c.order.Lines[i].Quantity++
			c.order.Lines[i].Recalculate()
			return c.order.Lines[i]
		}
	}

	line := entity.OrderLine{Name: name, UnitPrice: price, Quantity: 1}
	line.Recalculate()
	c.order.Lines = append(c.order.Lines, line)
	return line
}

// UpdateQuantity adjusts the quantity of the line at index by delta.
// A line that drops to zero or below is removed.
func (c *Cart) UpdateQuantity(index, delta int) error {
	if index < 0 || index >= len(c.order.Lines) {
		return apperror.ErrLineNotFound
	}

	line := &c.order.Lines[index]
	line.Quantity += delta
	if line.Quantity <= 0 {
		c.order.Lines = append(c.order.Lines[:index], c.order.Lines[index+1:]...)
		return nil
	}
	line.Recalculate()
	return nil
}

// Clear discards the order. Clearing a non-empty cart needs confirmation.
func (c *Cart) Clear(confirmed bool) error {
	if c.order.IsEmpty() {
		return nil
	}
	if !confirmed {
		return apperror.NewConfirmationRequiredError("Are you sure you want to clear the order?")
	}
	c.Reset()
	return nil
}

// Reset empties the cart unconditionally
func (c *Cart) Reset() {
	c.order = entity.Order{Lines: []entity.OrderLine{}}
}

// SetPacking toggles the per-item packing surcharge
func (c *Cart) SetPacking(enabled bool) {
	c.order.PackingEnabled = enabled
}

// SetCustomer records optional customer details
func (c *Cart) SetCustomer(name, phone string) {
	c.order.CustomerName = strings.TrimSpace(name)
	c.order.CustomerPhone = strings.TrimSpace(phone)
}

// Order returns a copy of the current order
func (c *Cart) Order() entity.Order {
	o := c.order
	o.Lines = c.order.Snapshot()
	return o
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return c.order.IsEmpty()
}

// Totals computes the cart totals with the given packing rate
func (c *Cart) Totals(rate entity.Money) entity.Totals {
	return ComputeTotals(c.order.Lines, c.order.PackingEnabled, rate)
}
