package entity

// OrderLine represents one product on the in-progress order
type OrderLine struct {
	Name      string `json:"name"`
	UnitPrice Money  `json:"price"`
	Quantity  int    `json:"quantity"`
	Total     Money  `json:"total"`
}

// Recalculate refreshes the line total from price and quantity
func (l *OrderLine) Recalculate() {
	l.Total = l.UnitPrice * Money(l.Quantity)
}

// Totals are the derived amounts of an order
type Totals struct {
	Subtotal  Money `json:"subtotal"`
	Packing   Money `json:"packing_charge"`
	Total     Money `json:"total"`
	ItemCount int   `json:"item_count"`
}

// Order is the single active cart of a till session
type Order struct {
	Lines          []OrderLine `json:"items"`
	PackingEnabled bool        `json:"packing_enabled"`
	CustomerName   string      `json:"customer_name"`
	CustomerPhone  string      `json:"customer_phone"`
}

// IsEmpty reports whether the order has no lines
func (o *Order) IsEmpty() bool {
	return len(o.Lines) == 0
}

// Snapshot returns a deep copy of the order lines
func (o *Order) Snapshot() []OrderLine {
	lines := make([]OrderLine, len(o.Lines))
	copy(lines, o.Lines)
	return lines
}
