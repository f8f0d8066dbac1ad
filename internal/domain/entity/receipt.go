package entity

// ReceiptHeader holds the stall letterhead printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Tagline   string `json:"tagline,omitempty"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice Money  `json:"unit_price"`
	Total     Money  `json:"total"`
}

// Receipt is a value object representing a printable receipt.
// It is NOT persisted; it is composed from a bill or the open order at print time.
type Receipt struct {
	Header         ReceiptHeader `json:"header"`
	BillNumber     string        `json:"bill_number"`
	Date           string        `json:"date"`
	Time           string        `json:"time"`
	Customer       string        `json:"customer,omitempty"`
	CustomerPhone  string        `json:"customer_phone,omitempty"`
	Items          []ReceiptItem `json:"items"`
	ItemCount      int           `json:"item_count"`
	PackingRate    Money         `json:"packing_rate"`
	SubTotal       Money         `json:"sub_total"`
	PackingCharge  Money         `json:"packing_charge"`
	Total          Money         `json:"total"`
	PaymentMethod  string        `json:"payment_method,omitempty"`
	AmountReceived Money         `json:"amount_received,omitempty"`
	Change         Money         `json:"change,omitempty"`
}

// ShowPacking reports whether the packing line is printed
func (r *Receipt) ShowPacking() bool {
	return r.PackingCharge > 0
}

// ShowChange reports whether the change line is printed
func (r *Receipt) ShowChange() bool {
	return r.PaymentMethod == "Cash" && r.Change > 0
}
