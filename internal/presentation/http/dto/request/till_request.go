package request

// UpdateMenuItemRequest edits a menu item. Omitted fields are unchanged.
type UpdateMenuItemRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Price *Amount `json:"price"`
}

// AddCartItemRequest adds one unit of a menu item, or of an ad-hoc item
// when no menu item is given
type AddCartItemRequest struct {
	MenuItemID string  `json:"menu_item_id" binding:"omitempty,uuid"`
	Name       string  `json:"name" binding:"required_without=MenuItemID,max=100"`
	Price      *Amount `json:"price" binding:"required_without=MenuItemID"`
}

// UpdateQuantityRequest changes the quantity of a cart line by Delta
type UpdateQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// PackingRequest toggles the packing surcharge
type PackingRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// CustomerRequest sets the optional customer details
type CustomerRequest struct {
	Name  string `json:"name" binding:"max=100"`
	Phone string `json:"phone" binding:"max=20"`
}

// PaymentMethodRequest selects cash or upi
type PaymentMethodRequest struct {
	Method string `json:"method" binding:"required"`
}

// AmountTenderedRequest records the cash handed over
type AmountTenderedRequest struct {
	Amount Amount `json:"amount"`
}

// SaveBillRequest saves the order without printing
type SaveBillRequest struct {
	ConfirmPending bool `json:"confirm_pending"`
}

// ConfirmRequest confirms a destructive action
type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}
