package entity

import (
	"strconv"

	"github.com/google/uuid"
)

// menuNamespace scopes the deterministic IDs of seeded menu items
var menuNamespace = uuid.MustParse("6f1c3e2a-5b7d-4c1e-9a8f-2d4b6c8e0a13")

// MenuItem is a product on the stall menu
type MenuItem struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Price         Money     `json:"price"`
	OriginalName  string    `json:"original_name"`
	OriginalPrice Money     `json:"original_price"`
	Deleted       bool      `json:"deleted,omitempty"`
}

// NewSeedMenuItem builds a menu item whose ID is stable across restarts
// for the same seed position and name.
func NewSeedMenuItem(position int, name string, price Money) MenuItem {
	return MenuItem{
		ID:            uuid.NewSHA1(menuNamespace, []byte(strconv.Itoa(position)+":"+name)),
		Name:          name,
		Price:         price,
		OriginalName:  name,
		OriginalPrice: price,
	}
}
