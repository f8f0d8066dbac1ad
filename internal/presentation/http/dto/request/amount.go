package request

import (
	"encoding/json"
	"strings"
)

// Amount is a money field typed in by the cashier. It accepts a JSON number
// or string and never fails to decode; anything that is not a valid
// amount is left for entity.ParseMoney to turn into 0.
type Amount string

// UnmarshalJSON keeps the raw text of the value, without string quotes
func (a *Amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = Amount(s)
		return nil
	}
	*a = Amount(strings.TrimSpace(string(b)))
	return nil
}

// String returns the raw amount text
func (a Amount) String() string {
	return string(a)
}
