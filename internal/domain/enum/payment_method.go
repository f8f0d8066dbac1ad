package enum

import (
	"encoding/json"
	"strings"
)

// PaymentMethod represents how a bill was (or will be) settled
type PaymentMethod int

const (
	PaymentMethodNone    PaymentMethod = 0
	PaymentMethodCash    PaymentMethod = 1
	PaymentMethodUPI     PaymentMethod = 2
	PaymentMethodPending PaymentMethod = 3
)

func (m PaymentMethod) String() string {
	names := [...]string{"", "cash", "upi", "pending"}
	if int(m) < 0 || int(m) >= len(names) {
		return ""
	}
	return names[m]
}

// Label is the upper-case form printed on reports
func (m PaymentMethod) Label() string {
	return strings.ToUpper(m.String())
}

// ParsePaymentMethod maps a tender name to a method. Only cash and upi
// can be chosen at the till; pending is assigned by the save-only path.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return PaymentMethodCash, true
	case "upi":
		return PaymentMethodUPI, true
	}
	return PaymentMethodNone, false
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	switch str {
	case "cash":
		*m = PaymentMethodCash
	case "upi":
		*m = PaymentMethodUPI
	case "pending":
		*m = PaymentMethodPending
	default:
		*m = PaymentMethodNone
	}
	return nil
}
