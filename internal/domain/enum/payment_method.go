package enum

import "strings"

// PaymentMethod is the canonical label recorded on a settled bill.
// A drafted bill carries the empty value until settlement.
type PaymentMethod string

const (
	PaymentMethodNone PaymentMethod = ""
	PaymentMethodCash PaymentMethod = "Cash"
	PaymentMethodUPI  PaymentMethod = "UPI"
	PaymentMethodCard PaymentMethod = "Card"
)

// ParsePaymentMethod maps a client-supplied method name to its canonical
// label. Matching is case-insensitive ("cash", "Cash" and "CASH" all settle
// as "Cash"). The second return value is false for unsupported methods.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return PaymentMethodCash, true
	case "upi":
		return PaymentMethodUPI, true
	case "card":
		return PaymentMethodCard, true
	default:
		return PaymentMethodNone, false
	}
}

func (m PaymentMethod) String() string {
	return string(m)
}
