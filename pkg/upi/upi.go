// Package upi builds UPI deep-link payment intents for QR presentation.
//
// The intent is an opaque URI handed to the frontend for rendering as a
// scannable code; nothing here talks to a payment network.
package upi

import (
	"fmt"
	"net/url"
)

// Intent holds the fields encoded into a UPI payment request URI.
type Intent struct {
	PayeeVPA  string // pa: payee virtual payment address, e.g. "merchant@upi"
	PayeeName string // pn: display name shown in the payer's UPI app
	Amount    int64  // am: amount in cents
	Currency  string // cu: ISO currency code, e.g. "INR"
}

// URI encodes the intent as a upi://pay deep link:
//
//	upi://pay?pa=<payee>&pn=<name>&am=<amount>&cu=<currency>
//
// Building the URI has no side effects and may be repeated for the same bill.
func (i Intent) URI() string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=%s",
		url.QueryEscape(i.PayeeVPA),
		url.QueryEscape(i.PayeeName),
		url.QueryEscape(formatAmount(i.Amount)),
		url.QueryEscape(i.Currency),
	)
}

// formatAmount renders cents as a decimal string with two places ("30.00")
func formatAmount(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}
