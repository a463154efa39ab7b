package entity

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// Receipt is a value object representing a printable bill receipt.
// It is not a database entity; it is composed from bill data at print time.
type Receipt struct {
	BillNo        string        `json:"bill_no"`
	Date          string        `json:"date"`
	Customer      string        `json:"customer,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	PaymentStatus string        `json:"payment_status,omitempty"`
	Header        ReceiptHeader `json:"header"`
	Items         []ReceiptItem `json:"items"`
	Total         float64       `json:"total"`
}
