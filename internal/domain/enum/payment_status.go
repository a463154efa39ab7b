package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentStatus represents the payment state of a bill
type PaymentStatus int

const (
	PaymentStatusPending PaymentStatus = 0
	PaymentStatusPaid    PaymentStatus = 1
)

func (s PaymentStatus) String() string {
	names := [...]string{"Pending", "Paid"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = PaymentStatusPending
	case "Paid":
		*s = PaymentStatusPaid
	}
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}
