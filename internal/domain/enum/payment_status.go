package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentStatus represents the outcome of a recorded payment. Only Success
// payments affect invoice balances.
type PaymentStatus int

const (
	PaymentStatusSuccess PaymentStatus = 0
	PaymentStatusFailed  PaymentStatus = 1
	PaymentStatusPending PaymentStatus = 2
)

func (s PaymentStatus) String() string {
	return [...]string{"Success", "Failed", "Pending"}[s]
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	switch str {
	case "Success":
		*s = PaymentStatusSuccess
	case "Failed":
		*s = PaymentStatusFailed
	case "Pending":
		*s = PaymentStatusPending
	}
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusSuccess
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
