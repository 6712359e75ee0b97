package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a payment was made
type PaymentMethod int

const (
	PaymentMethodCash         PaymentMethod = 0
	PaymentMethodUPI          PaymentMethod = 1
	PaymentMethodCard         PaymentMethod = 2
	PaymentMethodBankTransfer PaymentMethod = 3
	PaymentMethodCheque       PaymentMethod = 4
)

func (m PaymentMethod) String() string {
	return [...]string{"Cash", "UPI", "Card", "Bank Transfer", "Cheque"}[m]
}

// Valid reports whether m is one of the enumerated methods.
func (m PaymentMethod) Valid() bool {
	return m >= PaymentMethodCash && m <= PaymentMethodCheque
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	switch str {
	case "Cash":
		*m = PaymentMethodCash
	case "UPI":
		*m = PaymentMethodUPI
	case "Card":
		*m = PaymentMethodCard
	case "Bank Transfer":
		*m = PaymentMethodBankTransfer
	case "Cheque":
		*m = PaymentMethodCheque
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
