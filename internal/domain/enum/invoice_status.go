package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceStatus represents the lifecycle status of an invoice. It is a
// projection derived from the invoice balances and is never set
// independently of them; Overdue and Cancelled are recognized states that
// only an external sweep or admin action moves an invoice into.
type InvoiceStatus int

const (
	InvoiceStatusPending   InvoiceStatus = 0
	InvoiceStatusPartial   InvoiceStatus = 1
	InvoiceStatusPaid      InvoiceStatus = 2
	InvoiceStatusOverdue   InvoiceStatus = 3
	InvoiceStatusCancelled InvoiceStatus = 4
)

func (s InvoiceStatus) String() string {
	return [...]string{"Pending", "Partial", "Paid", "Overdue", "Cancelled"}[s]
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = InvoiceStatusPending
	case "Partial":
		*s = InvoiceStatusPartial
	case "Paid":
		*s = InvoiceStatusPaid
	case "Overdue":
		*s = InvoiceStatusOverdue
	case "Cancelled":
		*s = InvoiceStatusCancelled
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
