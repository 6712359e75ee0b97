package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ExamType categorizes an exam within an academic year
type ExamType int

const (
	ExamTypeUnitTest   ExamType = 0
	ExamTypeMidterm    ExamType = 1
	ExamTypeFinal      ExamType = 2
	ExamTypeQuarterly  ExamType = 3
	ExamTypeHalfYearly ExamType = 4
	ExamTypeAnnual     ExamType = 5
)

func (t ExamType) String() string {
	return [...]string{"Unit Test", "Midterm", "Final", "Quarterly", "Half Yearly", "Annual"}[t]
}

func (t ExamType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ExamType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = ExamType(i)
		return nil
	}
	switch str {
	case "Unit Test":
		*t = ExamTypeUnitTest
	case "Midterm":
		*t = ExamTypeMidterm
	case "Final":
		*t = ExamTypeFinal
	case "Quarterly":
		*t = ExamTypeQuarterly
	case "Half Yearly":
		*t = ExamTypeHalfYearly
	case "Annual":
		*t = ExamTypeAnnual
	}
	return nil
}

func (t ExamType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *ExamType) Scan(value interface{}) error {
	if value == nil {
		*t = ExamTypeUnitTest
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = ExamType(v)
	case int:
		*t = ExamType(v)
	}
	return nil
}
