package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// AttendanceStatus represents a student's attendance for one session
type AttendanceStatus int

const (
	AttendancePresent AttendanceStatus = 0
	AttendanceAbsent  AttendanceStatus = 1
	AttendanceLate    AttendanceStatus = 2
	AttendanceHalfDay AttendanceStatus = 3
)

func (s AttendanceStatus) String() string {
	return [...]string{"Present", "Absent", "Late", "Half Day"}[s]
}

func (s AttendanceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *AttendanceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = AttendanceStatus(i)
		return nil
	}
	switch str {
	case "Present":
		*s = AttendancePresent
	case "Absent":
		*s = AttendanceAbsent
	case "Late":
		*s = AttendanceLate
	case "Half Day":
		*s = AttendanceHalfDay
	}
	return nil
}

func (s AttendanceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *AttendanceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = AttendancePresent
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = AttendanceStatus(v)
	case int:
		*s = AttendanceStatus(v)
	}
	return nil
}
