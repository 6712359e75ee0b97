package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/edusys/school-api/internal/domain/enum"
	"github.com/edusys/school-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attendanceFixture struct {
	svc      *AttendanceService
	ctx      context.Context
	classID  uuid.UUID
	studentA uuid.UUID
	studentB uuid.UUID
}

func newAttendanceFixture(t *testing.T) *attendanceFixture {
	t.Helper()

	schoolID := uuid.New()
	class := &entity.ClassRoom{ID: uuid.New(), SchoolID: schoolID, Name: "Class 5"}
	studentA := &entity.Student{ID: uuid.New(), SchoolID: schoolID, AdmissionNo: "ADM-001", FirstName: "Asha", LastName: "Verma"}
	studentB := &entity.Student{ID: uuid.New(), SchoolID: schoolID, AdmissionNo: "ADM-002", FirstName: "Ravi", LastName: "Nair"}

	svc := NewAttendanceService(
		newFakeAttendanceRepo(),
		newFakeStudentRepo(studentA, studentB),
		newFakeClassRepo(class),
		fakeTxManager{},
	)

	return &attendanceFixture{
		svc:      svc,
		ctx:      schoolCtx(schoolID),
		classID:  class.ID,
		studentA: studentA.ID,
		studentB: studentB.ID,
	}
}

func TestMarkAttendance(t *testing.T) {
	f := newAttendanceFixture(t)

	session, err := f.svc.MarkAttendance(f.ctx, &MarkAttendanceInput{
		ClassID: f.classID,
		Date:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Entries: []AttendanceEntryInput{
			{StudentID: f.studentA, Status: enum.AttendancePresent},
			{StudentID: f.studentB, Status: enum.AttendanceAbsent},
		},
	})
	require.NoError(t, err)
	require.Len(t, session.Records, 2)
	assert.Equal(t, f.classID, session.ClassID)
}

func TestMarkAttendanceDuplicateSession(t *testing.T) {
	f := newAttendanceFixture(t)
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	entries := []AttendanceEntryInput{{StudentID: f.studentA, Status: enum.AttendancePresent}}

	_, err := f.svc.MarkAttendance(f.ctx, &MarkAttendanceInput{ClassID: f.classID, Date: date, Entries: entries})
	require.NoError(t, err)

	_, err = f.svc.MarkAttendance(f.ctx, &MarkAttendanceInput{ClassID: f.classID, Date: date, Entries: entries})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Equal(t, "Attendance is already marked for this class and date", appErr.Message)

	// A different period on the same day is a separate register.
	period := "afternoon"
	_, err = f.svc.MarkAttendance(f.ctx, &MarkAttendanceInput{ClassID: f.classID, Date: date, Period: &period, Entries: entries})
	assert.NoError(t, err)
}

func TestMarkAttendanceUnknownStudent(t *testing.T) {
	f := newAttendanceFixture(t)

	_, err := f.svc.MarkAttendance(f.ctx, &MarkAttendanceInput{
		ClassID: f.classID,
		Date:    time.Now(),
		Entries: []AttendanceEntryInput{
			{StudentID: f.studentA, Status: enum.AttendancePresent},
			{StudentID: uuid.New(), Status: enum.AttendancePresent},
		},
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "entries[1].student_id", appErr.Errors[0].Field)
}

func TestGetClassSummary(t *testing.T) {
	f := newAttendanceFixture(t)
	day1 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	_, err := f.svc.MarkAttendance(f.ctx, &MarkAttendanceInput{
		ClassID: f.classID,
		Date:    day1,
		Entries: []AttendanceEntryInput{
			{StudentID: f.studentA, Status: enum.AttendancePresent},
			{StudentID: f.studentB, Status: enum.AttendanceAbsent},
		},
	})
	require.NoError(t, err)

	_, err = f.svc.MarkAttendance(f.ctx, &MarkAttendanceInput{
		ClassID: f.classID,
		Date:    day2,
		Entries: []AttendanceEntryInput{
			{StudentID: f.studentA, Status: enum.AttendanceLate},
			{StudentID: f.studentB, Status: enum.AttendancePresent},
		},
	})
	require.NoError(t, err)

	summary, err := f.svc.GetClassSummary(f.ctx, f.classID, nil, day1, day2)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.SessionCount)
	assert.Equal(t, 2, summary.StatusCounts["Present"])
	assert.Equal(t, 1, summary.StatusCounts["Absent"])
	assert.Equal(t, 1, summary.StatusCounts["Late"])

	a := summary.ByStudent[f.studentA]
	assert.Equal(t, 1, a.Present)
	assert.Equal(t, 1, a.Late)
	b := summary.ByStudent[f.studentB]
	assert.Equal(t, 1, b.Present)
	assert.Equal(t, 1, b.Absent)
}
