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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type examFixture struct {
	svc       *ExamService
	ctx       context.Context
	schoolID  uuid.UUID
	yearID    uuid.UUID
	classID   uuid.UUID
	mathID    uuid.UUID
	scienceID uuid.UUID
	historyID uuid.UUID
	studentA  uuid.UUID
	studentB  uuid.UUID
	examRepo  *fakeExamRepo
	markRepo  *fakeMarkRepo
}

func newExamFixture(t *testing.T) *examFixture {
	t.Helper()

	schoolID := uuid.New()
	year := &entity.AcademicYear{ID: uuid.New(), SchoolID: schoolID, Name: "2025-26"}
	math := &entity.Subject{ID: uuid.New(), SchoolID: schoolID, Name: "Mathematics"}
	science := &entity.Subject{ID: uuid.New(), SchoolID: schoolID, Name: "Science"}
	history := &entity.Subject{ID: uuid.New(), SchoolID: schoolID, Name: "History"}
	studentA := &entity.Student{ID: uuid.New(), SchoolID: schoolID, AdmissionNo: "ADM-001", FirstName: "Asha", LastName: "Verma"}
	studentB := &entity.Student{ID: uuid.New(), SchoolID: schoolID, AdmissionNo: "ADM-002", FirstName: "Ravi", LastName: "Nair"}

	examRepo := newFakeExamRepo()
	markRepo := newFakeMarkRepo()
	svc := NewExamService(
		examRepo,
		markRepo,
		newFakeStudentRepo(studentA, studentB),
		newFakeSubjectRepo(math, science, history),
		newFakeYearRepo(year),
		fakeTxManager{},
	)

	return &examFixture{
		svc:       svc,
		ctx:       schoolCtx(schoolID),
		schoolID:  schoolID,
		yearID:    year.ID,
		classID:   uuid.New(),
		mathID:    math.ID,
		scienceID: science.ID,
		historyID: history.ID,
		studentA:  studentA.ID,
		studentB:  studentB.ID,
		examRepo:  examRepo,
		markRepo:  markRepo,
	}
}

func (f *examFixture) createExam(t *testing.T) *entity.Exam {
	t.Helper()
	exam, err := f.svc.CreateExam(f.ctx, &CreateExamInput{
		AcademicYearID: f.yearID,
		Name:           "Midterm",
		ExamType:       enum.ExamTypeMidterm,
		Schedule: []ExamScheduleInput{
			{SubjectID: f.mathID, ClassID: f.classID, Date: time.Now(), MaxMarks: decimal.NewFromInt(100), PassingMarks: decimal.NewFromInt(35)},
			{SubjectID: f.scienceID, ClassID: f.classID, Date: time.Now(), MaxMarks: decimal.NewFromInt(50), PassingMarks: decimal.NewFromInt(17)},
		},
	})
	require.NoError(t, err)
	return exam
}

func TestCreateExam(t *testing.T) {
	f := newExamFixture(t)
	exam := f.createExam(t)

	assert.Equal(t, "Midterm", exam.Name)
	assert.False(t, exam.IsPublished)
	require.Len(t, exam.Schedule, 2)

	maxBySubject := exam.ScheduleMaxMarks()
	assert.True(t, maxBySubject[f.mathID].Equal(decimal.NewFromInt(100)))
	assert.True(t, maxBySubject[f.scienceID].Equal(decimal.NewFromInt(50)))
}

func TestCreateExamValidation(t *testing.T) {
	f := newExamFixture(t)

	_, err := f.svc.CreateExam(f.ctx, &CreateExamInput{
		AcademicYearID: f.yearID,
		Name:           "",
		Schedule: []ExamScheduleInput{
			{SubjectID: f.mathID, ClassID: f.classID, Date: time.Now(), MaxMarks: decimal.Zero, PassingMarks: decimal.NewFromInt(10)},
		},
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)

	fields := make([]string, 0, len(appErr.Errors))
	for _, fe := range appErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "schedule[0].max_marks")
	assert.Contains(t, fields, "schedule[0].passing_marks")
}

func TestCreateExamUnknownAcademicYear(t *testing.T) {
	f := newExamFixture(t)

	_, err := f.svc.CreateExam(f.ctx, &CreateExamInput{
		AcademicYearID: uuid.New(),
		Name:           "Midterm",
	})
	assert.True(t, apperror.IsNotFound(err))
}

func TestUploadMarks(t *testing.T) {
	f := newExamFixture(t)
	exam := f.createExam(t)

	obtained := decimal.NewFromInt(95)
	marks, err := f.svc.UploadMarks(f.ctx, exam.ID, []MarkEntryInput{
		{StudentID: f.studentA, SubjectID: f.mathID, MarksObtained: &obtained},
		{StudentID: f.studentA, SubjectID: f.scienceID, IsAbsent: true},
	})
	require.NoError(t, err)
	require.Len(t, marks, 2)

	scored := marks[0]
	require.NotNil(t, scored.MarksObtained)
	assert.True(t, scored.MarksObtained.Equal(decimal.NewFromInt(95)))
	require.NotNil(t, scored.MaxMarks, "max marks must be copied from the schedule")
	assert.True(t, scored.MaxMarks.Equal(decimal.NewFromInt(100)))
	require.NotNil(t, scored.Grade)
	assert.Equal(t, "A+", *scored.Grade)

	absent := marks[1]
	assert.True(t, absent.IsAbsent)
	assert.Nil(t, absent.MarksObtained)
	assert.Nil(t, absent.Grade)
	require.NotNil(t, absent.MaxMarks)
	assert.True(t, absent.MaxMarks.Equal(decimal.NewFromInt(50)))
}

func TestUploadMarksReplacesExistingEntry(t *testing.T) {
	f := newExamFixture(t)
	exam := f.createExam(t)

	first := decimal.NewFromInt(60)
	_, err := f.svc.UploadMarks(f.ctx, exam.ID, []MarkEntryInput{
		{StudentID: f.studentA, SubjectID: f.mathID, MarksObtained: &first},
	})
	require.NoError(t, err)

	corrected := decimal.NewFromInt(72)
	_, err = f.svc.UploadMarks(f.ctx, exam.ID, []MarkEntryInput{
		{StudentID: f.studentA, SubjectID: f.mathID, MarksObtained: &corrected},
	})
	require.NoError(t, err)

	stored, err := f.markRepo.ListByExamAndStudent(f.ctx, exam.ID, f.studentA)
	require.NoError(t, err)
	require.Len(t, stored, 1, "re-upload must replace, not duplicate")
	assert.True(t, stored[0].MarksObtained.Equal(decimal.NewFromInt(72)))
	require.NotNil(t, stored[0].Grade)
	assert.Equal(t, "B+", *stored[0].Grade)
}

func TestUploadMarksUnscheduledSubject(t *testing.T) {
	f := newExamFixture(t)
	exam := f.createExam(t)

	// History exists but was never scheduled for this exam. The score is
	// kept as an incomplete record: no max to grade against, no grade.
	obtained := decimal.NewFromInt(42)
	marks, err := f.svc.UploadMarks(f.ctx, exam.ID, []MarkEntryInput{
		{StudentID: f.studentA, SubjectID: f.historyID, MarksObtained: &obtained},
	})
	require.NoError(t, err)
	require.Len(t, marks, 1)

	stored, err := f.markRepo.ListByExamAndStudent(f.ctx, exam.ID, f.studentA)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.NotNil(t, stored[0].MarksObtained)
	assert.True(t, stored[0].MarksObtained.Equal(decimal.NewFromInt(42)))
	assert.Nil(t, stored[0].MaxMarks)
	assert.Nil(t, stored[0].Grade)

	// Negative scores are still rejected even without a maximum.
	negative := decimal.NewFromInt(-1)
	_, err = f.svc.UploadMarks(f.ctx, exam.ID, []MarkEntryInput{
		{StudentID: f.studentA, SubjectID: f.historyID, MarksObtained: &negative},
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "entries[0].marks_obtained", appErr.Errors[0].Field)
}

func TestUploadMarksValidation(t *testing.T) {
	f := newExamFixture(t)
	exam := f.createExam(t)

	over := decimal.NewFromInt(101)
	_, err := f.svc.UploadMarks(f.ctx, exam.ID, []MarkEntryInput{
		{StudentID: uuid.New(), SubjectID: f.mathID, MarksObtained: &over},
		{StudentID: f.studentA, SubjectID: uuid.New(), MarksObtained: &over},
		{StudentID: f.studentA, SubjectID: f.mathID},
		{StudentID: f.studentB, SubjectID: f.mathID, MarksObtained: &over},
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	require.Len(t, appErr.Errors, 4)
	assert.Equal(t, "entries[0].student_id", appErr.Errors[0].Field)
	assert.Equal(t, "entries[1].subject_id", appErr.Errors[1].Field)
	assert.Equal(t, "entries[2].marks_obtained", appErr.Errors[2].Field)
	assert.Equal(t, "entries[3].marks_obtained", appErr.Errors[3].Field)

	// Nothing was written.
	stored, err := f.markRepo.ListByExam(f.ctx, exam.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestUploadMarksEmptyEntries(t *testing.T) {
	f := newExamFixture(t)
	exam := f.createExam(t)

	_, err := f.svc.UploadMarks(f.ctx, exam.ID, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)
}

func TestUploadMarksUnknownExam(t *testing.T) {
	f := newExamFixture(t)

	score := decimal.NewFromInt(50)
	_, err := f.svc.UploadMarks(f.ctx, uuid.New(), []MarkEntryInput{
		{StudentID: f.studentA, SubjectID: f.mathID, MarksObtained: &score},
	})
	assert.True(t, apperror.IsNotFound(err))
}
