package service

import (
	"net/http"
	"testing"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/edusys/school-api/pkg/apperror"
	"github.com/edusys/school-api/pkg/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeeService(t *testing.T, schoolID uuid.UUID) (*FeeService, uuid.UUID, uuid.UUID) {
	t.Helper()
	year := &entity.AcademicYear{ID: uuid.New(), SchoolID: schoolID, Name: "2025-26"}
	class := &entity.ClassRoom{ID: uuid.New(), SchoolID: schoolID, Name: "Class 5", Level: 5}
	svc := NewFeeService(newFakeFeeRepo(), newFakeYearRepo(year), newFakeClassRepo(class))
	return svc, year.ID, class.ID
}

func TestCreateFeeStructure(t *testing.T) {
	schoolID := uuid.New()
	svc, yearID, classID := newFeeService(t, schoolID)
	optional := false

	structure, err := svc.CreateStructure(schoolCtx(schoolID), &CreateFeeStructureInput{
		AcademicYearID: yearID,
		ClassID:        classID,
		Name:           "Class 5 Annual Fees",
		Items: []FeeItemInput{
			{Name: "Tuition", Amount: mustMoney(t, "800.00")},
			{Name: "Excursion", Amount: mustMoney(t, "500.00"), IsMandatory: &optional},
		},
	})
	require.NoError(t, err)
	require.Len(t, structure.Items, 2)

	// Mandatory defaults to true when the caller leaves it out.
	assert.True(t, structure.Items[0].IsMandatory)
	assert.False(t, structure.Items[1].IsMandatory)
	assert.Equal(t, "800.00", structure.MandatoryTotal().String())
}

func TestCreateFeeStructureValidation(t *testing.T) {
	schoolID := uuid.New()
	svc, yearID, classID := newFeeService(t, schoolID)

	_, err := svc.CreateStructure(schoolCtx(schoolID), &CreateFeeStructureInput{
		AcademicYearID: yearID,
		ClassID:        classID,
		Name:           "",
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	require.Len(t, appErr.Errors, 2)
	assert.Equal(t, "name", appErr.Errors[0].Field)
	assert.Equal(t, "items", appErr.Errors[1].Field)

	_, err = svc.CreateStructure(schoolCtx(schoolID), &CreateFeeStructureInput{
		AcademicYearID: yearID,
		ClassID:        classID,
		Name:           "Fees",
		Items: []FeeItemInput{
			{Name: "", Amount: money.Zero},
		},
	})
	require.Error(t, err)
	appErr = apperror.GetAppError(err)
	require.Len(t, appErr.Errors, 2)
	assert.Equal(t, "items[0].name", appErr.Errors[0].Field)
	assert.Equal(t, "items[0].amount", appErr.Errors[1].Field)
}

func TestCreateFeeStructureUnknownReferences(t *testing.T) {
	schoolID := uuid.New()
	svc, yearID, _ := newFeeService(t, schoolID)

	items := []FeeItemInput{{Name: "Tuition", Amount: mustMoney(t, "800.00")}}

	_, err := svc.CreateStructure(schoolCtx(schoolID), &CreateFeeStructureInput{
		AcademicYearID: uuid.New(),
		ClassID:        uuid.New(),
		Name:           "Fees",
		Items:          items,
	})
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.CreateStructure(schoolCtx(schoolID), &CreateFeeStructureInput{
		AcademicYearID: yearID,
		ClassID:        uuid.New(),
		Name:           "Fees",
		Items:          items,
	})
	assert.True(t, apperror.IsNotFound(err))
}
