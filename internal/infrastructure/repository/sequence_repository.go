package repository

import (
	"context"

	"github.com/edusys/school-api/internal/domain/entity"
	domainRepo "github.com/edusys/school-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new sequence repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next increments and returns the named per-school counter. The SELECT FOR
// UPDATE holds the row until the surrounding transaction commits, so two
// concurrent allocations for the same school can never see the same value.
func (r *sequenceRepository) Next(ctx context.Context, schoolID uuid.UUID, name string) (int64, error) {
	db := dbFromContext(ctx, r.db).WithContext(ctx)

	// Seed the counter row on first use
	seed := entity.SequenceCounter{SchoolID: schoolID, Name: name}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return 0, err
	}

	var counter entity.SequenceCounter
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&counter, "school_id = ? AND name = ?", schoolID, name).Error; err != nil {
		return 0, err
	}

	counter.Value++
	if err := db.Model(&entity.SequenceCounter{}).
		Where("school_id = ? AND name = ?", schoolID, name).
		Update("value", counter.Value).Error; err != nil {
		return 0, err
	}
	return counter.Value, nil
}
