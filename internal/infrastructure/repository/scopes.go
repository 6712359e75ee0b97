package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// SchoolIDKey is the context key for the authenticated school ID
	SchoolIDKey ctxKey = "school_id"
	// txKey is the context key carrying an open transaction handle
	txKey ctxKey = "gorm_tx"
)

// SchoolScope returns a GORM scope that filters by school
// This should be applied to all queries for school-scoped entities
func SchoolScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		schoolID, ok := ctx.Value(SchoolIDKey).(uuid.UUID)
		if !ok {
			// Fail-safe: return no results if school context missing
			// This prevents accidental cross-school data access
			return db.Where("1 = 0")
		}
		return db.Where("school_id = ?", schoolID)
	}
}

// WithSchool adds school ID to context
func WithSchool(ctx context.Context, schoolID uuid.UUID) context.Context {
	return context.WithValue(ctx, SchoolIDKey, schoolID)
}

// GetSchoolID extracts school ID from context
func GetSchoolID(ctx context.Context) (uuid.UUID, bool) {
	schoolID, ok := ctx.Value(SchoolIDKey).(uuid.UUID)
	return schoolID, ok
}
