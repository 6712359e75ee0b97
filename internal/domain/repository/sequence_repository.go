package repository

import (
	"context"

	"github.com/google/uuid"
)

// SequenceRepository allocates per-school monotonically increasing numbers
// for human-readable identifiers (invoice and receipt numbers). Next must
// be called inside a transaction; the counter row is locked until commit,
// which serializes allocation per school and makes the numbers gapless
// when the surrounding transaction rolls back.
type SequenceRepository interface {
	Next(ctx context.Context, schoolID uuid.UUID, name string) (int64, error)
}
