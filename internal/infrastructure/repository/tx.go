package repository

import (
	"context"

	domainRepo "github.com/edusys/school-api/internal/domain/repository"
	"gorm.io/gorm"
)

type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager backed by GORM
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &gormTxManager{db: db}
}

// Do runs fn inside a database transaction. The transaction handle is
// stored in the derived context, so repository calls made with that context
// join the same transaction. Any error from fn rolls everything back.
func (m *gormTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// dbFromContext returns the transaction handle from the context if one is
// open, otherwise the base connection. Every repository method resolves its
// handle through this so it transparently joins a surrounding transaction.
func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return db
}
