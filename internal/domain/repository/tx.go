package repository

import "context"

// TxManager runs a function inside a single storage transaction. The
// transaction handle travels in the context, so repository calls made with
// the derived context all commit or roll back together. Services use this
// for multi-step mutations (payment recording, report-card regeneration)
// without depending on the storage driver.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
