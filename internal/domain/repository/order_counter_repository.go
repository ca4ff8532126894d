package repository

import "context"

// OrderCounterRepository persists the last issued order number
type OrderCounterRepository interface {
	// Load returns the last issued number and whether one was ever stored
	Load(ctx context.Context) (int64, bool, error)
	Save(ctx context.Context, last int64) error
}
