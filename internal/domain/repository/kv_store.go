package repository

import "context"

// Logical keys held in the key-value store
const (
	KeyProducts        = "catalog.products"
	KeySales           = "ledger.sales"
	KeyLastOrderNumber = "sequence.last_order_number"
)

// KVStore is the persistence collaborator: a flat map of keys to JSON documents
type KVStore interface {
	// Get returns the stored value and whether the key exists
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put replaces the value stored under key
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
