package entity

import "time"

// KVEntry is the row layout used by SQL-backed key-value stores
type KVEntry struct {
	Key       string    `gorm:"column:k;primaryKey;size:191"`
	Value     []byte    `gorm:"column:v;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName returns the table name for the KVEntry model
func (KVEntry) TableName() string {
	return "kv_entries"
}
