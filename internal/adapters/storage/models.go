package storage

import "time"

// EntryModel is the GORM model for the key-value table. Every value is a
// JSON-encoded domain object or array.
type EntryModel struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     string `gorm:"not null;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (EntryModel) TableName() string { return "kv_entries" }
