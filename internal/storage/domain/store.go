// Package domain defines the keyed blob store the console persists
// drafts and archives through.
package domain

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

// Store reads and writes opaque keyed blobs. A missing or unreadable
// key is absence, never an error the caller must handle specially.
type Store interface {
	Read(ctx context.Context, key string) ([]byte, bool, error)
	Write(ctx context.Context, key string, value []byte) error
}

// Entry is one persisted blob.
type Entry struct {
	Key       string         `gorm:"primaryKey;type:text"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Entry) TableName() string { return "storage_entries" }
