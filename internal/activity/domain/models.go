package domain

import (
	"context"
	"time"
)

// ActivityType buckets trail entries for the dashboard feed.
type ActivityType string

const (
	TypeInvoice  ActivityType = "invoice"
	TypeApproval ActivityType = "approval"
	TypePayment  ActivityType = "payment"
	TypeSystem   ActivityType = "system"
)

// Entry is one row of the billing activity trail.
type Entry struct {
	ID               string       `gorm:"primaryKey" json:"id"`
	Actor            string       `gorm:"type:text;not null" json:"actor"`
	ActivityType     ActivityType `gorm:"type:text;not null" json:"activityType"`
	Summary          string       `gorm:"type:text;not null" json:"summary"`
	RelatedInvoiceID string       `gorm:"type:text" json:"relatedInvoiceId,omitempty"`
	Timestamp        time.Time    `gorm:"not null;index" json:"timestamp"`
}

func (Entry) TableName() string {
	return "activity_entries"
}

// NewEntry is the caller-supplied part of an entry; the recorder
// assigns id and timestamp.
type NewEntry struct {
	Actor            string
	ActivityType     ActivityType
	Summary          string
	RelatedInvoiceID string
}

// Recorder appends to and reads the activity trail.
type Recorder interface {
	Record(ctx context.Context, entry NewEntry) error
	List(ctx context.Context, limit int) ([]Entry, error)
}
