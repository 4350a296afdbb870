package domain

import (
	"time"

	catalogdomain "github.com/auroradigital/billingdesk/internal/catalog/domain"
)

// ReadStatus is the read-state toggle on a message.
type ReadStatus string

const (
	StatusUnread ReadStatus = "unread"
	StatusRead   ReadStatus = "read"
)

// Message is one entry in a role's inbox. Messages are append-only;
// the only mutation after creation is the read-state toggle.
type Message struct {
	ID               string             `json:"id"`
	RecipientRole    catalogdomain.Role `json:"recipientRole"`
	Message          string             `json:"message"`
	Timestamp        time.Time          `json:"timestamp"`
	RelatedInvoiceID string             `json:"relatedInvoiceId,omitempty"`
	Status           ReadStatus         `json:"status"`
	ActionRequired   bool               `json:"actionRequired"`
}
