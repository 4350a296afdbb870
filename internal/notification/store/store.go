// Package store keeps per-role notification inboxes in memory. The
// store is created at application start and owned by the fx graph; no
// package-level state.
package store

import (
	"context"
	"sync"

	"github.com/bwmarrin/snowflake"

	catalogdomain "github.com/auroradigital/billingdesk/internal/catalog/domain"
	"github.com/auroradigital/billingdesk/internal/clock"
	notificationdomain "github.com/auroradigital/billingdesk/internal/notification/domain"
	obsmetrics "github.com/auroradigital/billingdesk/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type StoreParam struct {
	fx.In

	GenID   *snowflake.Node
	Clock   clock.Clock
	Log     *zap.Logger
	Metrics *obsmetrics.Metrics `optional:"true"`
}

// Store is an append-only notification list, newest first.
type Store struct {
	mu       sync.Mutex
	messages []notificationdomain.Message

	genID   *snowflake.Node
	clock   clock.Clock
	log     *zap.Logger
	metrics *obsmetrics.Metrics
}

func New(p StoreParam) *Store {
	return &Store{
		genID:   p.GenID,
		clock:   p.Clock,
		log:     p.Log.Named("notification.store"),
		metrics: p.Metrics,
	}
}

// PushInput carries everything a new message needs except its id,
// timestamp, and read status, which the store assigns.
type PushInput struct {
	RecipientRole    catalogdomain.Role
	Message          string
	RelatedInvoiceID string
	ActionRequired   bool
}

// Push prepends a new unread message and returns it.
func (s *Store) Push(ctx context.Context, in PushInput) notificationdomain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := notificationdomain.Message{
		ID:               s.genID.Generate().String(),
		RecipientRole:    in.RecipientRole,
		Message:          in.Message,
		Timestamp:        s.clock.Now(),
		RelatedInvoiceID: in.RelatedInvoiceID,
		Status:           notificationdomain.StatusUnread,
		ActionRequired:   in.ActionRequired,
	}
	s.messages = append([]notificationdomain.Message{msg}, s.messages...)

	s.log.Debug("notification pushed",
		zap.String("recipient_role", string(in.RecipientRole)),
		zap.Bool("action_required", in.ActionRequired),
	)
	s.metrics.RecordNotificationEmitted(ctx, string(in.RecipientRole))
	return msg
}

// MarkRead flips one message to read. Unknown ids are a no-op.
func (s *Store) MarkRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Status = notificationdomain.StatusRead
			return
		}
	}
}

// MarkAllReadForRole flips every message addressed to the role.
func (s *Store) MarkAllReadForRole(role catalogdomain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		if s.messages[i].RecipientRole == role {
			s.messages[i].Status = notificationdomain.StatusRead
		}
	}
}

// UnreadCount reports how many unread messages the role has.
func (s *Store) UnreadCount(role catalogdomain.Role) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, msg := range s.messages {
		if msg.RecipientRole == role && msg.Status == notificationdomain.StatusUnread {
			count++
		}
	}
	return count
}

// ListForRole returns the role's messages, newest first.
func (s *Store) ListForRole(role catalogdomain.Role) []notificationdomain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]notificationdomain.Message, 0)
	for _, msg := range s.messages {
		if msg.RecipientRole == role {
			out = append(out, msg)
		}
	}
	return out
}
