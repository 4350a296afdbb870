package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"

	activitydomain "github.com/auroradigital/billingdesk/internal/activity/domain"
	catalogdomain "github.com/auroradigital/billingdesk/internal/catalog/domain"
	"github.com/auroradigital/billingdesk/internal/clock"
	invoicedomain "github.com/auroradigital/billingdesk/internal/invoice/domain"
	notificationstore "github.com/auroradigital/billingdesk/internal/notification/store"
	obsmetrics "github.com/auroradigital/billingdesk/internal/observability/metrics"
	workflowdomain "github.com/auroradigital/billingdesk/internal/workflow/domain"
	workflowstore "github.com/auroradigital/billingdesk/internal/workflow/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Store         *workflowstore.Store
	Notifications *notificationstore.Store
	Activity      activitydomain.Recorder
	Clock         clock.Clock
	GenID         *snowflake.Node
	Log           *zap.Logger
	Metrics       *obsmetrics.Metrics `optional:"true"`
}

// Service drives the approval lifecycle of posted invoices.
type Service struct {
	store         *workflowstore.Store
	notifications *notificationstore.Store
	activity      activitydomain.Recorder
	clock         clock.Clock
	genID         *snowflake.Node
	log           *zap.Logger
	metrics       *obsmetrics.Metrics
}

func New(p Params) *Service {
	return &Service{
		store:         p.Store,
		notifications: p.Notifications,
		activity:      p.Activity,
		clock:         p.Clock,
		genID:         p.GenID,
		log:           p.Log.Named("workflow.service"),
		metrics:       p.Metrics,
	}
}

// Submit posts a drafted invoice into the ledger awaiting approval.
// The stored amount is the gross sum of quantity times unit price;
// discounts and tax stay in the drafting preview only.
func (s *Service) Submit(ctx context.Context, form invoicedomain.FormState, authorRole catalogdomain.Role) workflowdomain.InvoiceRecord {
	record := workflowdomain.InvoiceRecord{
		ID:             s.genID.Generate().String(),
		InvoiceNumber:  form.Meta.InvoiceNumber,
		ClientID:       form.ClientSelectionID,
		Engagement:     form.Meta.ProjectName,
		Currency:       form.Currency,
		Amount:         GrossAmount(form.LineItems),
		Status:         workflowdomain.StatusPending,
		IssueDate:      form.Meta.IssueDate,
		DueDate:        form.Meta.DueDate,
		LastUpdated:    s.clock.Now(),
		CreatedBy:      authorRole,
		ApprovalStatus: workflowdomain.ApprovalAwaiting,
		LineItems:      append([]invoicedomain.LineItem(nil), form.LineItems...),
		Notes:          form.AdditionalNote,
	}
	s.store.Prepend(record)

	s.notifications.Push(ctx, notificationstore.PushInput{
		RecipientRole:    catalogdomain.RoleCEO,
		Message:          fmt.Sprintf("Invoice %s is awaiting your approval.", record.InvoiceNumber),
		RelatedInvoiceID: record.ID,
		ActionRequired:   true,
	})

	if err := s.activity.Record(ctx, activitydomain.NewEntry{
		Actor:            string(authorRole),
		ActivityType:     activitydomain.TypeInvoice,
		Summary:          fmt.Sprintf("Invoice %s submitted for approval", record.InvoiceNumber),
		RelatedInvoiceID: record.ID,
	}); err != nil {
		s.log.Warn("activity record failed", zap.Error(err))
	}

	s.metrics.RecordInvoiceSubmitted(ctx, string(authorRole))
	s.log.Info("invoice submitted",
		zap.String("invoice_id", record.ID),
		zap.String("invoice_number", record.InvoiceNumber),
		zap.String("author_role", string(authorRole)),
	)
	return record
}

// SetApprovalStatus transitions a record and fans out notifications.
// Unknown ids and invalid transitions leave the ledger untouched and
// report ok=false. On success the updated record is returned so the
// caller can route a Needs Edits verdict back into editing.
func (s *Service) SetApprovalStatus(ctx context.Context, id string, next workflowdomain.ApprovalStatus) (workflowdomain.InvoiceRecord, bool) {
	current, found := s.store.Get(id)
	if !found {
		return workflowdomain.InvoiceRecord{}, false
	}
	if !workflowdomain.ValidTransition(current.ApprovalStatus, next) {
		s.log.Warn("approval transition rejected",
			zap.String("invoice_id", id),
			zap.String("from", string(current.ApprovalStatus)),
			zap.String("to", string(next)),
		)
		return workflowdomain.InvoiceRecord{}, false
	}

	updated, _ := s.store.Mutate(id, func(record *workflowdomain.InvoiceRecord) {
		record.ApprovalStatus = next
		record.LastUpdated = s.clock.Now()
	})

	s.notifications.Push(ctx, notificationstore.PushInput{
		RecipientRole:    catalogdomain.RoleEmployee,
		Message:          employeeVerdictMessage(updated.InvoiceNumber, next),
		RelatedInvoiceID: updated.ID,
		ActionRequired:   next != workflowdomain.ApprovalApproved,
	})
	if next == workflowdomain.ApprovalApproved {
		s.notifications.Push(ctx, notificationstore.PushInput{
			RecipientRole:    catalogdomain.RoleCEO,
			Message:          fmt.Sprintf("Invoice %s approved. A client-shareable link is ready.", updated.InvoiceNumber),
			RelatedInvoiceID: updated.ID,
		})
	}

	if err := s.activity.Record(ctx, activitydomain.NewEntry{
		Actor:            string(catalogdomain.RoleCEO),
		ActivityType:     activitydomain.TypeApproval,
		Summary:          fmt.Sprintf("Invoice %s marked %s", updated.InvoiceNumber, next),
		RelatedInvoiceID: updated.ID,
	}); err != nil {
		s.log.Warn("activity record failed", zap.Error(err))
	}

	s.metrics.RecordApprovalTransition(ctx, string(next))
	return updated, true
}

// Resubmit posts a fresh record for an invoice previously sent back
// with Needs Edits. The original record keeps its verdict as the
// audit trail; the new record points back at it.
func (s *Service) Resubmit(ctx context.Context, originalID string, form invoicedomain.FormState, authorRole catalogdomain.Role) (workflowdomain.InvoiceRecord, bool) {
	original, found := s.store.Get(originalID)
	if !found {
		return workflowdomain.InvoiceRecord{}, false
	}
	if original.ApprovalStatus != workflowdomain.ApprovalNeedsEdits {
		return workflowdomain.InvoiceRecord{}, false
	}

	record := s.Submit(ctx, form, authorRole)
	record, _ = s.store.Mutate(record.ID, func(r *workflowdomain.InvoiceRecord) {
		r.RevisedFromID = originalID
	})
	return record, true
}

// List returns the ledger, newest first.
func (s *Service) List() []workflowdomain.InvoiceRecord {
	return s.store.List()
}

// Get looks one record up by id.
func (s *Service) Get(id string) (workflowdomain.InvoiceRecord, bool) {
	return s.store.Get(id)
}

// GrossAmount is the ledger amount of a submission: quantity times
// unit price summed over line items, with no discount or tax applied.
func GrossAmount(items []invoicedomain.LineItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Quantity * item.UnitPrice
	}
	return total
}

func employeeVerdictMessage(invoiceNumber string, next workflowdomain.ApprovalStatus) string {
	switch next {
	case workflowdomain.ApprovalApproved:
		return fmt.Sprintf("Invoice %s was approved and is ready to share with the client.", invoiceNumber)
	case workflowdomain.ApprovalRejected:
		return fmt.Sprintf("Invoice %s was rejected. Please review and resubmit.", invoiceNumber)
	default:
		return fmt.Sprintf("Invoice %s needs edits before it can be approved.", invoiceNumber)
	}
}
