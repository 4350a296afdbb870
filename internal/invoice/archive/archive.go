// Package archive maintains saved invoice snapshots, independent of
// the live draft.
package archive

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/auroradigital/billingdesk/internal/clock"
	invoicedomain "github.com/auroradigital/billingdesk/internal/invoice/domain"
	obsmetrics "github.com/auroradigital/billingdesk/internal/observability/metrics"
	storagedomain "github.com/auroradigital/billingdesk/internal/storage/domain"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ArchiveKey is the blob store key for the serialized archive.
const ArchiveKey = "invoice-archive.v1"

type ArchiveParam struct {
	fx.In

	Store   storagedomain.Store
	Clock   clock.Clock
	Log     *zap.Logger
	Metrics *obsmetrics.Metrics `optional:"true"`
}

// Archive is the list of saved invoice snapshots, most recent first.
// Snapshots never alias the live draft: every boundary deep-clones.
type Archive struct {
	mu      sync.Mutex
	entries []invoicedomain.StoredInvoice

	store   storagedomain.Store
	clock   clock.Clock
	log     *zap.Logger
	metrics *obsmetrics.Metrics
}

func New(p ArchiveParam) *Archive {
	a := &Archive{
		store:   p.Store,
		clock:   p.Clock,
		log:     p.Log.Named("invoice.archive"),
		metrics: p.Metrics,
	}
	a.restore(context.Background())
	return a
}

func (a *Archive) restore(ctx context.Context) {
	raw, ok, err := a.store.Read(ctx, ArchiveKey)
	if err != nil {
		a.log.Warn("archive restore failed", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	var entries []invoicedomain.StoredInvoice
	if err := json.Unmarshal(raw, &entries); err != nil {
		// Malformed persisted data means no prior state.
		a.log.Warn("discarding unreadable archive payload")
		return
	}
	a.entries = entries
}

// Save deep-clones the form state into a new snapshot, prepends it,
// and returns the snapshot id.
func (a *Archive) Save(ctx context.Context, state invoicedomain.FormState) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry := invoicedomain.StoredInvoice{
		ID:            ulid.Make().String(),
		InvoiceNumber: state.Meta.InvoiceNumber,
		SavedAt:       a.clock.Now(),
		FormState:     invoicedomain.CloneFormState(state),
	}
	a.entries = append([]invoicedomain.StoredInvoice{entry}, a.entries...)
	a.persist(ctx)
	a.metrics.RecordArchiveSave(ctx)
	return entry.ID
}

// Update replaces an existing snapshot in place. Unknown ids are a
// silent no-op.
func (a *Archive) Update(ctx context.Context, id string, state invoicedomain.FormState) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.entries {
		if a.entries[i].ID == id {
			a.entries[i].InvoiceNumber = state.Meta.InvoiceNumber
			a.entries[i].SavedAt = a.clock.Now()
			a.entries[i].FormState = invoicedomain.CloneFormState(state)
			a.persist(ctx)
			a.metrics.RecordArchiveSave(ctx)
			return
		}
	}
}

// Duplicate always creates a new snapshot, even when one with the same
// invoice number exists.
func (a *Archive) Duplicate(ctx context.Context, state invoicedomain.FormState) string {
	return a.Save(ctx, state)
}

// Load returns a deep clone of the stored snapshot, never the stored
// value itself.
func (a *Archive) Load(id string) (invoicedomain.StoredInvoice, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, entry := range a.entries {
		if entry.ID == id {
			clone := entry
			clone.FormState = invoicedomain.CloneFormState(entry.FormState)
			return clone, true
		}
	}
	return invoicedomain.StoredInvoice{}, false
}

// Remove deletes a snapshot by id; absent ids are a no-op.
func (a *Archive) Remove(ctx context.Context, id string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i, entry := range a.entries {
		if entry.ID == id {
			a.entries = append(a.entries[:i], a.entries[i+1:]...)
			a.persist(ctx)
			return
		}
	}
}

// List returns deep clones of every snapshot, most recent first.
func (a *Archive) List() []invoicedomain.StoredInvoice {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]invoicedomain.StoredInvoice, 0, len(a.entries))
	for _, entry := range a.entries {
		clone := entry
		clone.FormState = invoicedomain.CloneFormState(entry.FormState)
		out = append(out, clone)
	}
	return out
}

func (a *Archive) persist(ctx context.Context) {
	raw, err := json.Marshal(a.entries)
	if err != nil {
		a.log.Warn("archive serialize failed", zap.Error(err))
		return
	}
	if err := a.store.Write(ctx, ArchiveKey, raw); err != nil {
		a.log.Warn("archive persist failed", zap.Error(err))
	}
}
