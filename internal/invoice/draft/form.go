// Package draft owns the live invoice-in-progress.
package draft

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	catalogdomain "github.com/auroradigital/billingdesk/internal/catalog/domain"
	"github.com/auroradigital/billingdesk/internal/clock"
	"github.com/auroradigital/billingdesk/internal/config"
	"github.com/auroradigital/billingdesk/internal/invoice/compute"
	invoicedomain "github.com/auroradigital/billingdesk/internal/invoice/domain"
	"github.com/auroradigital/billingdesk/internal/invoice/format"
	storagedomain "github.com/auroradigital/billingdesk/internal/storage/domain"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// DraftKey is the blob store key for the persisted draft payload.
const DraftKey = "invoice-draft.v1"

// DefaultSaveDelay is the autosave debounce window.
const DefaultSaveDelay = 800 * time.Millisecond

const dateLayout = "2006-01-02"

// Payload is the serialized draft blob.
type Payload struct {
	SavedAt   time.Time               `json:"savedAt"`
	FormState invoicedomain.FormState `json:"formState"`
}

type FormParam struct {
	fx.In

	Directory catalogdomain.Directory
	Store     storagedomain.Store
	Clock     clock.Clock
	Console   *config.ConsoleConfigHolder
	Log       *zap.Logger
}

// Form holds one mutable invoice draft. Every edit restarts a debounce
// timer that persists the draft; Close cancels any pending write so an
// unmounted form never touches the store.
type Form struct {
	mu    sync.Mutex
	state invoicedomain.FormState

	dir     catalogdomain.Directory
	store   storagedomain.Store
	clock   clock.Clock
	console *config.ConsoleConfigHolder
	log     *zap.Logger

	saveDelay time.Duration
	pending   *time.Timer
	closed    bool
}

func NewForm(p FormParam) *Form {
	f := &Form{
		dir:       p.Directory,
		store:     p.Store,
		clock:     p.Clock,
		console:   p.Console,
		log:       p.Log.Named("invoice.draft"),
		saveDelay: DefaultSaveDelay,
	}
	f.state = f.restoreOrInitial(context.Background())
	return f
}

// restoreOrInitial loads the persisted draft, falling back to a fresh
// default state when the blob is absent or unreadable.
func (f *Form) restoreOrInitial(ctx context.Context) invoicedomain.FormState {
	raw, ok, err := f.store.Read(ctx, DraftKey)
	if err != nil {
		f.log.Warn("draft restore failed", zap.Error(err))
	}
	if ok {
		var payload Payload
		if err := json.Unmarshal(raw, &payload); err == nil && len(payload.FormState.LineItems) > 0 {
			f.log.Info("draft restored", zap.Time("saved_at", payload.SavedAt))
			return payload.FormState
		}
		f.log.Warn("discarding unreadable draft payload")
	}
	return f.initialState(ctx)
}

func (f *Form) initialState(ctx context.Context) invoicedomain.FormState {
	console := f.console.Get()
	now := f.clock.Now()

	state := invoicedomain.FormState{
		Currency: console.DefaultCurrency,
		TaxConfig: invoicedomain.TaxConfig{
			Type: console.DefaultTaxType,
			Rate: console.DefaultTaxRate,
		},
		Discount: invoicedomain.Discount{Type: invoicedomain.DiscountPercentage},
		Meta: invoicedomain.Meta{
			InvoiceNumber: f.newInvoiceNumber(now),
			IssueDate:     now.Format(dateLayout),
			DueDate:       now.AddDate(0, 0, console.PaymentTermDays).Format(dateLayout),
			ProjectName:   "Retainer Services",
		},
		Recurring: invoicedomain.RecurringConfig{Interval: "monthly"},
		Terms:     console.DefaultTerms,
	}

	if clients, err := f.dir.ListClients(ctx); err == nil && len(clients) > 0 {
		state.ClientSelectionID = clients[0].ID
		state.Client = ClientDetailsFromProfile(clients[0])
	}

	var seedService *catalogdomain.Service
	if services, err := f.dir.ListServices(ctx); err == nil && len(services) > 0 {
		seedService = &services[0]
	}
	state.LineItems = []invoicedomain.LineItem{newLineItem(seedService)}

	return state
}

func (f *Form) newInvoiceNumber(now time.Time) string {
	console := f.console.Get()
	number, err := format.FormatInvoiceNumber(
		format.DefaultInvoiceNumberTemplate,
		console.InvoiceNumberPrefix,
		now,
		format.RandomSuffix(),
	)
	if err != nil {
		f.log.Warn("invoice number format failed", zap.Error(err))
		return console.InvoiceNumberPrefix + "-" + format.RandomSuffix()
	}
	return number
}

func newLineItem(service *catalogdomain.Service) invoicedomain.LineItem {
	item := invoicedomain.LineItem{
		ID:       ulid.Make().String(),
		Quantity: 1,
		Discount: invoicedomain.Discount{Type: invoicedomain.DiscountPercentage},
	}
	if service != nil {
		item.ServiceID = service.ID
		item.Description = service.Description
		item.UnitPrice = service.UnitRate
	}
	return item
}

// ClientDetailsFromProfile snapshots a directory profile into the
// draft's mutable client section.
func ClientDetailsFromProfile(profile catalogdomain.ClientProfile) invoicedomain.ClientDetails {
	return invoicedomain.ClientDetails{
		CompanyName:  profile.CompanyName,
		ContactName:  profile.ContactName,
		Email:        profile.Email,
		Phone:        profile.Phone,
		AddressLine1: profile.AddressLine1,
		AddressLine2: profile.AddressLine2,
		City:         profile.City,
		State:        profile.State,
		PostalCode:   profile.PostalCode,
		Country:      profile.Country,
		GSTIN:        profile.GSTIN,
	}
}

// State returns a deep copy of the current draft.
func (f *Form) State() invoicedomain.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return invoicedomain.CloneFormState(f.state)
}

// Totals recomputes the draft's totals from its current line items.
func (f *Form) Totals() invoicedomain.Totals {
	f.mu.Lock()
	defer f.mu.Unlock()
	return compute.Calculate(f.state.LineItems, f.state.TaxConfig)
}

// Apply dispatches one mutation and schedules an autosave.
func (f *Form) Apply(ctx context.Context, op Op) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch v := op.(type) {
	case SelectClient:
		profile, found, err := f.dir.GetClient(ctx, v.ClientID)
		if err != nil || !found {
			// Unknown client leaves the snapshot untouched.
			return
		}
		f.state.ClientSelectionID = v.ClientID
		f.state.Client = ClientDetailsFromProfile(profile)
	case SetClient:
		f.state.Client = v.Client
	case SetMeta:
		f.state.Meta = v.Meta
	case SetTaxConfig:
		f.state.TaxConfig = v.Tax
	case SetDiscount:
		f.state.Discount = v.Discount
	case SetCurrency:
		f.state.Currency = v.Currency
	case SetRecurring:
		f.state.Recurring = v.Recurring
	case SetTerms:
		f.state.Terms = v.Terms
	case SetAdditionalNote:
		f.state.AdditionalNote = v.Note
	case AddLineItem:
		var service *catalogdomain.Service
		if v.ServiceID != "" {
			if found, ok, err := f.dir.GetService(ctx, v.ServiceID); err == nil && ok {
				service = &found
			}
		}
		f.state.LineItems = append(f.state.LineItems, newLineItem(service))
	case RemoveLineItem:
		if len(f.state.LineItems) <= 1 {
			return
		}
		kept := f.state.LineItems[:0]
		for _, item := range f.state.LineItems {
			if item.ID != v.ID {
				kept = append(kept, item)
			}
		}
		f.state.LineItems = kept
	case SetLineService:
		f.updateLine(v.ID, func(item *invoicedomain.LineItem) {
			service, ok, err := f.dir.GetService(ctx, v.ServiceID)
			if err != nil || !ok {
				return
			}
			item.ServiceID = service.ID
			item.Description = service.Description
			item.UnitPrice = service.UnitRate
		})
	case SetLineDescription:
		f.updateLine(v.ID, func(item *invoicedomain.LineItem) { item.Description = v.Description })
	case SetLineQuantity:
		f.updateLine(v.ID, func(item *invoicedomain.LineItem) { item.Quantity = v.Quantity })
	case SetLineUnitPrice:
		f.updateLine(v.ID, func(item *invoicedomain.LineItem) { item.UnitPrice = v.UnitPrice })
	case SetLineDiscount:
		f.updateLine(v.ID, func(item *invoicedomain.LineItem) { item.Discount = v.Discount })
	case SetLineNotes:
		f.updateLine(v.ID, func(item *invoicedomain.LineItem) { item.Notes = v.Notes })
	default:
		return
	}

	f.scheduleSaveLocked()
}

func (f *Form) updateLine(id string, fn func(*invoicedomain.LineItem)) {
	for i := range f.state.LineItems {
		if f.state.LineItems[i].ID == id {
			fn(&f.state.LineItems[i])
			return
		}
	}
}

// RegenerateInvoiceNumber replaces the draft's invoice number with a
// freshly formatted one and returns it.
func (f *Form) RegenerateInvoiceNumber() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	number := f.newInvoiceNumber(f.clock.Now())
	f.state.Meta.InvoiceNumber = number
	f.scheduleSaveLocked()
	return number
}

// Reset discards the draft and starts a fresh invoice.
func (f *Form) Reset(ctx context.Context) invoicedomain.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = f.initialState(ctx)
	f.scheduleSaveLocked()
	return invoicedomain.CloneFormState(f.state)
}

// Install replaces the draft with a copy of the given state, used when
// loading an archived snapshot for editing.
func (f *Form) Install(state invoicedomain.FormState) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = invoicedomain.CloneFormState(state)
	f.scheduleSaveLocked()
}

func (f *Form) scheduleSaveLocked() {
	if f.closed {
		return
	}
	if f.pending != nil {
		f.pending.Stop()
	}
	snapshot := invoicedomain.CloneFormState(f.state)
	f.pending = time.AfterFunc(f.saveDelay, func() {
		f.persist(snapshot)
	})
}

func (f *Form) persist(state invoicedomain.FormState) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()

	payload := Payload{SavedAt: f.clock.Now(), FormState: state}
	raw, err := json.Marshal(payload)
	if err != nil {
		f.log.Warn("draft serialize failed", zap.Error(err))
		return
	}
	if err := f.store.Write(context.Background(), DraftKey, raw); err != nil {
		f.log.Warn("draft autosave failed", zap.Error(err))
		return
	}
	f.log.Debug("draft autosaved", zap.String("invoice_number", state.Meta.InvoiceNumber))
}

// Flush persists the draft immediately, cancelling any pending timer.
func (f *Form) Flush(ctx context.Context) error {
	f.mu.Lock()
	if f.pending != nil {
		f.pending.Stop()
		f.pending = nil
	}
	snapshot := invoicedomain.CloneFormState(f.state)
	f.mu.Unlock()

	payload := Payload{SavedAt: f.clock.Now(), FormState: snapshot}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return f.store.Write(ctx, DraftKey, raw)
}

// Close cancels any pending autosave. The form must not write to the
// store after Close returns.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	if f.pending != nil {
		f.pending.Stop()
		f.pending = nil
	}
}
