package draft

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	catalogdomain "github.com/auroradigital/billingdesk/internal/catalog/domain"
	"github.com/auroradigital/billingdesk/internal/clock"
	"github.com/auroradigital/billingdesk/internal/config"
	"github.com/auroradigital/billingdesk/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeDirectory struct {
	services []catalogdomain.Service
	clients  []catalogdomain.ClientProfile
}

func (d *fakeDirectory) ListServices(context.Context) ([]catalogdomain.Service, error) {
	return d.services, nil
}

func (d *fakeDirectory) GetService(_ context.Context, id string) (catalogdomain.Service, bool, error) {
	for _, svc := range d.services {
		if svc.ID == id {
			return svc, true, nil
		}
	}
	return catalogdomain.Service{}, false, nil
}

func (d *fakeDirectory) ListClients(context.Context) ([]catalogdomain.ClientProfile, error) {
	return d.clients, nil
}

func (d *fakeDirectory) GetClient(_ context.Context, id string) (catalogdomain.ClientProfile, bool, error) {
	for _, c := range d.clients {
		if c.ID == id {
			return c, true, nil
		}
	}
	return catalogdomain.ClientProfile{}, false, nil
}

func (d *fakeDirectory) Organization(context.Context) (catalogdomain.Organization, error) {
	return catalogdomain.Organization{}, nil
}

func testDirectory() *fakeDirectory {
	return &fakeDirectory{
		services: []catalogdomain.Service{
			{ID: "svc-seo", Name: "SEO Retainer", Description: "Monthly SEO retainer", UnitRate: 25000},
			{ID: "svc-web", Name: "Website Build", Description: "Marketing website build", UnitRate: 120000},
		},
		clients: []catalogdomain.ClientProfile{
			{ID: "client-acme", CompanyName: "Acme Traders", ContactName: "Priya Nair", Email: "priya@acmetraders.example"},
			{ID: "client-zen", CompanyName: "Zenith Labs", ContactName: "Arjun Rao", Email: "arjun@zenithlabs.example"},
		},
	}
}

func newTestForm(t *testing.T, store *memory.Store) *Form {
	t.Helper()
	f := NewForm(FormParam{
		Directory: testDirectory(),
		Store:     store,
		Clock:     clock.NewFakeClock(time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)),
		Console:   config.NewStaticConsoleConfigHolder(config.DefaultConsoleConfig()),
		Log:       zap.NewNop(),
	})
	t.Cleanup(f.Close)
	return f
}

func TestFormInitialState(t *testing.T) {
	f := newTestForm(t, memory.New())
	state := f.State()

	assert.Equal(t, "INR", state.Currency)
	assert.Equal(t, "GST", state.TaxConfig.Type)
	assert.Equal(t, float64(18), state.TaxConfig.Rate)
	assert.False(t, state.TaxConfig.IsInclusive)
	assert.Equal(t, "Retainer Services", state.Meta.ProjectName)
	assert.Equal(t, "2026-03-07", state.Meta.IssueDate)
	assert.Equal(t, "2026-03-22", state.Meta.DueDate)
	assert.Equal(t, "monthly", state.Recurring.Interval)

	// First client and first service seed the draft.
	assert.Equal(t, "client-acme", state.ClientSelectionID)
	assert.Equal(t, "Acme Traders", state.Client.CompanyName)
	if assert.Len(t, state.LineItems, 1) {
		assert.Equal(t, "svc-seo", state.LineItems[0].ServiceID)
		assert.Equal(t, float64(25000), state.LineItems[0].UnitPrice)
		assert.Equal(t, float64(1), state.LineItems[0].Quantity)
	}

	assert.Regexp(t, regexp.MustCompile(`^ADS-2026-0307-[0-9a-z]{8}$`), state.Meta.InvoiceNumber)
}

func TestFormSelectClientUnknownIDKeepsSnapshot(t *testing.T) {
	f := newTestForm(t, memory.New())
	before := f.State()

	f.Apply(context.Background(), SelectClient{ClientID: "client-missing"})

	after := f.State()
	assert.Equal(t, before.ClientSelectionID, after.ClientSelectionID)
	assert.Equal(t, before.Client, after.Client)
}

func TestFormSelectClientCopiesProfile(t *testing.T) {
	f := newTestForm(t, memory.New())

	f.Apply(context.Background(), SelectClient{ClientID: "client-zen"})

	state := f.State()
	assert.Equal(t, "client-zen", state.ClientSelectionID)
	assert.Equal(t, "Zenith Labs", state.Client.CompanyName)
	assert.Equal(t, "Arjun Rao", state.Client.ContactName)
}

func TestFormRemoveLastLineItemIsNoOp(t *testing.T) {
	f := newTestForm(t, memory.New())
	state := f.State()
	assert.Len(t, state.LineItems, 1)

	f.Apply(context.Background(), RemoveLineItem{ID: state.LineItems[0].ID})
	assert.Len(t, f.State().LineItems, 1)

	f.Apply(context.Background(), AddLineItem{ServiceID: "svc-web"})
	assert.Len(t, f.State().LineItems, 2)

	f.Apply(context.Background(), RemoveLineItem{ID: state.LineItems[0].ID})
	remaining := f.State().LineItems
	if assert.Len(t, remaining, 1) {
		assert.Equal(t, "svc-web", remaining[0].ServiceID)
	}
}

func TestFormSetLineServiceRefreshesDescriptionAndPrice(t *testing.T) {
	f := newTestForm(t, memory.New())
	id := f.State().LineItems[0].ID

	f.Apply(context.Background(), SetLineService{ID: id, ServiceID: "svc-web"})

	item := f.State().LineItems[0]
	assert.Equal(t, "svc-web", item.ServiceID)
	assert.Equal(t, "Marketing website build", item.Description)
	assert.Equal(t, float64(120000), item.UnitPrice)
}

func TestFormRegenerateInvoiceNumber(t *testing.T) {
	f := newTestForm(t, memory.New())
	before := f.State().Meta.InvoiceNumber

	number := f.RegenerateInvoiceNumber()
	assert.NotEqual(t, before, number)
	assert.Regexp(t, regexp.MustCompile(`^ADS-2026-0307-[0-9a-z]{8}$`), number)
	assert.Equal(t, number, f.State().Meta.InvoiceNumber)
}

func TestFormAutosaveDebounce(t *testing.T) {
	store := memory.New()
	f := newTestForm(t, store)
	f.saveDelay = 20 * time.Millisecond

	ctx := context.Background()
	f.Apply(ctx, SetTerms{Terms: "first"})
	f.Apply(ctx, SetTerms{Terms: "second"})
	f.Apply(ctx, SetTerms{Terms: "final"})

	// Nothing persists before the quiet period elapses.
	_, ok, err := store.Read(ctx, DraftKey)
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.Eventually(t, func() bool {
		raw, ok, err := store.Read(ctx, DraftKey)
		if err != nil || !ok {
			return false
		}
		var payload Payload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return false
		}
		return payload.FormState.Terms == "final"
	}, time.Second, 5*time.Millisecond)
}

func TestFormCloseCancelsPendingAutosave(t *testing.T) {
	store := memory.New()
	f := newTestForm(t, store)
	f.saveDelay = 20 * time.Millisecond

	ctx := context.Background()
	f.Apply(ctx, SetTerms{Terms: "never persisted"})
	f.Close()

	time.Sleep(60 * time.Millisecond)
	_, ok, err := store.Read(ctx, DraftKey)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestFormRestoresPersistedDraft(t *testing.T) {
	store := memory.New()
	f := newTestForm(t, store)

	f.Apply(context.Background(), SetTerms{Terms: "custom terms"})
	assert.NoError(t, f.Flush(context.Background()))
	f.Close()

	restored := newTestForm(t, store)
	assert.Equal(t, "custom terms", restored.State().Terms)
}

func TestFormMalformedDraftFallsBackToInitial(t *testing.T) {
	store := memory.New()
	assert.NoError(t, store.Write(context.Background(), DraftKey, []byte(`{"formState":`)))

	f := newTestForm(t, store)
	state := f.State()
	assert.Len(t, state.LineItems, 1)
	assert.Equal(t, "INR", state.Currency)
}

func TestFormInstallReplacesDraft(t *testing.T) {
	f := newTestForm(t, memory.New())

	snapshot := f.State()
	snapshot.Meta.InvoiceNumber = "ADS-2026-0101-aaaaaaaa"
	snapshot.Terms = "loaded from archive"
	f.Install(snapshot)

	state := f.State()
	assert.Equal(t, "ADS-2026-0101-aaaaaaaa", state.Meta.InvoiceNumber)
	assert.Equal(t, "loaded from archive", state.Terms)

	// Install copies; later caller mutation must not reach the draft.
	snapshot.Terms = "tampered"
	assert.Equal(t, "loaded from archive", f.State().Terms)
}

func TestFormResetStartsFresh(t *testing.T) {
	f := newTestForm(t, memory.New())

	f.Apply(context.Background(), SetTerms{Terms: "scratch work"})
	f.Apply(context.Background(), AddLineItem{})
	assert.Len(t, f.State().LineItems, 2)

	state := f.Reset(context.Background())
	assert.Len(t, state.LineItems, 1)
	assert.NotEqual(t, "scratch work", state.Terms)
	assert.Equal(t, "client-acme", state.ClientSelectionID)
}
