package archive

import (
	"context"
	"testing"
	"time"

	"github.com/auroradigital/billingdesk/internal/clock"
	invoicedomain "github.com/auroradigital/billingdesk/internal/invoice/domain"
	"github.com/auroradigital/billingdesk/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testState(number string) invoicedomain.FormState {
	state := invoicedomain.FormState{}
	state.Meta.InvoiceNumber = number
	state.Meta.IssueDate = "2026-03-07"
	state.Meta.DueDate = "2026-03-22"
	state.LineItems = []invoicedomain.LineItem{
		{ID: "li-1", Description: "Retainer Services", Quantity: 1, UnitPrice: 250},
	}
	return state
}

func newTestArchive(t *testing.T) (*Archive, *memory.Store, *clock.FakeClock) {
	t.Helper()
	store := memory.New()
	clk := clock.NewFakeClock(time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC))
	a := New(ArchiveParam{Store: store, Clock: clk, Log: zap.NewNop()})
	return a, store, clk
}

func TestArchiveSaveAndLoadRoundTrip(t *testing.T) {
	a, _, _ := newTestArchive(t)
	ctx := context.Background()

	state := testState("ADS-2026-0307-k3v9q2xa")
	id := a.Save(ctx, state)
	assert.NotEmpty(t, id)

	entry, ok := a.Load(id)
	assert.True(t, ok)
	assert.Equal(t, "ADS-2026-0307-k3v9q2xa", entry.InvoiceNumber)
	assert.Equal(t, state.LineItems, entry.FormState.LineItems)
}

func TestArchiveSnapshotsDoNotAliasCaller(t *testing.T) {
	a, _, _ := newTestArchive(t)
	ctx := context.Background()

	state := testState("ADS-2026-0307-aaaaaaaa")
	id := a.Save(ctx, state)

	// Mutating the caller's state after Save must not leak into the
	// stored snapshot.
	state.LineItems[0].UnitPrice = 999
	entry, ok := a.Load(id)
	assert.True(t, ok)
	assert.Equal(t, float64(250), entry.FormState.LineItems[0].UnitPrice)

	// Mutating a loaded snapshot must not leak into the archive.
	entry.FormState.LineItems[0].Description = "tampered"
	again, _ := a.Load(id)
	assert.Equal(t, "Retainer Services", again.FormState.LineItems[0].Description)
}

func TestArchiveListMostRecentFirst(t *testing.T) {
	a, _, clk := newTestArchive(t)
	ctx := context.Background()

	first := a.Save(ctx, testState("ADS-2026-0307-11111111"))
	clk.Advance(time.Minute)
	second := a.Save(ctx, testState("ADS-2026-0307-22222222"))

	entries := a.List()
	assert.Len(t, entries, 2)
	assert.Equal(t, second, entries[0].ID)
	assert.Equal(t, first, entries[1].ID)
}

func TestArchiveUpdateReplacesInPlace(t *testing.T) {
	a, _, clk := newTestArchive(t)
	ctx := context.Background()

	id := a.Save(ctx, testState("ADS-2026-0307-11111111"))
	clk.Advance(time.Hour)

	updated := testState("ADS-2026-0307-33333333")
	updated.LineItems[0].Quantity = 4
	a.Update(ctx, id, updated)

	entries := a.List()
	assert.Len(t, entries, 1)
	assert.Equal(t, "ADS-2026-0307-33333333", entries[0].InvoiceNumber)
	assert.Equal(t, float64(4), entries[0].FormState.LineItems[0].Quantity)
	assert.Equal(t, clk.Now(), entries[0].SavedAt)

	// Unknown ids are ignored.
	a.Update(ctx, "missing", testState("ADS-2026-0307-44444444"))
	assert.Len(t, a.List(), 1)
}

func TestArchiveDuplicateCreatesDistinctEntry(t *testing.T) {
	a, _, _ := newTestArchive(t)
	ctx := context.Background()

	state := testState("ADS-2026-0307-11111111")
	first := a.Save(ctx, state)
	second := a.Duplicate(ctx, state)

	assert.NotEqual(t, first, second)
	assert.Len(t, a.List(), 2)
}

func TestArchiveRemove(t *testing.T) {
	a, _, _ := newTestArchive(t)
	ctx := context.Background()

	id := a.Save(ctx, testState("ADS-2026-0307-11111111"))
	a.Remove(ctx, id)
	assert.Empty(t, a.List())

	_, ok := a.Load(id)
	assert.False(t, ok)

	// Removing again is a no-op.
	a.Remove(ctx, id)
}

func TestArchiveRestoresFromStore(t *testing.T) {
	store := memory.New()
	clk := clock.NewFakeClock(time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	a := New(ArchiveParam{Store: store, Clock: clk, Log: zap.NewNop()})
	id := a.Save(ctx, testState("ADS-2026-0307-11111111"))

	reloaded := New(ArchiveParam{Store: store, Clock: clk, Log: zap.NewNop()})
	entry, ok := reloaded.Load(id)
	assert.True(t, ok)
	assert.Equal(t, "ADS-2026-0307-11111111", entry.InvoiceNumber)
}

func TestArchiveIgnoresMalformedBlob(t *testing.T) {
	store := memory.New()
	clk := clock.NewFakeClock(time.Now())
	assert.NoError(t, store.Write(context.Background(), ArchiveKey, []byte(`{"not":"a list"`)))

	a := New(ArchiveParam{Store: store, Clock: clk, Log: zap.NewNop()})
	assert.Empty(t, a.List())
}
