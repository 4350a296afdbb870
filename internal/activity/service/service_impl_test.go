package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"

	activitydomain "github.com/auroradigital/billingdesk/internal/activity/domain"
	"github.com/auroradigital/billingdesk/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestRecorder(t *testing.T) (activitydomain.Recorder, *clock.FakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:activitytest?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&activitydomain.Entry{}))
	t.Cleanup(func() {
		db.Exec("DELETE FROM activity_entries")
	})

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2026, 3, 7, 8, 0, 0, 0, time.UTC))
	rec := NewService(Params{DB: db, Log: zap.NewNop(), GenID: node, Clock: clk})
	return rec, clk
}

func TestRecordAndListNewestFirst(t *testing.T) {
	rec, clk := newTestRecorder(t)
	ctx := context.Background()

	require.NoError(t, rec.Record(ctx, activitydomain.NewEntry{
		Actor:        "employee",
		ActivityType: activitydomain.TypeInvoice,
		Summary:      "Invoice ADS-2026-0307-k3v9q2xa submitted for approval",
	}))
	clk.Advance(time.Minute)
	require.NoError(t, rec.Record(ctx, activitydomain.NewEntry{
		Actor:        "ceo",
		ActivityType: activitydomain.TypeApproval,
		Summary:      "Invoice ADS-2026-0307-k3v9q2xa approved",
	}))

	entries, err := rec.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, activitydomain.TypeApproval, entries[0].ActivityType)
	assert.Equal(t, activitydomain.TypeInvoice, entries[1].ActivityType)
	assert.True(t, entries[0].Timestamp.After(entries[1].Timestamp))
}

func TestRecordSkipsEmptySummary(t *testing.T) {
	rec, _ := newTestRecorder(t)
	ctx := context.Background()

	require.NoError(t, rec.Record(ctx, activitydomain.NewEntry{Actor: "ceo", Summary: "   "}))
	entries, err := rec.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecordDefaultsActivityType(t *testing.T) {
	rec, _ := newTestRecorder(t)
	ctx := context.Background()

	require.NoError(t, rec.Record(ctx, activitydomain.NewEntry{Actor: "system", Summary: "nightly reconciliation"}))
	entries, err := rec.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, activitydomain.TypeSystem, entries[0].ActivityType)
}

func TestListHonorsLimit(t *testing.T) {
	rec, clk := newTestRecorder(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, rec.Record(ctx, activitydomain.NewEntry{
			Actor:        "employee",
			ActivityType: activitydomain.TypeInvoice,
			Summary:      "draft updated",
		}))
		clk.Advance(time.Second)
	}

	entries, err := rec.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
