package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcallaghan/duty-rota/pkg/db"
)

func TestGenerateHourlySlots_EvenDistribution(t *testing.T) {
	store := newMockStore(alice, bob, charlie)
	ctx := context.Background()

	// 6 hours over 3 people: everyone gets exactly two slots.
	err := generateHourlySlots(ctx, store, testLogger(), []int{9, 10, 11, 12, 13, 14}, testDay)
	require.NoError(t, err)

	slots, err := store.GetHourlySlots(ctx, testDay)
	require.NoError(t, err)
	require.Len(t, slots, 6)

	counts := make(map[int64]int)
	for _, slot := range slots {
		require.NotNil(t, slot.OccupantID)
		counts[*slot.OccupantID]++
	}
	assert.Equal(t, map[int64]int{alice.ID: 2, bob.ID: 2, charlie.ID: 2}, counts)
}

func TestGenerateHourlySlots_SkipsExistingDay(t *testing.T) {
	store := newMockStore(alice, bob)
	ctx := context.Background()

	occupant := int64Ptr(bob.ID)
	require.NoError(t, store.UpsertHourlySlot(ctx, db.HourlySlot{Day: testDay, Hour: 9, OccupantID: occupant}))

	// A day with any slot at all is settled.
	err := generateHourlySlots(ctx, store, testLogger(), []int{9, 10, 11}, testDay)
	require.NoError(t, err)

	slots, err := store.GetHourlySlots(ctx, testDay)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, bob.ID, *slots[0].OccupantID)
}

func TestGenerateHourlySlots_ExcludesAbsent(t *testing.T) {
	store := newMockStore(alice, bob, charlie)
	store.markAbsent(testDay, bob.ID)
	ctx := context.Background()

	err := generateHourlySlots(ctx, store, testLogger(), []int{9, 10, 11, 12}, testDay)
	require.NoError(t, err)

	slots, err := store.GetHourlySlots(ctx, testDay)
	require.NoError(t, err)
	require.Len(t, slots, 4)
	for _, slot := range slots {
		assert.NotEqual(t, bob.ID, *slot.OccupantID)
	}
}

func TestReshuffle_ScopeAndAudit(t *testing.T) {
	store := newMockStore(alice, bob, charlie)
	ctx := context.Background()
	cfg := testConfig()

	require.NoError(t, EnsureGenerated(ctx, store, testLogger(), cfg, testDay))

	before, err := store.GetHourlySlots(ctx, testDay)
	require.NoError(t, err)
	byHour := make(map[int]db.HourlySlot)
	for _, slot := range before {
		byHour[slot.Hour] = slot
	}

	// Pin hour 12 so the reshuffle has to leave it alone.
	pinned := byHour[12]
	pinned.Pinned = true
	require.NoError(t, store.UpsertHourlySlot(ctx, pinned))

	err = Reshuffle(ctx, store, testLogger(), cfg, testDay, 11, "ops", "sudden absence")
	require.NoError(t, err)

	after, err := store.GetHourlySlots(ctx, testDay)
	require.NoError(t, err)
	require.Len(t, after, 6)

	seen := make(map[int64]int)
	for _, slot := range after {
		switch {
		case slot.Hour < 11:
			// Before the cutoff: untouched.
			assert.Equal(t, *byHour[slot.Hour].OccupantID, *slot.OccupantID, "hour %d", slot.Hour)
		case slot.Hour == 12:
			assert.True(t, slot.Pinned)
			assert.Equal(t, *pinned.OccupantID, *slot.OccupantID)
		default:
			require.NotNil(t, slot.OccupantID)
			seen[*slot.OccupantID]++
		}
	}
	// Hours 11, 13, 14 were reassigned round-robin over the shuffled
	// roster, so each person appears exactly once among them.
	assert.Equal(t, map[int64]int{alice.ID: 1, bob.ID: 1, charlie.ID: 1}, seen)

	entry, err := store.GetLatestAuditEntry(ctx, testDay)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, db.AuditActionShuffle, entry.Action)
	assert.Equal(t, "ops", entry.Actor)
	assert.Equal(t, "sudden absence", entry.Reason)
	assert.NotEmpty(t, entry.ID)
}

func TestReshuffle_Validation(t *testing.T) {
	store := newMockStore(alice)
	ctx := context.Background()
	cfg := testConfig()

	tests := []struct {
		name   string
		day    string
		cutoff int
		actor  string
		reason string
	}{
		{"bad date", "not-a-date", 9, "ops", "r"},
		{"cutoff too low", testDay, -1, "ops", "r"},
		{"cutoff too high", testDay, 24, "ops", "r"},
		{"missing actor", testDay, 9, "  ", "r"},
		{"missing reason", testDay, 9, "ops", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Reshuffle(ctx, store, testLogger(), cfg, tt.day, tt.cutoff, tt.actor, tt.reason)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}

	// Nothing reached the store.
	assert.Empty(t, store.audits)
}

func TestReshuffle_AppendsAuditPerCall(t *testing.T) {
	store := newMockStore(alice, bob)
	ctx := context.Background()
	cfg := testConfig()

	require.NoError(t, EnsureGenerated(ctx, store, testLogger(), cfg, testDay))
	require.NoError(t, Reshuffle(ctx, store, testLogger(), cfg, testDay, 9, "ops", "first"))
	require.NoError(t, Reshuffle(ctx, store, testLogger(), cfg, testDay, 9, "ops", "second"))

	require.Len(t, store.audits, 2)
	latest, err := store.GetLatestAuditEntry(ctx, testDay)
	require.NoError(t, err)
	assert.Equal(t, "second", latest.Reason)
}
