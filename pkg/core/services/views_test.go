package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDayView_MaterializesAndResolvesNames(t *testing.T) {
	store := newMockStore(alice, bob, charlie)
	ctx := context.Background()

	// No prior generation: the read itself materializes the day.
	view, err := GetDayView(ctx, store, testLogger(), testConfig(), testDay)
	require.NoError(t, err)

	assert.Equal(t, testDay, view.Day)
	require.Len(t, view.Hours, 6)
	for _, hour := range view.Hours {
		require.NotNil(t, hour.Occupant)
		assert.NotEmpty(t, hour.Occupant.DisplayName)
	}

	require.NotNil(t, view.Gate)
	assert.Equal(t, "Alice", view.Gate.Main.DisplayName)
	require.NotNil(t, view.Gate.Backup)
	assert.Equal(t, "Bob", view.Gate.Backup.DisplayName)

	assert.Nil(t, view.LastShuffle)
}

func TestGetDayView_ShowsLatestShuffle(t *testing.T) {
	store := newMockStore(alice, bob)
	ctx := context.Background()
	cfg := testConfig()

	require.NoError(t, EnsureGenerated(ctx, store, testLogger(), cfg, testDay))
	require.NoError(t, Reshuffle(ctx, store, testLogger(), cfg, testDay, 9, "ops", "absence"))

	view, err := GetDayView(ctx, store, testLogger(), cfg, testDay)
	require.NoError(t, err)
	require.NotNil(t, view.LastShuffle)
	assert.Equal(t, "ops", view.LastShuffle.Actor)
	assert.Equal(t, "absence", view.LastShuffle.Reason)
}

func TestGetWeekView_MaterializesWeek(t *testing.T) {
	store := newMockStore(alice, bob, charlie)
	ctx := context.Background()

	view, err := GetWeekView(ctx, store, testLogger(), testConfig(), testWeek1)
	require.NoError(t, err)

	require.NotNil(t, view.Duty)
	require.NotNil(t, view.Duty.Occupant)
	assert.Equal(t, "Bob", view.Duty.Occupant.DisplayName)
	assert.False(t, view.Duty.OffWeek)

	require.Len(t, view.OnCall, 7)
	assert.Equal(t, "2024-01-08", view.OnCall[0].Day)
	assert.Equal(t, "2024-01-14", view.OnCall[6].Day)
	require.NotNil(t, view.OnCall[0].Occupant)
	assert.Equal(t, "Alice", view.OnCall[0].Occupant.DisplayName)
}

func TestGetWeekView_RejectsNonMonday(t *testing.T) {
	store := newMockStore(alice)

	_, err := GetWeekView(context.Background(), store, testLogger(), testConfig(), "2024-01-10")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}
