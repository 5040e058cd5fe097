package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcallaghan/duty-rota/internal/config"
	"github.com/jcallaghan/duty-rota/pkg/clients/sheetsclient"
)

// mockPublisher implements WeekPublisher for testing
type mockPublisher struct {
	spreadsheetID string
	published     *sheetsclient.PublishedWeek
	publishErr    error
}

func (m *mockPublisher) PublishWeek(spreadsheetID string, week *sheetsclient.PublishedWeek) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.spreadsheetID = spreadsheetID
	m.published = week
	return nil
}

func publishConfig() *config.Config {
	cfg := testConfig()
	cfg.Publish = &config.PublishConfig{
		RotaSheetID:     "sheet-123",
		CredentialsFile: "credentials.json",
	}
	return cfg
}

func TestPublishWeek_BuildsFullGrid(t *testing.T) {
	store := newMockStore(alice, bob, charlie)
	publisher := &mockPublisher{}
	ctx := context.Background()

	week, err := PublishWeek(ctx, store, testLogger(), publishConfig(), publisher, testWeek1)
	require.NoError(t, err)

	assert.Equal(t, "sheet-123", publisher.spreadsheetID)
	require.NotNil(t, publisher.published)
	assert.Equal(t, week, publisher.published)

	assert.Equal(t, testWeek1, week.WeekStart)
	assert.Equal(t, "Bob", week.DutyHolder)
	require.Len(t, week.Rows, 7)
	assert.Equal(t, "Mon Jan 08 2024", week.Rows[0].Date)
	assert.Equal(t, "Alice", week.Rows[0].GateMain)
	assert.Equal(t, "Alice", week.Rows[0].OnCall)
	for _, row := range week.Rows {
		assert.Len(t, row.Hourly, 6)
		assert.NotEmpty(t, row.GateMain)
		assert.NotEmpty(t, row.OnCall)
	}
}

func TestPublishWeek_OffWeek(t *testing.T) {
	store := newMockStore(alice, bob)
	publisher := &mockPublisher{}
	ctx := context.Background()
	cfg := publishConfig()

	require.NoError(t, OverrideWeeklyDuty(ctx, store, testLogger(), cfg, testWeek1, nil, true, "closed"))

	week, err := PublishWeek(ctx, store, testLogger(), cfg, publisher, testWeek1)
	require.NoError(t, err)
	assert.Equal(t, "OFF", week.DutyHolder)
}

func TestPublishWeek_RequiresConfig(t *testing.T) {
	store := newMockStore(alice)

	_, err := PublishWeek(context.Background(), store, testLogger(), testConfig(), &mockPublisher{}, testWeek1)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestPublishWeek_PropagatesPublishError(t *testing.T) {
	store := newMockStore(alice, bob)
	publisher := &mockPublisher{publishErr: errors.New("sheet unavailable")}

	_, err := PublishWeek(context.Background(), store, testLogger(), publishConfig(), publisher, testWeek1)
	require.Error(t, err)
	assert.ErrorContains(t, err, "sheet unavailable")
}
