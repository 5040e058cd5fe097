package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStartOf(t *testing.T) {
	tests := []struct {
		name string
		day  string
		want string
	}{
		{"monday maps to itself", "2024-01-08", "2024-01-08"},
		{"wednesday", "2024-01-10", "2024-01-08"},
		{"sunday belongs to the preceding monday", "2024-01-14", "2024-01-08"},
		{"year boundary", "2024-01-01", "2024-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := time.Parse(dayFormat, tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, weekStartOf(day).Format(dayFormat))
		})
	}
}

func TestParseWeekStart(t *testing.T) {
	_, err := parseWeekStart("2024-01-08")
	require.NoError(t, err)

	_, err = parseWeekStart("2024-01-09")
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	_, err = parseWeekStart("garbage")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestWindowWeeks(t *testing.T) {
	anchor, err := time.Parse(dayFormat, "2024-01-08")
	require.NoError(t, err)

	weeks, err := windowWeeks("FREQ=WEEKLY;COUNT=4", anchor)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-08", "2024-01-15", "2024-01-22", "2024-01-29"}, weeks)
}

func TestWindowWeeks_BadRule(t *testing.T) {
	anchor, _ := time.Parse(dayFormat, "2024-01-08")
	_, err := windowWeeks("FREQ=NONSENSE", anchor)
	require.Error(t, err)
}

func TestWeekdayDate(t *testing.T) {
	weekStart, err := time.Parse(dayFormat, "2024-01-08")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-08", weekdayDate(weekStart, 0))
	assert.Equal(t, "2024-01-14", weekdayDate(weekStart, 6))
}
