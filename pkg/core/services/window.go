package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

const dayFormat = "2006-01-02"

// parseDay parses a "2006-01-02" date, returning a ValidationError on
// malformed input.
func parseDay(day string) (time.Time, error) {
	t, err := time.Parse(dayFormat, day)
	if err != nil {
		return time.Time{}, validationErrorf("invalid date %q: expected YYYY-MM-DD", day)
	}
	return t, nil
}

// parseWeekStart parses a date and requires it to be the Monday that
// starts an ISO week, since that is the weekly slot key.
func parseWeekStart(weekStart string) (time.Time, error) {
	t, err := parseDay(weekStart)
	if err != nil {
		return time.Time{}, err
	}
	if !weekStartOf(t).Equal(t) {
		return time.Time{}, validationErrorf("week start %q is not a Monday", weekStart)
	}
	return t, nil
}

// weekStartOf returns the Monday of the ISO week containing t, at
// midnight UTC.
func weekStartOf(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return t.AddDate(0, 0, -offset)
}

// isoWeekNumber returns the ISO week number of the given day.
func isoWeekNumber(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// windowWeeks expands a window rule from the anchor week's Monday into
// the list of week-start dates the rotation covers. The rule is an
// RRULE string validated at config load; anchor must already be a
// Monday.
func windowWeeks(rule string, anchor time.Time) ([]string, error) {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, fmt.Errorf("failed to parse window rule: %w", err)
	}
	opt.Dtstart = anchor

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("failed to build window rule: %w", err)
	}

	occurrences := r.All()
	weeks := make([]string, 0, len(occurrences))
	for _, occ := range occurrences {
		weeks = append(weeks, weekStartOf(occ).Format(dayFormat))
	}
	return weeks, nil
}

// weekdayDate returns the date of weekday offset wd (0 = Monday) in
// the week starting at weekStart.
func weekdayDate(weekStart time.Time, wd int) string {
	return weekStart.AddDate(0, 0, wd).Format(dayFormat)
}
