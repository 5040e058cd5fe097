package db

import "time"

// Rotation streams with a persisted cursor in rotation_cursors.
// Weekly duty derives its pointer by scanning history instead and
// deliberately has no entry here.
const StreamOnCall = "oncall"

// Person is one roster member. Rotation order is id-ascending; changing
// that order changes every future assignment.
type Person struct {
	ID          int64
	DisplayName string
}

// HourlySlot is one intraday duty slot, keyed by (Day, Hour).
// Pinned is a one-way latch: once set it never reverts, and
// OriginalOccupantID is captured exactly once, at the first pin.
type HourlySlot struct {
	Day                string // "2006-01-02"
	Hour               int
	OccupantID         *int64
	Pinned             bool
	OriginalOccupantID *int64
	Reason             string
}

// GateSlot is the daily gate duty pair, keyed by Day. Gate duty is
// always auto-computed; there is no pin path for it.
type GateSlot struct {
	Day      string
	MainID   int64
	BackupID *int64
}

// WeeklyDutySlot is one week of the weekly duty rotation, keyed by
// WeekStart (the ISO week's Monday). An off week has a nil occupant but
// still consumes a rotation turn.
type WeeklyDutySlot struct {
	WeekStart          string
	WeekNumber         int // ISO week number, informational
	OccupantID         *int64
	OffWeek            bool
	Pinned             bool
	OriginalOccupantID *int64
	Reason             string
}

// OnCallSlot is one weekday of the on-call rota, keyed by
// (WeekStart, Weekday). Weekday is the offset from the week's Monday,
// 0 through 6.
type OnCallSlot struct {
	WeekStart  string
	Weekday    int
	OccupantID int64
}

// AuditEntry records a human-triggered reshuffle. Append-only; readers
// only ever see the latest entry per day.
type AuditEntry struct {
	ID        string
	Day       string
	Action    string
	Actor     string
	Reason    string
	CreatedAt time.Time
}

const AuditActionShuffle = "shuffle"
