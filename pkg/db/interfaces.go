package db

import "context"

// RosterStore reads the roster. Membership and absence management live
// outside this system; the engine only ever reads.
type RosterStore interface {
	// GetFullRoster returns every roster member in id-ascending order.
	GetFullRoster(ctx context.Context) ([]Person, error)
	// GetPresentRoster returns the full roster minus people absent on
	// the given day, in the same relative order.
	GetPresentRoster(ctx context.Context, day string) ([]Person, error)
}

// HourlySlotStore defines hourly slot database operations.
type HourlySlotStore interface {
	GetHourlySlots(ctx context.Context, day string) ([]HourlySlot, error)
	GetHourlySlot(ctx context.Context, day string, hour int) (*HourlySlot, error)
	// InsertHourlySlots inserts with insert-or-ignore semantics on the
	// (day, hour) key, so concurrent generate-on-read calls cannot race
	// into duplicates.
	InsertHourlySlots(ctx context.Context, slots []HourlySlot) error
	// UpsertHourlySlot replaces the slot row; used only by the override
	// path, never by generation.
	UpsertHourlySlot(ctx context.Context, slot HourlySlot) error
	DeleteUnpinnedHourlyFrom(ctx context.Context, day string, cutoffHour int) error
}

// GateSlotStore defines gate duty database operations.
type GateSlotStore interface {
	// GetGateSlot returns nil when no record exists for the day.
	GetGateSlot(ctx context.Context, day string) (*GateSlot, error)
	InsertGateSlot(ctx context.Context, slot GateSlot) error
}

// WeeklyDutyStore defines weekly duty database operations.
type WeeklyDutyStore interface {
	GetWeeklySlot(ctx context.Context, weekStart string) (*WeeklyDutySlot, error)
	GetWeeklySlotsRange(ctx context.Context, fromWeek, toWeek string) ([]WeeklyDutySlot, error)
	// GetLastServedWeeklyBefore returns the most recent week strictly
	// before weekStart that is not an off week and has an occupant, or
	// nil when none exists. This scan is how the weekly rotation pointer
	// is derived.
	GetLastServedWeeklyBefore(ctx context.Context, weekStart string) (*WeeklyDutySlot, error)
	InsertWeeklySlot(ctx context.Context, slot WeeklyDutySlot) error
	UpsertWeeklySlot(ctx context.Context, slot WeeklyDutySlot) error
	DeleteUnpinnedWeeklyAfter(ctx context.Context, weekStart string) error
}

// OnCallStore defines on-call rota database operations, including the
// persisted singleton rotation cursor.
type OnCallStore interface {
	GetOnCallSlot(ctx context.Context, weekStart string, weekday int) (*OnCallSlot, error)
	GetOnCallSlotsRange(ctx context.Context, fromWeek, toWeek string) ([]OnCallSlot, error)
	InsertOnCallSlot(ctx context.Context, slot OnCallSlot) error
	// GetRotationCursor returns ok=false when no cursor exists for the
	// stream (or its person reference was nulled by a roster deletion).
	GetRotationCursor(ctx context.Context, stream string) (lastAssignedID int64, ok bool, err error)
	UpsertRotationCursor(ctx context.Context, stream string, lastAssignedID int64) error
}

// AuditStore defines audit log database operations. Entries are
// append-only; nothing updates or deletes them.
type AuditStore interface {
	InsertAuditEntry(ctx context.Context, entry AuditEntry) error
	// GetLatestAuditEntry returns the most recent entry for the day, or
	// nil when the day has none.
	GetLatestAuditEntry(ctx context.Context, day string) (*AuditEntry, error)
}

// Store groups every store the generation and override passes touch.
type Store interface {
	RosterStore
	HourlySlotStore
	GateSlotStore
	WeeklyDutyStore
	OnCallStore
	AuditStore
}

// Database is a Store that can also run a function inside a single
// transaction. Everything the function does through the passed Store is
// committed atomically, or rolled back if it returns an error.
type Database interface {
	Store
	InTx(ctx context.Context, fn func(Store) error) error
}
