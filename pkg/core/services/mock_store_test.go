package services

import (
	"context"
	"sort"

	"github.com/jcallaghan/duty-rota/pkg/db"
)

// mockStore implements db.Database in memory for testing. InTx just
// runs the function against the same store, so tests see every write.
type mockStore struct {
	roster  []db.Person
	absent  map[string]map[int64]bool // day -> absent person ids
	hourly  map[string]map[int]db.HourlySlot
	gates   map[string]db.GateSlot
	weekly  map[string]db.WeeklyDutySlot
	oncall  map[string]map[int]db.OnCallSlot
	cursors map[string]int64
	audits  []db.AuditEntry
}

func newMockStore(roster ...db.Person) *mockStore {
	return &mockStore{
		roster:  roster,
		absent:  make(map[string]map[int64]bool),
		hourly:  make(map[string]map[int]db.HourlySlot),
		gates:   make(map[string]db.GateSlot),
		weekly:  make(map[string]db.WeeklyDutySlot),
		oncall:  make(map[string]map[int]db.OnCallSlot),
		cursors: make(map[string]int64),
	}
}

func (m *mockStore) markAbsent(day string, personID int64) {
	if m.absent[day] == nil {
		m.absent[day] = make(map[int64]bool)
	}
	m.absent[day][personID] = true
}

func (m *mockStore) InTx(ctx context.Context, fn func(db.Store) error) error {
	return fn(m)
}

func (m *mockStore) GetFullRoster(ctx context.Context) ([]db.Person, error) {
	return m.roster, nil
}

func (m *mockStore) GetPresentRoster(ctx context.Context, day string) ([]db.Person, error) {
	var present []db.Person
	for _, p := range m.roster {
		if !m.absent[day][p.ID] {
			present = append(present, p)
		}
	}
	return present, nil
}

func (m *mockStore) GetHourlySlots(ctx context.Context, day string) ([]db.HourlySlot, error) {
	var slots []db.HourlySlot
	for _, slot := range m.hourly[day] {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Hour < slots[j].Hour })
	return slots, nil
}

func (m *mockStore) GetHourlySlot(ctx context.Context, day string, hour int) (*db.HourlySlot, error) {
	if slot, ok := m.hourly[day][hour]; ok {
		return &slot, nil
	}
	return nil, nil
}

func (m *mockStore) InsertHourlySlots(ctx context.Context, slots []db.HourlySlot) error {
	for _, slot := range slots {
		if m.hourly[slot.Day] == nil {
			m.hourly[slot.Day] = make(map[int]db.HourlySlot)
		}
		if _, exists := m.hourly[slot.Day][slot.Hour]; exists {
			continue
		}
		m.hourly[slot.Day][slot.Hour] = slot
	}
	return nil
}

func (m *mockStore) UpsertHourlySlot(ctx context.Context, slot db.HourlySlot) error {
	if m.hourly[slot.Day] == nil {
		m.hourly[slot.Day] = make(map[int]db.HourlySlot)
	}
	m.hourly[slot.Day][slot.Hour] = slot
	return nil
}

func (m *mockStore) DeleteUnpinnedHourlyFrom(ctx context.Context, day string, cutoffHour int) error {
	for hour, slot := range m.hourly[day] {
		if hour >= cutoffHour && !slot.Pinned {
			delete(m.hourly[day], hour)
		}
	}
	return nil
}

func (m *mockStore) GetGateSlot(ctx context.Context, day string) (*db.GateSlot, error) {
	if slot, ok := m.gates[day]; ok {
		return &slot, nil
	}
	return nil, nil
}

func (m *mockStore) InsertGateSlot(ctx context.Context, slot db.GateSlot) error {
	m.gates[slot.Day] = slot
	return nil
}

func (m *mockStore) GetWeeklySlot(ctx context.Context, weekStart string) (*db.WeeklyDutySlot, error) {
	if slot, ok := m.weekly[weekStart]; ok {
		return &slot, nil
	}
	return nil, nil
}

func (m *mockStore) GetWeeklySlotsRange(ctx context.Context, fromWeek, toWeek string) ([]db.WeeklyDutySlot, error) {
	var slots []db.WeeklyDutySlot
	for week, slot := range m.weekly {
		if week >= fromWeek && week <= toWeek {
			slots = append(slots, slot)
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].WeekStart < slots[j].WeekStart })
	return slots, nil
}

func (m *mockStore) GetLastServedWeeklyBefore(ctx context.Context, weekStart string) (*db.WeeklyDutySlot, error) {
	var found *db.WeeklyDutySlot
	for week, slot := range m.weekly {
		if week >= weekStart || slot.OffWeek || slot.OccupantID == nil {
			continue
		}
		if found == nil || week > found.WeekStart {
			s := slot
			found = &s
		}
	}
	return found, nil
}

func (m *mockStore) InsertWeeklySlot(ctx context.Context, slot db.WeeklyDutySlot) error {
	if _, exists := m.weekly[slot.WeekStart]; exists {
		return nil
	}
	m.weekly[slot.WeekStart] = slot
	return nil
}

func (m *mockStore) UpsertWeeklySlot(ctx context.Context, slot db.WeeklyDutySlot) error {
	m.weekly[slot.WeekStart] = slot
	return nil
}

func (m *mockStore) DeleteUnpinnedWeeklyAfter(ctx context.Context, weekStart string) error {
	for week, slot := range m.weekly {
		if week > weekStart && !slot.Pinned {
			delete(m.weekly, week)
		}
	}
	return nil
}

func (m *mockStore) GetOnCallSlot(ctx context.Context, weekStart string, weekday int) (*db.OnCallSlot, error) {
	if slot, ok := m.oncall[weekStart][weekday]; ok {
		return &slot, nil
	}
	return nil, nil
}

func (m *mockStore) GetOnCallSlotsRange(ctx context.Context, fromWeek, toWeek string) ([]db.OnCallSlot, error) {
	var slots []db.OnCallSlot
	for week, byDay := range m.oncall {
		if week < fromWeek || week > toWeek {
			continue
		}
		for _, slot := range byDay {
			slots = append(slots, slot)
		}
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].WeekStart != slots[j].WeekStart {
			return slots[i].WeekStart < slots[j].WeekStart
		}
		return slots[i].Weekday < slots[j].Weekday
	})
	return slots, nil
}

func (m *mockStore) InsertOnCallSlot(ctx context.Context, slot db.OnCallSlot) error {
	if m.oncall[slot.WeekStart] == nil {
		m.oncall[slot.WeekStart] = make(map[int]db.OnCallSlot)
	}
	if _, exists := m.oncall[slot.WeekStart][slot.Weekday]; exists {
		return nil
	}
	m.oncall[slot.WeekStart][slot.Weekday] = slot
	return nil
}

func (m *mockStore) GetRotationCursor(ctx context.Context, stream string) (int64, bool, error) {
	last, ok := m.cursors[stream]
	return last, ok, nil
}

func (m *mockStore) UpsertRotationCursor(ctx context.Context, stream string, lastAssignedID int64) error {
	m.cursors[stream] = lastAssignedID
	return nil
}

func (m *mockStore) InsertAuditEntry(ctx context.Context, entry db.AuditEntry) error {
	m.audits = append(m.audits, entry)
	return nil
}

func (m *mockStore) GetLatestAuditEntry(ctx context.Context, day string) (*db.AuditEntry, error) {
	var found *db.AuditEntry
	for i := range m.audits {
		if m.audits[i].Day != day {
			continue
		}
		if found == nil || !m.audits[i].CreatedAt.Before(found.CreatedAt) {
			found = &m.audits[i]
		}
	}
	return found, nil
}
