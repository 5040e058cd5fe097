package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jcallaghan/duty-rota/internal/config"
	"github.com/jcallaghan/duty-rota/pkg/db"
)

// HourlySlotView is one hourly slot with its people resolved. A nil
// Occupant means the hour is unassigned (empty present roster).
type HourlySlotView struct {
	Hour             int
	Occupant         *db.Person
	Pinned           bool
	OriginalOccupant *db.Person
	Reason           string
}

// GateView is the day's gate pair with people resolved.
type GateView struct {
	Main   db.Person
	Backup *db.Person
}

// DayView is the materialized state of one day.
type DayView struct {
	Day         string
	Hours       []HourlySlotView
	Gate        *GateView
	LastShuffle *db.AuditEntry
}

// WeeklyDutyView is one week of the weekly duty rotation with people
// resolved. Occupant is nil for off weeks.
type WeeklyDutyView struct {
	WeekStart        string
	WeekNumber       int
	Occupant         *db.Person
	OffWeek          bool
	Pinned           bool
	OriginalOccupant *db.Person
	Reason           string
}

// OnCallDayView is one weekday of the on-call rota.
type OnCallDayView struct {
	Weekday  int // 0 = Monday
	Day      string
	Occupant *db.Person
}

// WeekView is the materialized state of one ISO week.
type WeekView struct {
	WeekStart string
	Duty      *WeeklyDutyView
	OnCall    []OnCallDayView
}

// GetDayView returns the day's hourly and gate assignments plus the
// latest shuffle audit entry. Generation for the day and its windows
// runs first as a precondition (generate-on-read), so a never-before
// seen day materializes on first read.
func GetDayView(ctx context.Context, database db.Database, logger *zap.Logger, cfg *config.Config, day string) (*DayView, error) {
	if err := EnsureGenerated(ctx, database, logger, cfg, day); err != nil {
		return nil, err
	}

	people, err := rosterByID(ctx, database)
	if err != nil {
		return nil, err
	}

	slots, err := database.GetHourlySlots(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hourly slots: %w", err)
	}
	byHour := make(map[int]db.HourlySlot, len(slots))
	for _, slot := range slots {
		byHour[slot.Hour] = slot
	}

	view := &DayView{Day: day, Hours: make([]HourlySlotView, 0, len(cfg.SlotHours))}
	for _, hour := range cfg.SlotHours {
		hv := HourlySlotView{Hour: hour}
		if slot, ok := byHour[hour]; ok {
			hv.Occupant = lookupPerson(people, slot.OccupantID)
			hv.Pinned = slot.Pinned
			hv.OriginalOccupant = lookupPerson(people, slot.OriginalOccupantID)
			hv.Reason = slot.Reason
		}
		view.Hours = append(view.Hours, hv)
	}

	gate, err := database.GetGateSlot(ctx, day)
	if err != nil {
		return nil, err
	}
	if gate != nil {
		if main, ok := people[gate.MainID]; ok {
			view.Gate = &GateView{Main: main, Backup: lookupPerson(people, gate.BackupID)}
		}
	}

	view.LastShuffle, err = database.GetLatestAuditEntry(ctx, day)
	if err != nil {
		return nil, err
	}

	return view, nil
}

// GetWeekView returns the week's duty assignment and on-call rota with
// pin metadata. Like GetDayView, generation runs first.
func GetWeekView(ctx context.Context, database db.Database, logger *zap.Logger, cfg *config.Config, weekStart string) (*WeekView, error) {
	ws, err := parseWeekStart(weekStart)
	if err != nil {
		return nil, err
	}
	if err := EnsureGenerated(ctx, database, logger, cfg, weekStart); err != nil {
		return nil, err
	}

	people, err := rosterByID(ctx, database)
	if err != nil {
		return nil, err
	}

	view := &WeekView{WeekStart: weekStart}

	duty, err := database.GetWeeklySlot(ctx, weekStart)
	if err != nil {
		return nil, err
	}
	if duty != nil {
		view.Duty = &WeeklyDutyView{
			WeekStart:        duty.WeekStart,
			WeekNumber:       duty.WeekNumber,
			Occupant:         lookupPerson(people, duty.OccupantID),
			OffWeek:          duty.OffWeek,
			Pinned:           duty.Pinned,
			OriginalOccupant: lookupPerson(people, duty.OriginalOccupantID),
			Reason:           duty.Reason,
		}
	}

	slots, err := database.GetOnCallSlotsRange(ctx, weekStart, weekStart)
	if err != nil {
		return nil, err
	}
	byWeekday := make(map[int]db.OnCallSlot, len(slots))
	for _, slot := range slots {
		byWeekday[slot.Weekday] = slot
	}
	for wd := 0; wd < 7; wd++ {
		ocv := OnCallDayView{Weekday: wd, Day: weekdayDate(ws, wd)}
		if slot, ok := byWeekday[wd]; ok {
			ocv.Occupant = lookupPerson(people, &slot.OccupantID)
		}
		view.OnCall = append(view.OnCall, ocv)
	}

	return view, nil
}

func rosterByID(ctx context.Context, store db.RosterStore) (map[int64]db.Person, error) {
	roster, err := store.GetFullRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}
	people := make(map[int64]db.Person, len(roster))
	for _, p := range roster {
		people[p.ID] = p
	}
	return people, nil
}

func lookupPerson(people map[int64]db.Person, id *int64) *db.Person {
	if id == nil {
		return nil
	}
	p, ok := people[*id]
	if !ok {
		return nil
	}
	return &p
}
