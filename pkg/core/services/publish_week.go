package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/jcallaghan/duty-rota/internal/config"
	"github.com/jcallaghan/duty-rota/pkg/clients/sheetsclient"
	"github.com/jcallaghan/duty-rota/pkg/db"
)

// WeekPublisher publishes a week grid to a spreadsheet.
type WeekPublisher interface {
	PublishWeek(spreadsheetID string, week *sheetsclient.PublishedWeek) error
}

// PublishWeek builds the week's grid (weekly duty holder, gate pairs,
// on-call weekdays and hourly assignments per day) and writes it to
// the configured spreadsheet. Generation runs first via the views, so
// publishing a future week materializes it.
func PublishWeek(ctx context.Context, database db.Database, logger *zap.Logger, cfg *config.Config, publisher WeekPublisher, weekStart string) (*sheetsclient.PublishedWeek, error) {
	if cfg.Publish == nil {
		return nil, validationErrorf("publish is not configured")
	}

	ws, err := parseWeekStart(weekStart)
	if err != nil {
		return nil, err
	}

	weekView, err := GetWeekView(ctx, database, logger, cfg, weekStart)
	if err != nil {
		return nil, err
	}

	week := &sheetsclient.PublishedWeek{
		WeekStart: weekStart,
		SlotHours: cfg.SlotHours,
	}
	if weekView.Duty != nil {
		switch {
		case weekView.Duty.OffWeek:
			week.DutyHolder = "OFF"
		case weekView.Duty.Occupant != nil:
			week.DutyHolder = weekView.Duty.Occupant.DisplayName
		}
	}

	for wd := 0; wd < 7; wd++ {
		day := weekdayDate(ws, wd)
		dayView, err := GetDayView(ctx, database, logger, cfg, day)
		if err != nil {
			return nil, err
		}

		date, err := parseDay(day)
		if err != nil {
			return nil, err
		}
		row := sheetsclient.PublishedWeekRow{Date: date.Format("Mon Jan 02 2006")}

		if dayView.Gate != nil {
			row.GateMain = dayView.Gate.Main.DisplayName
			if dayView.Gate.Backup != nil {
				row.GateBackup = dayView.Gate.Backup.DisplayName
			}
		}
		if oc := weekView.OnCall[wd].Occupant; oc != nil {
			row.OnCall = oc.DisplayName
		}
		for _, hv := range dayView.Hours {
			name := ""
			if hv.Occupant != nil {
				name = hv.Occupant.DisplayName
			}
			row.Hourly = append(row.Hourly, name)
		}

		week.Rows = append(week.Rows, row)
	}

	logger.Debug("Publishing week",
		zap.String("week_start", weekStart),
		zap.String("duty_holder", week.DutyHolder))

	if err := publisher.PublishWeek(cfg.Publish.RotaSheetID, week); err != nil {
		return nil, err
	}

	return week, nil
}
