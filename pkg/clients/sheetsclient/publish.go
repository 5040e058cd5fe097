package sheetsclient

import (
	"fmt"
	"time"
)

// PublishedWeekRow is one weekday row in the published grid.
type PublishedWeekRow struct {
	Date       string // Format: "Mon Jan 02 2006"
	GateMain   string
	GateBackup string
	OnCall     string
	Hourly     []string // One entry per configured slot hour
}

// PublishedWeek is the complete grid for one ISO week.
type PublishedWeek struct {
	WeekStart  string // Format: "2006-01-02"
	DutyHolder string // Weekly duty occupant, or "OFF" for an off week
	SlotHours  []int
	Rows       []PublishedWeekRow
}

// PublishWeek writes a week's rota grid to the spreadsheet, one tab per
// week. An existing tab for the week is overwritten so re-publishing
// after a reshuffle or override refreshes the sheet.
func (c *Client) PublishWeek(spreadsheetID string, week *PublishedWeek) error {
	tabTitle, err := weekTabTitle(week.WeekStart)
	if err != nil {
		return fmt.Errorf("failed to generate tab title: %w", err)
	}

	exists, err := c.tabExists(spreadsheetID, tabTitle)
	if err != nil {
		return err
	}
	if !exists {
		if err := c.CreateSheet(spreadsheetID, tabTitle); err != nil {
			return err
		}
	}

	header := []interface{}{"Date", "Gate", "Gate backup", "On call"}
	for _, hour := range week.SlotHours {
		header = append(header, fmt.Sprintf("%02d:00", hour))
	}

	rows := [][]interface{}{
		{fmt.Sprintf("Weekly duty: %s", week.DutyHolder)},
		{}, // spacer
		header,
	}
	for _, row := range week.Rows {
		sheetRow := []interface{}{row.Date, row.GateMain, row.GateBackup, row.OnCall}
		for _, name := range row.Hourly {
			sheetRow = append(sheetRow, name)
		}
		rows = append(rows, sheetRow)
	}

	writeRange := fmt.Sprintf("'%s'!A1", tabTitle)
	if err := c.UpdateValues(spreadsheetID, writeRange, rows); err != nil {
		return fmt.Errorf("failed to write rota grid: %w", err)
	}

	return nil
}

// weekTabTitle creates a tab title in the format "Mon Jan 08 2024 - Sun Jan 14 2024"
func weekTabTitle(weekStart string) (string, error) {
	start, err := time.Parse("2006-01-02", weekStart)
	if err != nil {
		return "", fmt.Errorf("invalid week start date: %w", err)
	}
	end := start.AddDate(0, 0, 6)

	return fmt.Sprintf("%s - %s",
		start.Format("Mon Jan 02 2006"),
		end.Format("Mon Jan 02 2006"),
	), nil
}
