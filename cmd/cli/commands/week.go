package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcallaghan/duty-rota/pkg/core/services"
)

// WeekCmd creates the week command
func WeekCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "week <week_start>",
		Short: "Show the weekly duty and on-call rota for a week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := services.GetWeekView(app.Ctx, app.Database, app.Logger, app.Cfg, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nWeek of %s\n", view.WeekStart)
			if duty := view.Duty; duty != nil {
				switch {
				case duty.OffWeek:
					fmt.Printf("  Duty (week %d): OFF\n", duty.WeekNumber)
				case duty.Occupant != nil:
					fmt.Printf("  Duty (week %d): %s\n", duty.WeekNumber, duty.Occupant.DisplayName)
				default:
					fmt.Printf("  Duty (week %d): unassigned\n", duty.WeekNumber)
				}
				if duty.Pinned {
					line := "    [pinned"
					if duty.OriginalOccupant != nil {
						line += fmt.Sprintf(", was %s", duty.OriginalOccupant.DisplayName)
					}
					if duty.Reason != "" {
						line += fmt.Sprintf(": %s", duty.Reason)
					}
					fmt.Println(line + "]")
				}
			} else {
				fmt.Println("  Duty: unassigned")
			}

			fmt.Println("  On call:")
			for _, oc := range view.OnCall {
				name := "unassigned"
				if oc.Occupant != nil {
					name = oc.Occupant.DisplayName
				}
				fmt.Printf("    %s  %s\n", oc.Day, name)
			}
			return nil
		},
	}
}
