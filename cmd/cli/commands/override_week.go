package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcallaghan/duty-rota/pkg/core/services"
)

// OverrideWeekCmd creates the overrideWeek command
func OverrideWeekCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overrideWeek <week_start>",
		Short: "Pin a week's duty to a person, or mark the week off",
		Long: `Pin the weekly duty for the ISO week starting at <week_start> (a Monday).
Either --person or --off must be given. Marking a week off (or un-marking it)
re-shifts every unpinned week after it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart := args[0]
			personID, _ := cmd.Flags().GetInt64("person")
			off, _ := cmd.Flags().GetBool("off")
			reason, _ := cmd.Flags().GetString("reason")

			var person *int64
			if cmd.Flags().Changed("person") {
				person = &personID
			}

			if err := services.OverrideWeeklyDuty(app.Ctx, app.Database, app.Logger, app.Cfg, weekStart, person, off, reason); err != nil {
				return err
			}

			if off {
				fmt.Printf("\n✓ Week %s marked off.\n", weekStart)
			} else {
				fmt.Printf("\n✓ Week %s pinned to person %d.\n", weekStart, personID)
			}
			return nil
		},
	}

	cmd.Flags().Int64("person", 0, "Person to pin the week to")
	cmd.Flags().Bool("off", false, "Suspend duty for the week")
	cmd.Flags().String("reason", "", "Why the week is being pinned (required)")
	cmd.MarkFlagRequired("reason")

	return cmd
}
