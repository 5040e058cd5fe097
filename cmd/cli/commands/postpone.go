package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcallaghan/duty-rota/pkg/core/services"
)

// PostponeCmd creates the postpone command
func PostponeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "postpone <week_start>",
		Short: "Push the week's duty holder to the back of the unpinned queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart := args[0]

			if err := services.PostponeWeeklyDuty(app.Ctx, app.Database, app.Logger, app.Cfg, weekStart); err != nil {
				return err
			}

			fmt.Printf("\n✓ Weekly duty postponed from %s.\n", weekStart)
			return nil
		},
	}
}
