package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jcallaghan/duty-rota/pkg/core/services"
)

// OverrideHourCmd creates the overrideHour command
func OverrideHourCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overrideHour <date> <hour> <person_id>",
		Short: "Pin one hourly slot to a person, exempting it from regeneration",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := args[0]
			hour, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("hour must be a number: %w", err)
			}
			personID, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("person_id must be a number: %w", err)
			}
			reason, _ := cmd.Flags().GetString("reason")

			if err := services.OverrideHourlySlot(app.Ctx, app.Database, app.Logger, app.Cfg, day, hour, personID, reason); err != nil {
				return err
			}

			fmt.Printf("\n✓ Pinned %s hour %d to person %d.\n", day, hour, personID)
			return nil
		},
	}

	cmd.Flags().String("reason", "", "Why the slot is being pinned (required)")
	cmd.MarkFlagRequired("reason")

	return cmd
}
