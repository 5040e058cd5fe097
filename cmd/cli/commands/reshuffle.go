package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jcallaghan/duty-rota/pkg/core/services"
)

// ReshuffleCmd creates the reshuffle command
func ReshuffleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reshuffle <date> <cutoff_hour>",
		Short: "Re-randomize the day's unpinned hourly slots from the cutoff hour onward",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := args[0]
			cutoffHour, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("cutoff_hour must be a number: %w", err)
			}
			actor, _ := cmd.Flags().GetString("actor")
			reason, _ := cmd.Flags().GetString("reason")

			if err := services.Reshuffle(app.Ctx, app.Database, app.Logger, app.Cfg, day, cutoffHour, actor, reason); err != nil {
				return err
			}

			fmt.Printf("\n✓ Reshuffled %s from hour %d.\n", day, cutoffHour)
			return nil
		},
	}

	cmd.Flags().String("actor", "", "Who triggered the reshuffle (required)")
	cmd.Flags().String("reason", "", "Why the reshuffle was needed (required)")
	cmd.MarkFlagRequired("actor")
	cmd.MarkFlagRequired("reason")

	return cmd
}
