package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcallaghan/duty-rota/pkg/core/services"
)

// DayCmd creates the day command
func DayCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "day <date>",
		Short: "Show the hourly and gate assignments for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := services.GetDayView(app.Ctx, app.Database, app.Logger, app.Cfg, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n%s\n", view.Day)
			if view.Gate != nil {
				fmt.Printf("  Gate main:   %s\n", view.Gate.Main.DisplayName)
				if view.Gate.Backup != nil {
					fmt.Printf("  Gate backup: %s\n", view.Gate.Backup.DisplayName)
				}
			} else {
				fmt.Println("  Gate: unassigned")
			}

			fmt.Println("  Hours:")
			for _, hour := range view.Hours {
				name := "unassigned"
				if hour.Occupant != nil {
					name = hour.Occupant.DisplayName
				}
				line := fmt.Sprintf("    %02d:00  %s", hour.Hour, name)
				if hour.Pinned {
					line += "  [pinned"
					if hour.OriginalOccupant != nil {
						line += fmt.Sprintf(", was %s", hour.OriginalOccupant.DisplayName)
					}
					if hour.Reason != "" {
						line += fmt.Sprintf(": %s", hour.Reason)
					}
					line += "]"
				}
				fmt.Println(line)
			}

			if view.LastShuffle != nil {
				fmt.Printf("  Last shuffle: %s by %s (%s)\n",
					view.LastShuffle.CreatedAt.Format("2006-01-02 15:04"),
					view.LastShuffle.Actor,
					view.LastShuffle.Reason,
				)
			}
			return nil
		},
	}
}
