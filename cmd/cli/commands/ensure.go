package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcallaghan/duty-rota/pkg/core/services"
)

// EnsureCmd creates the ensure command
func EnsureCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ensure <date>",
		Short: "Generate or repair all duty slots covering the given date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := args[0]

			if err := services.EnsureGenerated(app.Ctx, app.Database, app.Logger, app.Cfg, day); err != nil {
				return err
			}

			fmt.Printf("\n✓ Slots generated for %s and its rolling windows.\n", day)
			return nil
		},
	}
}
