package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcallaghan/duty-rota/pkg/clients/sheetsclient"
	"github.com/jcallaghan/duty-rota/pkg/core/services"
)

// PublishCmd creates the publish command
func PublishCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <week_start>",
		Short: "Publish a week's rota to the configured Google Sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Cfg.Publish == nil {
				return fmt.Errorf("publish is not configured, add a publish section to the config file")
			}

			client, err := sheetsclient.NewClient(app.Ctx, app.Cfg.Publish.CredentialsFile, app.Env)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}

			week, err := services.PublishWeek(app.Ctx, app.Database, app.Logger, app.Cfg, client, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Published week of %s (%d day rows).\n", week.WeekStart, len(week.Rows))
			return nil
		},
	}
}
