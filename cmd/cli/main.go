package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jcallaghan/duty-rota/cmd/cli/commands"
	"github.com/jcallaghan/duty-rota/internal/config"
	"github.com/jcallaghan/duty-rota/pkg/postgres"
	"github.com/jcallaghan/duty-rota/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "duty-rota",
		Short: "Duty rota CLI - Manage hourly, daily, weekly and on-call rotations",
		Long:  `A CLI tool for generating and adjusting duty rotas: hourly slots, the daily gate pair, the weekly duty rotation and the 7-day on-call rota.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.EnsureCmd(appRef()))
	rootCmd.AddCommand(commands.DayCmd(appRef()))
	rootCmd.AddCommand(commands.WeekCmd(appRef()))
	rootCmd.AddCommand(commands.ReshuffleCmd(appRef()))
	rootCmd.AddCommand(commands.OverrideHourCmd(appRef()))
	rootCmd.AddCommand(commands.OverrideWeekCmd(appRef()))
	rootCmd.AddCommand(commands.PostponeCmd(appRef()))
	rootCmd.AddCommand(commands.PublishCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, allocating it before initApp has
// run so commands can capture the pointer at registration time.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, and database
func initApp() error {
	var err error
	appRef()
	app.Ctx = context.Background()
	app.Env = env

	// Initialize logger
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	// Connect to the database and apply migrations
	app.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Database = database
	app.Logger.Info("Database initialized successfully")

	return nil
}
