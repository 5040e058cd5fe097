package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jcallaghan/duty-rota/internal/config"
	"github.com/jcallaghan/duty-rota/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
	Env      string
}
