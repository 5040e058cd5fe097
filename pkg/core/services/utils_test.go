package services

import (
	"go.uber.org/zap"

	"github.com/jcallaghan/duty-rota/internal/config"
	"github.com/jcallaghan/duty-rota/pkg/db"
)

// Roster fixture used across the service tests. 2024-01-08 is a Monday,
// which keeps the week math easy to read.
var (
	alice   = db.Person{ID: 1, DisplayName: "Alice"}
	bob     = db.Person{ID: 2, DisplayName: "Bob"}
	charlie = db.Person{ID: 3, DisplayName: "Charlie"}
)

const (
	testDay   = "2024-01-08"
	testWeek1 = "2024-01-08"
	testWeek2 = "2024-01-15"
	testWeek3 = "2024-01-22"
	testWeek4 = "2024-01-29"
)

func testConfig() *config.Config {
	return &config.Config{
		DatabaseURL:    "postgres://localhost/duty_rota_test",
		SlotHours:      []int{9, 10, 11, 12, 13, 14},
		WeeklyDutyRule: "FREQ=WEEKLY;COUNT=4",
		OnCallRule:     "FREQ=WEEKLY;COUNT=2",
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func int64Ptr(v int64) *int64 {
	return &v
}
