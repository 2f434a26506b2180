package nag

import (
	"github.com/colonyops/nag/internal/core/config"
	"github.com/colonyops/nag/internal/core/notify"
	"github.com/colonyops/nag/internal/data/db"
)

// App is the central entry point for all nag operations.
// Commands and the TUI consume App instead of cherry-picking raw
// dependencies.
type App struct {
	Tasks     *TaskService
	Scheduler *Scheduler
	Alerts    notify.Store
	Config    *config.Config
	DB        *db.DB
}

// NewApp constructs an App from explicit dependencies and wires task
// mutations to immediate scheduler re-scans.
func NewApp(tasks *TaskService, scheduler *Scheduler, alerts notify.Store, cfg *config.Config, database *db.DB) *App {
	tasks.OnChange(scheduler.Kick)

	return &App{
		Tasks:     tasks,
		Scheduler: scheduler,
		Alerts:    alerts,
		Config:    cfg,
		DB:        database,
	}
}
