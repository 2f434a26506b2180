package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/nag/internal/core/notify"
	"github.com/colonyops/nag/internal/nag"
)

// WatchCmd implements the nag watch command: a headless foreground run of
// the deadline scheduler.
type WatchCmd struct {
	flags *Flags
	app   *nag.App
}

// NewWatchCmd creates a new watch command.
func NewWatchCmd(flags *Flags, app *nag.App) *WatchCmd {
	return &WatchCmd{flags: flags, app: app}
}

// Register adds the watch command to the application.
func (cmd *WatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "watch",
		Usage:     "Run the deadline scheduler in the foreground",
		UsageText: "nag watch",
		Description: `Scans deadlines on the configured interval and prints alerts to the
terminal as they fire. Stop with ctrl-c.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *WatchCmd) run(ctx context.Context, c *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.app.Scheduler.SetSink(notify.SinkFunc(func(_ context.Context, a notify.Alert) bool {
		fmt.Printf("[%s] %s: %s\n", a.Level, a.Title, a.Body)
		return true
	}))

	stats := cmd.app.Tasks.Stats()
	interval := cmd.flags.Config.Notifications.Interval
	fmt.Printf("watching %d tasks, scanning every %s (ctrl-c to stop)\n", stats.Pending, interval)

	cmd.app.Scheduler.Start(ctx)
	defer cmd.app.Scheduler.Stop()

	<-ctx.Done()
	fmt.Println()
	return nil
}
