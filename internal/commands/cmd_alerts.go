package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/nag/internal/nag"
	"github.com/colonyops/nag/pkg/iojson"
)

// AlertsCmd implements the nag alerts command group.
type AlertsCmd struct {
	flags *Flags
	app   *nag.App

	json bool
}

// NewAlertsCmd creates a new alerts command.
func NewAlertsCmd(flags *Flags, app *nag.App) *AlertsCmd {
	return &AlertsCmd{flags: flags, app: app}
}

// Register adds the alerts command to the application.
func (cmd *AlertsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "alerts",
		Usage:     "Inspect deadline alerts",
		UsageText: "nag alerts [command]",
		Description: `Shows tasks whose deadlines are currently active: due within 24 hours
or overdue by less than a day. Running without a subcommand scans now.

Examples:
  nag alerts                # current active alerts
  nag alerts log            # dispatched alert history
  nag alerts clear          # wipe the history
  nag alerts test           # send a test notification`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output JSON lines",
				Destination: &cmd.json,
			},
		},
		Action: cmd.runActive,
		Commands: []*cli.Command{
			cmd.logCmd(),
			cmd.clearCmd(),
			cmd.testCmd(),
		},
	})

	return app
}

func (cmd *AlertsCmd) logCmd() *cli.Command {
	return &cli.Command{
		Name:      "log",
		Usage:     "Show dispatched alert history, newest first",
		UsageText: "nag alerts log [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output JSON lines",
				Destination: &cmd.json,
			},
		},
		Action: cmd.runLog,
	}
}

func (cmd *AlertsCmd) clearCmd() *cli.Command {
	return &cli.Command{
		Name:      "clear",
		Usage:     "Delete the alert history",
		UsageText: "nag alerts clear",
		Action:    cmd.runClear,
	}
}

func (cmd *AlertsCmd) testCmd() *cli.Command {
	return &cli.Command{
		Name:      "test",
		Usage:     "Send a test notification through the alert sink",
		UsageText: "nag alerts test",
		Action:    cmd.runTest,
	}
}

func (cmd *AlertsCmd) runActive(ctx context.Context, c *cli.Command) error {
	// A one-shot listing must not burn through cooldowns, so dispatch is
	// paused for the scan.
	sched := cmd.app.Scheduler
	prev := sched.Enabled()
	sched.SetEnabled(false)
	defer sched.SetEnabled(prev)

	active := sched.Scan(ctx)

	if cmd.json {
		for _, a := range active {
			if err := iojson.WriteLine(a); err != nil {
				return err
			}
		}
		return nil
	}

	if len(active) == 0 {
		fmt.Println("no active alerts")
		return nil
	}

	for _, a := range active {
		fmt.Printf("%-8s  %s  %s (%s)\n", a.Tier, a.Task.ID, a.Task.Text, a.TimeLeft)
	}
	return nil
}

func (cmd *AlertsCmd) runLog(ctx context.Context, c *cli.Command) error {
	alerts, err := cmd.app.Alerts.List(ctx)
	if err != nil {
		return fmt.Errorf("list alerts: %w", err)
	}

	if cmd.json {
		for _, a := range alerts {
			if err := iojson.WriteLine(a); err != nil {
				return err
			}
		}
		return nil
	}

	if len(alerts) == 0 {
		fmt.Println("no alerts recorded")
		return nil
	}

	for _, a := range alerts {
		fmt.Printf("%s  %-8s  %s\n", a.CreatedAt.Format("2006-01-02 15:04"), a.Level, a.Body)
	}
	return nil
}

func (cmd *AlertsCmd) runClear(ctx context.Context, c *cli.Command) error {
	count, err := cmd.app.Alerts.Count(ctx)
	if err != nil {
		return fmt.Errorf("count alerts: %w", err)
	}

	if err := cmd.app.Alerts.Clear(ctx); err != nil {
		return fmt.Errorf("clear alerts: %w", err)
	}

	fmt.Printf("cleared %d alerts\n", count)
	return nil
}

func (cmd *AlertsCmd) runTest(ctx context.Context, c *cli.Command) error {
	if !cmd.app.Scheduler.TestAlert(ctx) {
		return fmt.Errorf("alert sink did not deliver the test notification")
	}

	fmt.Println("test notification sent")
	return nil
}
