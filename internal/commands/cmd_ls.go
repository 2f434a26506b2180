package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/nag/internal/core/task"
	"github.com/colonyops/nag/internal/nag"
	"github.com/colonyops/nag/pkg/iojson"
)

// LsCmd implements the nag ls command.
type LsCmd struct {
	flags *Flags
	app   *nag.App

	status   string
	priority string
	search   string
	focus    bool
	json     bool
}

// NewLsCmd creates a new ls command.
func NewLsCmd(flags *Flags, app *nag.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application.
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "List tasks",
		UsageText: "nag ls [--status <s>] [--priority <p>] [--search <text>] [--focus] [--json]",
		Description: `Lists tasks, most recently added first.

All filters combine with AND. Use --json for machine-readable output,
one JSON object per line.

Examples:
  nag ls
  nag ls --status pending --priority high
  nag ls --search report
  nag ls --focus`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "status",
				Aliases:     []string{"s"},
				Usage:       "filter by status (all, pending, completed)",
				Value:       "all",
				Destination: &cmd.status,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "filter by priority (low, medium, high)",
				Destination: &cmd.priority,
			},
			&cli.StringFlag{
				Name:        "search",
				Usage:       "filter by text match (case-insensitive)",
				Destination: &cmd.search,
			},
			&cli.BoolFlag{
				Name:        "focus",
				Usage:       "show only the top high-priority tasks by due date",
				Destination: &cmd.focus,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output JSON lines",
				Destination: &cmd.json,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	status := task.Status(cmd.status)
	if !status.IsValid() {
		return fmt.Errorf("invalid status %q (expected all, pending, or completed)", cmd.status)
	}

	priority, err := parsePriority(cmd.priority)
	if err != nil {
		return err
	}

	tasks := cmd.app.Tasks.Tasks()
	if cmd.focus {
		tasks = task.Focus(tasks)
	} else {
		tasks = task.Filter(tasks, task.FilterOptions{
			Status:   status,
			Priority: priority,
			Search:   cmd.search,
		})
	}

	if cmd.json {
		for _, t := range tasks {
			if err := iojson.WriteLine(t); err != nil {
				return err
			}
		}
		return nil
	}

	now := time.Now()
	for _, t := range tasks {
		fmt.Println(renderTask(t, now))
	}

	stats := cmd.app.Tasks.Stats()
	if stats.Total > 0 && !cmd.focus {
		fmt.Printf("\n%d of %d completed (%d%%)\n", stats.Completed, stats.Total, stats.Percent())
	}

	return nil
}
