package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/nag/internal/nag"
)

// EditCmd implements the nag edit command.
type EditCmd struct {
	flags *Flags
	app   *nag.App

	text     string
	priority string
	due      string
	clearDue bool
}

// NewEditCmd creates a new edit command.
func NewEditCmd(flags *Flags, app *nag.App) *EditCmd {
	return &EditCmd{flags: flags, app: app}
}

// Register adds the edit command to the application.
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Edit a task's text, priority, or due date",
		UsageText: "nag edit <id> [--text <text>] [--priority <p>] [--due <date>] [--clear-due]",
		Description: `Edits an existing task. Unspecified fields keep their current value.

Editing a task resets its reminder clock, so an active deadline alert
fires again on the next scan.

Examples:
  nag edit a1b2c3d4 --text "Buy oat milk"
  nag edit a1b2c3d4 --priority high --due 2026-04-01
  nag edit a1b2c3d4 --clear-due`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "text",
				Aliases:     []string{"t"},
				Usage:       "new task text",
				Destination: &cmd.text,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "new priority (low, medium, high)",
				Destination: &cmd.priority,
			},
			&cli.StringFlag{
				Name:        "due",
				Aliases:     []string{"d"},
				Usage:       "new due date (YYYY-MM-DD, today, tomorrow)",
				Destination: &cmd.due,
			},
			&cli.BoolFlag{
				Name:        "clear-due",
				Usage:       "remove the due date",
				Destination: &cmd.clearDue,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: nag edit <id> [flags]")
	}

	current, ok := cmd.app.Tasks.Get(id)
	if !ok {
		return fmt.Errorf("no task with id %q", id)
	}

	text := current.Text
	if cmd.text != "" {
		text = cmd.text
	}

	priority := current.Priority
	if cmd.priority != "" {
		p, err := parsePriority(cmd.priority)
		if err != nil {
			return err
		}
		priority = p
	}

	due := current.DueDate
	switch {
	case cmd.clearDue:
		due = nil
	case cmd.due != "":
		d, err := parseDue(cmd.due)
		if err != nil {
			return err
		}
		due = d
	}

	if !cmd.app.Tasks.Update(ctx, id, text, priority, due) {
		return fmt.Errorf("no task with id %q", id)
	}

	updated, _ := cmd.app.Tasks.Get(id)
	fmt.Println(renderTask(updated, time.Now()))
	return nil
}
