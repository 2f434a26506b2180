package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/nag/internal/core/deadline"
	"github.com/colonyops/nag/internal/nag"
)

// AddCmd implements the nag add command.
type AddCmd struct {
	flags *Flags
	app   *nag.App

	priority string
	due      string
}

// NewAddCmd creates a new add command.
func NewAddCmd(flags *Flags, app *nag.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application.
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a new task",
		UsageText: "nag add [--priority <p>] [--due <date>] <text>",
		Description: `Adds a task to the list.

Examples:
  nag add "Buy milk"
  nag add --priority high --due tomorrow "File the quarterly report"
  nag add --due 2026-04-01 "Pay rent"`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "task priority (low, medium, high)",
				Destination: &cmd.priority,
			},
			&cli.StringFlag{
				Name:        "due",
				Aliases:     []string{"d"},
				Usage:       "due date (YYYY-MM-DD, today, tomorrow)",
				Destination: &cmd.due,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	text := strings.Join(c.Args().Slice(), " ")

	priority, err := parsePriority(cmd.priority)
	if err != nil {
		return err
	}

	due, err := parseDue(cmd.due)
	if err != nil {
		return err
	}

	created, err := cmd.app.Tasks.Create(ctx, text, priority, due)
	if err != nil {
		return err
	}

	now := time.Now()
	fmt.Println(renderTask(created, now))

	if tier := deadline.Classify(created, now); tier != deadline.TierNone {
		fmt.Println(deadline.Message(created, now))
	}

	return nil
}
