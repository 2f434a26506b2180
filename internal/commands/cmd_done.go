package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/nag/internal/nag"
)

// DoneCmd implements the nag done command.
type DoneCmd struct {
	flags *Flags
	app   *nag.App
}

// NewDoneCmd creates a new done command.
func NewDoneCmd(flags *Flags, app *nag.App) *DoneCmd {
	return &DoneCmd{flags: flags, app: app}
}

// Register adds the done command to the application.
func (cmd *DoneCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "done",
		Usage:     "Toggle a task's completion",
		UsageText: "nag done <id>",
		Description: `Marks a pending task completed, or a completed task pending again.

Examples:
  nag done a1b2c3d4`,
		Action: cmd.run,
	})

	return app
}

func (cmd *DoneCmd) run(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: nag done <id>")
	}

	updated, ok := cmd.app.Tasks.ToggleCompletion(ctx, id)
	if !ok {
		return fmt.Errorf("no task with id %q", id)
	}

	if updated.Completed {
		fmt.Printf("completed: %s\n", updated.Text)
	} else {
		fmt.Printf("reopened: %s\n", updated.Text)
	}
	return nil
}
