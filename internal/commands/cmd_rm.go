package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/nag/internal/nag"
)

// RmCmd implements the nag rm and nag clear commands.
type RmCmd struct {
	flags *Flags
	app   *nag.App
}

// NewRmCmd creates a new rm command.
func NewRmCmd(flags *Flags, app *nag.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm and clear commands to the application.
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "rm",
			Aliases:   []string{"delete"},
			Usage:     "Delete a task",
			UsageText: "nag rm <id>",
			Action:    cmd.runRm,
		},
		&cli.Command{
			Name:      "clear",
			Usage:     "Delete all completed tasks",
			UsageText: "nag clear",
			Action:    cmd.runClear,
		},
	)

	return app
}

func (cmd *RmCmd) runRm(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: nag rm <id>")
	}

	if !cmd.app.Tasks.Delete(ctx, id) {
		return fmt.Errorf("no task with id %q", id)
	}

	fmt.Println("deleted", id)
	return nil
}

func (cmd *RmCmd) runClear(ctx context.Context, c *cli.Command) error {
	removed := cmd.app.Tasks.ClearCompleted(ctx)
	switch removed {
	case 0:
		fmt.Println("no completed tasks")
	case 1:
		fmt.Println("cleared 1 completed task")
	default:
		fmt.Printf("cleared %d completed tasks\n", removed)
	}
	return nil
}
