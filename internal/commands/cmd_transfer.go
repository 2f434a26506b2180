package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/nag/internal/core/task"
	"github.com/colonyops/nag/internal/nag"
	"github.com/colonyops/nag/pkg/iojson"
)

// TransferCmd implements the nag export and nag import commands.
type TransferCmd struct {
	flags *Flags
	app   *nag.App

	reader iojson.FileReader[[]task.Task]
}

// NewTransferCmd creates a new transfer command.
func NewTransferCmd(flags *Flags, app *nag.App) *TransferCmd {
	return &TransferCmd{flags: flags, app: app}
}

// Register adds the export and import commands to the application.
func (cmd *TransferCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "export",
			Usage:     "Write all tasks to stdout as JSON",
			UsageText: "nag export > tasks.json",
			Action:    cmd.runExport,
		},
		&cli.Command{
			Name:      "import",
			Usage:     "Merge tasks from a JSON export",
			UsageText: "nag import [-f <file>]",
			Description: `Reads a JSON array of tasks from a file or stdin and merges it into
the list. Entries duplicating an incomplete task are skipped.

Examples:
  nag import -f tasks.json
  cat tasks.json | nag import`,
			Flags: []cli.Flag{
				cmd.reader.Flag(),
			},
			Action: cmd.runImport,
		},
	)

	return app
}

func (cmd *TransferCmd) runExport(ctx context.Context, c *cli.Command) error {
	return iojson.Write(cmd.app.Tasks.Tasks())
}

func (cmd *TransferCmd) runImport(ctx context.Context, c *cli.Command) error {
	tasks, err := cmd.reader.Read()
	if err != nil {
		return err
	}

	added := cmd.app.Tasks.Import(ctx, tasks)
	fmt.Printf("imported %d of %d tasks\n", added, len(tasks))
	return nil
}
