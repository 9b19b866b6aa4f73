package cmd

import (
	"github.com/agentuity/go-common/env"
	"github.com/agentuity/go-common/tui"
	"github.com/spf13/cobra"

	"github.com/ultralabel/cli/internal/dataset"
	"github.com/ultralabel/cli/internal/errsystem"
	"github.com/ultralabel/cli/internal/tasks"
	"github.com/ultralabel/cli/internal/util"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dataset]",
	Short: "Validate that a dataset satisfies a task's input columns",
	Long: `Validate that a dataset satisfies a task's input columns.

Checks every input column the task declares against the dataset and fails on
the first missing one. Run this before any labeling to catch configuration
mistakes while they are still cheap.

Examples:
  ultralabel validate --task sentiment train.jsonl
  ultralabel validate --task sentiment --tasks labeling/tasks.yaml train.csv`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := env.NewLogger(cmd)
		name, _ := cmd.Flags().GetString("task")
		task := resolveTask(cmd, name)

		rows, err := dataset.LoadFile(args[0])
		if err != nil {
			errsystem.New(errsystem.ErrLoadDataset, err,
				errsystem.WithUserMessage("Unable to load dataset %s", args[0])).ShowErrorAndExit()
		}
		columns := dataset.Columns(rows)
		log.Debug("dataset %s has %s: %v", args[0], util.Pluralize(len(columns), "column", "columns"), columns)

		if err := tasks.ValidateDataset(task, columns); err != nil {
			errsystem.New(errsystem.ErrDatasetValidation, err,
				errsystem.WithTaskName(name),
				errsystem.WithAttributes(map[string]any{"dataset": args[0]})).ShowErrorAndExit()
		}
		tui.ShowSuccess("%s satisfies task %q (%s)", args[0], task.Name(), util.Pluralize(len(rows), "row", "rows"))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("task", "", "The task to validate against")
	validateCmd.MarkFlagRequired("task")
}
