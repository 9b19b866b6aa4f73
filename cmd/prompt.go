package cmd

import (
	"fmt"
	"os"

	"github.com/agentuity/go-common/env"
	"github.com/agentuity/go-common/tui"
	"github.com/spf13/cobra"

	"github.com/ultralabel/cli/internal/dataset"
	"github.com/ultralabel/cli/internal/errsystem"
	"github.com/ultralabel/cli/internal/pipeline"
	"github.com/ultralabel/cli/internal/tasks"
	"github.com/ultralabel/cli/internal/util"
)

var promptCmd = &cobra.Command{
	Use:   "prompt [dataset]",
	Short: "Render the task's prompts for every dataset row",
	Long: `Render the task's prompts for every dataset row.

Writes one JSON object per row with the system prompt and the rendered user
prompt, ready to hand to a model runner.

Examples:
  ultralabel prompt --task sentiment train.jsonl
  ultralabel prompt --task sentiment --limit 10 -o requests.jsonl train.jsonl`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := env.NewLogger(cmd)
		name, _ := cmd.Flags().GetString("task")
		output, _ := cmd.Flags().GetString("output")
		limit, _ := cmd.Flags().GetInt("limit")
		task := resolveTask(cmd, name)

		rows, err := dataset.LoadFile(args[0])
		if err != nil {
			errsystem.New(errsystem.ErrLoadDataset, err,
				errsystem.WithUserMessage("Unable to load dataset %s", args[0])).ShowErrorAndExit()
		}
		if err := tasks.ValidateDataset(task, dataset.Columns(rows)); err != nil {
			errsystem.New(errsystem.ErrDatasetValidation, err,
				errsystem.WithTaskName(name)).ShowErrorAndExit()
		}
		if limit > 0 && limit < len(rows) {
			rows = rows[:limit]
		}

		requests := make([]dataset.Row, 0, len(rows))
		for i, row := range rows {
			prompt, err := task.GeneratePrompt(pipeline.PromptArgs(task, row))
			if err != nil {
				errsystem.New(errsystem.ErrRenderPrompt, fmt.Errorf("row %d: %w", i, err),
					errsystem.WithTaskName(name)).ShowErrorAndExit()
			}
			requests = append(requests, dataset.Row{
				"system": task.SystemPrompt(),
				"prompt": prompt,
			})
		}
		log.Debug("rendered %s for task %s", util.Pluralize(len(requests), "prompt", "prompts"), name)

		if output == "" {
			if err := dataset.WriteJSONL(os.Stdout, requests); err != nil {
				errsystem.New(errsystem.ErrWriteOutput, err).ShowErrorAndExit()
			}
			return
		}
		of, err := os.Create(output)
		if err != nil {
			errsystem.New(errsystem.ErrWriteOutput, err,
				errsystem.WithUserMessage("Unable to create %s", output)).ShowErrorAndExit()
		}
		defer of.Close()
		if err := dataset.WriteJSONL(of, requests); err != nil {
			errsystem.New(errsystem.ErrWriteOutput, err).ShowErrorAndExit()
		}
		tui.ShowSuccess("Wrote %s to %s", util.Pluralize(len(requests), "prompt", "prompts"), output)
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
	promptCmd.Flags().String("task", "", "The task to render prompts for")
	promptCmd.Flags().StringP("output", "o", "", "Write the prompts to a file instead of stdout")
	promptCmd.Flags().Int("limit", 0, "Render at most this many rows")
	promptCmd.MarkFlagRequired("task")
}
