package cmd

import (
	"fmt"
	"os"

	"github.com/agentuity/go-common/env"
	"github.com/agentuity/go-common/tui"
	"github.com/spf13/cobra"

	"github.com/ultralabel/cli/internal/dataset"
	"github.com/ultralabel/cli/internal/errsystem"
	"github.com/ultralabel/cli/internal/tasks"
	"github.com/ultralabel/cli/internal/util"
)

var parseCmd = &cobra.Command{
	Use:   "parse [completions]",
	Short: "Parse raw model completions into the task's output fields",
	Long: `Parse raw model completions into the task's output fields.

Reads one JSON object per line, runs the task's parser over the completion
text and writes the parsed fields back onto each row. Rows whose completion
cannot be parsed come back with no parsed fields rather than failing the run.

Examples:
  ultralabel parse --task sentiment completions.jsonl
  ultralabel parse --task sentiment --field response -o labeled.jsonl completions.jsonl`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := env.NewLogger(cmd)
		name, _ := cmd.Flags().GetString("task")
		field, _ := cmd.Flags().GetString("field")
		output, _ := cmd.Flags().GetString("output")
		task := resolveTask(cmd, name)

		rows, err := dataset.LoadFile(args[0])
		if err != nil {
			errsystem.New(errsystem.ErrLoadDataset, err,
				errsystem.WithUserMessage("Unable to load completions from %s", args[0])).ShowErrorAndExit()
		}

		var parsed, empty int
		labeled := make([]dataset.Row, 0, len(rows))
		for i, row := range rows {
			raw, ok := row[field].(string)
			if !ok {
				errsystem.New(errsystem.ErrLoadDataset,
					fmt.Errorf("row %d has no string field %q", i, field),
					errsystem.WithUserMessage("Row %d has no completion text under %q; use --field to pick the right one", i, field)).ShowErrorAndExit()
			}
			fields := tasks.ParseOutput(log, task, raw)
			if len(fields) == 0 {
				empty++
			} else {
				parsed++
			}
			out := make(dataset.Row, len(row)+len(fields))
			for k, v := range row {
				out[k] = v
			}
			for k, v := range fields {
				out[k] = v
			}
			labeled = append(labeled, out)
		}

		writer := os.Stdout
		if output != "" {
			of, err := os.Create(output)
			if err != nil {
				errsystem.New(errsystem.ErrWriteOutput, err,
					errsystem.WithUserMessage("Unable to create %s", output)).ShowErrorAndExit()
			}
			defer of.Close()
			writer = of
		}
		if err := dataset.WriteJSONL(writer, labeled); err != nil {
			errsystem.New(errsystem.ErrWriteOutput, err).ShowErrorAndExit()
		}
		if output != "" {
			tui.ShowSuccess("Parsed %s (%d empty) into %s", util.Pluralize(parsed, "completion", "completions"), empty, output)
		} else if empty > 0 {
			log.Warn("%s produced no parsed fields", util.Pluralize(empty, "completion", "completions"))
		}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().String("task", "", "The task whose parser to run")
	parseCmd.Flags().String("field", "output", "The row field holding the raw completion text")
	parseCmd.Flags().StringP("output", "o", "", "Write the labeled rows to a file instead of stdout")
	parseCmd.MarkFlagRequired("task")
}
