package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/agentuity/go-common/env"
	"github.com/agentuity/go-common/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ultralabel/cli/internal/argilla"
	"github.com/ultralabel/cli/internal/dataset"
	"github.com/ultralabel/cli/internal/errsystem"
	"github.com/ultralabel/cli/internal/util"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export labeled datasets to annotation tools",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var exportArgillaCmd = &cobra.Command{
	Use:   "argilla [dataset]",
	Short: "Export a labeled dataset as Argilla annotation records",
	Long: `Export a labeled dataset as Argilla annotation records.

The task must opt into the Argilla capability (an 'argilla' section in its
definition). Each row becomes one record pairing the task's input columns
with the model's suggested answers.

Examples:
  ultralabel export argilla --task sentiment -o records.jsonl labeled.jsonl
  ultralabel export argilla --task sentiment --push my-dataset --api-key $ARGILLA_API_KEY labeled.jsonl`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := env.NewLogger(cmd)
		name, _ := cmd.Flags().GetString("task")
		output, _ := cmd.Flags().GetString("output")
		push, _ := cmd.Flags().GetString("push")
		task := resolveTask(cmd, name)

		rows, err := dataset.LoadFile(args[0])
		if err != nil {
			errsystem.New(errsystem.ErrLoadDataset, err,
				errsystem.WithUserMessage("Unable to load dataset %s", args[0])).ShowErrorAndExit()
		}

		records := make([]argilla.Record, 0, len(rows))
		for _, row := range rows {
			record, err := argilla.BuildRecord(task, row)
			if err != nil {
				errsystem.New(errsystem.ErrArgillaExport, err,
					errsystem.WithTaskName(name)).ShowErrorAndExit()
			}
			records = append(records, record)
		}
		log.Debug("built %s for task %s", util.Pluralize(len(records), "record", "records"), name)

		if push != "" {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			apiURL, _ := cmd.Flags().GetString("url")
			if apiURL == "" {
				apiURL = viper.GetString("overrides.argilla_url")
			}
			apiKey, _ := cmd.Flags().GetString("api-key")
			client := argilla.NewClient(ctx, log, apiURL, apiKey)
			action := func() {
				err = client.PushRecords(push, records)
			}
			tui.ShowSpinner("pushing records ...", action)
			if err != nil {
				errsystem.New(errsystem.ErrApiRequest, err,
					errsystem.WithUserMessage("Unable to push records to %s", apiURL)).ShowErrorAndExit()
			}
			tui.ShowSuccess("Pushed %s to dataset %q on %s", util.Pluralize(len(records), "record", "records"), push, apiURL)
			return
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
		if err := argilla.WriteRecords(writer, records); err != nil {
			errsystem.New(errsystem.ErrWriteOutput, err).ShowErrorAndExit()
		}
		if output != "" {
			tui.ShowSuccess("Wrote %s to %s", util.Pluralize(len(records), "record", "records"), output)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportArgillaCmd)
	exportArgillaCmd.Flags().String("task", "", "The task whose export capability to use")
	exportArgillaCmd.Flags().StringP("output", "o", "", "Write records to a file instead of stdout")
	exportArgillaCmd.Flags().String("push", "", "Push records to the named dataset on an Argilla server")
	exportArgillaCmd.Flags().String("url", "", "The Argilla server URL (defaults to overrides.argilla_url)")
	exportArgillaCmd.Flags().String("api-key", "", "The Argilla API key")
}
