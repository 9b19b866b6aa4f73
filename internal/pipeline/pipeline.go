package pipeline

import (
	"context"
	"fmt"

	"github.com/agentuity/go-common/logger"
	"github.com/ultralabel/cli/internal/dataset"
	"github.com/ultralabel/cli/internal/tasks"
)

// Completer obtains one raw completion from a language model. The CLI never
// performs inference itself; callers supply the implementation.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, system, prompt string) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, system, prompt string) (string, error) {
	return f(ctx, system, prompt)
}

// Run labels a dataset with one task: it validates the dataset's columns
// once, renders a prompt per row, obtains a completion, and merges the
// parsed output fields into a copy of the row. Completer errors abort the
// run; parse failures degrade to empty fields for that row.
func Run(ctx context.Context, log logger.Logger, task tasks.Task, rows []dataset.Row, completer Completer) ([]dataset.Row, error) {
	if err := tasks.ValidateDataset(task, dataset.Columns(rows)); err != nil {
		return nil, err
	}
	out := make([]dataset.Row, 0, len(rows))
	for i, row := range rows {
		prompt, err := task.GeneratePrompt(PromptArgs(task, row))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		raw, err := completer.Complete(ctx, task.SystemPrompt(), prompt)
		if err != nil {
			return nil, fmt.Errorf("row %d: completion failed: %w", i, err)
		}
		parsed := tasks.ParseOutput(log, task, raw)
		if len(parsed) == 0 {
			log.Warn("row %d: no fields parsed from model output", i)
		}
		labeled := make(dataset.Row, len(row)+len(parsed))
		for k, v := range row {
			labeled[k] = v
		}
		for k, v := range parsed {
			labeled[k] = v
		}
		out = append(out, labeled)
	}
	return out, nil
}

// PromptArgs projects a row onto the task's declared input arguments.
func PromptArgs(task tasks.Task, row dataset.Row) map[string]any {
	args := make(map[string]any, len(task.InputArgNames()))
	for _, name := range task.InputArgNames() {
		if value, ok := row[name]; ok {
			args[name] = value
		}
	}
	return args
}
