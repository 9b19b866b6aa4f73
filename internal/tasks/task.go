package tasks

import (
	"fmt"

	"github.com/agentuity/go-common/logger"
)

// Task is the unit of work in a labeling run. A task knows how to turn a
// dataset row into a model-facing prompt and how to turn the raw model output
// back into structured fields.
//
// Tasks are value objects: once constructed, the prompt and parsing behavior
// never changes for the lifetime of a run.
type Task interface {
	// Name identifies the task in definitions files and CLI output.
	Name() string

	// SystemPrompt returns the system message sent with every request.
	SystemPrompt() string

	// GeneratePrompt renders the model-facing prompt from named arguments.
	// The argument keys correspond to InputArgNames.
	GeneratePrompt(args map[string]any) (string, error)

	// Parse converts raw model output into a mapping keyed by
	// OutputArgNames. Implementations should return an error for anything
	// they cannot fully parse; there are no partial results.
	Parse(raw string) (map[string]any, error)

	// InputArgNames declares which dataset columns the task consumes.
	InputArgNames() []string

	// OutputArgNames declares which fields the task produces.
	OutputArgNames() []string
}

// ParseOutput runs the task's parser over raw model output, degrading any
// failure (error or panic) to an empty mapping. Malformed model output must
// never crash a labeling run, so the error is logged at debug level and
// otherwise discarded.
func ParseOutput(log logger.Logger, task Task, raw string) (out map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			log.Debug("task %s: discarding panic from output parser: %v", task.Name(), r)
			out = map[string]any{}
		}
	}()
	parsed, err := task.Parse(raw)
	if err != nil {
		log.Debug("task %s: discarding output parse error: %s", task.Name(), err)
		return map[string]any{}
	}
	if parsed == nil {
		return map[string]any{}
	}
	return parsed
}

// MissingColumnError is returned by ValidateDataset when a required input
// column is absent from the dataset.
type MissingColumnError struct {
	Task   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("task %q expects a column named %q in the provided dataset, but it was not found", e.Task, e.Column)
}

// ValidateDataset checks that every input argument the task declares is
// present in the dataset's column set. It fails fast on the first missing
// column and is intended to run once before any model calls are made.
func ValidateDataset(task Task, columns []string) error {
	have := make(map[string]bool, len(columns))
	for _, name := range columns {
		have[name] = true
	}
	for _, name := range task.InputArgNames() {
		if !have[name] {
			return &MissingColumnError{Task: task.Name(), Column: name}
		}
	}
	return nil
}
