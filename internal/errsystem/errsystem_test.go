package errsystem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormat(t *testing.T) {
	err := New(ErrTaskNotFound, errors.New("no task named sentiment"))
	assert.Equal(t, "UL-0003: no task named sentiment", err.Error())
	assert.NotEmpty(t, err.id)
}

func TestOptions(t *testing.T) {
	err := New(ErrDatasetValidation, errors.New("boom"),
		WithTaskName("sentiment"),
		WithTasksFile("tasks.yaml"),
		WithUserMessage("The dataset is missing a column required by task %q", "sentiment"),
		WithAttributes(map[string]any{"dataset": "train.jsonl"}))
	assert.Equal(t, "sentiment", err.attributes["task"])
	assert.Equal(t, "tasks.yaml", err.attributes["tasks_file"])
	assert.Equal(t, "train.jsonl", err.attributes["dataset"])
	assert.Equal(t, `The dataset is missing a column required by task "sentiment"`, err.message)
}

func TestDisplayMessageFallsBackToCode(t *testing.T) {
	err := New(ErrLoadDataset, errors.New("open train.jsonl: no such file"))
	assert.Equal(t, ErrLoadDataset.Message, err.displayMessage())
}
