package errsystem

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type errorType struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errSystem struct {
	id         string
	code       errorType
	message    string
	err        error
	attributes map[string]any
}

type option func(*errSystem)

// New creates a new error.
func New(code errorType, err error, opts ...option) *errSystem {
	res := &errSystem{
		id:         uuid.New().String(),
		err:        err,
		code:       code,
		attributes: make(map[string]any),
	}
	tasksFile := viper.GetString("tasks_file")
	if tasksFile != "" {
		opts = append(opts, WithTasksFile(tasksFile))
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

func (e *errSystem) Error() string {
	return fmt.Sprintf("%s: %s", e.code.Code, e.err.Error())
}

// WithUserMessage adds a user-friendly message to the error.
func WithUserMessage(message string, args ...any) option {
	return func(e *errSystem) {
		e.message = fmt.Sprintf(message, args...)
	}
}

// WithAttributes adds additional metadata attributes to the error.
func WithAttributes(attributes map[string]any) option {
	return func(e *errSystem) {
		for k, v := range attributes {
			e.attributes[k] = v
		}
	}
}

// WithTasksFile adds the task definitions file to the error attributes.
func WithTasksFile(filename string) option {
	return func(e *errSystem) {
		e.attributes["tasks_file"] = filename
	}
}

// WithTaskName adds the task name to the error attributes.
func WithTaskName(name string) option {
	return func(e *errSystem) {
		e.attributes["task"] = name
	}
}

// WithContextMessage adds some internal context that can help with debugging.
func WithContextMessage(message string) option {
	return func(e *errSystem) {
		e.attributes["message"] = message
	}
}
