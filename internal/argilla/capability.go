package argilla

import (
	"fmt"
)

// Export to Argilla is an optional capability: a task opts in by implementing
// one or more of the exporter interfaces below. The package-level helpers
// probe a task for the capability and return an UnsupportedError when it is
// absent, so "feature unsupported by this task" is distinguishable from an
// export that legitimately produced nothing.

// Task is the minimal task surface the export helpers need.
type Task interface {
	Name() string
}

// FieldsExporter produces the field schema for one dataset row.
type FieldsExporter interface {
	ToArgillaFields(row map[string]any) ([]Field, error)
}

// QuestionsExporter produces the question schema for one dataset row.
type QuestionsExporter interface {
	ToArgillaQuestions(row map[string]any) ([]Question, error)
}

// RecordExporter produces one exportable annotation record for a row.
type RecordExporter interface {
	ToArgillaRecord(row map[string]any) (Record, error)
}

// ArgKind classifies how a typed argument feeds the export schema.
type ArgKind string

const (
	ArgString ArgKind = "string"
	ArgList   ArgKind = "list"
)

// FieldsTypedArgs is implemented alongside FieldsExporter to describe the
// argument types the field export consumes.
type FieldsTypedArgs interface {
	ArgillaFieldsTypedArgs() map[string]ArgKind
}

// QuestionsTypedArgs is implemented alongside QuestionsExporter to describe
// the argument types the question export consumes.
type QuestionsTypedArgs interface {
	ArgillaQuestionsTypedArgs() map[string]ArgKind
}

// UnsupportedError indicates a task never implemented an export method.
type UnsupportedError struct {
	Method string
	Task   string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("`%s` is not implemented by task %q, if you want to export your dataset as an Argilla dataset you will need to implement this method", e.Method, e.Task)
}

// Fields asks the task for the field schema of one row, or reports the
// capability as unsupported.
func Fields(task Task, row map[string]any) ([]Field, error) {
	if exporter, ok := task.(FieldsExporter); ok {
		return exporter.ToArgillaFields(row)
	}
	return nil, &UnsupportedError{Method: "ToArgillaFields", Task: task.Name()}
}

// Questions asks the task for the question schema of one row, or reports the
// capability as unsupported.
func Questions(task Task, row map[string]any) ([]Question, error) {
	if exporter, ok := task.(QuestionsExporter); ok {
		return exporter.ToArgillaQuestions(row)
	}
	return nil, &UnsupportedError{Method: "ToArgillaQuestions", Task: task.Name()}
}

// BuildRecord asks the task for one annotation record, or reports the
// capability as unsupported.
func BuildRecord(task Task, row map[string]any) (Record, error) {
	if exporter, ok := task.(RecordExporter); ok {
		return exporter.ToArgillaRecord(row)
	}
	return Record{}, &UnsupportedError{Method: "ToArgillaRecord", Task: task.Name()}
}
