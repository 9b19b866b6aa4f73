package argilla

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// ExportSpec declares how a definition-driven task maps onto the Argilla
// schema. Fields default to the task's input columns when omitted.
type ExportSpec struct {
	Fields    []FieldSpec `yaml:"fields,omitempty" json:"fields,omitempty"`
	Questions []Question  `yaml:"questions,omitempty" json:"questions,omitempty"`
	Agent     string      `yaml:"agent,omitempty" json:"agent,omitempty"`
}

// FieldSpec binds one dataset column to an annotation field.
type FieldSpec struct {
	Name        string `yaml:"name" json:"name"`
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Column      string `yaml:"column,omitempty" json:"column,omitempty"`
	List        bool   `yaml:"list,omitempty" json:"list,omitempty"`
	UseMarkdown bool   `yaml:"use_markdown,omitempty" json:"use_markdown,omitempty"`
}

func (f FieldSpec) column() string {
	if f.Column != "" {
		return f.Column
	}
	return f.Name
}

// TaskExporter implements the export capability for definition-driven tasks.
// Field schemas come from the spec (or the task's input columns), question
// schemas from the spec, and records pair field values from the row with
// model suggestions taken from the task's output columns.
type TaskExporter struct {
	taskName string
	outputs  []string
	spec     ExportSpec
}

// NewTaskExporter builds the exporter for one task. inputs supply the
// default field set when the spec declares none.
func NewTaskExporter(taskName string, inputs, outputs []string, spec ExportSpec) *TaskExporter {
	if len(spec.Fields) == 0 {
		for _, name := range inputs {
			spec.Fields = append(spec.Fields, FieldSpec{Name: name})
		}
	}
	if spec.Agent == "" {
		spec.Agent = taskName
	}
	return &TaskExporter{taskName: taskName, outputs: outputs, spec: spec}
}

func (e *TaskExporter) ToArgillaFields(row map[string]any) ([]Field, error) {
	fields := make([]Field, 0, len(e.spec.Fields))
	for _, spec := range e.spec.Fields {
		if _, ok := row[spec.column()]; !ok {
			return nil, fmt.Errorf("dataset row has no column %q for field %q", spec.column(), spec.Name)
		}
		fields = append(fields, Field{
			Name:        spec.Name,
			Title:       spec.Title,
			Type:        FieldTypeText,
			Required:    true,
			UseMarkdown: spec.UseMarkdown,
		})
	}
	return fields, nil
}

func (e *TaskExporter) ToArgillaQuestions(row map[string]any) ([]Question, error) {
	if len(e.spec.Questions) == 0 {
		questions := make([]Question, 0, len(e.outputs))
		for _, name := range e.outputs {
			questions = append(questions, Question{
				Name:     name,
				Title:    name,
				Type:     QuestionTypeText,
				Required: true,
			})
		}
		return questions, nil
	}
	return e.spec.Questions, nil
}

func (e *TaskExporter) ToArgillaRecord(row map[string]any) (Record, error) {
	fields := make(map[string]string, len(e.spec.Fields))
	for _, spec := range e.spec.Fields {
		value, ok := row[spec.column()]
		if !ok {
			return Record{}, fmt.Errorf("dataset row has no column %q for field %q", spec.column(), spec.Name)
		}
		fields[spec.Name] = stringify(value)
	}
	record := Record{
		ID:     uuid.New().String(),
		Fields: fields,
	}
	questions, err := e.ToArgillaQuestions(row)
	if err != nil {
		return Record{}, err
	}
	for _, question := range questions {
		value, ok := row[question.Name]
		if !ok {
			continue
		}
		record.Suggestions = append(record.Suggestions, Suggestion{
			QuestionName: question.Name,
			Value:        value,
			Agent:        e.spec.Agent,
		})
	}
	return record, nil
}

func (e *TaskExporter) ArgillaFieldsTypedArgs() map[string]ArgKind {
	args := make(map[string]ArgKind, len(e.spec.Fields))
	for _, spec := range e.spec.Fields {
		kind := ArgString
		if spec.List {
			kind = ArgList
		}
		args[spec.column()] = kind
	}
	return args
}

func (e *TaskExporter) ArgillaQuestionsTypedArgs() map[string]ArgKind {
	args := make(map[string]ArgKind, len(e.outputs))
	for _, name := range e.outputs {
		args[name] = ArgList
	}
	return args
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, "\n")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, "\n")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// WriteRecords writes records as JSONL, one record per line.
func WriteRecords(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			return err
		}
	}
	return nil
}
