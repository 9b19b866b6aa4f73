package argilla

// Wire shapes for the Argilla feedback dataset schema. The CLI only produces
// these values; the annotation tool owns their semantics.

type FieldType string

const (
	FieldTypeText FieldType = "text"
)

// Field describes one field shown to annotators for a record.
type Field struct {
	Name        string    `json:"name" yaml:"name"`
	Title       string    `json:"title,omitempty" yaml:"title,omitempty"`
	Type        FieldType `json:"type" yaml:"type"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	UseMarkdown bool      `json:"use_markdown,omitempty" yaml:"use_markdown,omitempty"`
}

type QuestionType string

const (
	QuestionTypeText   QuestionType = "text"
	QuestionTypeRating QuestionType = "rating"
	QuestionTypeLabel  QuestionType = "label_selection"
)

// Question describes one question annotators answer for a record.
type Question struct {
	Name        string       `json:"name" yaml:"name"`
	Title       string       `json:"title,omitempty" yaml:"title,omitempty"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Type        QuestionType `json:"type" yaml:"type"`
	Required    bool         `json:"required,omitempty" yaml:"required,omitempty"`
	Labels      []string     `json:"labels,omitempty" yaml:"labels,omitempty"`
	Values      []int        `json:"values,omitempty" yaml:"values,omitempty"`
}

// Suggestion is a model-provided answer attached to a record, shown to the
// annotator as a pre-filled response.
type Suggestion struct {
	QuestionName string `json:"question_name" yaml:"question_name"`
	Value        any    `json:"value" yaml:"value"`
	Agent        string `json:"agent,omitempty" yaml:"agent,omitempty"`
}

// Record is one exportable annotation record.
type Record struct {
	ID          string            `json:"id,omitempty" yaml:"id,omitempty"`
	Fields      map[string]string `json:"fields" yaml:"fields"`
	Suggestions []Suggestion      `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
	Metadata    map[string]any    `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	ExternalID  string            `json:"external_id,omitempty" yaml:"external_id,omitempty"`
}
