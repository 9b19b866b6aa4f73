package tasks

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ultralabel/cli/internal/argilla"
)

// Definition is the declarative description of a task as authored in a
// tasks.yaml file. A Definition is treated as immutable once loaded.
type Definition struct {
	Name         string      `yaml:"name" json:"name"`
	Description  string      `yaml:"description,omitempty" json:"description,omitempty"`
	System       string      `yaml:"system" json:"system"`
	Template     string      `yaml:"template,omitempty" json:"template,omitempty"`
	TemplateText string      `yaml:"template_text,omitempty" json:"template_text,omitempty"`
	Inputs       []string    `yaml:"inputs" json:"inputs"`
	Outputs      []string    `yaml:"outputs" json:"outputs"`
	Parser       *ParserSpec `yaml:"parser,omitempty" json:"parser,omitempty"`

	// Argilla opts the task into the annotation-tool export capability.
	Argilla *argilla.ExportSpec `yaml:"argilla,omitempty" json:"argilla,omitempty"`
}

// DefinitionsFile represents the full structure of a tasks.yaml file.
type DefinitionsFile struct {
	Tasks []Definition `yaml:"tasks" json:"tasks"`
}

// LoadDefinitionsFile parses a tasks.yaml file and validates that every
// definition carries the fields a labeling run needs.
func LoadDefinitionsFile(filename string) (*DefinitionsFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	var defs DefinitionsFile
	if err := yaml.Unmarshal(content, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for _, def := range defs.Tasks {
		if err := def.Validate(); err != nil {
			return nil, err
		}
	}
	return &defs, nil
}

// Find returns the definition with the given name, if present.
func (f *DefinitionsFile) Find(name string) (Definition, bool) {
	for _, def := range f.Tasks {
		if def.Name == name {
			return def, true
		}
	}
	return Definition{}, false
}

// Names returns the task names in file order.
func (f *DefinitionsFile) Names() []string {
	names := make([]string, 0, len(f.Tasks))
	for _, def := range f.Tasks {
		names = append(names, def.Name)
	}
	return names
}

// Validate checks the definition for the fields every task must declare.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("task missing required 'name' field")
	}
	if strings.TrimSpace(d.System) == "" {
		return fmt.Errorf("task '%s' missing required 'system' field", d.Name)
	}
	if len(d.Inputs) == 0 {
		return fmt.Errorf("task '%s' missing required 'inputs' field", d.Name)
	}
	if len(d.Outputs) == 0 {
		return fmt.Errorf("task '%s' missing required 'outputs' field", d.Name)
	}
	return nil
}

// Option customizes how a Definition is resolved into a runnable Task.
type Option func(*defTask)

// WithLoader overrides the template loader used to resolve the definition's
// template reference.
func WithLoader(loader Loader) Option {
	return func(t *defTask) {
		t.loader = loader
	}
}

// WithPromptFunc replaces template rendering with a custom prompt builder.
func WithPromptFunc(fn func(args map[string]any) (string, error)) Option {
	return func(t *defTask) {
		t.prompt = fn
	}
}

// WithParseFunc replaces the parser declared in the definition.
func WithParseFunc(fn func(raw string) (map[string]any, error)) Option {
	return func(t *defTask) {
		t.parse = fn
	}
}

// Resolve turns a definition into a runnable Task. The definition's parser
// spec supplies the parse behavior unless WithParseFunc overrides it; prompt
// generation renders the definition's template unless WithPromptFunc
// overrides it.
func Resolve(def Definition, opts ...Option) (Task, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	t := &defTask{def: def}
	for _, opt := range opts {
		opt(t)
	}
	if t.parse == nil {
		if def.Parser == nil {
			return nil, fmt.Errorf("task '%s' missing required 'parser' field", def.Name)
		}
		fn, err := def.Parser.Func(def.Outputs)
		if err != nil {
			return nil, fmt.Errorf("task '%s': %w", def.Name, err)
		}
		t.parse = fn
	}
	if t.prompt == nil {
		t.prompt = t.renderTemplate
	}
	if def.Argilla != nil {
		return &exportTask{
			defTask:      t,
			TaskExporter: argilla.NewTaskExporter(def.Name, def.Inputs, def.Outputs, *def.Argilla),
		}, nil
	}
	return t, nil
}

// exportTask is a definition-driven task whose definition opted into the
// Argilla export capability.
type exportTask struct {
	*defTask
	*argilla.TaskExporter
}

// defTask is a Task assembled from a Definition plus function slots.
type defTask struct {
	def    Definition
	loader Loader
	prompt func(args map[string]any) (string, error)
	parse  func(raw string) (map[string]any, error)
}

func (t *defTask) Name() string {
	return t.def.Name
}

func (t *defTask) SystemPrompt() string {
	return t.def.System
}

func (t *defTask) InputArgNames() []string {
	return t.def.Inputs
}

func (t *defTask) OutputArgNames() []string {
	return t.def.Outputs
}

func (t *defTask) GeneratePrompt(args map[string]any) (string, error) {
	for _, name := range t.def.Inputs {
		if _, ok := args[name]; !ok {
			return "", fmt.Errorf("task %q: missing prompt argument %q", t.def.Name, name)
		}
	}
	return t.prompt(args)
}

func (t *defTask) Parse(raw string) (map[string]any, error) {
	return t.parse(raw)
}

func (t *defTask) renderTemplate(args map[string]any) (string, error) {
	tmpl, err := loadTemplate(t.def, t.loader)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	if err := tmpl.Execute(&out, args); err != nil {
		return "", fmt.Errorf("failed to render template for task %q: %w", t.def.Name, err)
	}
	return out.String(), nil
}
