package tasks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

// ErrNoTemplate is returned when a task definition that relies on template
// rendering was constructed without a template reference.
var ErrNoTemplate = errors.New("task definition must provide a template")

// Loader resolves a template reference into its source text. Template
// sources are treated as read-only configuration.
type Loader interface {
	Load(name string) ([]byte, error)
}

// DirLoader resolves template references against a filesystem directory.
type DirLoader string

func (d DirLoader) Load(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(string(d), name))
}

// loadTemplate resolves the definition's template into a parsed template.
// Inline template text wins over a template reference. The source is read
// through the loader on every call so edits to a template file are picked up
// without restarting; nothing is cached.
func loadTemplate(def Definition, loader Loader) (*template.Template, error) {
	name := def.Name
	if name == "" {
		name = "task"
	}
	if def.TemplateText != "" {
		return template.New(name).Option("missingkey=error").Parse(def.TemplateText)
	}
	if def.Template == "" {
		return nil, fmt.Errorf("task %q: %w", def.Name, ErrNoTemplate)
	}
	if loader == nil {
		loader = Embedded()
	}
	buf, err := loader.Load(def.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to load template %s: %w", def.Template, err)
	}
	return template.New(name).Option("missingkey=error").Parse(string(buf))
}
