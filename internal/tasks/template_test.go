package tasks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTemplateRequiresReference(t *testing.T) {
	def := Definition{Name: "sentiment", System: "sys"}
	_, err := loadTemplate(def, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoTemplate)
	assert.Contains(t, err.Error(), "sentiment")
}

func TestLoadTemplateInlineText(t *testing.T) {
	def := Definition{Name: "sentiment", TemplateText: "Classify: {{ .text }}"}
	tmpl, err := loadTemplate(def, nil)
	require.NoError(t, err)
	var out strings.Builder
	require.NoError(t, tmpl.Execute(&out, map[string]any{"text": "great movie"}))
	assert.Equal(t, "Classify: great movie", out.String())
}

func TestLoadTemplateFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sentiment.tmpl"), []byte("Text: {{ .text }}"), 0644))

	def := Definition{Name: "sentiment", Template: "sentiment.tmpl"}
	tmpl, err := loadTemplate(def, DirLoader(dir))
	require.NoError(t, err)
	var out strings.Builder
	require.NoError(t, tmpl.Execute(&out, map[string]any{"text": "ok"}))
	assert.Equal(t, "Text: ok", out.String())
}

func TestLoadTemplateRereadsOnEveryCall(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "sentiment.tmpl")
	require.NoError(t, os.WriteFile(filename, []byte("v1 {{ .text }}"), 0644))

	def := Definition{Name: "sentiment", Template: "sentiment.tmpl"}
	tmpl, err := loadTemplate(def, DirLoader(dir))
	require.NoError(t, err)
	var out strings.Builder
	require.NoError(t, tmpl.Execute(&out, map[string]any{"text": "x"}))
	assert.Equal(t, "v1 x", out.String())

	require.NoError(t, os.WriteFile(filename, []byte("v2 {{ .text }}"), 0644))
	tmpl, err = loadTemplate(def, DirLoader(dir))
	require.NoError(t, err)
	out.Reset()
	require.NoError(t, tmpl.Execute(&out, map[string]any{"text": "x"}))
	assert.Equal(t, "v2 x", out.String())
}

func TestLoadTemplateMissingFile(t *testing.T) {
	def := Definition{Name: "sentiment", Template: "nope.tmpl"}
	_, err := loadTemplate(def, DirLoader(t.TempDir()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.tmpl")
}

func TestEmbeddedStarterTemplate(t *testing.T) {
	buf, err := Embedded().Load("starter.tmpl")
	require.NoError(t, err)
	assert.Contains(t, string(buf), "{{ .input }}")
}
