package tasks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultralabel/cli/internal/argilla"
)

const testTasksYaml = `tasks:
  - name: sentiment
    description: Classify the sentiment of a text
    system: You are a sentiment classifier.
    template_text: "Classify the sentiment of: {{ .text }}"
    inputs: [text]
    outputs: [label]
    parser:
      format: json
  - name: rating
    system: You rate responses.
    template_text: "Rate this response: {{ .response }}"
    inputs: [response]
    outputs: [rating, rationale]
    parser:
      format: regexp
      pattern: 'Rating: (?P<rating>\d+)\nRationale: (?P<rationale>.+)'
    argilla:
      questions:
        - name: rating
          type: rating
          values: [1, 2, 3, 4, 5]
`

func writeTasksFile(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "tasks.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0644))
	return filename
}

func TestLoadDefinitionsFile(t *testing.T) {
	defs, err := LoadDefinitionsFile(writeTasksFile(t, testTasksYaml))
	require.NoError(t, err)
	require.Len(t, defs.Tasks, 2)
	assert.Equal(t, []string{"sentiment", "rating"}, defs.Names())

	def, found := defs.Find("sentiment")
	require.True(t, found)
	assert.Equal(t, []string{"text"}, def.Inputs)
	assert.Equal(t, "json", def.Parser.Format)

	_, found = defs.Find("missing")
	assert.False(t, found)
}

func TestLoadDefinitionsFileValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "tasks:\n  - system: sys\n    inputs: [a]\n    outputs: [b]\n",
			wantErr: "missing required 'name' field",
		},
		{
			name:    "missing system",
			content: "tasks:\n  - name: x\n    inputs: [a]\n    outputs: [b]\n",
			wantErr: "task 'x' missing required 'system' field",
		},
		{
			name:    "missing inputs",
			content: "tasks:\n  - name: x\n    system: sys\n    outputs: [b]\n",
			wantErr: "task 'x' missing required 'inputs' field",
		},
		{
			name:    "missing outputs",
			content: "tasks:\n  - name: x\n    system: sys\n    inputs: [a]\n",
			wantErr: "task 'x' missing required 'outputs' field",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDefinitionsFile(writeTasksFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolveRendersTemplate(t *testing.T) {
	defs, err := LoadDefinitionsFile(writeTasksFile(t, testTasksYaml))
	require.NoError(t, err)
	def, _ := defs.Find("sentiment")

	task, err := Resolve(def)
	require.NoError(t, err)
	assert.Equal(t, "sentiment", task.Name())
	assert.Equal(t, "You are a sentiment classifier.", task.SystemPrompt())

	prompt, err := task.GeneratePrompt(map[string]any{"text": "loved it"})
	require.NoError(t, err)
	assert.Equal(t, "Classify the sentiment of: loved it", prompt)
}

func TestResolveMissingPromptArgument(t *testing.T) {
	defs, err := LoadDefinitionsFile(writeTasksFile(t, testTasksYaml))
	require.NoError(t, err)
	def, _ := defs.Find("sentiment")
	task, err := Resolve(def)
	require.NoError(t, err)

	_, err = task.GeneratePrompt(map[string]any{"other": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing prompt argument "text"`)
}

func TestResolveRequiresParser(t *testing.T) {
	def := Definition{
		Name:         "bare",
		System:       "sys",
		TemplateText: "{{ .a }}",
		Inputs:       []string{"a"},
		Outputs:      []string{"b"},
	}
	_, err := Resolve(def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required 'parser' field")
}

func TestResolveWithFunctionSlots(t *testing.T) {
	def := Definition{
		Name:    "custom",
		System:  "sys",
		Inputs:  []string{"text"},
		Outputs: []string{"label"},
	}
	task, err := Resolve(def,
		WithPromptFunc(func(args map[string]any) (string, error) {
			return "custom prompt", nil
		}),
		WithParseFunc(func(raw string) (map[string]any, error) {
			return map[string]any{"label": raw}, nil
		}))
	require.NoError(t, err)

	prompt, err := task.GeneratePrompt(map[string]any{"text": "x"})
	require.NoError(t, err)
	assert.Equal(t, "custom prompt", prompt)

	parsed, err := task.Parse("positive")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"label": "positive"}, parsed)
}

func TestResolveArgillaCapability(t *testing.T) {
	defs, err := LoadDefinitionsFile(writeTasksFile(t, testTasksYaml))
	require.NoError(t, err)

	// rating opted in, sentiment did not
	ratingDef, _ := defs.Find("rating")
	rating, err := Resolve(ratingDef)
	require.NoError(t, err)
	_, ok := rating.(argilla.RecordExporter)
	assert.True(t, ok)

	sentimentDef, _ := defs.Find("sentiment")
	sentiment, err := Resolve(sentimentDef)
	require.NoError(t, err)
	_, ok = sentiment.(argilla.RecordExporter)
	assert.False(t, ok)

	_, err = argilla.BuildRecord(sentiment, map[string]any{"text": "x"})
	require.Error(t, err)
	var unsupported *argilla.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "ToArgillaRecord", unsupported.Method)
}
