package argilla

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainTask struct{ name string }

func (p *plainTask) Name() string { return p.name }

type exportingTask struct {
	plainTask
	*TaskExporter
}

func newExportingTask(spec ExportSpec) *exportingTask {
	return &exportingTask{
		plainTask:    plainTask{name: "rating"},
		TaskExporter: NewTaskExporter("rating", []string{"instruction", "response"}, []string{"rating"}, spec),
	}
}

func TestHelpersReportUnsupportedCapability(t *testing.T) {
	task := &plainTask{name: "sentiment"}
	row := map[string]any{"text": "x"}

	_, err := Fields(task, row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ToArgillaFields")
	assert.Contains(t, err.Error(), `task "sentiment"`)

	_, err = Questions(task, row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ToArgillaQuestions")

	_, err = BuildRecord(task, row)
	require.Error(t, err)
	var unsupported *UnsupportedError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "ToArgillaRecord", unsupported.Method)
}

func TestHelpersUseImplementedCapability(t *testing.T) {
	task := newExportingTask(ExportSpec{})
	row := map[string]any{"instruction": "write a haiku", "response": "...", "rating": 4}

	fields, err := Fields(task, row)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "instruction", fields[0].Name)
	assert.Equal(t, FieldTypeText, fields[0].Type)

	questions, err := Questions(task, row)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "rating", questions[0].Name)
	assert.Equal(t, QuestionTypeText, questions[0].Type)
}

func TestBuildRecordPairsFieldsAndSuggestions(t *testing.T) {
	task := newExportingTask(ExportSpec{
		Questions: []Question{{Name: "rating", Type: QuestionTypeRating, Values: []int{1, 2, 3, 4, 5}}},
	})
	row := map[string]any{"instruction": "write a haiku", "response": "leaves fall", "rating": 4}

	record, err := BuildRecord(task, row)
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "write a haiku", record.Fields["instruction"])
	assert.Equal(t, "leaves fall", record.Fields["response"])
	require.Len(t, record.Suggestions, 1)
	assert.Equal(t, "rating", record.Suggestions[0].QuestionName)
	assert.Equal(t, 4, record.Suggestions[0].Value)
	assert.Equal(t, "rating", record.Suggestions[0].Agent)
}

func TestBuildRecordSkipsAbsentSuggestions(t *testing.T) {
	task := newExportingTask(ExportSpec{})
	row := map[string]any{"instruction": "a", "response": "b"}

	record, err := BuildRecord(task, row)
	require.NoError(t, err)
	assert.Empty(t, record.Suggestions)
}

func TestBuildRecordMissingFieldColumn(t *testing.T) {
	task := newExportingTask(ExportSpec{})
	_, err := BuildRecord(task, map[string]any{"instruction": "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no column "response"`)
}

func TestTypedArgs(t *testing.T) {
	task := newExportingTask(ExportSpec{
		Fields: []FieldSpec{
			{Name: "instruction"},
			{Name: "responses", List: true},
		},
	})
	fieldArgs := task.ArgillaFieldsTypedArgs()
	assert.Equal(t, ArgString, fieldArgs["instruction"])
	assert.Equal(t, ArgList, fieldArgs["responses"])

	questionArgs := task.ArgillaQuestionsTypedArgs()
	assert.Equal(t, ArgList, questionArgs["rating"])
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "plain", stringify("plain"))
	assert.Equal(t, "a\nb", stringify([]string{"a", "b"}))
	assert.Equal(t, "a\n4", stringify([]any{"a", 4}))
	assert.Equal(t, "4.5", stringify(4.5))
}

func TestWriteRecords(t *testing.T) {
	records := []Record{
		{ID: "1", Fields: map[string]string{"text": "a"}},
		{ID: "2", Fields: map[string]string{"text": "b"}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, records))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var decoded Record
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &decoded))
	assert.Equal(t, "1", decoded.ID)
	assert.Equal(t, "a", decoded.Fields["text"])
}
