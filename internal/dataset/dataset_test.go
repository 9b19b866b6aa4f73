package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSONL(t *testing.T) {
	input := `{"text": "great", "label": "positive"}

{"text": "bad"}
`
	rows, err := ReadJSONL(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "great", rows[0]["text"])
	assert.Equal(t, "positive", rows[0]["label"])
	_, hasLabel := rows[1]["label"]
	assert.False(t, hasLabel)
}

func TestReadJSONLInvalidLine(t *testing.T) {
	_, err := ReadJSONL(strings.NewReader("{\"ok\": true}\nnot json\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadCSV(t *testing.T) {
	input := "text,label\ngreat,positive\nbad,negative\n"
	rows, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "great", rows[0]["text"])
	assert.Equal(t, "negative", rows[1]["label"])
}

func TestReadCSVEmpty(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLoadFilePicksFormat(t *testing.T) {
	dir := t.TempDir()

	jsonl := filepath.Join(dir, "data.jsonl")
	require.NoError(t, os.WriteFile(jsonl, []byte(`{"text": "a"}`+"\n"), 0644))
	rows, err := LoadFile(jsonl)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	csvFile := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(csvFile, []byte("text\na\n"), 0644))
	rows, err = LoadFile(csvFile)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	unknown := filepath.Join(dir, "data.parquet")
	require.NoError(t, os.WriteFile(unknown, []byte("x"), 0644))
	_, err = LoadFile(unknown)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported dataset format")
}

func TestColumns(t *testing.T) {
	rows := []Row{
		{"text": "a", "label": "x"},
		{"text": "b", "score": 1},
	}
	assert.Equal(t, []string{"label", "score", "text"}, Columns(rows))
	assert.Empty(t, Columns(nil))
}

func TestWriteJSONL(t *testing.T) {
	rows := []Row{{"text": "a"}, {"text": "b"}}
	var buf bytes.Buffer
	require.NoError(t, WriteJSONL(&buf, rows))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)

	back, err := ReadJSONL(&buf)
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, "a", back[0]["text"])
}
