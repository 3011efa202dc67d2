package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVWriter_WriteSimpleCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	w := NewCSVWriter(nil)
	err := w.WriteSimpleCSV(path, []string{"a", "b"}, [][]string{
		{"1", "2"},
		{"3", "4"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"), "expected UTF-8 BOM prefix")

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\xEF\xBB\xBF")))
	records, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}}, records)
}

func TestCSVWriter_CreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deep", "out.csv")

	w := NewCSVWriter(nil)
	err := w.WriteSimpleCSV(path, []string{"x"}, [][]string{{"1"}})
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestCSVWriter_Append(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	w := NewCSVWriter(nil)
	require.NoError(t, w.WriteCSV(path, WriteOptions{
		Headers: []string{"a"},
		Records: [][]string{{"1"}},
	}))
	require.NoError(t, w.WriteCSV(path, WriteOptions{
		Records: [][]string{{"2"}},
		Append:  true,
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	reader := csv.NewReader(strings.NewReader(string(data)))
	records, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {"1"}, {"2"}}, records)
}

func TestStreamWriter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stream.csv")

	w := NewCSVWriter(nil)
	sw, err := w.CreateStreamWriter(path, []string{"id", "value"})
	require.NoError(t, err)

	for _, rec := range [][]string{{"1", "a"}, {"2", "b"}, {"3", "c"}} {
		require.NoError(t, sw.WriteRecord(rec))
	}
	require.NoError(t, sw.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"))

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\xEF\xBB\xBF")))
	records, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 4)
	assert.Equal(t, []string{"id", "value"}, records[0])
	assert.Equal(t, []string{"3", "c"}, records[3])
}
