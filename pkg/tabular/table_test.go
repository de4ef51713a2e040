package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	errs "xplore/pkg/errors"
)

func TestRecordPreservesInsertionOrder(t *testing.T) {
	record := NewRecord().
		Set("c", "3").
		Set("a", "1").
		Set("b", "2")

	assert.Equal(t, []string{"c", "a", "b"}, record.Fields())

	record.Set("a", "overwritten")
	assert.Equal(t, []string{"c", "a", "b"}, record.Fields(), "overwriting must not move a field")

	v, ok := record.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "overwritten", v)
}

func TestUnionFieldsFirstSeenOrder(t *testing.T) {
	records := []*Record{
		NewRecord().Set("id", "1").Set("name", "a"),
		NewRecord().Set("id", "2").Set("extra", "x"),
		NewRecord().Set("name", "c").Set("id", "3"),
	}

	assert.Equal(t, []string{"id", "name", "extra"}, UnionFields(records))
}

func TestWriteCSVAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	records := []*Record{
		NewRecord().Set("id", "1").Set("text", "hello, world"),
		NewRecord().Set("id", "2").Set("lang", "en"),
	}
	require.NoError(t, WriteCSV(path, records))

	table, err := ReadTable(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "text", "lang"}, table.Header)
	require.Len(t, table.Rows, 2)

	text, _ := table.Rows[0].Get("text")
	assert.Equal(t, "hello, world", text, "quoted cells must round-trip")

	missing, ok := table.Rows[1].Get("text")
	assert.True(t, ok)
	assert.Equal(t, "", missing, "absent cells are written empty")
}

func TestWriteCSVOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, WriteCSV(path, []*Record{NewRecord().Set("id", "old")}))
	require.NoError(t, WriteCSV(path, []*Record{NewRecord().Set("id", "new")}))

	table, err := ReadTable(path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	v, _ := table.Rows[0].Get("id")
	assert.Equal(t, "new", v)
}

func TestWriteCSVCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "out.csv")
	require.NoError(t, WriteCSV(path, []*Record{NewRecord().Set("id", "1")}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestReadTableXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handles.xlsx")

	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	require.NoError(t, workbook.SetSheetRow(sheet, "A1", &[]interface{}{"id", "username"}))
	require.NoError(t, workbook.SetSheetRow(sheet, "A2", &[]interface{}{"101", "alice"}))
	require.NoError(t, workbook.SetSheetRow(sheet, "A3", &[]interface{}{"102", "bob"}))
	require.NoError(t, workbook.SaveAs(path))
	require.NoError(t, workbook.Close())

	table, err := ReadTable(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "username"}, table.Header)
	ids, err := table.Column("id")
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "102"}, ids)
}

func TestReadTableUnsupportedExtension(t *testing.T) {
	_, err := ReadTable("data.parquet")
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeInvalidParameter))
}

func TestColumnMissing(t *testing.T) {
	table := &Table{Header: []string{"id"}}
	_, err := table.Column("nope")
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeInvalidParameter))
}
