package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	errs "xplore/pkg/errors"
)

// Table is an in-memory tabular dataset read back from disk
type Table struct {
	Header []string
	Rows   []*Record
}

// Column returns the values of one column across all rows. Rows that do
// not carry the column yield an empty string.
func (t *Table) Column(name string) ([]string, error) {
	found := false
	for _, h := range t.Header {
		if h == name {
			found = true
			break
		}
	}
	if !found {
		return nil, errs.Newf(errs.ErrorTypeInvalidParameter, "column %q not present in table", name)
	}

	values := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		v, _ := row.Get(name)
		values = append(values, v)
	}
	return values, nil
}

// WriteCSV writes records to path as CSV, overwriting any existing file.
// The header is the first-seen union of all record fields; cells a record
// does not carry are written empty.
func WriteCSV(path string, records []*Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := UnionFields(records)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := make([]string, len(header))
	for _, record := range records {
		for i, field := range header {
			v, _ := record.Get(field)
			row[i] = v
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return file.Close()
}

// ReadTable reads a tabular file back into memory. CSV and XLSX are
// supported; the format is chosen by file extension, and for workbooks
// the first sheet is read.
func ReadTable(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".xlsx":
		return readXLSX(path)
	default:
		return nil, errs.Newf(errs.ErrorTypeInvalidParameter, "unsupported table format %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}

func readCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errs.Newf(errs.ErrorTypeParsing, "reading %s: %v", path, err)
	}

	return tableFromRows(rows), nil
}

func readXLSX(path string) (*Table, error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errs.Newf(errs.ErrorTypeParsing, "opening %s: %v", path, err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, errs.Newf(errs.ErrorTypeParsing, "%s has no sheets", path)
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, errs.Newf(errs.ErrorTypeParsing, "reading sheet %q: %v", sheets[0], err)
	}

	return tableFromRows(rows), nil
}

func tableFromRows(rows [][]string) *Table {
	table := &Table{}
	if len(rows) == 0 {
		return table
	}

	table.Header = rows[0]
	for _, raw := range rows[1:] {
		record := NewRecord()
		for i, field := range table.Header {
			value := ""
			if i < len(raw) {
				value = raw[i]
			}
			record.Set(field, value)
		}
		table.Rows = append(table.Rows, record)
	}
	return table
}
