package table

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// ReadOptions configures the spreadsheet reader.
type ReadOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex; XLSX only
}

// Read loads a spreadsheet into a Table. The format is chosen by file
// extension: .xlsx or .csv. The first row is the header.
func Read(path string, opts ReadOptions) (*Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, eris.Wrapf(ErrNotFound, "%s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readXLSX(path, opts)
	case ".csv":
		return readCSV(path)
	default:
		return nil, eris.Wrapf(ErrFormat, "%s (want .xlsx or .csv)", path)
	}
}

func readXLSX(path string, opts ReadOptions) (*Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "table: open xlsx")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	tbl := &Table{}
	for i, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}

		if i == 0 {
			tbl.Header = cells
			continue
		}
		tbl.Rows = append(tbl.Rows, cells)
	}

	if tbl.Header == nil {
		return nil, eris.Errorf("table: %s has no header row", path)
	}
	return tbl, nil
}

func getSheet(f *xlsx.File, opts ReadOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("table: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("table: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func readCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "table: open csv")
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // allow variable fields

	tbl := &Table{}
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "table: read csv row")
		}

		if first {
			first = false
			tbl.Header = record
			continue
		}
		tbl.Rows = append(tbl.Rows, record)
	}

	if tbl.Header == nil {
		return nil, eris.Errorf("table: %s has no header row", path)
	}
	return tbl, nil
}
