package table

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Write serializes the table to path, choosing the format by extension.
// An existing file at path is overwritten.
func Write(tbl *Table, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return writeXLSX(tbl, path)
	case ".csv":
		return writeCSV(tbl, path)
	default:
		return eris.Wrapf(ErrFormat, "%s (want .xlsx or .csv)", path)
	}
}

func writeXLSX(tbl *Table, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	if err != nil {
		return eris.Wrap(err, "table: add sheet")
	}

	writeRow := func(cells []string) {
		row := sheet.AddRow()
		for _, v := range cells {
			row.AddCell().SetString(v)
		}
	}

	writeRow(tbl.Header)
	for _, r := range tbl.Rows {
		writeRow(r)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(ErrWrite, "save xlsx %s: %v", path, err)
	}
	return nil
}

func writeCSV(tbl *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(ErrWrite, "create %s: %v", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(tbl.Header); err != nil {
		_ = f.Close()
		return eris.Wrapf(ErrWrite, "write header %s: %v", path, err)
	}
	for _, r := range tbl.Rows {
		if err := w.Write(r); err != nil {
			_ = f.Close()
			return eris.Wrapf(ErrWrite, "write row %s: %v", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return eris.Wrapf(ErrWrite, "flush %s: %v", path, err)
	}

	if err := f.Close(); err != nil {
		return eris.Wrapf(ErrWrite, "close %s: %v", path, err)
	}
	return nil
}
