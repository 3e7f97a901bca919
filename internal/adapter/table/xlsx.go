package table

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/fire-map-etl/internal/domain"
)

// readXLSX reads one sheet. Cells are read raw so date cells arrive as
// Excel serial numbers, which domain.ParseDate understands regardless of the
// display format the workbook uses.
func readXLSX(path, sheet string) (domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Table{}, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return domain.Table{}, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return domain.Table{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return domain.Table{}, fmt.Errorf("sheet %q is empty", sheet)
	}

	return domain.Table{Header: rows[0], Rows: rows[1:]}, nil
}

// WriteXLSX writes t to a new workbook at path. Cells that parse as numbers
// are stored as numbers.
func WriteXLSX(path, sheet string, t domain.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}

	all := append([][]string{t.Header}, t.Rows...)
	for r, row := range all {
		values := make([]any, len(row))
		for c, v := range row {
			values[c] = cellValue(v, r == 0)
		}
		addr, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &values); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
	}

	return f.SaveAs(path)
}

func cellValue(v string, header bool) any {
	if header || v == "" {
		return v
	}
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return n
	}
	return v
}
