package export

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// sheet names are capped at 31 characters by the format
const maxSheetName = 31

// XLSX renders the sheet as a single-sheet workbook
func XLSX(s Sheet) (Artifact, error) {
	f := excelize.NewFile()
	defer f.Close()

	name := s.Title
	if name == "" {
		name = "Sheet1"
	}
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return Artifact{}, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeRow(f, name, 1, toCells(s.Header, -1)); err != nil {
		return Artifact{}, err
	}
	for i, row := range s.Rows {
		if err := writeRow(f, name, i+2, toCells(row, s.QuantityColumn)); err != nil {
			return Artifact{}, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to write workbook: %w", err)
	}

	return Artifact{
		Filename:    s.Basename + ".xlsx",
		ContentType: ContentTypeXLSX,
		Body:        buf.Bytes(),
	}, nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("invalid row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// toCells keeps every field as text except the quantity column, which is
// written as a number when it parses as one.
func toCells(fields []string, quantityColumn int) []interface{} {
	cells := make([]interface{}, len(fields))
	for i, v := range fields {
		cells[i] = v
		if i == quantityColumn {
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				cells[i] = n
			}
		}
	}
	return cells
}
