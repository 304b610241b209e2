package document

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet of an export.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// RenderXLSX writes the sheets into a workbook, in order, and returns its bytes.
func RenderXLSX(sheets ...Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheet to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, err
		}

		if err := writeRow(f, sheet.Name, 1, toAny(sheet.Headers)); err != nil {
			return nil, err
		}
		if len(sheet.Headers) > 0 {
			last, err := excelize.CoordinatesToCellName(len(sheet.Headers), 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(sheet.Name, "A1", last, headerStyle); err != nil {
				return nil, err
			}
			lastCol, _ := excelize.ColumnNumberToName(len(sheet.Headers))
			if err := f.SetColWidth(sheet.Name, "A", lastCol, 18); err != nil {
				return nil, err
			}
		}

		for r, row := range sheet.Rows {
			if err := writeRow(f, sheet.Name, r+2, row); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
