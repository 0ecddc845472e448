package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ventworks/quotecalc/internal/format"
)

// GenerateExcel renders the quote summary to a single-sheet XLSX file and
// returns the file contents.
func GenerateExcel(s Summary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Quote"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	if err := f.SetColWidth(sheet, "A", "A", 44); err != nil {
		return nil, fmt.Errorf("set col width A: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "B", 18); err != nil {
		return nil, fmt.Errorf("set col width B: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	headingStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#212529"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create heading style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F0F0F0"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	rowIdx := 1
	setCell := func(column string, value any) error {
		return f.SetCellValue(sheet, fmt.Sprintf("%s%d", column, rowIdx), value)
	}

	if err := setCell("A", s.Title); err != nil {
		return nil, fmt.Errorf("write title: %w", err)
	}
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowIdx), fmt.Sprintf("A%d", rowIdx), titleStyle); err != nil {
		return nil, fmt.Errorf("style title: %w", err)
	}
	rowIdx++

	if err := setCell("A", fmt.Sprintf("Reference: %s", s.Reference)); err != nil {
		return nil, fmt.Errorf("write reference: %w", err)
	}
	if err := setCell("B", fmt.Sprintf("Date: %s", s.Date)); err != nil {
		return nil, fmt.Errorf("write date: %w", err)
	}
	rowIdx += 2

	writeSection := func(heading string, lines []Line) error {
		if len(lines) == 0 {
			return nil
		}
		if err := setCell("A", heading); err != nil {
			return fmt.Errorf("write heading %s: %w", heading, err)
		}
		cellRange := fmt.Sprintf("A%d", rowIdx)
		if err := f.SetCellStyle(sheet, cellRange, fmt.Sprintf("B%d", rowIdx), headingStyle); err != nil {
			return fmt.Errorf("style heading %s: %w", heading, err)
		}
		rowIdx++
		for _, line := range lines {
			if err := setCell("A", line.Label); err != nil {
				return fmt.Errorf("write label %s: %w", line.Label, err)
			}
			if err := setCell("B", format.USD(line.Amount)); err != nil {
				return fmt.Errorf("write amount for %s: %w", line.Label, err)
			}
			rowIdx++
		}
		rowIdx++
		return nil
	}

	if err := writeSection("Costs", s.CostLines); err != nil {
		return nil, err
	}
	if err := writeSection("Totals", s.TotalLines); err != nil {
		return nil, err
	}

	if err := setCell("A", "GRAND TOTAL"); err != nil {
		return nil, fmt.Errorf("write grand total label: %w", err)
	}
	if err := setCell("B", format.USD(s.GrandTotal)); err != nil {
		return nil, fmt.Errorf("write grand total: %w", err)
	}
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowIdx), fmt.Sprintf("B%d", rowIdx), totalStyle); err != nil {
		return nil, fmt.Errorf("style grand total: %w", err)
	}
	rowIdx += 2

	if err := writeSection("Profit", s.ProfitLines); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx buffer: %w", err)
	}

	return buf.Bytes(), nil
}
