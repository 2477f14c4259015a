package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook reads one sheet of an .xlsx workbook into rows of cells in
// the same shape Tokenize produces for pasted text. An empty sheet name
// selects the first sheet. Rows are padded to the widest row.
//
// Clipboard pastes put a merged cell's value only in its top-left cell and
// data rows are read the same way. Merges confined to the first row are the
// exception: a date header merged across a day block is spread over every
// column it covers so each block finds its own date label.
func ReadWorkbook(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found (available: %s)", sheet, strings.Join(f.GetSheetList(), ", "))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	maxCol := 0
	for _, row := range rows {
		maxCol = max(maxCol, len(row))
	}
	grid := make([][]string, len(rows))
	for i, row := range rows {
		grid[i] = make([]string, maxCol)
		copy(grid[i], row)
	}

	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading merged cells of %q: %w", sheet, err)
	}
	for _, mc := range merges {
		startCol, startRow, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			continue
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			continue
		}
		if startRow != 1 || endRow != 1 {
			continue
		}
		for c := startCol - 1; c < endCol && c < maxCol; c++ {
			grid[0][c] = mc.GetCellValue()
		}
	}

	return grid, nil
}
