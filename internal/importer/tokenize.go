package importer

import "strings"

// Tokenize splits pasted spreadsheet text into rows of cells. Tabs separate
// cells and line feeds separate rows; carriage returns are dropped. A cell
// may be wrapped in double quotes, in which case tabs and line feeds inside
// it are literal and a doubled quote stands for one quote character. A
// trailing row without a final newline is still returned. Blank input
// yields no rows. Bytes other than the delimiters are copied through
// unchanged, so invalid UTF-8 survives.
func Tokenize(text string) [][]string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var (
		rows     [][]string
		row      []string
		cell     strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if inQuotes {
			switch {
			case ch == '"' && i+1 < len(text) && text[i+1] == '"':
				cell.WriteByte('"')
				i++
			case ch == '"':
				inQuotes = false
			case ch == '\r':
			default:
				cell.WriteByte(ch)
			}
			continue
		}

		switch ch {
		case '"':
			inQuotes = true
		case '\t':
			row = append(row, cell.String())
			cell.Reset()
		case '\n':
			row = append(row, cell.String())
			rows = append(rows, row)
			row = nil
			cell.Reset()
		case '\r':
		default:
			cell.WriteByte(ch)
		}
	}

	if cell.Len() > 0 || len(row) > 0 {
		row = append(row, cell.String())
		rows = append(rows, row)
	}

	return rows
}

// cellAt returns the trimmed cell at col, or "" when col is absent or out of range.
func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
