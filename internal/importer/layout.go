package importer

import (
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

const (
	headerScanRows   = 10
	headerScanWindow = 5
)

// Mode is the detected arrangement of a pasted sheet.
type Mode string

const (
	// ModeHorizontal has one block of columns per day under a shared header row.
	ModeHorizontal Mode = "horizontal"
	// ModeVertical is the positional fallback: one row per entry.
	ModeVertical Mode = "vertical"
)

// Block locates the columns of one day in a horizontal layout.
// A column index of -1 means the column is absent.
type Block struct {
	TimeCol int
	NameCol int
	DescCol int
	NoteCol int
}

// Layout is the outcome of header detection.
type Layout struct {
	Mode      Mode
	HeaderRow int
	Blocks    []Block
}

// DetectLayout scans the first rows for name-header cells. The first row
// holding at least one such cell becomes the header row and contributes one
// block per match. Without any match the layout falls back to vertical.
func (d *Dictionary) DetectLayout(rows [][]string) Layout {
	limit := min(len(rows), headerScanRows)
	for r := 0; r < limit; r++ {
		var blocks []Block
		for c := range rows[r] {
			if !equalsAny(headerCell(rows[r], c), d.NameHeaders) {
				continue
			}
			blocks = append(blocks, d.blockAt(rows[r], c))
		}
		if len(blocks) > 0 {
			return Layout{Mode: ModeHorizontal, HeaderRow: r, Blocks: blocks}
		}
	}
	return Layout{Mode: ModeVertical, HeaderRow: -1}
}

// blockAt resolves the companion columns of the name column c.
// A summary column takes priority over a transit column for the description;
// the rightmost note column in the window wins.
func (d *Dictionary) blockAt(header []string, c int) Block {
	b := Block{TimeCol: -1, NameCol: c, DescCol: -1, NoteCol: -1}

	if c > 0 && containsAny(headerCell(header, c-1), d.TimeKeywords) {
		b.TimeCol = c - 1
	}

	summaryFound := false
	for scan := c + 1; scan < len(header) && scan <= c+headerScanWindow; scan++ {
		val := headerCell(header, scan)
		if !summaryFound && containsAny(val, d.SummaryKeywords) {
			b.DescCol = scan
			summaryFound = true
		}
		if !summaryFound && b.DescCol == -1 && containsAny(val, d.TransitKeywords) {
			b.DescCol = scan
		}
		if containsAny(val, d.NoteKeywords) {
			b.NoteCol = scan
		}
	}
	return b
}

// headerCell returns a trimmed, NFC-normalized header cell so labels typed
// with decomposed characters still match the dictionary.
func headerCell(row []string, col int) string {
	return norm.NFC.String(cellAt(row, col))
}

// lastCol is the farthest column a block claims.
func (b Block) lastCol() int {
	return max(b.NameCol, b.DescCol, b.NoteCol)
}

// String renders the block for diagnostics, e.g. "time=0 name=1 desc=2 note=-".
func (b Block) String() string {
	col := func(c int) string {
		if c < 0 {
			return "-"
		}
		return strconv.Itoa(c)
	}
	return fmt.Sprintf("time=%s name=%s desc=%s note=%s",
		col(b.TimeCol), col(b.NameCol), col(b.DescCol), col(b.NoteCol))
}
