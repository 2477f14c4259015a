package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_TabsAndNewlines(t *testing.T) {
	rows := Tokenize("a\tb\tc\nd\te\n")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b", "c"}, rows[0])
	assert.Equal(t, []string{"d", "e"}, rows[1])
}

func TestTokenize_QuotedCellWithTabAndEscapedQuote(t *testing.T) {
	rows := Tokenize("\"a\"\"b\tc\"")
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a\"b\tc"}, rows[0])
}

func TestTokenize_QuotedCellWithNewline(t *testing.T) {
	rows := Tokenize("12:00\t\"Lunch\nnear station\"\tok\n")
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"12:00", "Lunch\nnear station", "ok"}, rows[0])
}

func TestTokenize_CarriageReturnsDropped(t *testing.T) {
	rows := Tokenize("a\tb\r\nc\td\r\n")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b"}, rows[0])
	assert.Equal(t, []string{"c", "d"}, rows[1])
}

func TestTokenize_CarriageReturnInQuotedCell(t *testing.T) {
	rows := Tokenize("\"a\r\nb\"\tx\r\n")
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a\nb", "x"}, rows[0])
}

func TestTokenize_InvalidUTF8PassesThrough(t *testing.T) {
	rows := Tokenize("caf\xe9\t\"\xff\tz\"\n")
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"caf\xe9", "\xff\tz"}, rows[0])
}

func TestTokenize_TrailingPartialRow(t *testing.T) {
	rows := Tokenize("a\tb\nc")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"c"}, rows[1])
}

func TestTokenize_TrailingEmptyCell(t *testing.T) {
	rows := Tokenize("a\t")
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a", ""}, rows[0])
}

func TestTokenize_BlankInput(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("  \n\t \r\n"))
}

func TestTokenize_UnmatchedQuoteAtEnd(t *testing.T) {
	rows := Tokenize("a\t\"unterminated\tcell")
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a", "unterminated\tcell"}, rows[0])
}

func TestTokenize_MultibyteContent(t *testing.T) {
	rows := Tokenize("時間\t活動地點\n08:00\t札幌車站")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"08:00", "札幌車站"}, rows[1])
}

func TestCellAt(t *testing.T) {
	row := []string{" a ", "b"}
	assert.Equal(t, "a", cellAt(row, 0))
	assert.Equal(t, "", cellAt(row, -1))
	assert.Equal(t, "", cellAt(row, 5))
}
