package scraper

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractReturns(t *testing.T) {
	ret, err := extractReturns(sampleReturnsTable)
	require.NoError(t, err)
	require.Equal(t, "1.23", ret.Monthly)
	require.Equal(t, "10.45", ret.YTD)
}

func TestExtractReturnsMissingFigures(t *testing.T) {
	// Morningstar renders missing data as an em-dash; the raw text is kept
	html := `<table><tbody>
<tr><td>X (Price)</td><td>—</td><td>2.00</td><td>3.00</td><td>—</td><td>5.00</td></tr>
</tbody></table>`

	ret, err := extractReturns(html)
	require.NoError(t, err)
	require.Equal(t, "—", ret.Monthly)
	require.Equal(t, "—", ret.YTD)
}

func TestExtractReturnsNoRows(t *testing.T) {
	_, err := extractReturns(`<table><tbody></tbody></table>`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no data rows")
}

func TestExtractReturnsTooFewCells(t *testing.T) {
	_, err := extractReturns(`<table><tbody><tr><td>a</td><td>b</td></tr></tbody></table>`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cells")
}

func TestExtractReturnsWhitespace(t *testing.T) {
	html := `<table><tbody>
<tr><td>X</td><td>
	1.23 </td><td>2</td><td>3</td><td>
 10.45
</td><td>5</td></tr>
</tbody></table>`

	ret, err := extractReturns(html)
	require.NoError(t, err)
	require.Equal(t, "1.23", ret.Monthly)
	require.Equal(t, "10.45", ret.YTD)
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "a b c", CleanText("  a\n\tb   c  "))
	require.Equal(t, "", CleanText(" \n\t "))
}
