package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"fundscraper/morningstar"
)

// extractReturns pulls the monthly and YTD figures out of the captured
// trailing-returns table markup. The security's own returns are in the
// first body row at fixed column positions.
func extractReturns(tableHTML string) (Returns, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(tableHTML))
	if err != nil {
		return Returns{}, fmt.Errorf("failed to parse table HTML: %w", err)
	}

	rows := doc.Find("tbody tr")
	if rows.Length() <= morningstar.ReturnsRow {
		return Returns{}, fmt.Errorf("trailing-returns table has no data rows")
	}

	cells := rows.Eq(morningstar.ReturnsRow).Find("td")
	if cells.Length() <= morningstar.YTDCol {
		return Returns{}, fmt.Errorf("trailing-returns row has %d cells, need at least %d",
			cells.Length(), morningstar.YTDCol+1)
	}

	monthly := CleanText(cells.Eq(morningstar.MonthlyCol).Text())
	ytd := CleanText(cells.Eq(morningstar.YTDCol).Text())

	if monthly == "" || ytd == "" {
		return Returns{}, fmt.Errorf("trailing-returns cells are empty")
	}

	return Returns{Monthly: monthly, YTD: ytd}, nil
}

// CleanText removes extra whitespace from text
func CleanText(text string) string {
	// Replace newlines and tabs with spaces
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\t", " ")

	// Replace multiple spaces with a single space
	for strings.Contains(text, "  ") {
		text = strings.ReplaceAll(text, "  ", " ")
	}

	return strings.TrimSpace(text)
}
