// Package morningstar models the structure of Morningstar security pages
package morningstar

import "strings"

// searchEndpoint is the US securities search page; the ticker is appended
// as the query parameter
const searchEndpoint = "https://www.morningstar.com/search/us-securities?query="

// FirstResultLink locates the top search result on the search page
const FirstResultLink = `//*[@id="__layout"]/div/div/div[2]/div[3]/main/div/div/div[1]/section/div[1]/a`

// MonthlyToggle switches the trailing-returns table from day-end to
// month-end figures; it is shared by both page layouts
const MonthlyToggle = `//*[@id="monthly"]`

// SearchURL builds the search page URL for a ticker. Tickers are
// lower-cased for the URL only.
func SearchURL(ticker string) string {
	return searchEndpoint + strings.ToLower(strings.TrimSpace(ticker))
}

// Layout is one page structure a security's detail page can have. ETFs and
// mutual funds render the performance page with different element trees, so
// each carries its own locator set.
type Layout struct {
	Name string

	// PerformanceTab navigates from the quote page to the performance page
	PerformanceTab string

	// ReturnsTable locates the trailing-returns table on the performance
	// page after the monthly toggle has been applied
	ReturnsTable string
}

// ETF is the page layout used for exchange-traded funds
var ETF = Layout{
	Name:           "etf",
	PerformanceTab: `//*[@id="etf__tab-performance"]/a/span`,
	ReturnsTable:   `//*[@id="__layout"]/div/div/div[2]/div[3]/div/div[2]/main/div/div/div[1]/section/sal-components/div/sal-components-funds-performance/div/div[1]/div/div/div/div[2]/div[1]/section[2]/div/div/div/div/div[2]/div[1]/div/table`,
}

// Fund is the page layout used for mutual funds
var Fund = Layout{
	Name:           "fund",
	PerformanceTab: `//*[@id="performance"]/a/span`,
	ReturnsTable:   `/html/body/div[2]/div/div/div/div[2]/div[3]/div/div[2]/main/div/div/div[1]/section/sal-components/div/sal-components-funds-performance/div/div[1]/div/div/div/div[2]/div[1]/section[2]/div/div/div/div/div[2]/div[1]/div/table`,
}

// Layouts returns the known layouts in the order they should be attempted.
// Whether a ticker is an ETF or a fund is not reliably knowable in advance,
// so the ETF layout is tried first and the fund layout is the fallback.
func Layouts() []Layout {
	return []Layout{ETF, Fund}
}

// Trailing-returns table geometry: returns for the security itself are in
// the first body row; the one-month figure is the second cell and the
// year-to-date figure the fifth.
const (
	ReturnsRow = 0
	MonthlyCol = 1
	YTDCol     = 4
)
