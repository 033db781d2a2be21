package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"fundscraper/morningstar"
)

// returnsTable renders a trailing-returns table with the security's
// figures in the first body row at the live page's column positions
func returnsTable(name, monthly, ytd string) string {
	return fmt.Sprintf(`<table>
<thead><tr><th>Total Return %%</th><th>1-Mo</th><th>3-Mo</th><th>6-Mo</th><th>YTD</th><th>1-Yr</th></tr></thead>
<tbody>
<tr><td>%s (Price)</td><td>%s</td><td>4.10</td><td>7.80</td><td>%s</td><td>22.03</td></tr>
<tr><td>Category</td><td>0.90</td><td>3.70</td><td>6.90</td><td>9.10</td><td>19.44</td></tr>
</tbody>
</table>`, name, monthly, ytd)
}

var sampleReturnsTable = returnsTable("SPY", "1.23", "10.45")

// stubReturns are the per-ticker figures the stub browser serves
var stubReturns = map[string]Returns{
	"spy":   {Monthly: "1.23", YTD: "10.45"},
	"vfiax": {Monthly: "0.98", YTD: "9.11"},
	"voo":   {Monthly: "1.20", YTD: "10.40"},
}

// stubBrowser records every locator queried, fails the operations whose
// locators appear in failOn, and serves per-ticker table markup based on
// the last search navigation
type stubBrowser struct {
	queried []string
	failOn  map[string]bool

	// tables overrides the markup served for a specific ReturnsTable xpath
	tables map[string]string

	// current is the ticker from the last navigated search URL
	current string
}

func newStubBrowser(failOn ...string) *stubBrowser {
	fail := make(map[string]bool)
	for _, xpath := range failOn {
		fail[xpath] = true
	}
	return &stubBrowser{failOn: fail, tables: make(map[string]string)}
}

func (b *stubBrowser) check(xpath string) error {
	b.queried = append(b.queried, xpath)
	if b.failOn[xpath] {
		return fmt.Errorf("no element at %s", xpath)
	}
	return nil
}

func (b *stubBrowser) Navigate(ctx context.Context, url string) error {
	b.queried = append(b.queried, url)
	if idx := strings.LastIndex(url, "="); idx >= 0 {
		b.current = url[idx+1:]
	}
	if b.failOn[url] {
		return fmt.Errorf("failed to load %s", url)
	}
	return nil
}

func (b *stubBrowser) Click(ctx context.Context, xpath string) error { return b.check(xpath) }

func (b *stubBrowser) WaitVisible(ctx context.Context, xpath string) error { return b.check(xpath) }

func (b *stubBrowser) OuterHTML(ctx context.Context, xpath string) (string, error) {
	if err := b.check(xpath); err != nil {
		return "", err
	}
	if html, ok := b.tables[xpath]; ok {
		return html, nil
	}
	if ret, ok := stubReturns[b.current]; ok {
		return returnsTable(strings.ToUpper(b.current), ret.Monthly, ret.YTD), nil
	}
	return sampleReturnsTable, nil
}

func (b *stubBrowser) sawLocator(xpath string) bool {
	for _, q := range b.queried {
		if q == xpath {
			return true
		}
	}
	return false
}

func TestTickerETFLayout(t *testing.T) {
	b := newStubBrowser()
	s := New(b)

	ret, err := s.Ticker(context.Background(), "SPY")
	require.NoError(t, err)
	require.Equal(t, "1.23", ret.Monthly)
	require.Equal(t, "10.45", ret.YTD)

	// ETF layout resolved, so the fund layout must never be consulted
	require.True(t, b.sawLocator(morningstar.ETF.PerformanceTab))
	require.False(t, b.sawLocator(morningstar.Fund.PerformanceTab))
}

func TestTickerFundFallback(t *testing.T) {
	b := newStubBrowser(morningstar.ETF.PerformanceTab)
	s := New(b)

	ret, err := s.Ticker(context.Background(), "VFIAX")
	require.NoError(t, err)
	require.Equal(t, "0.98", ret.Monthly)
	require.Equal(t, "9.11", ret.YTD)

	// ETF layout was attempted first, then the fund layout
	require.True(t, b.sawLocator(morningstar.ETF.PerformanceTab))
	require.True(t, b.sawLocator(morningstar.Fund.PerformanceTab))
}

func TestTickerExtractionFailureFallsBack(t *testing.T) {
	// The ETF locators resolve but point at a table without the expected
	// cells; the fund layout must still be tried and win
	b := newStubBrowser()
	b.tables[morningstar.ETF.ReturnsTable] = `<table><tbody><tr><td>a</td><td>b</td></tr></tbody></table>`

	ret, err := New(b).Ticker(context.Background(), "SPY")
	require.NoError(t, err)
	require.Equal(t, "1.23", ret.Monthly)
	require.Equal(t, "10.45", ret.YTD)
	require.True(t, b.sawLocator(morningstar.Fund.PerformanceTab))
}

func TestTickerExtractionFailureOnEveryLayout(t *testing.T) {
	bad := `<table><tbody></tbody></table>`
	b := newStubBrowser()
	b.tables[morningstar.ETF.ReturnsTable] = bad
	b.tables[morningstar.Fund.ReturnsTable] = bad

	_, err := New(b).Ticker(context.Background(), "SPY")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrLayoutNotMatched)
}

func TestTickerNoLayoutMatches(t *testing.T) {
	b := newStubBrowser(morningstar.ETF.PerformanceTab, morningstar.Fund.PerformanceTab)
	s := New(b)

	_, err := s.Ticker(context.Background(), "BOGUS")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrLayoutNotMatched)
}

func TestTickerSearchesLowercased(t *testing.T) {
	b := newStubBrowser()
	s := New(b)

	_, err := s.Ticker(context.Background(), "VOO")
	require.NoError(t, err)
	require.True(t, b.sawLocator(morningstar.SearchURL("voo")))
}

func TestTickerNoSearchResult(t *testing.T) {
	b := newStubBrowser(morningstar.FirstResultLink)
	s := New(b)

	_, err := s.Ticker(context.Background(), "ZZZZ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no search result")
}

func TestRunPreservesOrder(t *testing.T) {
	b := newStubBrowser()
	s := New(b)

	results, err := Run(context.Background(), s, []string{"SPY", "VFIAX", "VOO"})
	require.NoError(t, err)

	// Each ticker's own figures, in input order
	require.Equal(t, []Returns{
		{Monthly: "1.23", YTD: "10.45"},
		{Monthly: "0.98", YTD: "9.11"},
		{Monthly: "1.20", YTD: "10.40"},
	}, results)
}

func TestRunAbortsOnFailure(t *testing.T) {
	b := newStubBrowser(morningstar.ETF.PerformanceTab, morningstar.Fund.PerformanceTab)
	s := New(b)

	results, err := Run(context.Background(), s, []string{"SPY", "VFIAX"})
	require.Error(t, err)
	require.Nil(t, results)
	require.Contains(t, err.Error(), "ticker 1 of 2")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := newStubBrowser()
	// Navigation succeeds in the stub regardless of context, but the layout
	// walk checks for cancellation before touching the page
	_, err := Run(ctx, New(b), []string{"SPY"})
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled) || strings.Contains(err.Error(), "context canceled"))
}
