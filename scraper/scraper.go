// Package scraper extracts trailing-return figures for securities by
// driving a browser through Morningstar's search and performance pages
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fundscraper/morningstar"
)

// Returns holds the two figures scraped for one security, as raw page text
type Returns struct {
	Monthly string `json:"monthly"`
	YTD     string `json:"ytd"`
}

// ErrLayoutNotMatched reports that a page layout's locators did not resolve
// on the current page. It is the only recoverable scrape failure: the next
// layout in priority order is tried.
var ErrLayoutNotMatched = errors.New("page layout did not match")

// Browser is the subset of browser session operations the scraper depends on
type Browser interface {
	Navigate(ctx context.Context, url string) error
	Click(ctx context.Context, xpath string) error
	WaitVisible(ctx context.Context, xpath string) error
	OuterHTML(ctx context.Context, xpath string) (string, error)
}

// Scraper scrapes one security at a time through a shared browser session.
// Calls mutate the session's current page, so a Scraper must not be used
// concurrently.
type Scraper struct {
	browser Browser
	layouts []morningstar.Layout
}

// New creates a scraper over the given browser session, attempting the
// known Morningstar layouts in priority order
func New(b Browser) *Scraper {
	return &Scraper{
		browser: b,
		layouts: morningstar.Layouts(),
	}
}

// Ticker scrapes the monthly and year-to-date trailing returns for one
// ticker symbol. It navigates to the search page, opens the first result,
// and tries each page layout until one resolves.
func (s *Scraper) Ticker(ctx context.Context, ticker string) (Returns, error) {
	url := morningstar.SearchURL(ticker)
	if err := s.browser.Navigate(ctx, url); err != nil {
		return Returns{}, fmt.Errorf("failed to open search page for %s: %w", ticker, err)
	}

	if err := s.browser.Click(ctx, morningstar.FirstResultLink); err != nil {
		return Returns{}, fmt.Errorf("no search result for %s: %w", ticker, err)
	}

	var lastErr error
	for _, layout := range s.layouts {
		ret, err := s.tryLayout(ctx, layout)
		if err == nil {
			slog.Debug("scraped security", "ticker", ticker, "layout", layout.Name)
			return ret, nil
		}
		if !errors.Is(err, ErrLayoutNotMatched) {
			return Returns{}, fmt.Errorf("scrape failed for %s: %w", ticker, err)
		}
		slog.Debug("layout did not match", "ticker", ticker, "layout", layout.Name, "err", err)
		lastErr = err
	}

	return Returns{}, fmt.Errorf("no known layout matched for %s: %w", ticker, lastErr)
}

// tryLayout walks one layout's locator set: performance tab, monthly
// toggle, then the trailing-returns table. A locator that fails to resolve
// is reported as ErrLayoutNotMatched so the caller can try the next layout.
func (s *Scraper) tryLayout(ctx context.Context, layout morningstar.Layout) (Returns, error) {
	if err := ctx.Err(); err != nil {
		return Returns{}, err
	}

	if err := s.browser.Click(ctx, layout.PerformanceTab); err != nil {
		return Returns{}, fmt.Errorf("%w: performance tab (%s): %v", ErrLayoutNotMatched, layout.Name, err)
	}

	if err := s.browser.Click(ctx, morningstar.MonthlyToggle); err != nil {
		return Returns{}, fmt.Errorf("%w: monthly toggle (%s): %v", ErrLayoutNotMatched, layout.Name, err)
	}

	if err := s.browser.WaitVisible(ctx, layout.ReturnsTable); err != nil {
		return Returns{}, fmt.Errorf("%w: returns table (%s): %v", ErrLayoutNotMatched, layout.Name, err)
	}

	html, err := s.browser.OuterHTML(ctx, layout.ReturnsTable)
	if err != nil {
		return Returns{}, fmt.Errorf("%w: returns table markup (%s): %v", ErrLayoutNotMatched, layout.Name, err)
	}

	// A table that does not hold the expected cells means this layout's
	// locators resolved against the wrong page structure, so the next
	// layout still gets its turn
	ret, err := extractReturns(html)
	if err != nil {
		return Returns{}, fmt.Errorf("%w: returns extraction (%s): %v", ErrLayoutNotMatched, layout.Name, err)
	}
	return ret, nil
}
