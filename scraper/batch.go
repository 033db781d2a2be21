package scraper

import (
	"context"
	"fmt"
	"log/slog"
)

// Run scrapes every ticker in order through one shared scraper. Tickers are
// processed strictly sequentially since they share a single browser
// session, and results come back in input order. The first ticker that
// fails on every layout aborts the whole batch; nothing scraped before it
// is persisted by this function.
func Run(ctx context.Context, s *Scraper, tickers []string) ([]Returns, error) {
	results := make([]Returns, 0, len(tickers))

	for i, ticker := range tickers {
		slog.Info("scraping security", "ticker", ticker, "position", i+1, "total", len(tickers))

		ret, err := s.Ticker(ctx, ticker)
		if err != nil {
			return nil, fmt.Errorf("batch aborted at ticker %d of %d: %w", i+1, len(tickers), err)
		}

		slog.Info("scraped returns", "ticker", ticker, "monthly", ret.Monthly, "ytd", ret.YTD)
		results = append(results, ret)
	}

	return results, nil
}
