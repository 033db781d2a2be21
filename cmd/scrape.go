package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/subcommands"

	"fundscraper/browser"
	"fundscraper/dataset"
	"fundscraper/scraper"
)

type scrapeCmd struct {
	input    string
	output   string
	headless bool
	timeout  time.Duration
	verbose  bool
}

func (*scrapeCmd) Name() string { return "scrape" }
func (*scrapeCmd) Synopsis() string {
	return "scrape monthly and YTD returns for every ticker in the dataset"
}
func (*scrapeCmd) Usage() string {
	return `fundscraper scrape -input stocks.csv -output updated.csv

Reads the security dataset, drives one browser session through
Morningstar's performance pages for each ticker, and writes the dataset
back out with Monthly and YTD columns appended. The input may also be an
http(s) URL pointing at a page with a static HTML table.

The batch is strictly sequential and fail-fast: if a ticker resolves on
neither the ETF nor the fund page layout, the run aborts and no output
file is written.
`
}

func (c *scrapeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "input", "demo_stock_data.csv", "Input dataset: CSV path or http(s) URL with an HTML table")
	f.StringVar(&c.output, "output", "updated_stock_data.csv", "Output CSV path")
	f.BoolVar(&c.headless, "headless", true, "Run the browser headless")
	f.DurationVar(&c.timeout, "timeout", 15*time.Second, "Timeout for each browser step")
	f.BoolVar(&c.verbose, "v", false, "Log every browser step")
}

func (c *scrapeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	table, err := dataset.Load(c.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load dataset: %v\n", err)
		return subcommands.ExitFailure
	}
	slog.Info("loaded dataset", "location", c.input, "rows", table.Len())

	opts := browser.DefaultOptions()
	opts.Headless = c.headless
	opts.StepTimeout = c.timeout

	session, err := browser.NewSession(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not start browser: %v\n", err)
		return subcommands.ExitFailure
	}
	defer session.Close()

	tickers := table.Tickers()
	results, err := scraper.Run(ctx, scraper.New(session), tickers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	monthly := make([]string, 0, len(results))
	ytd := make([]string, 0, len(results))
	for i, ret := range results {
		if !dataset.IsNumeric(ret.Monthly) || !dataset.IsNumeric(ret.YTD) {
			slog.Warn("scraped value is not numeric",
				"ticker", tickers[i], "monthly", ret.Monthly, "ytd", ret.YTD)
		}
		monthly = append(monthly, ret.Monthly)
		ytd = append(ytd, ret.YTD)
	}

	if err := table.AppendReturns(monthly, ytd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not merge returns: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := table.WriteFile(c.output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not write output: %v\n", err)
		return subcommands.ExitFailure
	}

	slog.Info("wrote enriched dataset", "path", c.output, "rows", table.Len())
	return subcommands.ExitSuccess
}
