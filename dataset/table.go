// Package dataset loads the seed security table, merges scraped returns
// into it, and writes the result back out as CSV
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Table is an ordered table of securities read from a CSV file. Row order
// is preserved through the merge and write steps.
type Table struct {
	Header []string
	Rows   [][]string

	tickerCol int
}

// Load reads a security table. The location may be a CSV file path or an
// http(s) URL pointing at a page with an HTML table (the first table on
// the page is used).
func Load(location string) (*Table, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return loadURL(location)
	}
	return loadFile(location)
}

func loadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	return fromRecords(records)
}

// fromRecords builds a Table from raw rows; the first row is the header
// and must contain a Ticker column
func fromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}

	t := &Table{
		Header:    records[0],
		Rows:      records[1:],
		tickerCol: -1,
	}

	for i, name := range t.Header {
		if strings.EqualFold(strings.TrimSpace(name), "ticker") {
			t.tickerCol = i
			break
		}
	}
	if t.tickerCol < 0 {
		return nil, fmt.Errorf("dataset has no Ticker column (header: %v)", t.Header)
	}

	for i, row := range t.Rows {
		if len(row) != len(t.Header) {
			return nil, fmt.Errorf("dataset row %d has %d fields, header has %d", i+1, len(row), len(t.Header))
		}
	}

	return t, nil
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Tickers returns the ticker column in row order, verbatim
func (t *Table) Tickers() []string {
	tickers := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		tickers = append(tickers, strings.TrimSpace(row[t.tickerCol]))
	}
	return tickers
}

// AppendReturns appends the scraped monthly and YTD columns. Both slices
// must line up exactly with the table's rows: same length, same order as
// Tickers() returned them.
func (t *Table) AppendReturns(monthly, ytd []string) error {
	if len(monthly) != len(t.Rows) || len(ytd) != len(t.Rows) {
		return fmt.Errorf("returns do not match table: %d rows, %d monthly, %d ytd",
			len(t.Rows), len(monthly), len(ytd))
	}

	t.Header = append(t.Header, "Monthly", "YTD")
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], monthly[i], ytd[i])
	}
	return nil
}

// WriteFile persists the table as a CSV file
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
