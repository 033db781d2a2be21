package dataset

import (
	"fmt"

	"fundscraper/htmltable"
)

// loadURL reads the first HTML table found on a static page. Pages with
// tabular markup (stats sites, reference tables) can seed a dataset
// directly; dynamic pages need the browser-driven scraper instead.
func loadURL(url string) (*Table, error) {
	doc, err := htmltable.Fetch(url)
	if err != nil {
		return nil, err
	}

	records, err := htmltable.First(doc)
	if err != nil {
		return nil, fmt.Errorf("no usable table at %s: %w", url, err)
	}

	return fromRecords(records)
}
