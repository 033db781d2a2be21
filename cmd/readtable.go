package cmd

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"fundscraper/htmltable"
)

type readtableCmd struct {
	index int
}

func (*readtableCmd) Name() string { return "readtable" }
func (*readtableCmd) Synopsis() string {
	return "print an HTML table from a static page as CSV"
}
func (*readtableCmd) Usage() string {
	return `fundscraper readtable [-index n] <url>

Fetches a page over plain HTTP and prints one of its HTML tables as CSV
on stdout. Only works for server-rendered tables; pages that assemble
their tables with JavaScript come back empty.
`
}

func (c *readtableCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.index, "index", 0, "Which table on the page to print, starting at 0")
}

func (c *readtableCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one URL argument")
		return subcommands.ExitUsageError
	}

	doc, err := htmltable.Fetch(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	tables := htmltable.Tables(doc)
	if c.index < 0 || c.index >= len(tables) {
		fmt.Fprintf(os.Stderr, "Error: page has %d tables, index %d out of range\n", len(tables), c.index)
		return subcommands.ExitFailure
	}

	w := csv.NewWriter(os.Stdout)
	for _, row := range tables[c.index] {
		if err := w.Write(row); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
