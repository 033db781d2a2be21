// Package cmd holds the subcommands of the fundscraper binary
package cmd

import "github.com/google/subcommands"

// Commands lists every subcommand in registration order
var Commands = []subcommands.Command{
	&scrapeCmd{},
	&readtableCmd{},
}
