// trade_analyzer summarizes MT4/MT5 trade-history CSV exports.
//
// Usage: trade_analyzer [--json] <statement.csv>
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"mt_tools/internal/parser"
	"mt_tools/internal/report"
	"mt_tools/internal/stats"
)

// Exit codes. File access must stay distinguishable from data-validity
// failures so callers can tell a typo'd path from a broken export.
const (
	exitOK       = 0
	exitUsage    = 1
	exitFile     = 2
	exitHeader   = 3
	exitRow      = 4
	exitInternal = 5
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("trade_analyzer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	jsonOut := fs.Bool("json", false, "emit the summary as JSON instead of formatted text")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: trade_analyzer [--json] <statement.csv>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}

	trades, err := parser.LoadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "trade_analyzer: %v\n", err)
		var hdrErr *parser.HeaderError
		var rowErr *parser.RowError
		switch {
		case errors.As(err, &hdrErr):
			return exitHeader
		case errors.As(err, &rowErr):
			return exitRow
		default:
			return exitFile
		}
	}

	rep := stats.Summarize(trades)

	render := report.RenderText
	if *jsonOut {
		render = report.RenderJSON
	}
	if err := render(stdout, rep); err != nil {
		fmt.Fprintf(stderr, "trade_analyzer: render report: %v\n", err)
		return exitInternal
	}
	return exitOK
}
