// Command rxmemo runs the memoized backtracking regex engine against
// one pattern/input pair, or a batch of queries under a sweep of
// vertex-selection and memo-encoding configurations.
//
// Usage:
//
//	go run ./cmd/rxmemo [flags]
//
// Flags:
//
//	-pattern  Regex pattern to match (single-query mode)
//	-input    Input string to match against (single-query mode)
//	-queries  JSON file of {pattern,input} pairs (batch mode)
//	-sweep    YAML file of vertexSelection/encoding/rleK entries
//	-mode     Vertex-selection policy: NONE, FULL, INDEG_GT1, LOOP_DEST
//	-encoding Memo encoding: NONE, NEGATIVE, RLE, RLE_TUNED
//	-rlek     Run width for the RLE_TUNED encoding
//	-format   Output format: text or json (default: text)
//	-v        Verbose logging of VM thread scheduling (single-query mode)
//
// Example:
//
//	# Single query, human-readable match output plus stats
//	go run ./cmd/rxmemo -pattern 'a(b|c)d' -input acd
//
//	# Batch sweep, JSON stats for automated comparison
//	go run ./cmd/rxmemo -queries queries.json -sweep sweep.yaml -format=json
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/go-logr/logr"

	"github.com/sarchlab/rxmemo/compile"
	"github.com/sarchlab/rxmemo/driver"
	"github.com/sarchlab/rxmemo/internal/rxlog"
	"github.com/sarchlab/rxmemo/memo"
	"github.com/sarchlab/rxmemo/parser"
	"github.com/sarchlab/rxmemo/stats"
	"github.com/sarchlab/rxmemo/transform"
	"github.com/sarchlab/rxmemo/vm"

	"go.yaml.in/yaml/v3"
)

var (
	pattern     = flag.String("pattern", "", "Regex pattern to match (single-query mode)")
	input       = flag.String("input", "", "Input string to match against (single-query mode)")
	queriesFile = flag.String("queries", "", "JSON file of {pattern,input} pairs (batch mode)")
	sweepFile   = flag.String("sweep", "", "YAML file of vertexSelection/encoding/rleK entries")
	mode        = flag.String("mode", "NONE", "Vertex-selection policy: NONE, FULL, INDEG_GT1, LOOP_DEST")
	encoding    = flag.String("encoding", "NONE", "Memo encoding: NONE, NEGATIVE, RLE, RLE_TUNED")
	rlek        = flag.Int("rlek", 1, "Run width for the RLE_TUNED encoding")
	format      = flag.String("format", "text", "Output format: text or json")
	verbose     = flag.Bool("v", false, "Verbose logging of VM thread scheduling (single-query mode)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rxmemo - memoized backtracking regex engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: rxmemo [options]\n\n")
		fmt.Fprintf(os.Stderr, "Runs a regex match, or a batch of queries under a sweep, and reports\n")
		fmt.Fprintf(os.Stderr, "match output plus memoization statistics.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  rxmemo -pattern 'a(b|c)d' -input acd\n")
		fmt.Fprintf(os.Stderr, "  rxmemo -pattern '(a+)+b' -input aaaaaaaaaaaaX -mode INDEG_GT1 -encoding RLE -rlek 1\n")
		fmt.Fprintf(os.Stderr, "  rxmemo -queries queries.json -sweep sweep.yaml -format=json\n")
	}
	flag.Parse()

	logger := rxlog.Discard()
	if *verbose {
		logger = rxlog.New(2)
	}

	if *queriesFile != "" {
		runBatch(logger)
		return
	}
	runSingle(logger)
}

func runSingle(logger logr.Logger) {
	if *pattern == "" {
		fmt.Fprintln(os.Stderr, "Error: -pattern is required in single-query mode")
		os.Exit(1)
	}

	opts, err := driver.SweepEntry{VertexSelection: *mode, Encoding: *encoding, RLEK: *rlek}.ToOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	n, err := parser.Parse(*pattern)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing pattern: %v\n", err)
		os.Exit(1)
	}
	prog, err := compile.Compile(transform.Normalize(n), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error compiling pattern: %v\n", err)
		os.Exit(1)
	}
	table := memo.New(prog.MemoEncoding, prog.NMemoizedStates, len(*input), opts.RLEK)
	res, runStats := vm.Run(prog, []byte(*input), table, vm.WithLogger(logger))
	if res.Err != nil {
		fmt.Fprintf(os.Stderr, "Error running match: %v\n", res.Err)
		os.Exit(1)
	}

	if err := driver.FormatMatch(os.Stdout, res); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing match output: %v\n", err)
		os.Exit(1)
	}

	report := stats.New(*pattern, *input, prog, res, runStats, nil)
	if *format == "json" {
		err = report.WriteJSON(os.Stdout)
	} else {
		err = report.WriteText(os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
}

func runBatch(logger logr.Logger) {
	f, err := os.Open(*queriesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening queries file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	queries, err := driver.LoadQueries(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading queries: %v\n", err)
		os.Exit(1)
	}

	cfg := driver.SweepConfig{Sweep: []driver.SweepEntry{{VertexSelection: *mode, Encoding: *encoding, RLEK: *rlek}}}
	if *sweepFile != "" {
		sf, err := os.Open(*sweepFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening sweep file: %v\n", err)
			os.Exit(1)
		}
		defer sf.Close()
		if err := yaml.NewDecoder(sf).Decode(&cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error decoding sweep file: %v\n", err)
			os.Exit(1)
		}
	}

	jobs, err := driver.ExpandSweep(queries, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error expanding sweep: %v\n", err)
		os.Exit(1)
	}

	reports, err := driver.RunBatch(context.Background(), jobs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running batch: %v\n", err)
		os.Exit(1)
	}

	for _, r := range reports {
		if *format == "json" {
			if err := r.WriteJSON(os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
				os.Exit(1)
			}
			continue
		}
		if err := r.WriteText(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
			os.Exit(1)
		}
	}
}
