// Package driver is the thin external shell spec.md places outside
// the core engine: it loads queries and sweep configurations, runs
// them against the compile/vm/memo/stats packages, and renders match
// output in the spec's "match (a,b)(c,d)..." text form.
package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/rxmemo/compile"
	"github.com/sarchlab/rxmemo/memo"
	"github.com/sarchlab/rxmemo/parser"
	"github.com/sarchlab/rxmemo/stats"
	"github.com/sarchlab/rxmemo/transform"
	"github.com/sarchlab/rxmemo/vm"
)

// Query is one (pattern, input) pair, the unit of work spec.md §6
// describes the driver as supplying to the core engine.
type Query struct {
	Pattern string `json:"pattern"`
	Input   string `json:"input"`
}

// LoadQueries decodes a JSON array of queries, following spec.md §2's
// "JSON query loading" driver responsibility.
func LoadQueries(r io.Reader) ([]Query, error) {
	var qs []Query
	if err := json.NewDecoder(r).Decode(&qs); err != nil {
		return nil, fmt.Errorf("decode queries: %w", err)
	}
	return qs, nil
}

// SweepEntry is one point in a vertex-selection/encoding/rleK sweep.
type SweepEntry struct {
	VertexSelection string `yaml:"vertexSelection"`
	Encoding        string `yaml:"encoding"`
	RLEK            int    `yaml:"rleK"`
}

// SweepConfig is a list of sweep points, loaded from YAML by the CLI's
// -sweep flag.
type SweepConfig struct {
	Sweep []SweepEntry `yaml:"sweep"`
}

var vertexSelections = map[string]compile.MemoMode{
	"NONE":      compile.MemoNone,
	"FULL":      compile.MemoFull,
	"INDEG_GT1": compile.MemoIndegGT1,
	"LOOP_DEST": compile.MemoLoopDest,
}

var encodings = map[string]compile.MemoEncoding{
	"NONE":      compile.EncodingNone,
	"NEGATIVE":  compile.EncodingNegative,
	"RLE":       compile.EncodingRLE,
	"RLE_TUNED": compile.EncodingRLETuned,
}

// ToOptions resolves a sweep entry's string enumerations into
// compile.Options, rejecting unknown names.
func (e SweepEntry) ToOptions() (compile.Options, error) {
	mode, ok := vertexSelections[e.VertexSelection]
	if !ok {
		return compile.Options{}, fmt.Errorf("unknown vertexSelection %q", e.VertexSelection)
	}
	enc, ok := encodings[e.Encoding]
	if !ok {
		return compile.Options{}, fmt.Errorf("unknown encoding %q", e.Encoding)
	}
	return compile.Options{MemoMode: mode, MemoEncoding: enc, RLEK: e.RLEK}, nil
}

// Job is one query run against one compiled configuration.
type Job struct {
	Query Query
	Opts  compile.Options
}

// RunOne compiles and runs a single job, returning the populated
// stats.Report. Per spec.md §7, a match-time error is fatal to the
// job, but compile-time errors (bad pattern, rejected infinite loop)
// are reported as an error rather than a panic.
func RunOne(job Job) (stats.Report, error) {
	n, err := parser.Parse(job.Query.Pattern)
	if err != nil {
		return stats.Report{}, fmt.Errorf("parse %q: %w", job.Query.Pattern, err)
	}
	prog, err := compile.Compile(transform.Normalize(n), job.Opts)
	if err != nil {
		return stats.Report{}, fmt.Errorf("compile %q: %w", job.Query.Pattern, err)
	}
	table := memo.New(prog.MemoEncoding, prog.NMemoizedStates, len(job.Query.Input), job.Opts.RLEK)
	res, runStats := vm.Run(prog, []byte(job.Query.Input), table)
	if res.Err != nil {
		return stats.Report{}, fmt.Errorf("run %q against %q: %w", job.Query.Pattern, job.Query.Input, res.Err)
	}
	return stats.New(job.Query.Pattern, job.Query.Input, prog, res, runStats, nil), nil
}

// RunBatch runs every job concurrently using errgroup. Each job
// compiles and executes its own Program and memo.Table, so there is
// no shared mutable state between goroutines to coordinate. Reports
// are returned in the same order as jobs regardless of completion
// order.
func RunBatch(ctx context.Context, jobs []Job) ([]stats.Report, error) {
	reports := make([]stats.Report, len(jobs))
	g, _ := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			r, err := RunOne(job)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// ExpandSweep builds one Job per (query, sweep entry) combination.
func ExpandSweep(queries []Query, cfg SweepConfig) ([]Job, error) {
	jobs := make([]Job, 0, len(queries)*len(cfg.Sweep))
	for _, q := range queries {
		for _, e := range cfg.Sweep {
			opts, err := e.ToOptions()
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, Job{Query: q, Opts: opts})
		}
	}
	return jobs, nil
}

// FormatMatch renders a match result following spec.md §6 exactly: the
// literal word "match" followed by, for each even capture-slot index
// up to the highest populated one, a "(start,end)" pair, with an
// unset slot rendered as "?".
func FormatMatch(w io.Writer, res vm.Result) error {
	if !res.Matched {
		_, err := io.WriteString(w, "no match\n")
		return err
	}

	lastPopulated := 0
	for l := 0; 2*l+1 < len(res.Sub); l++ {
		if res.Sub[2*l] >= 0 || res.Sub[2*l+1] >= 0 {
			lastPopulated = l
		}
	}

	var b strings.Builder
	b.WriteString("match ")
	for l := 0; l <= lastPopulated; l++ {
		b.WriteByte('(')
		b.WriteString(offsetString(res.Sub[2*l]))
		b.WriteByte(',')
		b.WriteString(offsetString(res.Sub[2*l+1]))
		b.WriteByte(')')
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func offsetString(v int) string {
	if v < 0 {
		return "?"
	}
	return strconv.Itoa(v)
}
