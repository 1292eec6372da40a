// Package stats gives the run-statistics report a concrete Go type
// and formatters: a plain data struct plus small text/JSON renderers,
// rather than an ad hoc set of printfs scattered through the driver.
package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/xid"

	"github.com/sarchlab/rxmemo/compile"
	"github.com/sarchlab/rxmemo/vm"
)

// InputInfo mirrors the per-run input shape spec.md's statistics
// format lists under "inputInfo".
type InputInfo struct {
	NStates int `json:"nStates"`
	LenW    int `json:"lenW"`
}

// SimulationInfo mirrors spec.md's "simulationInfo".
type SimulationInfo struct {
	NTotalVisits                        int `json:"nTotalVisits"`
	NPossibleTotalVisitsWithMemoization int `json:"nPossibleTotalVisitsWithMemoization"`
	VisitsToMostVisitedSearchState      int `json:"visitsToMostVisitedSearchState"`
	VisitsToMostVisitedVertex           int `json:"visitsToMostVisitedVertex"`
}

// MemoizationConfig mirrors spec.md's "memoizationInfo.config".
type MemoizationConfig struct {
	VertexSelection string `json:"vertexSelection"`
	Encoding        string `json:"encoding"`
}

// MemoizationResults mirrors spec.md's "memoizationInfo.results". The
// per-vertex cost array is left empty unless the caller supplies one;
// the core VM does not track per-vertex RLE cost independently of the
// table's own MaxBytes aggregate.
type MemoizationResults struct {
	NSelectedVertices                int   `json:"nSelectedVertices"`
	LenW                             int   `json:"lenW"`
	MaxObservedCostPerMemoizedVertex []int `json:"maxObservedCostPerMemoizedVertex"`
}

// MemoizationInfo mirrors spec.md's "memoizationInfo".
type MemoizationInfo struct {
	Config  MemoizationConfig  `json:"config"`
	Results MemoizationResults `json:"results"`
}

// Report is one run's complete statistics object, plus a RunID
// correlating it across a batch (the one piece xid contributes:
// a sortable, collision-free id cheaper than a UUID to generate per
// job in a concurrent sweep).
type Report struct {
	RunID          string          `json:"runId"`
	Pattern        string          `json:"pattern"`
	Input          string          `json:"input"`
	Matched        bool            `json:"matched"`
	InputInfo      InputInfo       `json:"inputInfo"`
	SimulationInfo SimulationInfo  `json:"simulationInfo"`
	MemoizationInfo MemoizationInfo `json:"memoizationInfo"`
}

// New builds a Report from one backtrack run's result and stats. It
// is always populated regardless of whether result.Matched is true,
// false, or result.Err is set, per spec.md's "preserve stats on match,
// dead end, and no-match" resolution.
func New(pattern, input string, prog *compile.Program, result vm.Result, runStats *vm.RunStats, maxBytesPerVertex []int) Report {
	return Report{
		RunID:   xid.New().String(),
		Pattern: pattern,
		Input:   input,
		Matched: result.Matched,
		InputInfo: InputInfo{
			NStates: prog.Len,
			LenW:    len(input),
		},
		SimulationInfo: SimulationInfo{
			NTotalVisits:                        runStats.NTotalVisits(),
			NPossibleTotalVisitsWithMemoization: runStats.NPossibleTotalVisitsWithMemoization(),
			VisitsToMostVisitedSearchState:       runStats.VisitsToMostVisitedSearchState(),
			VisitsToMostVisitedVertex:            runStats.VisitsToMostVisitedVertex(),
		},
		MemoizationInfo: MemoizationInfo{
			Config: MemoizationConfig{
				VertexSelection: prog.MemoMode.String(),
				Encoding:        prog.MemoEncoding.String(),
			},
			Results: MemoizationResults{
				NSelectedVertices:                prog.NMemoizedStates,
				LenW:                             len(input),
				MaxObservedCostPerMemoizedVertex: maxBytesPerVertex,
			},
		},
	}
}

// WriteJSON encodes the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText renders the report as the plain key/value text format the
// CLI's default (non -format=json) mode uses.
func (r Report) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s: pattern=%q input=%q matched=%v\n", r.RunID, r.Pattern, r.Input, r.Matched)
	fmt.Fprintf(&b, "  input:       nStates=%d lenW=%d\n", r.InputInfo.NStates, r.InputInfo.LenW)
	fmt.Fprintf(&b, "  simulation:  nTotalVisits=%d nPossibleTotalVisits=%d mostVisitedSearchState=%d mostVisitedVertex=%d\n",
		r.SimulationInfo.NTotalVisits, r.SimulationInfo.NPossibleTotalVisitsWithMemoization,
		r.SimulationInfo.VisitsToMostVisitedSearchState, r.SimulationInfo.VisitsToMostVisitedVertex)
	fmt.Fprintf(&b, "  memoization: vertexSelection=%s encoding=%s nSelectedVertices=%d\n",
		r.MemoizationInfo.Config.VertexSelection, r.MemoizationInfo.Config.Encoding, r.MemoizationInfo.Results.NSelectedVertices)
	_, err := io.WriteString(w, b.String())
	return err
}
