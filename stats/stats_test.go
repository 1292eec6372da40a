package stats_test

import (
	"bytes"
	"encoding/json"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rxmemo/compile"
	"github.com/sarchlab/rxmemo/memo"
	"github.com/sarchlab/rxmemo/parser"
	"github.com/sarchlab/rxmemo/stats"
	"github.com/sarchlab/rxmemo/transform"
	"github.com/sarchlab/rxmemo/vm"
)

func buildReport(pattern, input string, opts compile.Options) stats.Report {
	n, err := parser.Parse(pattern)
	Expect(err).ToNot(HaveOccurred())
	prog, err := compile.Compile(transform.Normalize(n), opts)
	Expect(err).ToNot(HaveOccurred())
	table := memo.New(prog.MemoEncoding, prog.NMemoizedStates, len(input), opts.RLEK)
	res, runStats := vm.Run(prog, []byte(input), table)
	return stats.New(pattern, input, prog, res, runStats, nil)
}

var _ = Describe("Report", func() {
	It("assigns a non-empty RunID and fills inputInfo/simulationInfo", func() {
		r := buildReport("a(b|c)d", "acd", compile.Options{MemoMode: compile.MemoFull})
		Expect(r.RunID).ToNot(BeEmpty())
		Expect(r.Matched).To(BeTrue())
		Expect(r.InputInfo.LenW).To(Equal(3))
		Expect(r.SimulationInfo.NPossibleTotalVisitsWithMemoization).To(Equal(r.InputInfo.NStates * (r.InputInfo.LenW + 1)))
	})

	It("is populated even when the pattern fails to match", func() {
		r := buildReport("a(?=c)b", "ab", compile.Options{})
		Expect(r.Matched).To(BeFalse())
		Expect(r.SimulationInfo.NTotalVisits).To(BeNumerically(">", 0))
	})

	It("records the compiled memoization config", func() {
		r := buildReport("(a+)+b", "aaaaX", compile.Options{
			MemoMode:     compile.MemoIndegGT1,
			MemoEncoding: compile.EncodingRLE,
			RLEK:         1,
		})
		Expect(r.MemoizationInfo.Config.VertexSelection).To(Equal(compile.MemoIndegGT1.String()))
		Expect(r.MemoizationInfo.Config.Encoding).To(Equal(compile.EncodingRLE.String()))
	})

	It("round-trips through JSON", func() {
		r := buildReport("a*", "aaa", compile.Options{})
		var buf bytes.Buffer
		Expect(r.WriteJSON(&buf)).To(Succeed())

		var decoded stats.Report
		Expect(json.Unmarshal(buf.Bytes(), &decoded)).To(Succeed())
		Expect(decoded.Pattern).To(Equal(r.Pattern))
		Expect(decoded.Matched).To(Equal(r.Matched))
		Expect(decoded.InputInfo).To(Equal(r.InputInfo))
	})

	It("renders a readable text summary", func() {
		r := buildReport("a*", "aaa", compile.Options{})
		var buf bytes.Buffer
		Expect(r.WriteText(&buf)).To(Succeed())

		out := buf.String()
		Expect(out).To(ContainSubstring(r.RunID))
		Expect(out).To(ContainSubstring("matched=true"))
		Expect(strings.Count(out, "\n")).To(BeNumerically(">=", 3))
	})
})
