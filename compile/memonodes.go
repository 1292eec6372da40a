package compile

// allSuccessors returns every instruction this one can transfer
// control to in the flat program layout, including the implicit
// fallthrough to pc+1 that non-branching opcodes take once they
// resolve. Used for in-degree computation and the LOOP_DEST policy;
// unlike epsilonSuccessors in loopcheck.go it does not distinguish
// zero-width transitions from ones that consume a byte.
func allSuccessors(pc int, inst Instruction) []int {
	switch inst.Op {
	case OpChar, OpAny, OpCharClass, OpStringCompare, OpSave, OpInlineZeroWidthAssertion:
		return []int{pc + 1}
	case OpJmp:
		return []int{inst.X}
	case OpSplit:
		return []int{inst.X, inst.Y}
	case OpSplitMany:
		return inst.Edges
	case OpRecursiveZeroWidthAssertion:
		return []int{inst.X, inst.Y}
	default: // OpMatch, OpRecursiveMatch: terminal
		return nil
	}
}

// determineMemoNodes implements the vertex-selection policy
// (NONE/FULL/INDEG_GT1/LOOP_DEST), assigns each selected vertex a
// dense MemoStateNum, and sets every instruction's VisitInterval
// (spec.md §4.3).
func determineMemoNodes(p *Program, mode MemoMode, encoding MemoEncoding, rleK int) {
	shouldMemo := make([]bool, p.Len)

	switch mode {
	case MemoNone:
		// leave all false
	case MemoFull:
		for i := range shouldMemo {
			shouldMemo[i] = true
		}
	case MemoIndegGT1:
		indeg := make([]int, p.Len)
		for pc, inst := range p.Instructions {
			for _, t := range allSuccessors(pc, inst) {
				indeg[t]++
			}
		}
		for i, d := range indeg {
			shouldMemo[i] = d > 1
		}
	case MemoLoopDest:
		// A back-edge is any control-flow edge whose target is at or
		// before its own source in the flat layout; compile emits such
		// an edge only as a loop-closing Jmp (Star) or Split (Plus), so
		// this generic rule memoizes a Star's Split (the Jmp's target)
		// and a Plus's body start (the Split's back-edge target)
		// without special-casing either shape.
		for pc, inst := range p.Instructions {
			for _, t := range allSuccessors(pc, inst) {
				if t <= pc {
					shouldMemo[t] = true
				}
			}
		}
	}

	visitInterval := 1
	if encoding == EncodingRLETuned {
		visitInterval = rleK
	}

	nextMemoStateNum := 0
	for i := range p.Instructions {
		p.Instructions[i].Memo.VisitInterval = visitInterval
		if shouldMemo[i] {
			p.Instructions[i].Memo.ShouldMemo = true
			p.Instructions[i].Memo.MemoStateNum = nextMemoStateNum
			nextMemoStateNum++
		} else {
			p.Instructions[i].Memo.ShouldMemo = false
			p.Instructions[i].Memo.MemoStateNum = -1
		}
	}
	p.NMemoizedStates = nextMemoStateNum
}
