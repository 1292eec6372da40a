package compile

import "fmt"

import "github.com/sarchlab/rxmemo/internal/rxerr"

// assertNoInfiniteLoops rejects programs containing an epsilon cycle: a
// chain of Jmp/Split/SplitMany edges that returns to its own starting
// instruction without crossing an instruction that consumes input
// (Char, Any, CharClass, and StringCompare, which is treated as
// consuming even though a backreference to an empty group consumes
// nothing) or terminates (Match). Without this check a pattern like the degenerate (a*)* would
// let the VM spin forever pushing zero-width threads.
//
// This walks the static instruction graph rather than simulating a
// run, so it catches the defect at compile time regardless of input.
func assertNoInfiniteLoops(p *Program) error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, p.Len)

	var visit func(pc int) error
	visit = func(pc int) error {
		switch color[pc] {
		case black:
			return nil
		case gray:
			return fmt.Errorf("%w: epsilon cycle reaches instruction %d", rxerr.ErrInfiniteLoop, pc)
		}
		color[pc] = gray
		for _, next := range epsilonSuccessors(p.Instructions[pc]) {
			if err := visit(next); err != nil {
				return err
			}
		}
		color[pc] = black
		return nil
	}

	for pc := range p.Instructions {
		if color[pc] == white {
			if err := visit(pc); err != nil {
				return err
			}
		}
	}
	return nil
}

// epsilonSuccessors returns the instructions reachable from inst
// without consuming a byte of input: Jmp/Split/SplitMany targets, the
// Save/InlineZeroWidthAssertion fall-through to pc+1, and for
// RecursiveZeroWidthAssertion both its lookahead body (X) and its
// post-lookahead continuation (Y). Char/Any/CharClass/StringCompare
// are not epsilon transitions, and Match/RecursiveMatch are terminal,
// so none of those contribute successors here.
func epsilonSuccessors(inst Instruction) []int {
	switch inst.Op {
	case OpJmp:
		return []int{inst.X}
	case OpSplit:
		return []int{inst.X, inst.Y}
	case OpSplitMany:
		return inst.Edges
	case OpSave, OpInlineZeroWidthAssertion:
		return []int{inst.StateNum + 1}
	case OpRecursiveZeroWidthAssertion:
		// X starts the lookahead's own sub-program (so a cycle entirely
		// inside the lookahead body is still caught); Y is where outer
		// control flow resumes once the VM has run it to completion.
		return []int{inst.X, inst.Y}
	default:
		return nil
	}
}
