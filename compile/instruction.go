// Package compile lowers a normalized ast.Node tree into a flat
// Program of Instructions. compile assigns every instruction a dense
// StateNum in a flat, PC-addressed array that the VM later walks with
// an explicit cursor instead of following pointers.
package compile

import "fmt"

// Opcode discriminates the instruction variants spec.md §3 lists.
type Opcode int

const (
	OpChar Opcode = iota
	OpCharClass
	OpAny
	OpMatch
	OpJmp
	OpSplit
	OpSplitMany
	OpSave
	OpStringCompare
	OpInlineZeroWidthAssertion
	OpRecursiveZeroWidthAssertion
	OpRecursiveMatch
)

func (op Opcode) String() string {
	switch op {
	case OpChar:
		return "Char"
	case OpCharClass:
		return "CharClass"
	case OpAny:
		return "Any"
	case OpMatch:
		return "Match"
	case OpJmp:
		return "Jmp"
	case OpSplit:
		return "Split"
	case OpSplitMany:
		return "SplitMany"
	case OpSave:
		return "Save"
	case OpStringCompare:
		return "StringCompare"
	case OpInlineZeroWidthAssertion:
		return "InlineZeroWidthAssertion"
	case OpRecursiveZeroWidthAssertion:
		return "RecursiveZeroWidthAssertion"
	case OpRecursiveMatch:
		return "RecursiveMatch"
	default:
		return fmt.Sprintf("Opcode(%d)", int(op))
	}
}

// CharRange is one inclusive [Lo, Hi] byte range within a CharClass
// instruction's range set.
type CharRange struct {
	Lo, Hi byte
}

// MemoInfo is the per-instruction memoization annotation
// determineMemoNodes assigns (spec.md §4.3 "vertex selection").
type MemoInfo struct {
	ShouldMemo    bool
	MemoStateNum  int // -1, or 0..nMemoizedStates-1
	VisitInterval int // k >= 1; the RLE run-width for this vertex
}

// Instruction is one opcode of the compiled program. Edge fields (X, Y,
// Edges) are instruction indices into the owning Program, never
// pointers (spec.md design note: back-edges by index).
type Instruction struct {
	Op Opcode

	C byte // OpChar, OpInlineZeroWidthAssertion: the character to match/assert
	N int  // OpSave: capture slot index

	X, Y int // OpJmp/OpSplit targets; -1 when unused
	Edges []int // OpSplitMany branch targets, edges[0] is tried first
	Arity int   // OpSplitMany: len(Edges)

	CharRanges []CharRange // OpCharClass
	Invert     bool        // OpCharClass: whole-instruction invert

	CGNum int // OpStringCompare: backreferenced capture group number

	StateNum int // dense index == this instruction's position in Program.Instructions

	Memo MemoInfo
}
