package compile

import (
	"fmt"

	"github.com/sarchlab/rxmemo/ast"
	"github.com/sarchlab/rxmemo/internal/rxerr"
)

// MemoMode selects which program vertices get memoized (spec.md §4.3).
type MemoMode int

const (
	MemoNone MemoMode = iota
	MemoFull
	MemoIndegGT1
	MemoLoopDest
)

func (m MemoMode) String() string {
	switch m {
	case MemoNone:
		return "NONE"
	case MemoFull:
		return "FULL"
	case MemoIndegGT1:
		return "INDEG_GT1"
	case MemoLoopDest:
		return "LOOP_DEST"
	default:
		return fmt.Sprintf("MemoMode(%d)", int(m))
	}
}

// MemoEncoding selects the memo table's physical representation
// (spec.md §4.5).
type MemoEncoding int

const (
	EncodingNone MemoEncoding = iota
	EncodingNegative
	EncodingRLE
	EncodingRLETuned
)

func (e MemoEncoding) String() string {
	switch e {
	case EncodingNone:
		return "NONE"
	case EncodingNegative:
		return "NEGATIVE"
	case EncodingRLE:
		return "RLE"
	case EncodingRLETuned:
		return "RLE_TUNED"
	default:
		return fmt.Sprintf("MemoEncoding(%d)", int(e))
	}
}

// Options configures a single Compile call.
type Options struct {
	MemoMode     MemoMode
	MemoEncoding MemoEncoding
	RLEK         int // used only when MemoEncoding == EncodingRLETuned; must be >= 1
}

// Program is the flat, emitted instruction sequence plus the metadata
// the VM and memo table need (spec.md §3 "Program").
type Program struct {
	Instructions []Instruction
	Len          int
	NMemoizedStates int
	MemoMode        MemoMode
	MemoEncoding    MemoEncoding
	EOLAnchor       bool
}

// Compile normalizes nothing further (the caller runs transform.Normalize
// first) and lowers the AST into a Program, then assigns vertex
// selection/visit intervals and verifies termination.
//
// The opts.MemoMode == MemoNone case forces opts.MemoEncoding to
// EncodingNone regardless of what the caller passed, per spec.md §6.
func Compile(root *ast.Node, opts Options) (*Program, error) {
	if opts.MemoMode == MemoNone {
		opts.MemoEncoding = EncodingNone
	}
	if opts.MemoEncoding == EncodingRLETuned && opts.RLEK < 1 {
		return nil, fmt.Errorf("%w: RLE_TUNED requires rleK >= 1, got %d", rxerr.ErrUnsupportedFeature, opts.RLEK)
	}

	// Wrap the whole pattern in an implicit capturing group 0, so the
	// overall match span comes out through the same Save(0)/Save(1)
	// mechanism as any other group, at sub slots 0 and 1.
	wrapped := ast.Paren(0, root)

	n := count(wrapped)
	c := &compiler{prog: make([]Instruction, n+1)}
	end := c.emit(wrapped, 0)
	if end != n {
		// Should be unreachable if count and emit agree; guards against
		// a mismatched pass rather than corrupting the program silently.
		return nil, fmt.Errorf("%w: emitted %d instructions, counted %d", rxerr.ErrUnsupportedFeature, end, n)
	}
	c.prog[n] = Instruction{Op: OpMatch, X: -1, Y: -1}

	for i := range c.prog {
		c.prog[i].StateNum = i
	}

	p := &Program{
		Instructions: c.prog,
		Len:          len(c.prog),
		MemoMode:     opts.MemoMode,
		MemoEncoding: opts.MemoEncoding,
		EOLAnchor:    astHasEOLAnchor(root),
	}

	if err := assertNoInfiniteLoops(p); err != nil {
		return nil, err
	}

	determineMemoNodes(p, opts.MemoMode, opts.MemoEncoding, opts.RLEK)

	return p, nil
}

// astHasEOLAnchor reports whether the (already-normalized) tree ends
// in a top-level '$' anchor, used only to set Program.EOLAnchor for
// driver-level reporting; the VM enforces '$' via the instruction
// itself regardless of this flag.
func astHasEOLAnchor(n *ast.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case ast.KindInlineZWA:
		return n.Ch == '$'
	case ast.KindCat:
		return astHasEOLAnchor(n.Right)
	case ast.KindAltList:
		for _, c := range n.Children {
			if !astHasEOLAnchor(c) {
				return false
			}
		}
		return len(n.Children) > 0
	default:
		return false
	}
}

type compiler struct {
	prog []Instruction
}

// count returns the number of instructions node n lowers to, per the
// table in spec.md §4.3. A nil node (this package's "matches empty"
// convention, inherited from transform) costs 0.
func count(n *ast.Node) int {
	if n == nil {
		return 0
	}
	switch n.Kind {
	case ast.KindLit, ast.KindDot, ast.KindCharEscape, ast.KindCustomCharClass, ast.KindBackref, ast.KindInlineZWA:
		return 1
	case ast.KindParen:
		return 2 + count(n.Left)
	case ast.KindQuest:
		return 1 + count(n.Left)
	case ast.KindStar:
		return 2 + count(n.Left)
	case ast.KindPlus:
		return 1 + count(n.Left)
	case ast.KindLookahead:
		return 2 + count(n.Left)
	case ast.KindAlt:
		return 2 + count(n.Left) + count(n.Right)
	case ast.KindAltList:
		total := 1
		for _, c := range n.Children {
			total += count(c) + 1
		}
		return total
	case ast.KindCat:
		return count(n.Left) + count(n.Right)
	default:
		return 0
	}
}

// emit lowers n into c.prog starting at pc and returns the next free
// pc. Every recursive call site already knows, via count, exactly how
// many slots its subtree needs, so edge targets that point past a
// subtree (e.g. a Quest's "skip" edge) are computed directly from the
// returned pc rather than patched after the fact.
func (c *compiler) emit(n *ast.Node, pc int) int {
	if n == nil {
		return pc
	}
	switch n.Kind {
	case ast.KindLit:
		c.prog[pc] = Instruction{Op: OpChar, C: n.Ch, X: -1, Y: -1}
		return pc + 1
	case ast.KindDot:
		c.prog[pc] = Instruction{Op: OpAny, X: -1, Y: -1}
		return pc + 1
	case ast.KindCharEscape:
		c.prog[pc] = escapeInstruction(n.Ch)
		return pc + 1
	case ast.KindCustomCharClass:
		c.prog[pc] = cccInstruction(n)
		return pc + 1
	case ast.KindBackref:
		c.prog[pc] = Instruction{Op: OpStringCompare, CGNum: n.CGNum, X: -1, Y: -1}
		return pc + 1
	case ast.KindInlineZWA:
		c.prog[pc] = Instruction{Op: OpInlineZeroWidthAssertion, C: n.Ch, X: -1, Y: -1}
		return pc + 1
	case ast.KindParen:
		c.prog[pc] = Instruction{Op: OpSave, N: 2 * n.CGNum, X: -1, Y: -1}
		end := c.emit(n.Left, pc+1)
		c.prog[end] = Instruction{Op: OpSave, N: 2*n.CGNum + 1, X: -1, Y: -1}
		return end + 1
	case ast.KindQuest:
		splitPC := pc
		childEnd := c.emit(n.Left, pc+1)
		x, y := pc+1, childEnd
		if n.NonGreedy {
			x, y = y, x
		}
		c.prog[splitPC] = Instruction{Op: OpSplit, X: x, Y: y}
		return childEnd
	case ast.KindStar:
		splitPC := pc
		childEnd := c.emit(n.Left, pc+1)
		jmpPC := childEnd
		post := jmpPC + 1
		x, y := pc+1, post
		if n.NonGreedy {
			x, y = y, x
		}
		c.prog[splitPC] = Instruction{Op: OpSplit, X: x, Y: y}
		c.prog[jmpPC] = Instruction{Op: OpJmp, X: splitPC, Y: -1}
		return post
	case ast.KindPlus:
		childEnd := c.emit(n.Left, pc)
		splitPC := childEnd
		post := splitPC + 1
		x, y := pc, post
		if n.NonGreedy {
			x, y = y, x
		}
		c.prog[splitPC] = Instruction{Op: OpSplit, X: x, Y: y}
		return post
	case ast.KindLookahead:
		rzwaPC := pc
		childEnd := c.emit(n.Left, pc+1)
		rmPC := childEnd
		c.prog[rmPC] = Instruction{Op: OpRecursiveMatch, X: -1, Y: -1}
		c.prog[rzwaPC] = Instruction{Op: OpRecursiveZeroWidthAssertion, X: pc + 1, Y: rmPC + 1}
		return rmPC + 1
	case ast.KindCat:
		mid := c.emit(n.Left, pc)
		return c.emit(n.Right, mid)
	case ast.KindAltList:
		return c.emitAltList(n, pc)
	case ast.KindAlt:
		// Normalize always flattens this into AltList before compile
		// runs; handled here only so Compile degrades gracefully if
		// called on a pre-transform tree. Lowered as Split, left, Jmp,
		// right, matching count's 2+L+R.
		splitPC := pc
		jmpPC := c.emit(n.Left, pc+1)
		post := c.emit(n.Right, jmpPC+1)
		c.prog[splitPC] = Instruction{Op: OpSplit, X: pc + 1, Y: jmpPC + 1}
		c.prog[jmpPC] = Instruction{Op: OpJmp, X: post, Y: -1}
		return post
	default:
		return pc
	}
}

func (c *compiler) emitAltList(n *ast.Node, pc int) int {
	splitPC := pc
	arity := len(n.Children)
	edges := make([]int, arity)
	jmpPCs := make([]int, arity)
	cursor := pc + 1
	for i, child := range n.Children {
		edges[i] = cursor
		cursor = c.emit(child, cursor)
		jmpPCs[i] = cursor
		cursor++ // reserve the per-branch Jmp
	}
	post := cursor
	for _, jpc := range jmpPCs {
		c.prog[jpc] = Instruction{Op: OpJmp, X: post, Y: -1}
	}
	c.prog[splitPC] = Instruction{Op: OpSplitMany, Edges: edges, Arity: arity, X: -1, Y: -1}
	return post
}
