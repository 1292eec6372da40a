package transform

import "github.com/sarchlab/rxmemo/ast"

// eliminateCurly rewrites every ast.KindCurly node bottom-up per
// spec.md §4.2.1: X{m,n} becomes an m-copy prefix (A·A·...·A)
// concatenated with a suffix: A* if n is unbounded, or a right-nested
// A? chain of depth n-m otherwise. A nil *ast.Node is this package's
// convention for "matches empty, contributes no instructions" (mirrors
// ast.Cat's existing nil-is-identity treatment), used for {0,0}.
//
// Subtree sharing: repeated copies of A are the same *ast.Node shared
// across the prefix chain, not deep clones. Every later pass (alt
// flattening, backref rewriting, CCC flattening) is idempotent given
// the same node, and compile walks the tree by position, not identity,
// so a shared occurrence still emits one independent instruction
// sequence per place it appears.
func eliminateCurly(n *ast.Node) *ast.Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case ast.KindCurly:
		child := eliminateCurly(n.Left)
		return buildCurly(child, n.Min, n.Max, n.NonGreedy)
	case ast.KindCat:
		return ast.Cat(eliminateCurly(n.Left), eliminateCurly(n.Right))
	case ast.KindAlt:
		return ast.Alt(eliminateCurly(n.Left), eliminateCurly(n.Right))
	case ast.KindAltList:
		children := make([]*ast.Node, len(n.Children))
		for i, c := range n.Children {
			children[i] = eliminateCurly(c)
		}
		return ast.AltList(children)
	case ast.KindParen:
		return ast.Paren(n.CGNum, eliminateCurly(n.Left))
	case ast.KindLookahead:
		return ast.Lookahead(eliminateCurly(n.Left))
	case ast.KindQuest:
		return ast.Quest(eliminateCurly(n.Left), n.NonGreedy)
	case ast.KindStar:
		return ast.Star(eliminateCurly(n.Left), n.NonGreedy)
	case ast.KindPlus:
		return ast.Plus(eliminateCurly(n.Left), n.NonGreedy)
	default:
		// Lit, Dot, CharEscape, CharRange, CustomCharClass, InlineZWA,
		// Backref: leaves as far as curly elimination is concerned.
		return n
	}
}

func buildCurly(child *ast.Node, min, max int, nonGreedy bool) *ast.Node {
	var prefix *ast.Node
	for i := 0; i < min; i++ {
		prefix = ast.Cat(prefix, child)
	}

	var suffix *ast.Node
	switch {
	case max == -1:
		suffix = ast.Star(child, nonGreedy)
	case max-min > 0:
		suffix = nestedQuest(child, max-min, nonGreedy)
	}

	switch {
	case prefix != nil && suffix != nil:
		return ast.Cat(prefix, suffix)
	case prefix != nil:
		return prefix
	default:
		return suffix // nil for {0,0}
	}
}

// nestedQuest builds the right-nested A? chain of the given depth:
// depth 1 is Quest(A); depth d>1 is Quest(Cat(A, nestedQuest(A, d-1))).
func nestedQuest(child *ast.Node, depth int, nonGreedy bool) *ast.Node {
	if depth <= 0 {
		return nil
	}
	if depth == 1 {
		return ast.Quest(child, nonGreedy)
	}
	return ast.Quest(ast.Cat(child, nestedQuest(child, depth-1, nonGreedy)), nonGreedy)
}
