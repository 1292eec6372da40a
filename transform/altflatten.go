package transform

import "github.com/sarchlab/rxmemo/ast"

// flattenAlt rewrites every left-leaning Alt chain into a single
// AltList of >= 2 non-Alt children, preserving left-to-right order
// (spec.md §4.2.2). It also recurses into every other node kind so
// nested alternations (inside groups, quantifier bodies, etc.) are
// flattened too.
func flattenAlt(n *ast.Node) *ast.Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case ast.KindAlt:
		var children []*ast.Node
		collectAltChain(n, &children)
		for i, c := range children {
			children[i] = flattenAlt(c)
		}
		return ast.AltList(children)
	case ast.KindAltList:
		children := make([]*ast.Node, len(n.Children))
		for i, c := range n.Children {
			children[i] = flattenAlt(c)
		}
		return ast.AltList(children)
	case ast.KindCat:
		return ast.Cat(flattenAlt(n.Left), flattenAlt(n.Right))
	case ast.KindParen:
		return ast.Paren(n.CGNum, flattenAlt(n.Left))
	case ast.KindLookahead:
		return ast.Lookahead(flattenAlt(n.Left))
	case ast.KindQuest:
		return ast.Quest(flattenAlt(n.Left), n.NonGreedy)
	case ast.KindStar:
		return ast.Star(flattenAlt(n.Left), n.NonGreedy)
	case ast.KindPlus:
		return ast.Plus(flattenAlt(n.Left), n.NonGreedy)
	default:
		return n
	}
}

// collectAltChain walks a left-leaning Alt(Alt(Alt(A,B),C),D) tree and
// appends its leaves to out in left-to-right order: A, B, C, D.
func collectAltChain(n *ast.Node, out *[]*ast.Node) {
	if n.Kind == ast.KindAlt {
		collectAltChain(n.Left, out)
		collectAltChain(n.Right, out)
		return
	}
	*out = append(*out, n)
}
