package transform

import "github.com/sarchlab/rxmemo/ast"

// rewriteBackrefs rewrites every CharEscape(ch) where ch is a decimal
// digit 1-9 into a Backref(cgNum = ch - '0') (spec.md §4.2.3).
func rewriteBackrefs(n *ast.Node) *ast.Node {
	if n == nil {
		return nil
	}
	if n.Kind == ast.KindCharEscape && n.Ch >= '1' && n.Ch <= '9' {
		return ast.Backref(int(n.Ch - '0'))
	}
	switch n.Kind {
	case ast.KindCat:
		return ast.Cat(rewriteBackrefs(n.Left), rewriteBackrefs(n.Right))
	case ast.KindAltList:
		children := make([]*ast.Node, len(n.Children))
		for i, c := range n.Children {
			children[i] = rewriteBackrefs(c)
		}
		return ast.AltList(children)
	case ast.KindAlt:
		return ast.Alt(rewriteBackrefs(n.Left), rewriteBackrefs(n.Right))
	case ast.KindParen:
		return ast.Paren(n.CGNum, rewriteBackrefs(n.Left))
	case ast.KindLookahead:
		return ast.Lookahead(rewriteBackrefs(n.Left))
	case ast.KindQuest:
		return ast.Quest(rewriteBackrefs(n.Left), n.NonGreedy)
	case ast.KindStar:
		return ast.Star(rewriteBackrefs(n.Left), n.NonGreedy)
	case ast.KindPlus:
		return ast.Plus(rewriteBackrefs(n.Left), n.NonGreedy)
	default:
		return n
	}
}
