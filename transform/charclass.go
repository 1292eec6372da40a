package transform

import "github.com/sarchlab/rxmemo/ast"

// flattenCharClasses flattens the left-leaning CharRange/CharEscape
// chain inside every CustomCharClass into a flat Children slice,
// setting MergedRanges and clearing Left/Right (spec.md §4.2.4).
func flattenCharClasses(n *ast.Node) *ast.Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case ast.KindCustomCharClass:
		var children []*ast.Node
		collectCCCChain(n.Left, &children)
		return &ast.Node{
			Kind:         ast.KindCustomCharClass,
			Invert:       n.Invert,
			PlusDash:     n.PlusDash,
			MergedRanges: true,
			Children:     children,
		}
	case ast.KindCat:
		return ast.Cat(flattenCharClasses(n.Left), flattenCharClasses(n.Right))
	case ast.KindAltList:
		children := make([]*ast.Node, len(n.Children))
		for i, c := range n.Children {
			children[i] = flattenCharClasses(c)
		}
		return ast.AltList(children)
	case ast.KindAlt:
		return ast.Alt(flattenCharClasses(n.Left), flattenCharClasses(n.Right))
	case ast.KindParen:
		return ast.Paren(n.CGNum, flattenCharClasses(n.Left))
	case ast.KindLookahead:
		return ast.Lookahead(flattenCharClasses(n.Left))
	case ast.KindQuest:
		return ast.Quest(flattenCharClasses(n.Left), n.NonGreedy)
	case ast.KindStar:
		return ast.Star(flattenCharClasses(n.Left), n.NonGreedy)
	case ast.KindPlus:
		return ast.Plus(flattenCharClasses(n.Left), n.NonGreedy)
	default:
		return n
	}
}

// collectCCCChain walks the left-leaning Cat chain the parser builds
// for a character class's members and appends each member (a
// CharRange or a built-in CharEscape) to out in original order.
func collectCCCChain(n *ast.Node, out *[]*ast.Node) {
	if n == nil {
		return
	}
	if n.Kind == ast.KindCat {
		collectCCCChain(n.Left, out)
		collectCCCChain(n.Right, out)
		return
	}
	*out = append(*out, n)
}
