// Package transform rewrites a parsed ast.Node tree into the normalized
// form compile expects; each pass builds new nodes and returns the new
// root rather than mutating the input: see curly.go, altflatten.go,
// backref.go and charclass.go for the four passes, applied in that
// fixed order.
//
// Each pass lives in its own file, one file per normalization concern.
package transform

import "github.com/sarchlab/rxmemo/ast"

// Normalize applies all four passes in order and returns the
// rewritten root (a pass may replace the root node, e.g. curly
// elimination replacing a top-level {m,n}).
func Normalize(root *ast.Node) *ast.Node {
	root = eliminateCurly(root)
	root = flattenAlt(root)
	root = rewriteBackrefs(root)
	root = flattenCharClasses(root)
	return root
}
