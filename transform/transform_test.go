package transform_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rxmemo/ast"
	"github.com/sarchlab/rxmemo/parser"
	"github.com/sarchlab/rxmemo/transform"
)

// hasCurly and hasNestedAlt walk the tree to check the spec.md §8
// invariant-1 properties: no Curly nodes survive, and no AltList
// child is itself an Alt/AltList.
func hasCurly(n *ast.Node) bool {
	if n == nil {
		return false
	}
	if n.Kind == ast.KindCurly {
		return true
	}
	return anyChild(n, hasCurly)
}

func hasNestedAlt(n *ast.Node) bool {
	if n == nil {
		return false
	}
	if n.Kind == ast.KindAlt {
		return true
	}
	if n.Kind == ast.KindAltList {
		for _, c := range n.Children {
			if c.Kind == ast.KindAlt || c.Kind == ast.KindAltList {
				return true
			}
		}
	}
	return anyChild(n, hasNestedAlt)
}

func anyChild(n *ast.Node, pred func(*ast.Node) bool) bool {
	if pred(n.Left) || pred(n.Right) {
		return true
	}
	for _, c := range n.Children {
		if pred(c) {
			return true
		}
	}
	return false
}

func normalize(pattern string) *ast.Node {
	n, err := parser.Parse(pattern)
	Expect(err).ToNot(HaveOccurred())
	return transform.Normalize(n)
}

var _ = Describe("Normalize", func() {
	DescribeTable("leaves no Curly node and no nested Alt",
		func(pattern string) {
			n := normalize(pattern)
			Expect(hasCurly(n)).To(BeFalse())
			Expect(hasNestedAlt(n)).To(BeFalse())
		},
		Entry("plain curly", "a{2,3}"),
		Entry("unbounded curly", "a{2,}"),
		Entry("nested curly in group", "(a{1,2}b){0,3}"),
		Entry("alternation chain", "a|b|c|d"),
		Entry("alternation inside group", "(a|b|c)+"),
	)

	Describe("curly elimination", func() {
		It("builds an m-copy prefix concatenated with a Star suffix for {m,}", func() {
			n := normalize("a{2,}")
			// Cat(Cat(a,a), Star(a))
			Expect(n.Kind).To(Equal(ast.KindCat))
			Expect(n.Right.Kind).To(Equal(ast.KindStar))
		})

		It("builds a nested Quest suffix for {m,n}", func() {
			n := normalize("a{1,3}")
			Expect(n.Kind).To(Equal(ast.KindCat))
			Expect(n.Left.Kind).To(Equal(ast.KindLit)) // single prefix copy
			Expect(n.Right.Kind).To(Equal(ast.KindQuest))
			Expect(n.Right.Left.Kind).To(Equal(ast.KindCat))
			Expect(n.Right.Left.Right.Kind).To(Equal(ast.KindQuest))
		})

		It("produces only the Star suffix when m=0", func() {
			n := normalize("a{0,}")
			Expect(n.Kind).To(Equal(ast.KindStar))
		})

		It("produces nil for {0,0}", func() {
			n := normalize("a{0,0}")
			Expect(n).To(BeNil())
		})
	})

	Describe("alt flattening", func() {
		It("collapses a chain into one AltList in original order", func() {
			n := normalize("a|b|c")
			Expect(n.Kind).To(Equal(ast.KindAltList))
			Expect(n.Children).To(HaveLen(3))
			Expect(n.Children[0].Ch).To(Equal(byte('a')))
			Expect(n.Children[1].Ch).To(Equal(byte('b')))
			Expect(n.Children[2].Ch).To(Equal(byte('c')))
		})
	})

	Describe("backref rewriting", func() {
		It("rewrites \\1 into a Backref node", func() {
			n := normalize(`(a)\1`)
			Expect(n.Kind).To(Equal(ast.KindCat))
			Expect(n.Right.Kind).To(Equal(ast.KindBackref))
			Expect(n.Right.CGNum).To(Equal(1))
		})
	})

	Describe("CCC range flattening", func() {
		It("flattens the range chain and sets MergedRanges", func() {
			n := normalize(`[a-z\d]`)
			Expect(n.Kind).To(Equal(ast.KindCustomCharClass))
			Expect(n.MergedRanges).To(BeTrue())
			Expect(n.Left).To(BeNil())
			Expect(n.Right).To(BeNil())
			Expect(n.Children).To(HaveLen(2))
		})
	})
})
