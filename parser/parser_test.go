package parser_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rxmemo/ast"
	"github.com/sarchlab/rxmemo/parser"
)

var _ = Describe("Parse", func() {
	Describe("literals and concatenation", func() {
		It("parses a bare literal", func() {
			n, err := parser.Parse("a")
			Expect(err).ToNot(HaveOccurred())
			Expect(n.Kind).To(Equal(ast.KindLit))
			Expect(n.Ch).To(Equal(byte('a')))
		})

		It("parses concatenation left to right", func() {
			n, err := parser.Parse("ab")
			Expect(err).ToNot(HaveOccurred())
			Expect(n.Kind).To(Equal(ast.KindCat))
			Expect(n.Left.Ch).To(Equal(byte('a')))
			Expect(n.Right.Ch).To(Equal(byte('b')))
		})
	})

	Describe("groups", func() {
		It("assigns sequential capture-group numbers", func() {
			n, err := parser.Parse("(a)(b)")
			Expect(err).ToNot(HaveOccurred())
			Expect(n.Kind).To(Equal(ast.KindCat))
			Expect(n.Left.Kind).To(Equal(ast.KindParen))
			Expect(n.Left.CGNum).To(Equal(1))
			Expect(n.Right.Kind).To(Equal(ast.KindParen))
			Expect(n.Right.CGNum).To(Equal(2))
		})

		It("treats a non-capturing group as transparent grouping", func() {
			n, err := parser.Parse("(?:a)")
			Expect(err).ToNot(HaveOccurred())
			Expect(n.Kind).To(Equal(ast.KindLit))
		})

		It("does not consume a capture number for non-capturing groups", func() {
			n, err := parser.Parse("(?:a)(b)")
			Expect(err).ToNot(HaveOccurred())
			Expect(n.Right.Kind).To(Equal(ast.KindParen))
			Expect(n.Right.CGNum).To(Equal(1))
		})

		It("parses lookahead", func() {
			n, err := parser.Parse("(?=a)")
			Expect(err).ToNot(HaveOccurred())
			Expect(n.Kind).To(Equal(ast.KindLookahead))
		})

		It("rejects an unclosed group", func() {
			_, err := parser.Parse("(a")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("quantifiers", func() {
		It("parses greedy and non-greedy star", func() {
			n, err := parser.Parse("a*")
			Expect(err).ToNot(HaveOccurred())
			Expect(n.Kind).To(Equal(ast.KindStar))
			Expect(n.NonGreedy).To(BeFalse())

			n, err = parser.Parse("a*?")
			Expect(err).ToNot(HaveOccurred())
			Expect(n.NonGreedy).To(BeTrue())
		})

		It("parses {m,n} forms", func() {
			n, err := parser.Parse("a{2,3}")
			Expect(err).ToNot(HaveOccurred())
			Expect(n.Kind).To(Equal(ast.KindCurly))
			Expect(n.Min).To(Equal(2))
			Expect(n.Max).To(Equal(3))
		})

		It("parses {m,} as unbounded", func() {
			n, err := parser.Parse("a{2,}")
			Expect(err).ToNot(HaveOccurred())
			Expect(n.Min).To(Equal(2))
			Expect(n.Max).To(Equal(-1))
		})

		It("parses {,n} with an implicit zero minimum", func() {
			n, err := parser.Parse("a{,3}")
			Expect(err).ToNot(HaveOccurred())
			Expect(n.Min).To(Equal(0))
			Expect(n.Max).To(Equal(3))
		})

		It("rejects {,}", func() {
			_, err := parser.Parse("a{,}")
			Expect(err).To(HaveOccurred())
		})

		It("rejects a dangling quantifier", func() {
			_, err := parser.Parse("*")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("alternation", func() {
		It("parses a chain of alternatives as a left-leaning Alt chain", func() {
			n, err := parser.Parse("a|b|c")
			Expect(err).ToNot(HaveOccurred())
			Expect(n.Kind).To(Equal(ast.KindAlt))
			Expect(n.Left.Kind).To(Equal(ast.KindAlt))
			Expect(n.Right.Ch).To(Equal(byte('c')))
		})
	})

	Describe("escapes", func() {
		It("rewrites \\1..\\9 to escape nodes for later backref rewriting", func() {
			n, err := parser.Parse(`\1`)
			Expect(err).ToNot(HaveOccurred())
			Expect(n.Kind).To(Equal(ast.KindCharEscape))
			Expect(n.Ch).To(Equal(byte('1')))
		})

		It("parses word-boundary anchors", func() {
			n, err := parser.Parse(`\b`)
			Expect(err).ToNot(HaveOccurred())
			Expect(n.Kind).To(Equal(ast.KindInlineZWA))
			Expect(n.Ch).To(Equal(byte('b')))
		})
	})

	Describe("character classes", func() {
		It("parses a range", func() {
			n, err := parser.Parse("[a-z]")
			Expect(err).ToNot(HaveOccurred())
			Expect(n.Kind).To(Equal(ast.KindCustomCharClass))
			Expect(n.Left.Kind).To(Equal(ast.KindCharRange))
			Expect(n.Left.Lo).To(Equal(byte('a')))
			Expect(n.Left.Hi).To(Equal(byte('z')))
		})

		It("parses an inverted class", func() {
			n, err := parser.Parse("[^a-z]")
			Expect(err).ToNot(HaveOccurred())
			Expect(n.Invert).To(BeTrue())
		})

		It("treats a trailing dash as a literal", func() {
			n, err := parser.Parse("[a-]")
			Expect(err).ToNot(HaveOccurred())
			Expect(n.PlusDash).To(BeTrue())
		})

		It("rejects a descending range", func() {
			_, err := parser.Parse("[z-a]")
			Expect(err).To(HaveOccurred())
		})

		It("rejects an unclosed class", func() {
			_, err := parser.Parse("[a-z")
			Expect(err).To(HaveOccurred())
		})
	})
})
