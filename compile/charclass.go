package compile

import "github.com/sarchlab/rxmemo/ast"

// escapeRanges gives the inclusive byte ranges a built-in escape class
// expands to. \S, \W, \D are the same ranges as \s, \w, \d with the
// instruction's Invert flag set rather than a separately tabulated
// complement.
var escapeRanges = map[byte][]CharRange{
	's': {{Lo: 9, Hi: 13}, {Lo: 28, Hi: 32}},
	'w': {{Lo: '0', Hi: '9'}, {Lo: 'A', Hi: 'Z'}, {Lo: 'a', Hi: 'z'}},
	'd': {{Lo: '0', Hi: '9'}},
}

var escapeLiterals = map[byte]byte{
	'n': '\n',
	't': '\t',
	'r': '\r',
	'f': '\f',
	'v': '\v',
}

// escapeInstruction lowers a standalone (outside any [...]) CharEscape
// node into one instruction: \n\t\r\f\v are literal bytes, \s\w\d (and
// their uppercase complements) become an inline CharClass.
func escapeInstruction(ch byte) Instruction {
	if lit, ok := escapeLiterals[ch]; ok {
		return Instruction{Op: OpChar, C: lit, X: -1, Y: -1}
	}
	lower := ch
	invert := false
	switch ch {
	case 'S':
		lower, invert = 's', true
	case 'W':
		lower, invert = 'w', true
	case 'D':
		lower, invert = 'd', true
	}
	return Instruction{Op: OpCharClass, CharRanges: escapeRanges[lower], Invert: invert, X: -1, Y: -1}
}

// cccInstruction lowers a flattened CustomCharClass node (transform's
// flattenCharClasses has already merged its Children into a flat list
// of CharRange/CharEscape leaves) into one CharClass instruction.
//
// An uppercase escape member (\S \W \D) inside [...] has no single
// instruction-level Invert bit to hand it, since it must coexist with
// sibling ranges rather than invert the whole class; it is expanded to
// its literal complement ranges instead.
func cccInstruction(n *ast.Node) Instruction {
	var ranges []CharRange
	for _, c := range n.Children {
		switch c.Kind {
		case ast.KindCharRange:
			ranges = append(ranges, CharRange{Lo: c.Lo, Hi: c.Hi})
		case ast.KindCharEscape:
			switch c.Ch {
			case 'S':
				ranges = append(ranges, complementRanges(escapeRanges['s'])...)
			case 'W':
				ranges = append(ranges, complementRanges(escapeRanges['w'])...)
			case 'D':
				ranges = append(ranges, complementRanges(escapeRanges['d'])...)
			default:
				if lit, ok := escapeLiterals[c.Ch]; ok {
					ranges = append(ranges, CharRange{Lo: lit, Hi: lit})
					continue
				}
				ranges = append(ranges, escapeRanges[c.Ch]...)
			}
		}
	}
	if n.PlusDash {
		ranges = append(ranges, CharRange{Lo: '-', Hi: '-'})
	}
	return Instruction{Op: OpCharClass, CharRanges: ranges, Invert: n.Invert, X: -1, Y: -1}
}

// complementRanges returns the inclusive byte ranges covering 0x00-0xFF
// that are not covered by rs, which must already be sorted and
// non-overlapping.
func complementRanges(rs []CharRange) []CharRange {
	var out []CharRange
	next := 0
	for _, r := range rs {
		if int(r.Lo) > next {
			out = append(out, CharRange{Lo: byte(next), Hi: r.Lo - 1})
		}
		if int(r.Hi)+1 > next {
			next = int(r.Hi) + 1
		}
	}
	if next <= 0xFF {
		out = append(out, CharRange{Lo: byte(next), Hi: 0xFF})
	}
	return out
}
