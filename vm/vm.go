// Package vm is the backtracking virtual machine: it walks a
// compile.Program against an input string with an explicit LIFO
// thread stack, consulting a memo.Table to short-circuit search
// states already known to be dead ends.
//
// The dispatch loop runs one thread at a time until it dies or
// matches, pushing alternatives (Split/SplitMany) onto the stack
// rather than recursing, and pops the next ready thread from the top
// of the stack once the current one is done.
package vm

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/sarchlab/rxmemo/compile"
	"github.com/sarchlab/rxmemo/internal/rxerr"
	"github.com/sarchlab/rxmemo/memo"
)

// Result is the outcome of one backtrack invocation.
type Result struct {
	Matched bool
	Sub     Sub
	Err     error
}

// Options configures a VM, built with functional options.
type Options struct {
	maxReadyStack int
	logger        logr.Logger
}

// Option configures a VM.
type Option func(*Options)

// WithMaxReadyStack overrides the default ready-stack depth (1000).
func WithMaxReadyStack(n int) Option {
	return func(o *Options) { o.maxReadyStack = n }
}

// WithLogger attaches a logr.Logger the VM reports match/no-match
// events to at V(1) and thread-death events to at V(2).
func WithLogger(l logr.Logger) Option {
	return func(o *Options) { o.logger = l }
}

const defaultMaxReadyStack = 1000

// Run executes prog against input once, using memoTable for the
// search-state memo protocol, and returns the match result plus the
// visit statistics accumulated along the way. Stats are always
// populated, whether or not the match succeeds or an error occurs.
func Run(prog *compile.Program, input []byte, memoTable memo.Table, opts ...Option) (Result, *RunStats) {
	o := Options{maxReadyStack: defaultMaxReadyStack, logger: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	m := &machine{
		prog:      prog,
		input:     input,
		memoTable: memoTable,
		opts:      o,
		stats:     newRunStats(prog.Len, len(input)),
	}

	matched, sub, err := m.run(0, 0, unsetSub(), o.maxReadyStack)
	res := Result{Matched: matched, Err: err}
	if matched && sub != nil {
		res.Sub = *sub
	}
	return res, m.stats
}

type thread struct {
	pc, sp int
	sub    *Sub
}

type machine struct {
	prog      *compile.Program
	input     []byte
	memoTable memo.Table
	opts      Options
	stats     *RunStats
}

// run explores the program starting at (startPC, startSP) with its
// own bounded ready stack, returning as soon as some thread reaches a
// Match or RecursiveMatch instruction. It is called once for the
// top-level match (startPC=0) and recursively, sharing the same memo
// table and stats, for each RecursiveZeroWidthAssertion lookahead.
func (m *machine) run(startPC, startSP int, startSub *Sub, maxReadyStack int) (bool, *Sub, error) {
	stack := make([]thread, 0, 16)
	push := func(t thread) error {
		if len(stack) >= maxReadyStack {
			return fmt.Errorf("%w: ready stack exceeds %d", rxerr.ErrStackOverflow, maxReadyStack)
		}
		stack = append(stack, t)
		return nil
	}

	cur := thread{pc: startPC, sp: startSP, sub: startSub}
	for {
		inst := m.prog.Instructions[cur.pc]
		dead := false

		if inst.Memo.ShouldMemo && inst.Memo.MemoStateNum >= 0 {
			if m.memoTable.IsMarked(inst.Memo.MemoStateNum, cur.sp) {
				dead = true
			} else {
				m.memoTable.MarkMemo(inst.Memo.MemoStateNum, cur.sp)
			}
		}

		if !dead {
			m.stats.record(inst.StateNum, cur.sp)

			switch inst.Op {
			case compile.OpChar:
				if cur.sp < len(m.input) && m.input[cur.sp] == inst.C {
					cur.pc++
					cur.sp++
					continue
				}
				dead = true

			case compile.OpAny:
				if cur.sp < len(m.input) {
					cur.pc++
					cur.sp++
					continue
				}
				dead = true

			case compile.OpCharClass:
				if cur.sp < len(m.input) && matchCharClass(inst, m.input[cur.sp]) {
					cur.pc++
					cur.sp++
					continue
				}
				dead = true

			case compile.OpMatch, compile.OpRecursiveMatch:
				m.opts.logger.V(1).Info("match", "pc", cur.pc, "sp", cur.sp)
				return true, cur.sub, nil

			case compile.OpJmp:
				cur.pc = inst.X
				continue

			case compile.OpSplit:
				if err := push(thread{inst.Y, cur.sp, cur.sub}); err != nil {
					return false, nil, err
				}
				cur.pc = inst.X
				continue

			case compile.OpSplitMany:
				// Push the trailing alternatives in reverse so the
				// LIFO pop order still tries edges[1], edges[2], ...
				// left to right once edges[0] (tried inline) dies.
				for i := len(inst.Edges) - 1; i >= 1; i-- {
					if err := push(thread{inst.Edges[i], cur.sp, cur.sub}); err != nil {
						return false, nil, err
					}
				}
				cur.pc = inst.Edges[0]
				continue

			case compile.OpSave:
				cur.sub = withSave(cur.sub, inst.N, cur.sp)
				cur.pc++
				continue

			case compile.OpStringCompare:
				if ok, n := matchBackref(inst, cur.sub, m.input, cur.sp); ok {
					cur.sp += n
					cur.pc++
					continue
				}
				dead = true

			case compile.OpInlineZeroWidthAssertion:
				if matchZeroWidth(inst.C, m.input, cur.sp) {
					cur.pc++
					continue
				}
				dead = true

			case compile.OpRecursiveZeroWidthAssertion:
				matched, _, err := m.run(inst.X, cur.sp, cur.sub, maxReadyStack)
				if err != nil {
					return false, nil, err
				}
				if matched {
					cur.pc = inst.Y
					continue
				}
				dead = true

			default:
				return false, nil, fmt.Errorf("%w: opcode %v", rxerr.ErrUnsupportedFeature, inst.Op)
			}
		}

		if dead {
			m.opts.logger.V(2).Info("thread died", "pc", cur.pc, "sp", cur.sp)
			if len(stack) == 0 {
				m.opts.logger.V(1).Info("no match", "startPC", startPC, "startSP", startSP)
				return false, nil, nil
			}
			cur = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		}
	}
}

func matchCharClass(inst compile.Instruction, c byte) bool {
	in := false
	for _, r := range inst.CharRanges {
		if c >= r.Lo && c <= r.Hi {
			in = true
			break
		}
	}
	if inst.Invert {
		return !in
	}
	return in
}

// matchBackref compares the input at sp against the substring
// captured by group cgNum, returning whether it matches and, if so,
// how many bytes it consumed. An unset group never matches.
func matchBackref(inst compile.Instruction, sub *Sub, input []byte, sp int) (bool, int) {
	lo, hi := sub[2*inst.CGNum], sub[2*inst.CGNum+1]
	if lo < 0 || hi < 0 {
		return false, 0
	}
	n := hi - lo
	if sp+n > len(input) {
		return false, 0
	}
	for i := 0; i < n; i++ {
		if input[sp+i] != input[lo+i] {
			return false, 0
		}
	}
	return true, n
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func matchZeroWidth(kind byte, input []byte, sp int) bool {
	switch kind {
	case '^':
		return sp == 0
	case '$':
		return sp == len(input)
	case 'b', 'B':
		before := sp > 0 && isWordByte(input[sp-1])
		after := sp < len(input) && isWordByte(input[sp])
		boundary := before != after
		if kind == 'b' {
			return boundary
		}
		return !boundary
	default:
		return false
	}
}
