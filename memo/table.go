package memo

import (
	"unsafe"

	"github.com/sarchlab/rxmemo/compile"
)

// Table is the memo table interface the VM drives: isMarked/markMemo
// over a search state (memoStateNum, offset), regardless of which of
// the three encodings backs it.
type Table interface {
	IsMarked(stateNum, offset int) bool
	MarkMemo(stateNum, offset int)
	MaxBytes() int
}

// New constructs the Table matching encoding, sized for nMemoizedStates
// vertices over an input of length lenW. rleK is the run-width used by
// the RLE_TUNED encoding; the RLE encoding always uses a run-width of
// 1, and the other encodings ignore rleK.
func New(encoding compile.MemoEncoding, nMemoizedStates, lenW, rleK int) Table {
	switch encoding {
	case compile.EncodingNegative:
		return newNegativeTable(lenW)
	case compile.EncodingRLE:
		return newRLETable(nMemoizedStates, lenW, 1)
	case compile.EncodingRLETuned:
		return newRLETable(nMemoizedStates, lenW, rleK)
	default:
		return newDenseTable(nMemoizedStates, lenW)
	}
}

// denseTable is the NONE encoding: a [nMemoizedStates][lenW+1] array.
type denseTable struct {
	marks [][]bool
}

func newDenseTable(nMemoizedStates, lenW int) *denseTable {
	rows := make([][]bool, nMemoizedStates)
	for i := range rows {
		rows[i] = make([]bool, lenW+1)
	}
	return &denseTable{marks: rows}
}

func (t *denseTable) IsMarked(stateNum, offset int) bool { return t.marks[stateNum][offset] }
func (t *denseTable) MarkMemo(stateNum, offset int)      { t.marks[stateNum][offset] = true }

func (t *denseTable) MaxBytes() int {
	if len(t.marks) == 0 {
		return 0
	}
	return len(t.marks) * len(t.marks[0]) * int(unsafe.Sizeof(false))
}

// negativeTable is the NEGATIVE encoding: a sparse hash set keyed by a
// single combined index, following the idx = stateNum*(len+1)+offset
// packing used to turn a 2D search state into a scalar map key.
type negativeTable struct {
	lenW   int
	marked map[int]struct{}
}

func newNegativeTable(lenW int) *negativeTable {
	return &negativeTable{lenW: lenW, marked: make(map[int]struct{})}
}

func (t *negativeTable) key(stateNum, offset int) int { return stateNum*(t.lenW+1) + offset }

func (t *negativeTable) IsMarked(stateNum, offset int) bool {
	_, ok := t.marked[t.key(stateNum, offset)]
	return ok
}

func (t *negativeTable) MarkMemo(stateNum, offset int) {
	t.marked[t.key(stateNum, offset)] = struct{}{}
}

func (t *negativeTable) MaxBytes() int {
	return len(t.marked) * int(unsafe.Sizeof(int(0)))
}

// rleTable is the RLE/RLE_TUNED encoding: one RLEVector per memoized
// vertex.
type rleTable struct {
	vectors []*RLEVector
}

func newRLETable(nMemoizedStates, lenW, k int) *rleTable {
	vs := make([]*RLEVector, nMemoizedStates)
	for i := range vs {
		vs[i] = NewRLEVector(lenW+1, k)
	}
	return &rleTable{vectors: vs}
}

func (t *rleTable) IsMarked(stateNum, offset int) bool { return t.vectors[stateNum].Get(offset) }
func (t *rleTable) MarkMemo(stateNum, offset int)      { t.vectors[stateNum].Set(offset) }

func (t *rleTable) MaxBytes() int {
	total := 0
	for _, v := range t.vectors {
		total += v.MaxBytes()
	}
	return total
}
