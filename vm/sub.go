package vm

// MaxSub is the number of capture-offset slots: 10 groups (including
// the implicit whole-match group 0) times 2 for (start, end).
const MaxSub = 20

// Sub is a capture-offset array. Unset slots hold -1.
type Sub = [MaxSub]int

// unsetSub returns a Sub with every slot unset.
func unsetSub() *Sub {
	var s Sub
	for i := range s {
		s[i] = -1
	}
	return &s
}

// withSave returns a copy of sub with slot n set to offset.
// Copy-on-write on every Save gives threads that forked before this
// Save the "keep seeing the old captures" property for free, at the
// cost of one array copy per Save.
func withSave(sub *Sub, n, offset int) *Sub {
	next := *sub
	next[n] = offset
	return &next
}
