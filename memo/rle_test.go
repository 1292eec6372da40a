package memo_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rxmemo/memo"
)

var _ = Describe("RLEVector", func() {
	It("starts as all-zeros with a single run", func() {
		v := memo.NewRLEVector(20, 4)
		for i := 0; i < 20; i++ {
			Expect(v.Get(i)).To(BeFalse())
		}
		// MaxBytes is the struct size plus one run record per run, so a
		// fresh vector costs the same as a one-group (one-run) vector.
		Expect(v.MaxBytes()).To(Equal(memo.NewRLEVector(1, 1).MaxBytes()))
	})

	It("matches a dense oracle across a sequence of sets, for several run-widths", func() {
		r := rand.New(rand.NewSource(7))
		for _, k := range []int{1, 3, 8} {
			const n = 97
			v := memo.NewRLEVector(n, k)
			oracle := make([]bool, n)
			for step := 0; step < 200; step++ {
				i := r.Intn(n)
				oracle[i] = true
				v.Set(i)
				for j := 0; j < n; j++ {
					Expect(v.Get(j)).To(Equal(oracle[j]), "k=%d step=%d j=%d", k, step, j)
				}
			}
		}
	})

	It("reports a non-decreasing high-water mark of bytes as runs fragment", func() {
		v := memo.NewRLEVector(64, 2)
		before := v.MaxBytes()
		for i := 0; i < 64; i += 2 {
			v.Set(i)
		}
		Expect(v.MaxBytes()).To(BeNumerically(">=", before))
	})
})
